package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Section headings the output template requires.
var requiredSections = []string{"Functioneel ontwerp", "Technisch ontwerp"}

type frontMatter struct {
	Author   string `yaml:"author"`
	Notebook string `yaml:"notebook"`
	Created  string `yaml:"created"`
}

// PostProcess turns the raw model reply into a Draft. The document body is
// kept verbatim apart from whitespace trimming and unwrapping a reply that
// arrives as one big code fence. Template deviations become warnings, not
// errors: the caller still emits the document.
func PostProcess(raw string) (Draft, error) {
	md := strings.TrimSpace(raw)
	md = stripFence(md)
	if md == "" {
		return Draft{}, errors.New("model returned empty markdown")
	}

	draft := Draft{Markdown: md}

	meta, body, ok := splitFrontMatter(md)
	if !ok {
		draft.Warnings = append(draft.Warnings, "no YAML front matter found")
		body = md
	} else {
		var fm frontMatter
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			draft.Warnings = append(draft.Warnings, fmt.Sprintf("front matter is not valid YAML: %v", err))
		} else {
			draft.Author = fm.Author
			draft.Notebook = fm.Notebook
			draft.Created = fm.Created
			if fm.Notebook == "" {
				draft.Warnings = append(draft.Warnings, "front matter has no notebook entry")
			}
		}
	}

	for _, s := range missingSections(body) {
		draft.Warnings = append(draft.Warnings, fmt.Sprintf("missing section heading %q", s))
	}
	return draft, nil
}

// stripFence unwraps a reply whose entire content is a single fenced block
// (```markdown ... ```). Fences inside the document are left alone.
func stripFence(md string) string {
	if !strings.HasPrefix(md, "```") {
		return md
	}
	nl := strings.IndexByte(md, '\n')
	if nl < 0 || !strings.HasSuffix(md, "\n```") {
		return md
	}
	inner := md[nl+1 : len(md)-len("\n```")]
	// A closing fence halfway through means the fence did not wrap the whole
	// reply.
	if strings.Contains(inner, "\n```\n") {
		return md
	}
	return strings.TrimSpace(inner)
}

// splitFrontMatter returns the YAML block and the remaining body.
func splitFrontMatter(md string) (meta, body string, ok bool) {
	if !strings.HasPrefix(md, "---\n") {
		return "", "", false
	}
	rest := md[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", "", false
	}
	meta = rest[:end]
	body = strings.TrimPrefix(rest[end+len("\n---"):], "\n")
	return meta, body, true
}

func missingSections(body string) []string {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	found := map[string]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, isHeading := n.(*ast.Heading); isHeading {
			found[strings.TrimSpace(string(h.Text(src)))] = true
		}
		return ast.WalkContinue, nil
	})

	var missing []string
	for _, s := range requiredSections {
		if !found[s] {
			missing = append(missing, s)
		}
	}
	return missing
}
