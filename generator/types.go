package generator

// Draft is the generated design document plus the metadata extracted from its
// front matter. Markdown is the document exactly as it will be emitted.
type Draft struct {
	Notebook string
	Author   string
	Created  string
	Markdown string
	// Warnings lists template deviations (missing front matter, missing
	// sections). They never block emission.
	Warnings []string
}
