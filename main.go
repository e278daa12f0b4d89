package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doxcer/generator"
	"doxcer/secrets"
	"doxcer/server"
)

var verbose bool

type options struct {
	envPath  string
	model    string
	baseURL  string
	timeout  time.Duration
	offline  bool
	filePath string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	envPath := flag.String("env", "", "path to .env (overrides the default search)")
	model := flag.String("model", generator.DefaultModel, "completion model")
	baseURL := flag.String("base-url", "", "completion endpoint base URL (default: OpenAI)")
	timeout := flag.Duration("timeout", 2*time.Minute, "completion request timeout")
	offline := flag.Bool("offline", false, "use the placeholder generator, no network")
	serve := flag.Bool("serve", false, "start web server instead of one-shot generation")
	addr := flag.String("addr", ":8080", "http listen address when --serve")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	opts := options{
		envPath: *envPath,
		model:   *model,
		baseURL: *baseURL,
		timeout: *timeout,
		offline: *offline,
	}

	if *serve {
		if err := runServer(opts, *addr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: doxcer <path/to/notebook.py>")
		os.Exit(1)
	}
	opts.filePath = flag.Arg(0)

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run is the one-shot pipeline: load config, decrypt the credential, build
// the prompt from the notebook, perform the completion call, emit the
// document. Fail-fast: the first error is returned as-is and nothing is
// written to out.
func run(ctx context.Context, opts options, out io.Writer) error {
	llm, err := buildLLM(opts)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(opts.filePath)
	if err != nil {
		return fmt.Errorf("read notebook: %w", err)
	}

	agent, err := generator.NewAgent(llm)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	draft, err := agent.Generate(ctx, string(source))
	if err != nil {
		return fmt.Errorf("generate documentation: %w", err)
	}

	for _, warning := range draft.Warnings {
		log.Printf("[doxcer] warning: %s", warning)
	}
	if verbose {
		log.Printf("[doxcer] generated doc notebook=%q author=%q created=%q", draft.Notebook, draft.Author, draft.Created)
	}

	if _, err := fmt.Fprintln(out, draft.Markdown); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func runServer(opts options, addr string) error {
	var (
		bundle secrets.Bundle
		llm    generator.LLMClient
	)
	if opts.offline {
		llm = generator.MockLLM{}
	} else {
		var err error
		bundle, err = loadBundle(opts.envPath)
		if err != nil {
			return err
		}
	}

	srv, err := server.New(bundle, generator.LLMSettings{
		Model:   opts.model,
		BaseURL: opts.baseURL,
		Timeout: opts.timeout,
	}, llm)
	if err != nil {
		return err
	}

	log.Printf("Starting web server on %s", addr)
	return http.ListenAndServe(addr, srv.Routes())
}

// buildLLM resolves the credential and constructs the completion client for
// one invocation. The plaintext key is scoped to the returned client.
func buildLLM(opts options) (generator.LLMClient, error) {
	if opts.offline {
		return generator.MockLLM{Notebook: notebookName(opts.filePath)}, nil
	}

	bundle, err := loadBundle(opts.envPath)
	if err != nil {
		return nil, err
	}
	apiKey, err := bundle.APIKey()
	if err != nil {
		return nil, fmt.Errorf("decrypt credential: %w", err)
	}

	return generator.NewOpenAILLM(generator.LLMSettings{
		Model:   opts.model,
		APIKey:  apiKey,
		BaseURL: opts.baseURL,
		Timeout: opts.timeout,
	})
}

func loadBundle(envPath string) (secrets.Bundle, error) {
	loaded, err := secrets.LoadEnv(envPath)
	if err != nil {
		return secrets.Bundle{}, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		log.Printf("[doxcer] loaded .env from %s", loaded)
	}
	bundle, err := secrets.LoadBundle()
	if err != nil {
		return secrets.Bundle{}, fmt.Errorf("load config: %w", err)
	}
	return bundle, nil
}

func notebookName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
