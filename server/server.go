package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"doxcer/generator"
	"doxcer/secrets"
)

//go:embed web/index.html
var indexHTML []byte

// Server exposes the documentation pipeline over HTTP. It holds only the
// encrypted credential bundle: the API key is decrypted inside each request
// handler and becomes unreachable when the handler returns. No plaintext
// credential is ever cached across requests.
type Server struct {
	bundle   secrets.Bundle
	settings generator.LLMSettings
	llm      generator.LLMClient // optional override, used by -offline and tests
}

// New builds a server. settings.APIKey must be empty; the key comes from the
// bundle per request. Pass a non-nil llm to bypass the bundle entirely.
func New(bundle secrets.Bundle, settings generator.LLMSettings, llm generator.LLMClient) (*Server, error) {
	if settings.APIKey != "" {
		return nil, errors.New("settings must not carry a plaintext api key; the bundle owns the credential")
	}
	return &Server{bundle: bundle, settings: settings, llm: llm}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/docs", s.handleGenerate)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

type generateReq struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type generateResp struct {
	Markdown string   `json:"markdown"`
	HTML     string   `json:"html"`
	Notebook string   `json:"notebook"`
	Author   string   `json:"author"`
	Created  string   `json:"created"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	llm, err := s.client()
	if err != nil {
		log.Printf("[server] credential: %v", err)
		http.Error(w, "credential unavailable", http.StatusInternalServerError)
		return
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()
	draft, err := agent.Generate(ctx, req.Source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(draft.Markdown), &html); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, generateResp{
		Markdown: draft.Markdown,
		HTML:     html.String(),
		Notebook: draft.Notebook,
		Author:   draft.Author,
		Created:  draft.Created,
		Warnings: draft.Warnings,
	})
}

// client returns the LLM client for one request. The decrypted key lives in
// the returned client only; callers drop it with the request.
func (s *Server) client() (generator.LLMClient, error) {
	if s.llm != nil {
		return s.llm, nil
	}
	apiKey, err := s.bundle.APIKey()
	if err != nil {
		return nil, err
	}
	cfg := s.settings
	cfg.APIKey = apiKey
	return generator.NewOpenAILLM(cfg)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
