package handler

import (
	"net/http"

	"rpmdiag/backend"
	"rpmdiag/config"
	"rpmdiag/prompt"
)

// HTTPHandler serves the static page and the diagnose endpoint.
type HTTPHandler struct {
	Completer    backend.Completer
	SystemPrompt string
	StaticFile   string
	MaxBodyBytes int64

	chain http.Handler
}

// NewHTTPHandler wires the routes. The rubric is the fixed system prompt.
func NewHTTPHandler(cfg *config.Config, completer backend.Completer) *HTTPHandler {
	h := &HTTPHandler{
		Completer:    completer,
		SystemPrompt: prompt.Rubric,
		StaticFile:   cfg.Server.StaticFile,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("POST /diagnose", h.diagnose)
	h.chain = withRequestID(withAccessLog(mux))
	return h
}

// ServeHTTP implements the http.Handler interface for HTTPHandler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}
