package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"rpmdiag/config"
)

// Completer sends one system instruction and one user text to a completion
// service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// ErrEmptyResponse is returned when the upstream answered but produced no text choice.
var ErrEmptyResponse = errors.New("completion service returned no choices")

// APIError is a non-2xx answer from the completion service.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %d %s", e.Provider, e.StatusCode, e.Message)
}

// Both OpenAI and Anthropic wrap failures as {"error": {"message": ...}}.
type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// upstreamMessage extracts error.message from an upstream error body, or "".
func upstreamMessage(raw []byte) string {
	var er errorResponse
	if json.Unmarshal(raw, &er) != nil || er.Error == nil {
		return ""
	}
	return er.Error.Message
}

// Unauthorized reports whether the upstream rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsTimeout reports whether err came from the upstream call running out of time.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// New returns the Completer for the configured provider.
func New(cfg config.BackendConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

func newHTTPClient(cfg config.BackendConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout, // zero means no timeout
	}
}
