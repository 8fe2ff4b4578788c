package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"rpmdiag/backend"
	"rpmdiag/prompt"
)

var errTrailingData = errors.New("unexpected data after JSON body")

func (h *HTTPHandler) diagnose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)

	var payload DiagnosisRequest
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&payload)
	if err == nil {
		// The body must hold exactly one JSON value.
		if extra := dec.Decode(&struct{}{}); extra != io.EOF {
			err = errTrailingData
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logAndReturnError(w, r, errBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		logAndReturnError(w, r, errInvalidJSON, http.StatusBadRequest, "Bad Request: "+err.Error())
		return
	}
	if payload.Message == nil || *payload.Message == "" {
		logAndReturnError(w, r, errNoMessage, http.StatusBadRequest)
		return
	}

	start := time.Now()
	analysis, err := h.Completer.Complete(r.Context(), h.SystemPrompt, prompt.UserTurn(*payload.Message))
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}

	requestLogger(r).WithFields(logrus.Fields{
		"message_len":  len(*payload.Message),
		"analysis_len": len(analysis),
		"upstream":     time.Since(start).Round(time.Millisecond).String(),
	}).Debug("Diagnosis complete")
	writeJSON(w, http.StatusOK, DiagnosisResponse{Analysis: analysis})
}

// writeUpstreamError maps a Completer failure to a 5xx. The error text is
// only logged, never sent to the caller.
func (h *HTTPHandler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		requestLogger(r).Debugf("Client %s disconnected", r.RemoteAddr)
		return
	}
	if backend.IsTimeout(err) {
		logAndReturnError(w, r, errUpstreamTimeout, http.StatusGatewayTimeout, "Upstream timeout: "+err.Error())
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		requestLogger(r).Warn("Completion service rejected the API key; check the configured credential")
	}
	logAndReturnError(w, r, errUpstreamFailed, http.StatusBadGateway, "Bad Gateway: "+err.Error())
}
