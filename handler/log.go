package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

func requestLogger(req *http.Request) *logrus.Entry {
	return log.WithField("request_id", RequestID(req.Context()))
}

func logRequest(req *http.Request, status int, elapsed time.Duration) {
	fields := logrus.Fields{
		"status":   status,
		"duration": elapsed.Round(time.Millisecond).String(),
	}
	if status == StatusClientClosedRequest {
		fields["canceled"] = true
	}
	requestLogger(req).WithFields(fields).Infof("%s -- %s -- %s", req.RemoteAddr, req.Method, req.URL.Path)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debugf("Failed to write response: %v", err)
	}
}

// logAndReturnError writes {"error": httpResponseStr} with the given status.
// consoleStr is optional; when given it is logged instead of httpResponseStr.
func logAndReturnError(w http.ResponseWriter, req *http.Request, httpResponseStr string, code int, consoleStr ...string) {
	entry := requestLogger(req).WithField("status", code)
	msg := httpResponseStr
	if len(consoleStr) > 0 {
		msg = consoleStr[0]
	}
	if code >= http.StatusInternalServerError {
		entry.Errorln(msg)
	} else {
		entry.Warnln(msg)
	}
	writeJSON(w, code, ErrorResponse{Error: httpResponseStr})
}
