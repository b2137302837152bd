// SPDX-License-Identifier: Apache-2.0

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] so the logging middleware
// can read the status code and body size after the downstream handler
// returns. WriteHeader forwards to the underlying writer at most once.
type responseWriter struct {
	http.ResponseWriter

	status      int
	size        int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write counts written bytes; an implicit 200 is recorded when the handler
// never called WriteHeader, matching the stdlib writer.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
