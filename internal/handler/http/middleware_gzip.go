package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Writers and readers are pooled; push batches arrive on every sync cycle
// and allocating a fresh gzip state per request shows up on low-power
// field devices.
var (
	compressorPool = sync.Pool{
		New: func() any { return gzip.NewWriter(nil) },
	}
	decompressorPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip in Accept-Encoding.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			reader := decompressorPool.Get().(*gzip.Reader)
			if err := reader.Reset(req.Body); err != nil {
				decompressorPool.Put(reader)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			req.Body = &pooledBody{
				Reader: reader,
				release: func() {
					reader.Close()
					decompressorPool.Put(reader)
				},
			}
			req.Header.Del("Content-Encoding")
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		compressor := compressorPool.Get().(*gzip.Writer)
		compressor.Reset(w)

		next.ServeHTTP(&compressingWriter{ResponseWriter: w, compressor: compressor}, req)

		compressor.Close()
		compressorPool.Put(compressor)
	})
}

// pooledBody returns its gzip reader to the pool on Close instead of
// closing the underlying request body, which net/http closes itself.
type pooledBody struct {
	io.Reader
	release func()
}

func (b *pooledBody) Close() error {
	if b.release != nil {
		b.release()
	}
	return nil
}

type compressingWriter struct {
	http.ResponseWriter
	compressor *gzip.Writer
}

func (w *compressingWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressingWriter) Write(data []byte) (int, error) {
	return w.compressor.Write(data)
}
