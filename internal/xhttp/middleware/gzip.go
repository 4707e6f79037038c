package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/garrettladley/wellness/internal/xhttp"
)

const (
	gzipEncoding = "gzip"
	// responses shorter than this are sent as-is
	gzipMinSize = 1024
)

// paths that negotiate their own encoding
var gzipSkipPaths = map[string]struct{}{
	"/metrics": {},
}

// content types that do not shrink under gzip
var incompressiblePrefixes = []string{
	"image/",
	"video/",
	"audio/",
	"application/zip",
	"application/gzip",
}

var gzipWriters = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
		return w
	},
}

// gzipWriter buffers the start of a response until it knows whether
// compression is worthwhile, then commits to one mode for the rest.
type gzipWriter struct {
	http.ResponseWriter
	status  int
	pending bytes.Buffer
	gz      *gzip.Writer
	// committed is set once headers have gone to the client
	committed bool
}

var (
	_ http.ResponseWriter = (*gzipWriter)(nil)
	_ http.Flusher        = (*gzipWriter)(nil)
	_ io.Closer           = (*gzipWriter)(nil)
)

func (g *gzipWriter) WriteHeader(code int) {
	if g.committed {
		return
	}
	g.status = code
}

func (g *gzipWriter) Write(b []byte) (int, error) {
	if g.committed {
		if g.gz != nil {
			return g.gz.Write(b)
		}
		return g.ResponseWriter.Write(b)
	}

	g.pending.Write(b)
	if g.pending.Len() < gzipMinSize {
		return len(b), nil
	}
	if err := g.commit(g.compressible()); err != nil {
		return 0, err
	}
	return len(b), nil
}

// compressible decides from headers and status only; the body size check is
// done by the caller.
func (g *gzipWriter) compressible() bool {
	if g.status == http.StatusNoContent || g.status == http.StatusNotModified || g.status < http.StatusOK {
		return false
	}
	h := g.Header()
	if h.Get(xhttp.ContentEncoding) != "" {
		return false
	}
	ct := h.Get(xhttp.ContentType)
	for _, prefix := range incompressiblePrefixes {
		if strings.HasPrefix(ct, prefix) {
			return false
		}
	}
	return true
}

// commit writes headers and the buffered prefix, compressed or not.
func (g *gzipWriter) commit(compress bool) error {
	g.committed = true
	if compress {
		g.Header().Set(xhttp.ContentEncoding, gzipEncoding)
		g.Header().Del(xhttp.ContentLength)
		g.ResponseWriter.WriteHeader(g.status)

		g.gz = gzipWriters.Get().(*gzip.Writer)
		g.gz.Reset(g.ResponseWriter)
		if _, err := g.gz.Write(g.pending.Bytes()); err != nil {
			return fmt.Errorf("failed to compress response: %w", err)
		}
	} else {
		if g.Header().Get(xhttp.ContentEncoding) == "" && g.pending.Len() > 0 {
			g.Header().Set(xhttp.ContentLength, strconv.Itoa(g.pending.Len()))
		}
		g.ResponseWriter.WriteHeader(g.status)
		if _, err := g.ResponseWriter.Write(g.pending.Bytes()); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	g.pending.Reset()
	return nil
}

// Close flushes anything still buffered. Short bodies are never compressed.
func (g *gzipWriter) Close() error {
	if !g.committed {
		return g.commit(false)
	}
	if g.gz == nil {
		return nil
	}
	err := g.gz.Close()
	gzipWriters.Put(g.gz)
	g.gz = nil
	if err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

// Flush commits early so streamed responses reach the client.
func (g *gzipWriter) Flush() {
	if !g.committed {
		_ = g.commit(g.pending.Len() >= gzipMinSize && g.compressible())
	}
	if g.gz != nil {
		_ = g.gz.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (g *gzipWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}

func Gzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := gzipSkipPaths[r.URL.Path]; skip || r.Method == http.MethodHead || !acceptsGzip(r.Header.Get(xhttp.AcceptEncoding)) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add(xhttp.Vary, xhttp.AcceptEncoding)

		gw := &gzipWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			// leave an uncommitted response to whoever recovers the panic
			if v := recover(); v != nil {
				panic(v)
			}
			_ = gw.Close()
		}()

		next.ServeHTTP(gw, r)
	})
}

// acceptsGzip reports whether the Accept-Encoding value lists gzip (or *)
// without q=0.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != gzipEncoding && coding != "*" {
			continue
		}
		q, found := strings.CutPrefix(strings.ReplaceAll(params, " ", ""), "q=")
		if !found {
			return true
		}
		if v, err := strconv.ParseFloat(q, 64); err == nil && v > 0 {
			return true
		}
	}
	return false
}
