package fakebackend

import (
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxMemory = 8 << 20

func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	return r.URL.Path
}

// parseForm fills r.Form from the query string and either body format.
func parseForm(r *http.Request) error {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			writeJSON(w, http.StatusBadRequest, envelope(false, "malformed body"))
			return
		}

		rec := RecordedRequest{
			Method:        r.Method,
			Path:          routePath(r),
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Form:          r.Form,
		}
		if r.MultipartForm != nil {
			for _, files := range r.MultipartForm.File {
				if len(files) > 0 {
					rec.FileName = files[0].Filename
					rec.FileType = files[0].Header.Get("Content-Type")
					rec.FileSize = files[0].Size
				}
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		s.log.Debug(r.Context(), "fake backend request", "method", r.Method, "path", rec.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routePath(r)

		s.mu.Lock()
		queue := s.failures[path]
		var f *failure
		if len(queue) > 0 {
			f = &queue[0]
			s.failures[path] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, envelope(false, "missing bearer token"))
			return
		}

		s.mu.Lock()
		valid := s.openAuth || s.tokens[token]
		s.mu.Unlock()

		if !valid {
			writeJSON(w, http.StatusUnauthorized, envelope(false, "invalid or expired token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
