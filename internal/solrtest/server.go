// Package solrtest runs an in-process fake search server for tests.
package solrtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Core is the core name the fake server is mounted under.
const Core = "test"

// Request is one request received by the fake server.
type Request struct {
	Method      string
	Path        string // path below the core, e.g. /select
	RawQuery    string
	Body        string
	ContentType string
	RequestID   string
}

// Server is a fake search server. Responses are configured per route;
// every request is recorded.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	requests  []Request
	selectXML string
	status    int
	errorBody string
}

// Option configures the fake server.
type Option func(*config)

type config struct {
	user, password string
}

// WithBasicAuth requires the given credentials on every route except ping.
func WithBasicAuth(user, password string) Option {
	return func(c *config) {
		c.user, c.password = user, password
	}
}

// New starts a fake server and stops it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	s := &Server{selectXML: Response(0, 0)}

	r := chi.NewRouter()
	r.Route("/solr/{core}", func(r chi.Router) {
		r.Use(s.record)
		r.Use(basicAuth(cfg.user, cfg.password))
		r.Get("/select", s.handleSelect)
		r.Post("/update", s.handleUpdate)
		r.Get("/admin/ping", s.handlePing)
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the core URL clients should be configured with.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/solr/" + Core
}

// RespondSelect sets the body returned by /select.
func (s *Server) RespondSelect(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectXML = body
}

// FailWith makes every route answer with status and body until reset with status 0.
func (s *Server) FailWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.errorBody = status, body
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		prefix := "/solr/" + chi.URLParam(r, "core")
		req := Request{
			Method:      r.Method,
			Path:        strings.TrimPrefix(r.URL.Path, prefix),
			RawQuery:    r.URL.RawQuery,
			Body:        string(body),
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		status, errBody := s.status, s.errorBody
		s.mu.Unlock()

		if chi.URLParam(r, "core") != Core {
			http.Error(w, "no such core", http.StatusNotFound)
			return
		}
		if status != 0 {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, errBody)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	body := s.selectXML
	s.mu.Unlock()
	writeXML(w, body)
}

func (s *Server) handleUpdate(w http.ResponseWriter, _ *http.Request) {
	writeXML(w, statusResponse)
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeXML(w, `<response><lst name="responseHeader"><int name="status">0</int></lst><str name="status">OK</str></response>`)
}

const statusResponse = `<?xml version="1.0" encoding="UTF-8"?>
<response><lst name="responseHeader"><int name="status">0</int><int name="QTime">1</int></lst></response>`

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// Response builds a select response body with the given doc elements.
func Response(numFound, start int, docs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<response>\n")
	b.WriteString(`<lst name="responseHeader"><int name="status">0</int><int name="QTime">0</int></lst>` + "\n")
	fmt.Fprintf(&b, `<result name="response" numFound="%d" start="%d">`, numFound, start)
	for _, d := range docs {
		b.WriteString(d)
	}
	b.WriteString("</result>\n</response>")
	return b.String()
}
