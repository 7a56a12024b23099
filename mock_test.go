package solrdex

import (
	"context"
	"sync"
)

// --- Transport mock ---

type mockTransport struct {
	getFn  func(ctx context.Context, path string, params []Param) (string, error)
	postFn func(ctx context.Context, path, body string) (string, error)

	mu    sync.Mutex
	gets  []recordedGet
	posts []string
}

type recordedGet struct {
	path   string
	params []Param
}

func (m *mockTransport) Get(ctx context.Context, path string, params []Param) (string, error) {
	m.mu.Lock()
	m.gets = append(m.gets, recordedGet{path: path, params: params})
	m.mu.Unlock()
	if m.getFn == nil {
		return emptyResponse, nil
	}
	return m.getFn(ctx, path, params)
}

func (m *mockTransport) Post(ctx context.Context, path, body string) (string, error) {
	m.mu.Lock()
	m.posts = append(m.posts, body)
	m.mu.Unlock()
	if m.postFn == nil {
		return "<response/>", nil
	}
	return m.postFn(ctx, path, body)
}

func (m *mockTransport) lastGet() recordedGet {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.gets) == 0 {
		return recordedGet{}
	}
	return m.gets[len(m.gets)-1]
}

func (m *mockTransport) lastPost() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.posts) == 0 {
		return ""
	}
	return m.posts[len(m.posts)-1]
}

const emptyResponse = `<response><result name="response" numFound="0" start="0"/></response>`

func respond(raw string) func(context.Context, string, []Param) (string, error) {
	return func(context.Context, string, []Param) (string, error) { return raw, nil }
}
