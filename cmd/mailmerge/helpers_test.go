package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	mailmerge "github.com/alnah/go-mailmerge"
)

const (
	testSenderJSON = `{"name":"ACME Corp","address_1":"1 Road","city":"Town","post_code":"12345","country":"USA"}`
	testListJSON   = `[
		{"name":"Jane Doe","address_1":"221B Baker St","city":"London","post_code":"NW1 6XE","country":"UK"},
		{"address_1":"1600 Amphitheatre Pkwy","address_2":"Bldg 40","city":"Mountain View","state":"CA","post_code":"94043","country":"USA"}
	]`
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and environment
// ---------------------------------------------------------------------------

// mockConverter records jobs and returns a canned result.
type mockConverter struct {
	mu     sync.Mutex
	jobs   []*mailmerge.Job
	opts   int
	err    error
	closed bool
}

func (m *mockConverter) Convert(_ context.Context, job *mailmerge.Job) (*mailmerge.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	if m.err != nil {
		return nil, m.err
	}
	res := &mailmerge.Result{HTML: []byte("<html>" + job.Addresses[0].City + "</html>")}
	if !job.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConverter) lastJob(t *testing.T) *mailmerge.Job {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.jobs) == 0 {
		t.Fatal("converter was not called")
	}
	return m.jobs[len(m.jobs)-1]
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *mockConverter
}

// newTestEnv returns an Environment with a mock converter and the given
// environment variables only.
func newTestEnv(vars map[string]string, stdin string) *testEnv {
	var stdout, stderr bytes.Buffer
	conv := &mockConverter{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConverter: func(opts ...mailmerge.Option) (Converter, error) {
			conv.opts = len(opts)
			return conv, nil
		},
	}
	return &testEnv{Environment: env, stdout: &stdout, stderr: &stderr, conv: conv}
}

