package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// Env is what scenarios run against: the handler, bearer tokens by caller
// name, and variables captured so far.
type Env struct {
	Handler http.Handler
	Tokens  map[string]string
	Vars    map[string]string
}

// Expand replaces {{name}} placeholders with captured variables.
func (e *Env) Expand(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	for k, v := range e.Vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}

// Run executes a single scenario file against env.
//
// Lifecycle per scenario:
//  1. Load the scenario JSON file.
//  2. Read the request body (inline or from requestFileName) and expand it.
//  3. Fire the request against the handler using httptest.
//  4. Assert status code, expected body file and path expectations.
//  5. Capture response values into env.Vars.
func Run(t *testing.T, env *Env, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, env, s)
	})
}

// RunDir runs every *.json in dir, in file name order, as subtests sharing
// env. A scenario that fails to load is reported and skipped.
func RunDir(t *testing.T, env *Env, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, env, s)
		})
	}
}

// isBodyFile skips request and response bodies kept beside scenarios.
func isBodyFile(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	return strings.HasSuffix(base, "_req") || strings.HasSuffix(base, "_res")
}

func runScenario(t *testing.T, env *Env, s *Scenario) {
	t.Helper()
	if env.Vars == nil {
		env.Vars = map[string]string{}
	}

	var reqBody io.Reader
	switch {
	case len(s.RequestBody) > 0:
		reqBody = strings.NewReader(env.Expand(string(s.RequestBody)))
	case s.RequestFileName != "":
		data, err := os.ReadFile(s.RequestBodyPath())
		require.NoError(t, err, "[%s] read request file", s.Name)
		reqBody = bytes.NewReader([]byte(env.Expand(string(data))))
	}

	req := httptest.NewRequest(s.RequestMethod, env.Expand(s.RequestURL), reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.As != "" {
		token, ok := env.Tokens[s.As]
		require.True(t, ok, "[%s] no token for caller %q", s.Name, s.As)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, env.Expand(v))
	}

	rec := httptest.NewRecorder()
	env.Handler.ServeHTTP(rec, req)
	body := rec.Body.Bytes()

	AssertStatusCode(t, s, rec.Code, body)

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, body)
		}
	}

	AssertExpectations(t, s, body, env.Expand)

	for name, path := range s.Capture {
		res := gjson.GetBytes(body, path)
		if !res.Exists() {
			t.Errorf("[%s] capture %q: path %q not in response", s.Name, name, path)
			continue
		}
		env.Vars[name] = res.String()
	}
}
