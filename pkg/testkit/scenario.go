// Package testkit drives the KicksUp API in tests: private in-memory
// databases, a fully wired in-process app, token and JSON helpers, and a
// JSON-scenario runner for route-level tests.
//
// Each scenario is a JSON file that describes:
//   - The HTTP request to fire (method, URL, body, headers, caller role)
//   - Expected HTTP status code
//   - Expected response body file and/or gjson path expectations
//   - Values to capture from the response for later scenarios
//
// Scenario files live next to your *_test.go files and run in name order,
// sharing captured values:
//
//	testdata/
//	  01_login.json
//	  02_create_order.json       ← captures "orderId"
//	  03_show_order.json         ← requestUrl "/api/orders/{{orderId}}"
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    a := testkit.NewApp(t)
//	    testkit.RunDir(t, a.Env(t), "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	Headers         map[string]string `json:"headers"`

	// As names the caller whose token is sent: a key of Env.Tokens such as
	// "admin" or "client". Empty sends no Authorization header.
	As string `json:"as"`

	ResponseFileName   string `json:"responseFileName"`
	ExpectedCode       int    `json:"expectedCode"`
	ExpectedStatusCode int    `json:"expectedStatusCode"`

	// Expect maps gjson paths to expected values. "*" only requires the path
	// to exist.
	Expect map[string]any `json:"expect"`

	// Capture maps a variable name to a gjson path read from the response.
	// Later scenarios reference it as {{name}} in requestUrl or the body.
	Capture map[string]string `json:"capture"`

	dir string
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.normalize()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) normalize() {
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return fmt.Errorf("requestFileName and requestBody are exclusive")
	}
	return nil
}

// RequestBodyPath returns the absolute path to the request body file,
// resolved relative to the scenario file's directory.
// Returns "" when RequestFileName is not set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path to the expected response file.
// Returns "" when ResponseFileName is not set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadScenarioArray reads an array of scenarios from one file. Items may
// leave requestUrl and requestMethod empty for the suite runner to fill in,
// so only names are checked here.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve scenario array path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario array %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for _, s := range scenarios {
		s.dir = dir
		if s.ExpectedCode == 0 {
			s.ExpectedCode = s.ExpectedStatusCode
		}
		if s.ExpectedCode == 0 {
			s.ExpectedCode = 200
		}
		if s.Name == "" {
			return nil, fmt.Errorf("testkit: invalid scenario array item: name is required")
		}
	}
	return scenarios, nil
}
