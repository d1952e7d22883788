package testkit

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// AssertStatusCode checks the response code, printing the body on mismatch.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int, body []byte) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch\nbody: %s", scenario.Name, string(body))
}

// AssertJSONBody deep-compares the response against the expected file after
// normalising both through JSON unmarshal, so key order and whitespace never
// matter.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal any
	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)
	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	if !assert.Equal(t, expVal, actVal, "[%s] response body mismatch", scenario.Name) {
		t.Log(strings.Join(DiffJSON("", expVal, actVal), "\n"))
	}
}

// AssertExpectations checks every gjson path in scenario.Expect. String
// values go through expand first, so they may reference captured variables.
func AssertExpectations(t *testing.T, scenario *Scenario, body []byte, expand func(string) string) {
	t.Helper()
	for path, want := range scenario.Expect {
		if s, ok := want.(string); ok && expand != nil {
			want = expand(s)
		}
		AssertPath(t, body, path, want, "[%s]", scenario.Name)
	}
}

// AssertPath checks one gjson path of a JSON body. want may be a string,
// number, bool, nil (absent or null), "*" (present) or any JSON value
// compared structurally.
func AssertPath(t testing.TB, body []byte, path string, want any, msgAndArgs ...any) bool {
	t.Helper()
	res := gjson.GetBytes(body, path)
	msg := describe(fmt.Sprintf("path %q", path), msgAndArgs)

	switch w := want.(type) {
	case nil:
		return assert.True(t, !res.Exists() || res.Type == gjson.Null, msg+" should be absent or null")
	case string:
		if !assert.True(t, res.Exists(), msg+" missing\nbody: "+string(body)) {
			return false
		}
		if w == "*" {
			return true
		}
		return assert.Equal(t, w, res.String(), msg)
	case bool:
		return assert.Equal(t, w, res.Bool(), msg)
	case int:
		return assert.Equal(t, float64(w), res.Float(), msg)
	case float64:
		return assert.Equal(t, w, res.Float(), msg)
	default:
		return assert.Equal(t, normalize(want), res.Value(), msg)
	}
}

func describe(label string, msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return label
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return label
	}
	return fmt.Sprintf(format, msgAndArgs[1:]...) + " " + label
}

// normalize round-trips v through JSON so Go literals compare equal to
// decoded response values.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// DiffJSON returns human-readable differences between two JSON-decoded
// values.
func DiffJSON(path string, expected, actual any) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		for k, ev := range exp {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, ev, av)...)
		}
	case []any:
		act, ok := actual.([]any)
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected array, got %T", keyPath(path), actual))
		}
		if len(exp) != len(act) {
			diffs = append(diffs, fmt.Sprintf("  %s: array length expected=%d actual=%d", keyPath(path), len(exp), len(act)))
		}
		for i := 0; i < len(exp) && i < len(act); i++ {
			diffs = append(diffs, DiffJSON(fmt.Sprintf("%s[%d]", keyPath(path), i), exp[i], act[i])...)
		}
	default:
		if fmt.Sprintf("%v", expected) != fmt.Sprintf("%v", actual) {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %v\n    + %v", keyPath(path), expected, actual))
		}
	}
	return diffs
}

func keyPath(path string) string {
	if path == "" {
		return "root"
	}
	return strings.TrimPrefix(path, ".")
}
