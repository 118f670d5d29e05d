package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual against expected after normalising
// both through JSON unmarshal, so key order and whitespace never matter.
// Keys listed in scenario.IgnoreFields are removed first.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal any

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected body is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	ignore := make(map[string]bool, len(scenario.IgnoreFields))
	for _, f := range scenario.IgnoreFields {
		ignore[f] = true
	}

	assert.Equal(t, strip(expVal, ignore), strip(actVal, ignore),
		"[%s] response body mismatch", scenario.Name)
}

func strip(v any, ignore map[string]bool) any {
	if len(ignore) == 0 {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if !ignore[k] {
				out[k] = strip(inner, ignore)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = strip(inner, ignore)
		}
		return out
	default:
		return v
	}
}
