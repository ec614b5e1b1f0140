package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/calcgate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
		found  bool
	}{
		{"integer", "Result: 7\n", 7, true},
		{"negative decimal", "Result: -3.5", -3.5, true},
		{"no space", "Result:42", 42, true},
		{"trailing dot", "Result: 8.", 8, true},
		{"newline before number", "Result:\n12", 12, true},
		{"vertical tab", "Result:\v7", 7, true},
		{"no-break space", "Result:\u00a07", 7, true},
		{"ideographic space", "Result:\u3000\t8", 8, true},
		{"byte order mark", "Result:\ufeff9", 9, true},
		{"line separator", "Result:\u20283", 3, true},
		{"zero width space is not whitespace", "Result:\u200b4", 0, false},
		{"banner before result", "Enter expression: \nResult: 2.25\n", 2.25, true},
		{"first match wins", "Result: 1\nResult: 2\n", 1, true},
		{"error line", "Error: bad input", 0, false},
		{"empty", "", 0, false},
		{"label without number", "Result: abc", 0, false},
		{"lowercase label", "result: 5", 0, false},
		{"overflow", "Result: " + strings.Repeat("9", 400), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.output)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOutcome_JSON(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"Result: 7\n", `{"result":7}`},
		{"Result: -3.5", `{"result":-3.5}`},
		{"Result: 0", `{"result":0}`},
		{"Result: -0", `{"result":0}`},
		{"Result: -0.0", `{"result":0}`},
		{"Error: bad input", `{"error":"Invalid expression"}`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(Outcome(tt.output))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data), "output %q", tt.output)
	}
}

func TestOutcome_Idempotent(t *testing.T) {
	text := "noise\nResult: 3.14\nResult: 9\n"
	first := Outcome(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Outcome(text))
	}
	assert.Equal(t, domain.Success(3.14), first)
}
