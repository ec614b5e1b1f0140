package domain

import (
	"encoding/json"
	"time"
)

// InvalidExpression is the single error message surfaced to callers when no
// result could be extracted from the evaluator output.
const InvalidExpression = "Invalid expression"

// Outcome is the result of one calculation. Exactly one of Result or Error is set.
type Outcome struct {
	Result *float64 `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Success builds a result outcome.
func Success(v float64) Outcome {
	return Outcome{Result: &v}
}

// Invalid builds the uniform error outcome.
func Invalid() Outcome {
	return Outcome{Error: InvalidExpression}
}

// OK reports whether the outcome carries a result.
func (o Outcome) OK() bool {
	return o.Result != nil
}

// Kind returns a short label used by metrics and logs.
func (o Outcome) Kind() string {
	if o.OK() {
		return "result"
	}
	return "invalid"
}

// MarshalJSON emits only the populated variant. Negative zero is written as 0.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Result != nil {
		v := *o.Result
		if v == 0 {
			v = 0
		}
		return json.Marshal(struct {
			Result float64 `json:"result"`
		}{v})
	}
	return json.Marshal(struct {
		Error string `json:"error"`
	}{o.Error})
}

// Output is what an evaluator produced for a single expression.
type Output struct {
	Text     string        `json:"text"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// Record is a journal entry for a finished calculation.
type Record struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Outcome    Outcome   `json:"outcome"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnmarshalJSON restores either variant of an outcome.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw struct {
		Result *float64 `json:"result"`
		Error  string   `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Result = raw.Result
	o.Error = raw.Error
	return nil
}
