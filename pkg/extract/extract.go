// Package extract pulls the numeric answer out of free-form calculator output.
package extract

import (
	"regexp"
	"strconv"

	"github.com/aretw0/calcgate/pkg/domain"
)

// resultPattern matches "Result:" followed by optional whitespace, an optional
// minus sign, digits, an optional dot and more digits.
//
// RE2's \s is ASCII only, so the class also lists vertical tab, Unicode space
// separators (NBSP, em space, ...), the BOM and the line/paragraph separators.
var resultPattern = regexp.MustCompile(`Result:[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]*(-?\d+\.?\d*)`)

// Number returns the first result found in text.
// The second return value is false when there is no match or the captured
// number does not fit in a float64.
func Number(text string) (float64, bool) {
	m := resultPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Outcome maps evaluator output to the caller-facing outcome.
func Outcome(text string) domain.Outcome {
	if v, ok := Number(text); ok {
		return domain.Success(v)
	}
	return domain.Invalid()
}
