// Package expression evaluates the small arithmetic formulas accepted by
// cache TTL fields, e.g. "(2*3)+5".
package expression

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
)

// mathPattern gates evaluation: only digits, arithmetic operators,
// parentheses, dots and spaces are allowed.
var mathPattern = regexp.MustCompile(`^[0-9+\-*/.() ]+$`)

// Evaluate resolves an arithmetic expression string to a number. Strings
// containing anything beyond arithmetic are rejected before compilation.
func Evaluate(src string) (float64, error) {
	if src == "" || !mathPattern.MatchString(src) {
		return 0, fmt.Errorf("expression %q is not purely mathematical", src)
	}

	program, err := expr.Compile(src)
	if err != nil {
		return 0, fmt.Errorf("expression %q is not purely mathematical", src)
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate expression %q: %w", src, err)
	}

	switch n := out.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expression %q did not evaluate to a number", src)
	}
}
