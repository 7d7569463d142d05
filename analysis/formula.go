package analysis

import (
	"fmt"
	"strings"
)

// Formula is a linear model description such as "stars ~ forks + issues".
// An intercept is always fitted.
type Formula struct {
	Response   string
	Predictors []string
}

// ParseFormula parses "response ~ a + b + ...".
func ParseFormula(s string) (Formula, error) {
	lhs, rhs, ok := strings.Cut(s, "~")
	if !ok {
		return Formula{}, fmt.Errorf("%w: %q has no '~'", ErrInvalidFormula, s)
	}

	f := Formula{Response: strings.TrimSpace(lhs)}
	if !isIdentifier(f.Response) {
		return Formula{}, fmt.Errorf("%w: bad response in %q", ErrInvalidFormula, s)
	}

	seen := map[string]bool{f.Response: true}
	for _, term := range strings.Split(rhs, "+") {
		term = strings.TrimSpace(term)
		if !isIdentifier(term) {
			return Formula{}, fmt.Errorf("%w: bad term %q in %q", ErrInvalidFormula, term, s)
		}
		if seen[term] {
			return Formula{}, fmt.Errorf("%w: %s repeated in %q", ErrInvalidFormula, term, s)
		}
		seen[term] = true
		f.Predictors = append(f.Predictors, term)
	}
	return f, nil
}

// MustParseFormula is ParseFormula for constant formulas.
func MustParseFormula(s string) Formula {
	f, err := ParseFormula(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Formula) String() string {
	return f.Response + " ~ " + strings.Join(f.Predictors, " + ")
}

// Validate checks that f only names columns of frame.
func (f Formula) Validate(frame *Frame) error {
	for _, col := range append([]string{f.Response}, f.Predictors...) {
		if !frame.Has(col) {
			return fmt.Errorf("%w: %s in %q", ErrUnknownColumn, col, f)
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
