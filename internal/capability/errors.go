package capability

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every ValidityError through errors.Is.
var ErrInvalid = errors.New("invalid statement")

// Predicate names a structural rule an expression must satisfy.
type Predicate string

const (
	Typed          Predicate = "typed"
	SelectableFrom Predicate = "selectable-from"
	NonAggregate   Predicate = "non-aggregate"
	BooleanTyped   Predicate = "boolean-typed"
	WellFormed     Predicate = "well-formed"
	ValidSource    Predicate = "valid-source"
)

// ValidityError reports an expression rejected by a capability predicate.
type ValidityError struct {
	Predicate Predicate
	Clause    string
	Expr      string
	Reason    string
}

func (e *ValidityError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s: %s: %s (in %s)", e.Clause, e.Predicate, e.Reason, e.Expr)
	}
	return fmt.Sprintf("%s: %s: %s", e.Clause, e.Predicate, e.Reason)
}

// Is makes every ValidityError match ErrInvalid.
func (e *ValidityError) Is(target error) bool {
	return target == ErrInvalid
}

func fail(p Predicate, clause string, expr fmt.Stringer, format string, args ...any) error {
	err := &ValidityError{
		Predicate: p,
		Clause:    clause,
		Reason:    fmt.Sprintf(format, args...),
	}
	if expr != nil {
		err.Expr = expr.String()
	}
	return err
}
