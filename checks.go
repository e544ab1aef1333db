package stmtql

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/pipz"
	"github.com/zoobzio/stmtql/internal/capability"
	"github.com/zoobzio/stmtql/internal/types"
)

// clauseCheck is one expression on its way into a clause slot.
type clauseCheck struct {
	clause string
	expr   Expr
	src    types.Source
	allow  capability.Wrapper
}

var (
	wellFormedID     = pipz.NewIdentity("well-formed", "Rejects orderings and aliases outside the clauses that take them")
	selectableFromID = pipz.NewIdentity("selectable-from", "Resolves every column through the statement source")
	typedID          = pipz.NewIdentity("typed", "Infers a determinate value type")
	nonAggregateID   = pipz.NewIdentity("non-aggregate", "Rejects aggregate calls")
	booleanTypedID   = pipz.NewIdentity("boolean-typed", "Requires a boolean value")

	expressionChecksID = pipz.NewIdentity("expression-checks", "Checks for select and order by expressions")
	predicateChecksID  = pipz.NewIdentity("predicate-checks", "Checks for where predicates")
	groupingChecksID   = pipz.NewIdentity("grouping-checks", "Checks for group by expressions")
)

var (
	wellFormed = pipz.Effect(wellFormedID, func(_ context.Context, c clauseCheck) error {
		return capability.CheckWellFormed(c.clause, c.expr, c.allow)
	})
	selectableFrom = pipz.Effect(selectableFromID, func(_ context.Context, c clauseCheck) error {
		return capability.CheckSelectableFrom(c.clause, c.expr, c.src)
	})
	typed = pipz.Effect(typedID, func(_ context.Context, c clauseCheck) error {
		_, err := capability.CheckTyped(c.clause, c.expr)
		return err
	})
	nonAggregate = pipz.Effect(nonAggregateID, func(_ context.Context, c clauseCheck) error {
		return capability.CheckNonAggregate(c.clause, c.expr)
	})
	booleanTyped = pipz.Effect(booleanTypedID, func(_ context.Context, c clauseCheck) error {
		return capability.CheckBooleanTyped(c.clause, c.expr)
	})
)

// The chains run in order and stop at the first failure.
var (
	exprChecks      = pipz.NewSequence[clauseCheck](expressionChecksID, wellFormed, selectableFrom, typed)
	predicateChecks = pipz.NewSequence[clauseCheck](predicateChecksID, wellFormed, selectableFrom, typed, nonAggregate, booleanTyped)
	groupingChecks  = pipz.NewSequence[clauseCheck](groupingChecksID, wellFormed, selectableFrom, typed, nonAggregate)
)

// runChecks passes c through checks and returns the failing check's own
// error, unwrapped from the pipeline error.
func runChecks(checks *pipz.Sequence[clauseCheck], c clauseCheck) error {
	if c.expr == nil {
		return fmt.Errorf("%s: expression is nil: %w", c.clause, ErrInvalid)
	}
	_, err := checks.Process(context.Background(), c)
	if err == nil {
		return nil
	}
	var perr *pipz.Error[clauseCheck]
	if errors.As(err, &perr) && perr.Err != nil {
		return perr.Err
	}
	return err
}

func checkExpr(clause string, e Expr, src types.Source, allow capability.Wrapper) error {
	return runChecks(exprChecks, clauseCheck{clause: clause, expr: e, src: src, allow: allow})
}

func checkPredicate(clause string, pred Expr, src types.Source) error {
	return runChecks(predicateChecks, clauseCheck{clause: clause, expr: pred, src: src})
}

func checkGrouping(clause string, e Expr, src types.Source) error {
	return runChecks(groupingChecks, clauseCheck{clause: clause, expr: e, src: src})
}
