package stmtql

import (
	"errors"
	"testing"

	"github.com/zoobzio/pipz"
	"github.com/zoobzio/stmtql/internal/capability"
)

func TestRunChecks_FirstFailureWins(t *testing.T) {
	users := NewTable("users", Col("id", BigInt), Col("active", Boolean))
	orders := NewTable("orders", Col("total", Numeric))
	src := users.source()

	tests := []struct {
		name   string
		checks *pipz.Sequence[clauseCheck]
		expr   Expr
		want   Predicate
	}{
		// An unknown column that is also not boolean fails on visibility first.
		{"selectable before boolean", predicateChecks, orders.C("total"), PredicateSelectableFrom},
		{"typed before boolean", predicateChecks, Eq(users.C("id"), "x"), PredicateTyped},
		{"aggregate before boolean", predicateChecks, Count(), PredicateNonAggregate},
		{"boolean last", predicateChecks, users.C("id"), PredicateBooleanTyped},
		{"ordering outside order by", exprChecks, Desc(users.C("id")), PredicateWellFormed},
		{"aggregate in group by", groupingChecks, Max(users.C("id")), PredicateNonAggregate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runChecks(tt.checks, clauseCheck{clause: "where", expr: tt.expr, src: src})
			var verr *ValidityError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidityError, got %T: %v", err, err)
			}
			if verr.Predicate != tt.want {
				t.Errorf("Predicate = %s, want %s", verr.Predicate, tt.want)
			}
			var perr *pipz.Error[clauseCheck]
			if errors.As(err, &perr) {
				t.Errorf("pipeline error leaked to the caller: %v", err)
			}
		})
	}
}

func TestRunChecks_Pass(t *testing.T) {
	users := NewTable("users", Col("id", BigInt), Col("active", Boolean))
	src := users.source()

	if err := runChecks(predicateChecks, clauseCheck{clause: "where", expr: Eq(users.C("active"), true), src: src}); err != nil {
		t.Errorf("predicate checks error = %v", err)
	}
	if err := runChecks(exprChecks, clauseCheck{clause: "order by", expr: Desc(users.C("id")), src: src, allow: capability.AllowOrdering}); err != nil {
		t.Errorf("expression checks error = %v", err)
	}
	if err := runChecks(groupingChecks, clauseCheck{clause: "group by", expr: users.C("id"), src: src}); err != nil {
		t.Errorf("grouping checks error = %v", err)
	}
}

func TestRunChecks_NilExpr(t *testing.T) {
	err := runChecks(exprChecks, clauseCheck{clause: "select"})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}
