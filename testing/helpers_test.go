package testing

import (
	"errors"
	"testing"

	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/postgres"
)

func TestTestInstance(t *testing.T) {
	instance := TestInstance(t)
	if instance == nil {
		t.Fatal("Expected non-nil instance")
	}

	for _, name := range []string{"users", "posts", "orders"} {
		if _, err := instance.TryT(name); err != nil {
			t.Errorf("TryT(%q) failed: %v", name, err)
		}
	}
	if got := instance.C("users", "age").Type; got != stmtql.Integer {
		t.Errorf("users.age type = %s, want %s", got, stmtql.Integer)
	}
}

func TestAssertSQL_Match(t *testing.T) {
	AssertSQL(t, "SELECT id FROM users", "SELECT id FROM users")
}

func TestAssertParams_Match(t *testing.T) {
	AssertParams(t, []any{true, int64(10)}, []any{true, int64(10)})
}

func TestAssertParams_EmptyAndNil(t *testing.T) {
	AssertParams(t, nil, []any{})
}

func TestAssertRenders(t *testing.T) {
	users := TestInstance(t).T("users")
	st := stmtql.From(users).
		Select(users.C("username")).
		Filter(stmtql.Eq(users.C("active"), true))
	AssertRenders(t, st, postgres.New(), "SELECT username FROM users WHERE active = $1", true)
}

func TestAssertInvalid(t *testing.T) {
	users := TestInstance(t).T("users")
	st := stmtql.From(users).Filter(users.C("age"))
	AssertInvalid(t, st.Err(), stmtql.PredicateBooleanTyped)
}

func TestAssertNoError_Nil(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertErrorContains_Match(t *testing.T) {
	AssertErrorContains(t, errors.New("table 'x' not found"), "not found")
}

func TestAssertPanics_Panics(t *testing.T) {
	AssertPanics(t, func() {
		panic("boom")
	})
}
