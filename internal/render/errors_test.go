package render

import (
	"errors"
	"testing"
)

func TestUnsupportedFeatureError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UnsupportedFeatureError
		expected string
	}{
		{
			name:     "operator",
			err:      UnsupportedFeatureError{Dialect: "sqlite", Kind: KindOperator, Feature: "regular expression matching"},
			expected: `sqlite: operator "regular expression matching" is not supported`,
		},
		{
			name:     "operator with hint",
			err:      UnsupportedFeatureError{Dialect: "mysql", Kind: KindOperator, Feature: "|| concatenation", Hint: "use CONCAT()"},
			expected: `mysql: operator "|| concatenation" is not supported: use CONCAT()`,
		},
		{
			name:     "clause shape",
			err:      UnsupportedFeatureError{Dialect: "mssql", Kind: KindClause, Feature: "LIMIT/OFFSET without ORDER BY", Hint: "add an Order clause"},
			expected: `mssql: clause "LIMIT/OFFSET without ORDER BY" is not supported: add an Order clause`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewUnsupportedFeatureError(t *testing.T) {
	t.Run("without hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("sqlite", KindOperator, "ILIKE")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Dialect != "sqlite" || ufErr.Kind != KindOperator || ufErr.Feature != "ILIKE" || ufErr.Hint != "" {
			t.Errorf("got %+v", ufErr)
		}
	})

	t.Run("with hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("mssql", KindClause, "LIMIT/OFFSET without ORDER BY", "add an Order clause")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Kind != KindClause {
			t.Errorf("Kind = %q, want %q", ufErr.Kind, KindClause)
		}
		if ufErr.Hint != "add an Order clause" {
			t.Errorf("Hint = %q, want %q", ufErr.Hint, "add an Order clause")
		}
	})
}
