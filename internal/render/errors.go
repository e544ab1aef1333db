package render

import "fmt"

// ConstructKind classifies the part of a statement a dialect rejected.
type ConstructKind string

const (
	KindOperator ConstructKind = "operator"
	KindClause   ConstructKind = "clause"
)

// UnsupportedFeatureError reports a construct the dialect cannot render.
type UnsupportedFeatureError struct {
	Dialect string
	Kind    ConstructKind
	Feature string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	msg := fmt.Sprintf("%s: %s %q is not supported", e.Dialect, e.Kind, e.Feature)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// NewUnsupportedFeatureError builds the error for feature, a construct of
// the given kind. An optional hint suggests a portable alternative.
func NewUnsupportedFeatureError(dialect string, kind ConstructKind, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Dialect: dialect, Kind: kind, Feature: feature}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}
