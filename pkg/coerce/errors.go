package coerce

import (
	"errors"
	"fmt"

	"github.com/kindling-dev/kindling/pkg/hint"
	"github.com/kindling-dev/kindling/pkg/literal"
)

// ErrUnknownConstructor reports a Constructor hint with no registered
// constructor function.
var ErrUnknownConstructor = errors.New("no constructor registered")

// SyntaxError reports a token that never parsed as literal syntax where a
// structurally matching literal was required.
type SyntaxError struct {
	Raw  string
	Want hint.Hint
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%q is not valid %s literal syntax", e.Raw, e.Want)
}

// MismatchError reports a literal whose shape does not match the required
// hint.
type MismatchError struct {
	Want hint.Hint
	Got  literal.Value
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("cannot use %s as %s", e.Got, e.Want)
}

// ArityError reports a tuple literal whose length differs from the declared
// element count.
type ArityError struct {
	Want int
	Got  int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("tuple requires exactly %d elements, got %d", e.Want, e.Got)
}

// FormatError reports text that does not satisfy the target's textual form,
// such as a non-decimal string for int or an unrecognized date layout.
type FormatError struct {
	Text string
	Want hint.Hint
}

func (e FormatError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s", e.Text, e.Want)
}

// UnsupportedError reports a statically impossible conversion, such as
// bytes to int.
type UnsupportedError struct {
	From literal.Value
	To   hint.Hint
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("conversion of %s to %s is not supported", e.From, e.To)
}

// ConstructorError reports a registered constructor rejecting its argument.
type ConstructorError struct {
	Name string
	Err  error
}

func (e ConstructorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e ConstructorError) Unwrap() error {
	return e.Err
}

// UnionError aggregates the per-member failures of an exhausted union.
type UnionError struct {
	Hint *hint.Union
	Errs []error
}

func (e *UnionError) Add(err error) {
	var sub *UnionError
	if errors.As(err, &sub) {
		e.Errs = append(e.Errs, sub.Unwrap()...)
	} else {
		e.Errs = append(e.Errs, err)
	}
}

func (e *UnionError) Error() string {
	return fmt.Sprintf("no member of %s matched: %v", e.Hint, errors.Join(e.Errs...))
}

func (e *UnionError) Unwrap() []error {
	return e.Errs
}

// DepthError reports literal nesting beyond the engine's configured limit.
type DepthError struct {
	Limit int
}

func (e DepthError) Error() string {
	return fmt.Sprintf("literal nesting exceeds depth limit %d", e.Limit)
}
