package halgo

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrLinkTemplated is returned when a concrete URL is requested from a
	// templated link.
	ErrLinkTemplated = errors.New("link is templated and cannot be used as a URL")

	// ErrLinkNotTemplated is returned when a URI template is requested from
	// a link that isn't templated.
	ErrLinkNotTemplated = errors.New("link is not templated and cannot be used as a URI template")

	// ErrCardinality matches any CardinalityError.
	ErrCardinality = errors.New("unexpected link cardinality")

	// ErrInvalidSelf matches any SelfLinkError.
	ErrInvalidSelf = errors.New("self relation missing or invalid")

	// ErrInvalidArgument matches input validation failures such as a
	// relation URI which isn't absolute.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConversion matches any ConversionError.
	ErrConversion = errors.New("cannot convert embedded resource")
)

type LinkNotFoundError struct {
	rel string

	// embedded is set when the relation was looked up in "_embedded".
	embedded bool
}

func (err LinkNotFoundError) Error() string {
	if err.embedded {
		return fmt.Sprintf("Resource didn't contain embedded resource with relation: %s", err.rel)
	}
	return fmt.Sprintf("Resource didn't contain link with relation: %s", err.rel)
}

// Rel is the relation which was looked up.
func (err LinkNotFoundError) Rel() string {
	return err.rel
}

// CardinalityError is returned when a relation exists but has the wrong
// shape for the accessor used: an array where a single object was
// expected, or the other way around.
type CardinalityError struct {
	Rel string

	// Cardinality is what the relation actually holds.
	Cardinality Cardinality
}

func (err CardinalityError) Error() string {
	if err.Cardinality == Plural {
		return fmt.Sprintf("unexpected array for relation %q, expected a single link", err.Rel)
	}
	return fmt.Sprintf("unexpected object for relation %q, expected an array of links", err.Rel)
}

func (err CardinalityError) Is(target error) bool {
	return target == ErrCardinality
}

// SelfLinkError is returned by LinksDictionary.Self when the self relation
// is absent, plural or templated. Err holds the underlying reason.
type SelfLinkError struct {
	Err error
}

func (err SelfLinkError) Error() string {
	switch {
	case errors.Is(err.Err, ErrLinkTemplated):
		return fmt.Sprintf("relation %q must not be templated", RelSelf)
	case errors.Is(err.Err, ErrCardinality):
		return fmt.Sprintf("relation %q must be a single link", RelSelf)
	}
	return fmt.Sprintf("relation %q is missing or invalid: %v", RelSelf, err.Err)
}

func (err SelfLinkError) Is(target error) bool {
	return target == ErrInvalidSelf
}

func (err SelfLinkError) Unwrap() error {
	return err.Err
}

// ConversionError is returned when an embedded resource can't be bound to
// the requested type. Malformed JSON and shape mismatches both end up here;
// Err is the error returned by the codec.
type ConversionError struct {
	Rel  string
	Type reflect.Type
	Err  error
}

func (err ConversionError) Error() string {
	return fmt.Sprintf("cannot convert embedded %q to %v: %v", err.Rel, err.Type, err.Err)
}

func (err ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func (err ConversionError) Unwrap() error {
	return err.Err
}

// InvalidUrlError is returned when a relation given as a URL isn't an
// absolute URI.
type InvalidUrlError struct {
	url string
}

func (err InvalidUrlError) Error() string {
	return fmt.Sprintf("Relation must be an absolute URI: %q", err.url)
}

func (err InvalidUrlError) Is(target error) bool {
	return target == ErrInvalidArgument
}
