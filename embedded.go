package halgo

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DecodeOptions control how an embedded resource is bound to a Go value.
type DecodeOptions struct {
	// DisallowUnknownFields fails the conversion when the embedded object
	// has members the target struct doesn't.
	DisallowUnknownFields bool

	// UseNumber decodes numbers into interface{} values as json.Number.
	UseNumber bool
}

// DefaultDecodeOptions are used when no options are passed.
var DefaultDecodeOptions = DecodeOptions{}

// EmbeddedDictionary is the "_embedded" section of a HAL resource:
// relations in document order, each holding the raw JSON of the embedded
// resource (or array of resources). Nothing is converted until asked for.
// A nil *EmbeddedDictionary behaves as an empty one.
type EmbeddedDictionary struct {
	entries *orderedmap.OrderedMap[string, json.RawMessage]
}

func NewEmbeddedDictionary() *EmbeddedDictionary {
	return &EmbeddedDictionary{entries: orderedmap.New[string, json.RawMessage]()}
}

func (d *EmbeddedDictionary) Len() int {
	if d == nil || d.entries == nil {
		return 0
	}
	return d.entries.Len()
}

// Keys returns the relation names in document order.
func (d *EmbeddedDictionary) Keys() []string {
	if d == nil {
		return []string{}
	}
	return keysOf(d.entries)
}

// Raw returns a copy of the JSON embedded under rel.
func (d *EmbeddedDictionary) Raw(rel string) (json.RawMessage, bool) {
	raw, ok := d.get(rel)
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), raw...), true
}

func (d *EmbeddedDictionary) get(rel string) (json.RawMessage, bool) {
	if d == nil || d.entries == nil {
		return nil, false
	}
	return d.entries.Get(rel)
}

func (d *EmbeddedDictionary) Contains(rel string) bool {
	_, ok := d.Raw(rel)
	return ok
}

// Unmarshal binds the resource embedded under rel to v, which must be a
// non-nil pointer. A missing relation is a LinkNotFoundError; any failure
// to bind, malformed JSON or a value of the wrong shape, is a
// ConversionError naming rel and the target type.
func (d *EmbeddedDictionary) Unmarshal(rel string, v interface{}, opts ...DecodeOptions) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Wrapf(ErrInvalidArgument, "cannot unmarshal embedded %q into %T", rel, v)
	}

	raw, ok := d.get(rel)
	if !ok {
		return LinkNotFoundError{rel: rel, embedded: true}
	}

	if err := bind(raw, v, decodeOptions(opts)); err != nil {
		return ConversionError{Rel: rel, Type: rv.Type().Elem(), Err: err}
	}
	return nil
}

// TryUnmarshal is Unmarshal reporting only success. v may be partially
// filled when false is returned.
func (d *EmbeddedDictionary) TryUnmarshal(rel string, v interface{}, opts ...DecodeOptions) bool {
	return d.Unmarshal(rel, v, opts...) == nil
}

// Embedded binds the resource embedded under rel to a new T.
//
//	author, err := halgo.Embedded[Author](book.Embedded, "author")
func Embedded[T any](d *EmbeddedDictionary, rel string, opts ...DecodeOptions) (T, error) {
	var v T
	if err := d.Unmarshal(rel, &v, opts...); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// TryEmbedded is Embedded reporting only success; on failure the zero T is
// returned.
func TryEmbedded[T any](d *EmbeddedDictionary, rel string, opts ...DecodeOptions) (T, bool) {
	v, err := Embedded[T](d, rel, opts...)
	return v, err == nil
}

// Set stores raw JSON under rel, replacing anything already there but
// keeping its position. raw isn't validated until it's converted.
func (d *EmbeddedDictionary) Set(rel string, raw json.RawMessage) {
	d.init().Set(rel, append(json.RawMessage(nil), raw...))
}

// SetValue marshals v and stores it under rel.
func (d *EmbeddedDictionary) SetValue(rel string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "embedding %q", rel)
	}
	d.init().Set(rel, raw)
	return nil
}

func (d *EmbeddedDictionary) Remove(rel string) bool {
	if d == nil || d.entries == nil {
		return false
	}
	_, removed := d.entries.Delete(rel)
	return removed
}

func (d *EmbeddedDictionary) init() *orderedmap.OrderedMap[string, json.RawMessage] {
	if d.entries == nil {
		d.entries = orderedmap.New[string, json.RawMessage]()
	}
	return d.entries
}

// MarshalJSON fails, naming the relation, if raw JSON stored with Set is
// malformed.
func (d *EmbeddedDictionary) MarshalJSON() ([]byte, error) {
	if d == nil || d.entries == nil {
		return []byte("{}"), nil
	}
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		if len(pair.Value) > 0 && !json.Valid(pair.Value) {
			return nil, errors.Errorf("relation %q: embedded resource is not valid JSON", pair.Key)
		}
	}
	return marshalMembers(d.entries)
}

func (d *EmbeddedDictionary) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	d.entries = members
	return nil
}

func decodeOptions(opts []DecodeOptions) DecodeOptions {
	if len(opts) == 0 {
		return DefaultDecodeOptions
	}
	return opts[0]
}

func bind(raw json.RawMessage, v interface{}, opts DecodeOptions) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if opts.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if opts.UseNumber {
		dec.UseNumber()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after embedded resource")
	}
	return nil
}
