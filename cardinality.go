package halgo

import "github.com/pkg/errors"

// Cardinality records whether a relation was a single link object or an
// array of link objects on the wire. It's a property of the JSON shape, not
// of the number of links: an array holding one link is still Plural.
//
// The zero value is Plural, which is what an empty collection is.
type Cardinality int

const (
	Plural Cardinality = iota
	Singular
)

func (c Cardinality) String() string {
	switch c {
	case Singular:
		return "singular"
	case Plural:
		return "plural"
	}
	return "unknown"
}

func (c Cardinality) MarshalText() ([]byte, error) {
	if c != Singular && c != Plural {
		return nil, errors.Errorf("invalid cardinality %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Cardinality) UnmarshalText(text []byte) error {
	switch string(text) {
	case "singular":
		*c = Singular
	case "plural":
		*c = Plural
	default:
		return errors.Errorf("invalid cardinality %q", text)
	}
	return nil
}
