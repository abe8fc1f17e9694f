package halgo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// LinkCollection represents the links of one relation. Deserialisable from
// a single JSON hash, or a collection of links, and remembers which of the
// two it was so it serialises back to the same shape.
type LinkCollection struct {
	links       []*Link
	cardinality Cardinality
}

// NewSingularCollection holds exactly one link and serialises as a JSON
// object. It panics if link is nil.
func NewSingularCollection(link *Link) *LinkCollection {
	if link == nil {
		panic("halgo: NewSingularCollection called with nil link")
	}
	return &LinkCollection{links: []*Link{link}, cardinality: Singular}
}

// NewPluralCollection holds links in order and serialises as a JSON array,
// however many links there are. links may be empty, but it panics if any
// element is nil.
func NewPluralCollection(links []*Link) *LinkCollection {
	other := make([]*Link, len(links))
	for i, link := range links {
		if link == nil {
			panic(fmt.Sprintf("halgo: NewPluralCollection called with nil link at index %d", i))
		}
		other[i] = link
	}
	return &LinkCollection{links: other, cardinality: Plural}
}

// Cardinality is Plural for a nil collection.
func (c *LinkCollection) Cardinality() Cardinality {
	if c == nil {
		return Plural
	}
	return c.cardinality
}

func (c *LinkCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.links)
}

// At returns the i'th link.
func (c *LinkCollection) At(i int) *Link {
	return c.links[i]
}

// Links returns a copy of the links, in order.
func (c *LinkCollection) Links() []*Link {
	other := make([]*Link, c.Len())
	if c != nil {
		copy(other, c.links)
	}
	return other
}

func (c *LinkCollection) MarshalJSON() ([]byte, error) {
	if c.cardinality == Singular && len(c.links) == 1 {
		return json.Marshal(c.links[0])
	}

	if c.links == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.links)
}

// UnmarshalJSON dispatches on the JSON token: an object becomes a Singular
// collection of one and an array a Plural collection. Anything else,
// including null, is rejected.
func (c *LinkCollection) UnmarshalJSON(d []byte) error {
	d = bytes.TrimLeft(d, " \t\r\n")
	if len(d) == 0 {
		return errors.New("empty value can't be converted into a HAL link or a collection of HAL links")
	}

	switch d[0] {
	case '{':
		single := &Link{}
		if err := json.Unmarshal(d, single); err != nil {
			return err
		}
		c.links = []*Link{single}
		c.cardinality = Singular
		return nil

	case '[':
		multiple := []*Link{}
		if err := json.Unmarshal(d, &multiple); err != nil {
			return err
		}
		for i, link := range multiple {
			if link == nil {
				return errors.Errorf("link %d of the collection is null", i)
			}
		}
		c.links = multiple
		c.cardinality = Plural
		return nil
	}

	return errors.Errorf("the value %.32q can't be converted into a HAL link or a collection of HAL links", d)
}
