package halgo

import "fmt"

// LinkToken is a view of one relation of a LinksDictionary: the relation
// name and the collection it refers to. Tokens are cheap to create and
// compare equal, with ==, when they share the name and the collection.
type LinkToken struct {
	rel   string
	links *LinkCollection
}

// NewLinkToken creates a view of links under rel.
func NewLinkToken(rel string, links *LinkCollection) LinkToken {
	return LinkToken{rel: rel, links: links}
}

func (t LinkToken) Rel() string { return t.rel }

func (t LinkToken) Cardinality() Cardinality { return t.links.Cardinality() }

// Single returns the only link of a Singular relation. A Plural relation
// fails with a CardinalityError naming the relation.
func (t LinkToken) Single() (*Link, error) {
	if t.Cardinality() != Singular {
		return nil, CardinalityError{Rel: t.rel, Cardinality: Plural}
	}
	return t.links.At(0), nil
}

// Many returns the links of a Plural relation, in order. The slice is a
// copy and is never nil. A Singular relation fails with a CardinalityError
// naming the relation.
func (t LinkToken) Many() ([]*Link, error) {
	if t.Cardinality() != Plural {
		return nil, CardinalityError{Rel: t.rel, Cardinality: Singular}
	}
	return t.links.Links(), nil
}

// Links returns every link of the relation whatever its cardinality.
func (t LinkToken) Links() []*Link {
	return t.links.Links()
}

// Named finds the link whose name property is name, whatever the
// relation's cardinality.
func (t LinkToken) Named(name string) (*Link, bool) {
	for i := 0; i < t.links.Len(); i++ {
		if l := t.links.At(i); l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

func (t LinkToken) String() string {
	return fmt.Sprintf("%s: %s", t.rel, t.Cardinality())
}
