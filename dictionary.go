package halgo

import (
	"encoding/json"
	"iter"
	"net/url"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LinksDictionary is the "_links" section of a HAL resource: relations in
// document order, each holding a LinkCollection. Lookups return LinkTokens
// built on demand around the stored collections.
//
// Relations can be looked up by name, or by an absolute URI with the URL
// variants of each method. A nil *LinksDictionary behaves as an empty one.
type LinksDictionary struct {
	entries *orderedmap.OrderedMap[string, *LinkCollection]
}

func NewLinksDictionary() *LinksDictionary {
	return &LinksDictionary{entries: orderedmap.New[string, *LinkCollection]()}
}

func (d *LinksDictionary) Len() int {
	if d == nil || d.entries == nil {
		return 0
	}
	return d.entries.Len()
}

// Keys returns the relation names in document order.
func (d *LinksDictionary) Keys() []string {
	if d == nil {
		return []string{}
	}
	return keysOf(d.entries)
}

// Tokens returns a token for every relation, in document order.
func (d *LinksDictionary) Tokens() []LinkToken {
	tokens := make([]LinkToken, 0, d.Len())
	for _, token := range d.All() {
		tokens = append(tokens, token)
	}
	return tokens
}

// All iterates over the relations in document order.
func (d *LinksDictionary) All() iter.Seq2[string, LinkToken] {
	return func(yield func(string, LinkToken) bool) {
		if d == nil || d.entries == nil {
			return
		}
		for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, NewLinkToken(pair.Key, pair.Value)) {
				return
			}
		}
	}
}

// Lookup returns the token for rel and whether it exists.
func (d *LinksDictionary) Lookup(rel string) (LinkToken, bool) {
	if d == nil || d.entries == nil {
		return LinkToken{}, false
	}
	links, ok := d.entries.Get(rel)
	if !ok {
		return LinkToken{}, false
	}
	return NewLinkToken(rel, links), true
}

func (d *LinksDictionary) Contains(rel string) bool {
	_, ok := d.Lookup(rel)
	return ok
}

func (d *LinksDictionary) ContainsURL(rel *url.URL) (bool, error) {
	key, err := absoluteRel(rel)
	if err != nil {
		return false, err
	}
	return d.Contains(key), nil
}

// Get returns the token for rel, or a LinkNotFoundError.
func (d *LinksDictionary) Get(rel string) (LinkToken, error) {
	token, ok := d.Lookup(rel)
	if !ok {
		return LinkToken{}, LinkNotFoundError{rel: rel}
	}
	return token, nil
}

// GetURL is Get for a relation identified by an absolute URI.
func (d *LinksDictionary) GetURL(rel *url.URL) (LinkToken, error) {
	key, err := absoluteRel(rel)
	if err != nil {
		return LinkToken{}, err
	}
	return d.Get(key)
}

func (d *LinksDictionary) Cardinality(rel string) (Cardinality, error) {
	token, err := d.Get(rel)
	if err != nil {
		return Plural, err
	}
	return token.Cardinality(), nil
}

func (d *LinksDictionary) CardinalityURL(rel *url.URL) (Cardinality, error) {
	key, err := absoluteRel(rel)
	if err != nil {
		return Plural, err
	}
	return d.Cardinality(key)
}

// Single returns the link of a Singular relation. It fails with a
// LinkNotFoundError if rel is absent, or a CardinalityError if rel holds an
// array.
func (d *LinksDictionary) Single(rel string) (*Link, error) {
	token, err := d.Get(rel)
	if err != nil {
		return nil, err
	}
	return token.Single()
}

func (d *LinksDictionary) SingleURL(rel *url.URL) (*Link, error) {
	key, err := absoluteRel(rel)
	if err != nil {
		return nil, err
	}
	return d.Single(key)
}

// Many returns the links of a Plural relation. It fails with a
// LinkNotFoundError if rel is absent, or a CardinalityError if rel holds a
// single object.
func (d *LinksDictionary) Many(rel string) ([]*Link, error) {
	token, err := d.Get(rel)
	if err != nil {
		return nil, err
	}
	return token.Many()
}

func (d *LinksDictionary) ManyURL(rel *url.URL) ([]*Link, error) {
	key, err := absoluteRel(rel)
	if err != nil {
		return nil, err
	}
	return d.Many(key)
}

// TrySingle is Single without the error: a missing relation and a Plural
// one both report false.
func (d *LinksDictionary) TrySingle(rel string) (*Link, bool) {
	token, ok := d.Lookup(rel)
	if !ok || token.Cardinality() != Singular {
		return nil, false
	}
	link, _ := token.Single()
	return link, true
}

// TrySingleURL is TrySingle for a relation identified by an absolute URI.
// It panics if rel is nil or not absolute.
func (d *LinksDictionary) TrySingleURL(rel *url.URL) (*Link, bool) {
	return d.TrySingle(mustAbsoluteRel(rel))
}

// TryMany is Many without the error: a missing relation and a Singular one
// both report false.
func (d *LinksDictionary) TryMany(rel string) ([]*Link, bool) {
	token, ok := d.Lookup(rel)
	if !ok || token.Cardinality() != Plural {
		return nil, false
	}
	links, _ := token.Many()
	return links, true
}

// TryManyURL is TryMany for a relation identified by an absolute URI. It
// panics if rel is nil or not absolute.
func (d *LinksDictionary) TryManyURL(rel *url.URL) ([]*Link, bool) {
	return d.TryMany(mustAbsoluteRel(rel))
}

// Self returns the resource's self link. Any problem with it, whether
// missing, plural or templated, is reported as a SelfLinkError.
func (d *LinksDictionary) Self() (*SelfLink, error) {
	link, err := d.Single(RelSelf)
	if err != nil {
		return nil, SelfLinkError{Err: err}
	}

	self, err := link.ToSelfLink()
	if err != nil {
		return nil, SelfLinkError{Err: err}
	}
	return self, nil
}

// Add appends links to rel. Adding one link to a new relation makes it
// Singular; adding several, or adding to an existing relation, makes it
// Plural.
//
//	links := halgo.NewLinksDictionary().
//		Add(halgo.RelSelf, halgo.NewLink("/orders", false)).
//		Add("ea:admin", halgo.NewLink("/admins/2", false), halgo.NewLink("/admins/5", false))
func (d *LinksDictionary) Add(rel string, links ...*Link) *LinksDictionary {
	added := make([]*Link, 0, len(links))
	for _, link := range links {
		if link != nil {
			added = append(added, link)
		}
	}

	entries := d.init()
	existing, exists := entries.Get(rel)
	switch {
	case exists:
		entries.Set(rel, NewPluralCollection(append(existing.Links(), added...)))
	case len(added) == 1:
		entries.Set(rel, NewSingularCollection(added[0]))
	default:
		entries.Set(rel, NewPluralCollection(added))
	}
	return d
}

// Set stores links under rel, replacing anything already there but keeping
// its position. A nil collection is stored as an empty Plural one.
func (d *LinksDictionary) Set(rel string, links *LinkCollection) {
	if links == nil {
		links = NewPluralCollection(nil)
	}
	d.init().Set(rel, links)
}

func (d *LinksDictionary) Remove(rel string) bool {
	if d == nil || d.entries == nil {
		return false
	}
	_, removed := d.entries.Delete(rel)
	return removed
}

func (d *LinksDictionary) init() *orderedmap.OrderedMap[string, *LinkCollection] {
	if d.entries == nil {
		d.entries = orderedmap.New[string, *LinkCollection]()
	}
	return d.entries
}

func (d *LinksDictionary) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return marshalMembers(d.entries)
}

func (d *LinksDictionary) UnmarshalJSON(data []byte) error {
	members, err := decodeMembers(data)
	if err != nil {
		return err
	}

	entries := orderedmap.New[string, *LinkCollection]()
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		links := &LinkCollection{}
		if err := json.Unmarshal(pair.Value, links); err != nil {
			return errors.Wrapf(err, "relation %q", pair.Key)
		}
		entries.Set(pair.Key, links)
	}

	d.entries = entries
	return nil
}

func absoluteRel(rel *url.URL) (string, error) {
	if rel == nil {
		return "", errors.Wrap(ErrInvalidArgument, "relation URL is nil")
	}
	if !rel.IsAbs() {
		return "", InvalidUrlError{rel.String()}
	}
	return rel.String(), nil
}

func mustAbsoluteRel(rel *url.URL) string {
	key, err := absoluteRel(rel)
	if err != nil {
		panic("halgo: " + err.Error())
	}
	return key
}
