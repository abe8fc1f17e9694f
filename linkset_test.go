package halgo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularCollection(t *testing.T) {
	link := NewLink("/people/y", false)
	c := NewSingularCollection(link)

	assert.Equal(t, Singular, c.Cardinality())
	assert.Equal(t, 1, c.Len())
	assert.Same(t, link, c.At(0))
}

func TestSingularCollectionRejectsNil(t *testing.T) {
	assert.Panics(t, func() { NewSingularCollection(nil) })
}

func TestPluralCollectionRejectsNilElements(t *testing.T) {
	assert.PanicsWithValue(t, "halgo: NewPluralCollection called with nil link at index 1", func() {
		NewPluralCollection([]*Link{NewLink("/a", false), nil})
	})
	assert.Panics(t, func() { NewPluralCollection([]*Link{nil}) })

	links := NewLinksDictionary().Add("a", NewLink("/a", false), nil)
	b, err := json.Marshal(links)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"href":"/a"}}`, string(b))
}

func TestPluralCollectionIsPluralWhateverItsLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		links := make([]*Link, n)
		for i := range links {
			links[i] = NewLink("/items", false)
		}

		c := NewPluralCollection(links)
		assert.Equal(t, Plural, c.Cardinality(), "length %d", n)
		assert.Equal(t, n, c.Len())

		b, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, byte('['), b[0], "length %d serialised as %s", n, b)

		again := &LinkCollection{}
		require.NoError(t, json.Unmarshal(b, again))
		assert.Equal(t, Plural, again.Cardinality())
		assert.Equal(t, n, again.Len())
	}
}

func TestPluralCollectionCopiesItsInput(t *testing.T) {
	links := []*Link{NewLink("/a", false), NewLink("/b", false)}
	c := NewPluralCollection(links)
	links[0] = NewLink("/changed", false)

	assert.Equal(t, "/a", c.At(0).RawHref())

	out := c.Links()
	out[1] = nil
	assert.NotNil(t, c.At(1))
}

var collectionRoundTripTests = []struct {
	name        string
	json        string
	cardinality Cardinality
	length      int
}{
	{"object", `{"href":"/people/y"}`, Singular, 1},
	{"array of one", `[{"href":"/people/y"}]`, Plural, 1},
	{"array of two", `[{"href":"/people/y"},{"href":"/people/z","name":"z"}]`, Plural, 2},
	{"empty array", `[]`, Plural, 0},
}

func TestCollectionRoundTripKeepsShape(t *testing.T) {
	for _, test := range collectionRoundTripTests {
		t.Run(test.name, func(t *testing.T) {
			c := &LinkCollection{}
			require.NoError(t, json.Unmarshal([]byte(test.json), c))
			assert.Equal(t, test.cardinality, c.Cardinality())
			assert.Equal(t, test.length, c.Len())

			b, err := json.Marshal(c)
			require.NoError(t, err)
			assert.JSONEq(t, test.json, string(b))
		})
	}
}

func TestCollectionRejectsOtherTokens(t *testing.T) {
	for _, in := range []string{`"/people/y"`, `42`, `true`, `null`, `[null]`, `[{"href":"/a"}, "b"]`} {
		c := &LinkCollection{}
		assert.Error(t, json.Unmarshal([]byte(in), c), in)
	}
}

func TestNilCollection(t *testing.T) {
	var c *LinkCollection

	assert.Equal(t, Plural, c.Cardinality())
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Links())
	assert.Empty(t, c.Links())
}

func TestCardinalityText(t *testing.T) {
	b, err := Singular.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "singular", string(b))

	var c Cardinality
	require.NoError(t, c.UnmarshalText([]byte("plural")))
	assert.Equal(t, Plural, c)

	assert.Error(t, c.UnmarshalText([]byte("many")))
	_, err = Cardinality(7).MarshalText()
	assert.Error(t, err)
}
