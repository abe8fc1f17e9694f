package halgo

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Registered relation names commonly found in HAL documents.
const (
	RelSelf       = "self"
	RelNext       = "next"
	RelPrev       = "prev"
	RelFirst      = "first"
	RelLast       = "last"
	RelCollection = "collection"
	RelItem       = "item"
	RelCuries     = "curies"
)

// Resource holds the HAL sections of a document. Embed it in your own
// types to pick up "_links" and "_embedded" alongside the other fields.
//
//	type Order struct {
//		halgo.Resource
//		Total    float64 `json:"total"`
//		Currency string  `json:"currency"`
//	}
type Resource struct {
	Links    *LinksDictionary    `json:"_links,omitempty"`
	Embedded *EmbeddedDictionary `json:"_embedded,omitempty"`
}

// Self is shorthand for r.Links.Self().
func (r Resource) Self() (*SelfLink, error) {
	return r.Links.Self()
}

// Parse reads the HAL sections of a JSON document.
func Parse(data []byte) (*Resource, error) {
	res := &Resource{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, errors.Wrap(err, "parsing HAL resource")
	}
	res.ensure()
	return res, nil
}

// Decode reads the next JSON document from r into v, usually a struct
// embedding Resource.
func Decode(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, "decoding HAL resource")
	}
	return nil
}

func (r *Resource) ensure() {
	if r.Links == nil {
		r.Links = NewLinksDictionary()
	}
	if r.Embedded == nil {
		r.Embedded = NewEmbeddedDictionary()
	}
}
