package halgo

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"
	"sync"

	"github.com/jtacoma/uritemplates"
	"github.com/pkg/errors"
)

// P is a set of parameters used to expand a templated link.
type P map[string]interface{}

// linkObject is the wire form of a HAL Link Object.
type linkObject struct {
	// The "href" property is REQUIRED.
	// Its value is either a URI [RFC3986] or a URI Template [RFC6570].
	Href string `json:"href"`

	// The "templated" property is OPTIONAL.
	// Its value SHOULD be considered false if it is undefined or any other
	// value than true, so it's kept raw and compared against the literal.
	Templated json.RawMessage `json:"templated,omitempty"`

	// The "type" property is OPTIONAL. A hint to indicate the media type
	// expected when dereferencing the target resource.
	Type string `json:"type,omitempty"`

	// The "deprecation" property is OPTIONAL. A URL that SHOULD provide
	// further information about the deprecation.
	Deprecation string `json:"deprecation,omitempty"`

	// The "name" property is OPTIONAL. A secondary key for selecting Link
	// Objects which share the same relation type.
	Name string `json:"name,omitempty"`

	// The "profile" property is OPTIONAL. A URI that hints about the
	// profile of the target resource.
	Profile string `json:"profile,omitempty"`

	// The "title" property is OPTIONAL. A human-readable label.
	Title string `json:"title,omitempty"`

	// The "hreflang" property is OPTIONAL. The language of the target
	// resource.
	HrefLang string `json:"hreflang,omitempty"`
}

var jsonTrue = []byte("true")

// linkAttributes are the properties shared by Link and SelfLink.
type linkAttributes struct {
	mediaType   string
	deprecation string
	name        string
	profile     string
	title       string
	hrefLang    string
}

// Type is the media type hint, or "".
func (a linkAttributes) Type() string { return a.mediaType }

// Deprecation is a URL describing why the link is deprecated. A non-empty
// value means the link will be removed at a future date.
func (a linkAttributes) Deprecation() string { return a.deprecation }

// Name is the secondary key distinguishing links with the same relation.
func (a linkAttributes) Name() string { return a.name }

func (a linkAttributes) Profile() string { return a.profile }

func (a linkAttributes) Title() string { return a.title }

func (a linkAttributes) HrefLang() string { return a.hrefLang }

func (a linkAttributes) object(href string) linkObject {
	return linkObject{
		Href:        href,
		Type:        a.mediaType,
		Deprecation: a.deprecation,
		Name:        a.name,
		Profile:     a.profile,
		Title:       a.title,
		HrefLang:    a.hrefLang,
	}
}

// LinkOption sets an optional property of a Link built with NewLink.
type LinkOption func(*linkAttributes)

func WithType(mediaType string) LinkOption {
	return func(a *linkAttributes) { a.mediaType = mediaType }
}

func WithDeprecation(deprecation string) LinkOption {
	return func(a *linkAttributes) { a.deprecation = deprecation }
}

func WithName(name string) LinkOption {
	return func(a *linkAttributes) { a.name = name }
}

func WithProfile(profile string) LinkOption {
	return func(a *linkAttributes) { a.profile = profile }
}

func WithTitle(title string) LinkOption {
	return func(a *linkAttributes) { a.title = title }
}

func WithHrefLang(hrefLang string) LinkOption {
	return func(a *linkAttributes) { a.hrefLang = hrefLang }
}

// A Link with a href/URL and the optional HAL properties. Links are
// immutable. The parsed URL or URI template is computed on first use and
// cached; copies of a Link share that cache.
//
// A templated link has no URL and an untemplated link has no template:
// which one is available is decided by Templated.
type Link struct {
	linkAttributes
	href      string
	templated bool
	cache     *linkCache
}

type linkCache struct {
	urlOnce sync.Once
	url     *url.URL
	urlErr  error

	templateOnce sync.Once
	template     *uritemplates.UriTemplate
	templateErr  error
}

// NewLink creates a link. href is kept raw and isn't validated until the
// link is resolved.
//
//	halgo.NewLink("/orders{?id}", true, halgo.WithTitle("Find an order"))
func NewLink(href string, templated bool, opts ...LinkOption) *Link {
	l := &Link{href: href, templated: templated, cache: &linkCache{}}
	for _, opt := range opts {
		opt(&l.linkAttributes)
	}
	return l
}

// RawHref is the href exactly as given, URL or URI template.
func (l Link) RawHref() string { return l.href }

func (l Link) Templated() bool { return l.templated }

func (l Link) String() string { return l.href }

// URL returns the link's href parsed as a (possibly relative) URL. It
// fails with ErrLinkTemplated for templated links; use Resolve instead.
func (l Link) URL() (*url.URL, error) {
	if l.templated {
		return nil, ErrLinkTemplated
	}

	parsed, err := l.parseURL()
	if err != nil {
		return nil, err
	}

	u := *parsed
	return &u, nil
}

func (l Link) parseURL() (*url.URL, error) {
	if l.cache == nil {
		return parseHref(l.href)
	}
	l.cache.urlOnce.Do(func() {
		l.cache.url, l.cache.urlErr = parseHref(l.href)
	})
	return l.cache.url, l.cache.urlErr
}

func parseHref(href string) (*url.URL, error) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid href %q", href)
	}
	return u, nil
}

// Template returns the href parsed as a URI template. It fails with
// ErrLinkNotTemplated for untemplated links.
func (l Link) Template() (*uritemplates.UriTemplate, error) {
	if !l.templated {
		return nil, ErrLinkNotTemplated
	}

	if l.cache == nil {
		return parseTemplate(l.href)
	}
	l.cache.templateOnce.Do(func() {
		l.cache.template, l.cache.templateErr = parseTemplate(l.href)
	})
	return l.cache.template, l.cache.templateErr
}

func parseTemplate(href string) (*uritemplates.UriTemplate, error) {
	template, err := uritemplates.Parse(href)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URI template %q", href)
	}
	return template, nil
}

// Resolve returns the address the link points at. An untemplated link
// returns its URL and ignores params; a templated link is expanded with
// params first. The result may be relative.
//
// Resolving a link with a deprecation property logs a warning on Logger.
func (l Link) Resolve(params P) (*url.URL, error) {
	// uritemplates only recognises the unnamed map type
	values := make(map[string]interface{}, len(params))
	for k, v := range params {
		values[k] = v
	}
	return l.resolve(values)
}

// ResolveWith is Resolve taking the template variables from a struct, or a
// pointer to one. Variables are named after the exported fields, or their
// `uri:"name"` tags:
//
//	type search struct {
//		Query string `uri:"q"`
//	}
//	u, err := link.ResolveWith(search{Query: "zen"})
//
// A P or map[string]interface{} is accepted too and behaves as Resolve.
func (l Link) ResolveWith(params interface{}) (*url.URL, error) {
	switch p := params.(type) {
	case nil:
		return l.Resolve(nil)
	case P:
		return l.Resolve(p)
	case map[string]interface{}:
		return l.Resolve(P(p))
	}

	v := reflect.Indirect(reflect.ValueOf(params))
	if v.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrInvalidArgument, "cannot expand %q with %T", l.href, params)
	}
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			return nil, errors.Wrapf(ErrInvalidArgument, "cannot expand %q with %T: field %s is unexported", l.href, params, v.Type().Field(i).Name)
		}
	}
	return l.resolve(v.Interface())
}

// ResolveParam is Resolve with a single parameter.
func (l Link) ResolveParam(name string, value interface{}) (*url.URL, error) {
	return l.Resolve(P{name: value})
}

func (l Link) resolve(values interface{}) (*url.URL, error) {
	warnDeprecated(l)

	if !l.templated {
		return l.URL()
	}

	template, err := l.Template()
	if err != nil {
		return nil, err
	}

	expanded, err := template.Expand(values)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %q", l.href)
	}

	u, err := url.Parse(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "expanded %q to invalid URL %q", l.href, expanded)
	}
	return u, nil
}

// ToSelfLink converts an untemplated link to a SelfLink. Self links can
// never be templates, so a templated link fails with ErrLinkTemplated.
func (l Link) ToSelfLink() (*SelfLink, error) {
	u, err := l.URL()
	if err != nil {
		return nil, err
	}

	return &SelfLink{linkAttributes: l.linkAttributes, url: u}, nil
}

// MarshalJSON has a value receiver so links held by value, such as struct
// fields of type Link, serialise too.
func (l Link) MarshalJSON() ([]byte, error) {
	obj := l.object(l.href)
	if l.templated {
		obj.Templated = jsonTrue
	}
	return json.Marshal(obj)
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var obj linkObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*l = Link{
		linkAttributes: linkAttributes{
			mediaType:   obj.Type,
			deprecation: obj.Deprecation,
			name:        obj.Name,
			profile:     obj.Profile,
			title:       obj.Title,
			hrefLang:    obj.HrefLang,
		},
		href:      obj.Href,
		templated: bytes.Equal(bytes.TrimSpace(obj.Templated), jsonTrue),
		cache:     &linkCache{},
	}
	return nil
}

// SelfLink is the link identifying a resource's own address. It is never
// templated, so its URL is always available.
type SelfLink struct {
	linkAttributes
	url *url.URL
}

// URL returns a copy of the self link's address.
func (s SelfLink) URL() *url.URL {
	if s.url == nil {
		return &url.URL{}
	}
	u := *s.url
	return &u
}

func (s SelfLink) Templated() bool { return false }

func (s SelfLink) String() string { return s.URL().String() }

func (s SelfLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.object(s.String()))
}
