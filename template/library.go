package template

import (
	"errors"
	"fmt"
	"slices"
)

// Version identifies the catalog revision. Changing any template changes the
// output for every seed, so the version moves with it.
const Version = "1.0.0"

// ErrUnknownTemplateID is returned by ByID for IDs not in the library.
var ErrUnknownTemplateID = errors.New("template: unknown template id")

// Library is a validated, read-only set of templates.
//
// A Library is safe for concurrent use.
type Library struct {
	templates []*Template
	byID      map[string]*Template
}

// NewLibrary validates the templates and returns a library listing them in
// the given order.
func NewLibrary(templates []*Template) (*Library, error) {
	if len(templates) == 0 {
		return nil, errors.New("template: empty library")
	}
	lib := &Library{
		templates: slices.Clone(templates),
		byID:      make(map[string]*Template, len(templates)),
	}
	for _, t := range templates {
		if err := Validate(t); err != nil {
			return nil, err
		}
		if _, dup := lib.byID[t.ID]; dup {
			return nil, &ValidationError{Template: t.ID, Reason: "duplicate template id"}
		}
		lib.byID[t.ID] = t
	}
	return lib, nil
}

// List returns the templates in catalog order.
func (l *Library) List() []*Template {
	return slices.Clone(l.templates)
}

// Len returns the number of templates.
func (l *Library) Len() int {
	return len(l.templates)
}

// ByID returns the template with the given ID.
func (l *Library) ByID(id string) (*Template, error) {
	t, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplateID, id)
	}
	return t, nil
}

// WithTag returns, in catalog order, the templates carrying tag.
func (l *Library) WithTag(tag string) []*Template {
	return l.WithAnyTag(tag)
}

// WithAnyTag returns, in catalog order, the templates carrying at least one
// of the tags.
func (l *Library) WithAnyTag(tags ...string) []*Template {
	var out []*Template
	for _, t := range l.templates {
		if slices.ContainsFunc(tags, t.HasTag) {
			out = append(out, t)
		}
	}
	return out
}

// defaultLibrary is built once at package initialization.
var defaultLibrary = mustLibrary(catalog)

func mustLibrary(templates []*Template) *Library {
	lib, err := NewLibrary(templates)
	if err != nil {
		panic(err)
	}
	return lib
}

// Default returns the built-in library.
func Default() *Library {
	return defaultLibrary
}

// List returns the built-in templates in catalog order.
func List() []*Template {
	return defaultLibrary.List()
}

// ByID looks up a built-in template.
func ByID(id string) (*Template, error) {
	return defaultLibrary.ByID(id)
}
