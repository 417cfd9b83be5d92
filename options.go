package glyphforge

import (
	"github.com/gogpu/glyphforge/geom"
	"github.com/gogpu/glyphforge/skeleton"
	"github.com/gogpu/glyphforge/style"
	"github.com/gogpu/glyphforge/template"
	"github.com/gogpu/glyphforge/validate"
)

// DefaultRetryBudget is the number of attempts a letter gets before the
// alphabet fails.
const DefaultRetryBudget = 8

// Expander turns a skeleton into a filled outline. The built-in stroke
// engine is used unless WithExpander replaces it.
type Expander interface {
	Expand(g *skeleton.Graph, v style.Vector) (geom.Outline, error)
}

// ExpanderFunc adapts a function to the Expander interface.
type ExpanderFunc func(g *skeleton.Graph, v style.Vector) (geom.Outline, error)

// Expand calls f.
func (f ExpanderFunc) Expand(g *skeleton.Graph, v style.Vector) (geom.Outline, error) {
	return f(g, v)
}

// Option configures a Generator.
//
// Example:
//
//	g := glyphforge.New(
//	    glyphforge.WithWorkers(4),
//	    glyphforge.WithRetryBudget(12),
//	)
type Option func(*options)

type options struct {
	workers     int
	retryBudget int
	expander    Expander
	cacheSize   int
	validation  bool
	validateOpt validate.Options
	library     *template.Library
}

func defaultOptions() options {
	return options{
		retryBudget: DefaultRetryBudget,
		library:     template.Default(),
	}
}

// WithWorkers sets how many letters are built concurrently.
// Zero or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRetryBudget sets the number of attempts per letter. Values below 1
// are raised to 1.
func WithRetryBudget(n int) Option {
	return func(o *options) {
		o.retryBudget = max(1, n)
	}
}

// WithExpander replaces the stroke expansion engine.
func WithExpander(e Expander) Option {
	return func(o *options) {
		o.expander = e
	}
}

// WithCacheSize keeps up to n finished alphabets keyed by seed and config.
// Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithValidation measures every glyph after generation and logs findings
// as warnings. The report is available from Alphabet.Report.
func WithValidation(opts validate.Options) Option {
	return func(o *options) {
		o.validation = true
		o.validateOpt = opts
	}
}

// WithLibrary replaces the built-in template library.
func WithLibrary(lib *template.Library) Option {
	return func(o *options) {
		if lib != nil {
			o.library = lib
		}
	}
}
