// Package polish is the public entry point of the module: it wires the
// scanner, recursive-descent parser, precedence fix-up, linearisation and
// exchange layers together behind the two operations spec.md §6 defines,
// parse and parse_variable.
package polish

import (
	"log/slog"

	"github.com/aledsdavies/polishc/internal/cache"
	"github.com/aledsdavies/polishc/internal/catalogue"
	"github.com/aledsdavies/polishc/internal/linearize"
	"github.com/aledsdavies/polishc/internal/parser"
	"github.com/aledsdavies/polishc/internal/synerr"
	"github.com/aledsdavies/polishc/prefix"
)

// SyntaxError is the single error type every parse failure takes the
// shape of (spec.md §7). Aliased from internal/synerr so internal/parser
// can raise it without importing this package back.
type SyntaxError = synerr.SyntaxError

// ErrorKind enumerates the four syntax-error kinds spec.md §7 defines.
type ErrorKind = synerr.Kind

// The four syntax-error kinds, re-exported for callers matching on
// (*SyntaxError).Kind or using errors.Is(err, polish.Sentinel(kind)).
const (
	ParsingFailed       = synerr.ParsingFailed
	InvalidStatement    = synerr.InvalidStatement
	UnmatchedBraces     = synerr.UnmatchedBraces
	InvalidVariableName = synerr.InvalidVariableName
)

// Sentinel returns a *SyntaxError carrying only kind, for use with
// errors.Is(err, polish.Sentinel(polish.UnmatchedBraces)).
func Sentinel(kind ErrorKind) *SyntaxError {
	return synerr.Sentinel(kind)
}

// config collects what the functional Options below configure. Built
// fresh for every call, never retained, so concurrent callers sharing a
// set of Options never share mutable state beyond the catalogue and cache
// they explicitly opt into sharing.
type config struct {
	catalogue      *catalogue.Catalogue
	logger         *slog.Logger
	knownVariables []string
	cache          *cache.Cache
}

// Option configures a Parse or ParseVariable call, in the same
// functional-options idiom internal/parser exposes.
type Option func(*config)

// WithCatalogue overrides the default operator catalogue.
func WithCatalogue(cat *catalogue.Catalogue) Option {
	return func(c *config) { c.catalogue = cat }
}

// WithDebugLog attaches a logger receiving grammar-level trace events.
func WithDebugLog(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithKnownVariables supplies extra fuzzy-suggestion candidates beyond
// the catalogue's own operator names.
func WithKnownVariables(names []string) Option {
	return func(c *config) { c.knownVariables = names }
}

// WithCache enables memoisation of Parse results, keyed on input text and
// catalogue identity, bounded to at most capacity entries
// (SPEC_FULL.md §4.11). Cached results are shared across calls that pass
// the same *cache.Cache-backed Option value; construct one Option with
// WithCache and reuse it across calls to actually benefit from caching.
func WithCache(capacity int) Option {
	c := cache.New(capacity)
	return func(cfg *config) { cfg.cache = c }
}

func newConfig(opts []Option) *config {
	cfg := &config{catalogue: catalogue.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) newParser() *parser.Parser {
	return parser.New(
		parser.WithCatalogue(c.catalogue),
		parser.WithDebugLog(c.logger),
		parser.WithKnownVariables(c.knownVariables),
	)
}

// Parse implements spec.md §6's parse(input): it runs the full
// scan/parse/fix-up/linearise pipeline and returns the resulting prefix
// stream, or a *SyntaxError describing why no statement could be matched.
func Parse(input string, opts ...Option) (prefix.Stream, error) {
	cfg := newConfig(opts)
	if cfg.cache == nil {
		return parseUncached(input, cfg)
	}

	key := cache.Key(input, cfg.catalogue.Fingerprint())
	if stream, err, ok := cfg.cache.Get(key); ok {
		return stream, err
	}
	stream, err := parseUncached(input, cfg)
	cfg.cache.Put(key, stream, err)
	return stream, err
}

func parseUncached(input string, cfg *config) (prefix.Stream, error) {
	root, err := cfg.newParser().Parse(input)
	if err != nil {
		return nil, err
	}
	return prefix.FromAST(linearize.Preorder(root)), nil
}

// ParseVariable implements spec.md §6's parse_variable(input): the entire
// input must be exactly one identifier that does not collide with a known
// operator name.
func ParseVariable(input string, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	return cfg.newParser().ParseVariable(input)
}
