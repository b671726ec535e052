package parser

import (
	"log/slog"
	"time"

	"github.com/aledsdavies/polishc/internal/catalogue"
)

// Option configures a Parser, in the teacher's functional-options idiom
// (runtime/parser/options.go's ParserOpt).
type Option func(*Parser)

// WithCatalogue overrides the default operator catalogue, e.g. with one
// loaded via catalogue.LoadFile or served live by a catalogue.Watcher.
func WithCatalogue(cat *catalogue.Catalogue) Option {
	return func(p *Parser) { p.cat = cat }
}

// WithDebugLog attaches a logger that receives slog.Debug events at
// grammar entry/exit points. Purely diagnostic; nil (the default)
// disables tracing entirely with zero overhead.
func WithDebugLog(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithKnownVariables supplies extra candidate names fuzzy-suggestions can
// draw from (SPEC_FULL.md §4.9) beyond the catalogue's own operator names
// — e.g. variables already bound in the caller's evaluation environment.
func WithKnownVariables(names []string) Option {
	return func(p *Parser) { p.knownVariables = names }
}

// WithTelemetry enables collection of per-parse counters, retrievable
// afterwards via Parser.Telemetry.
func WithTelemetry() Option {
	return func(p *Parser) { p.telemetry = &Telemetry{} }
}

// Telemetry holds production-safe counters about the most recently
// completed parse, mirroring the teacher's ParseTelemetry shape
// (runtime/parser/options.go) scaled down to what this grammar needs.
type Telemetry struct {
	NodeCount int
	Duration  time.Duration
}
