// Package parser implements the recursive-descent grammar engine of
// spec.md §4.4–§4.6: mutually recursive statement/operation/block/operand
// productions with backtracking by cursor snapshot-and-restore, and the
// precedence fix-up rotation of §4.5 applied at every operator attachment.
package parser

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aledsdavies/polishc/internal/ast"
	"github.com/aledsdavies/polishc/internal/catalogue"
	"github.com/aledsdavies/polishc/internal/scanner"
	"github.com/aledsdavies/polishc/internal/synerr"
)

// Parser holds all per-call state: catalogue reference, cursor, and node
// arena. Nothing here is process-wide (spec.md §5) — New creates a
// reusable value, but each Parse/ParseVariable call replaces the scanner
// and arena wholesale, so two calls on the same *Parser never share nodes.
type Parser struct {
	cat            *catalogue.Catalogue
	knownVariables []string
	logger         *slog.Logger
	telemetry      *Telemetry

	scanner *scanner.Scanner
	arena   *ast.Arena
	input   string
}

// New builds a Parser configured by opts, defaulting to catalogue.Default().
func New(opts ...Option) *Parser {
	p := &Parser{cat: catalogue.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Telemetry returns the counters from the most recently completed parse,
// or nil if WithTelemetry was never set.
func (p *Parser) Telemetry() *Telemetry {
	return p.telemetry
}

// statementFlags mirrors spec.md §4.4's flags ⊆ {full, not_operation}.
type statementFlags struct {
	full         bool
	notOperation bool
}

// Parse implements the core `parse(input) → prefix_stream` entry point of
// spec.md §6, up through tree construction: it returns the parsed root
// node (already precedence-fixed and grouped), or the *synerr.SyntaxError
// spec.md §7 requires. Linearisation to a flat stream is the caller's
// job (internal/linearize), kept separate so this package never needs to
// know about the output stream's exchange formats.
func (p *Parser) Parse(input string) (*ast.Node, error) {
	start := time.Now()
	p.input = input
	p.scanner = scanner.New(input, p.cat)
	p.arena = ast.New(len(input))
	defer p.arena.Release()

	p.trace("parse", "enter", "input", input)
	node, err := p.parseStatement(statementFlags{full: true})
	p.trace("parse", "exit", "ok", err == nil && node != nil)

	if p.telemetry != nil {
		p.telemetry.NodeCount = p.arena.Len()
		p.telemetry.Duration = time.Since(start)
	}

	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, p.errorAt(p.scanner.Offset(), synerr.ParsingFailed,
			fmt.Sprintf("could not parse %q as one complete statement", p.scanner.Remainder()),
			p.scanner.PeekToken())
	}
	return node, nil
}

// ParseVariable implements spec.md §6's restricted entry point: the whole
// input must be exactly one identifier that is not a known operator name.
func (p *Parser) ParseVariable(input string) (string, error) {
	p.input = input
	p.scanner = scanner.New(input, p.cat)
	p.arena = ast.New(len(input))
	defer p.arena.Release()

	res, ok := p.scanner.MatchVariableName()
	if !ok || !p.scanner.AtEnd() {
		return "", p.errorAt(0, synerr.InvalidVariableName,
			"input is not a single valid variable name", strings.TrimSpace(input))
	}
	return res.Name, nil
}

// parseStatement implements spec.md §4.4's parse_statement(flags):
// operation, then block, then operand, first success wins; full
// additionally requires the cursor to reach end-of-input.
func (p *Parser) parseStatement(flags statementFlags) (*ast.Node, error) {
	entry := p.scanner.Mark()
	accept := func(node *ast.Node) (*ast.Node, bool) {
		if node == nil {
			return nil, false
		}
		if flags.full && !p.scanner.AtEnd() {
			return nil, false
		}
		return node, true
	}

	if !flags.notOperation {
		node, err := p.parseOperation()
		if err != nil {
			return nil, err
		}
		if result, ok := accept(node); ok {
			return result, nil
		}
		p.scanner.Reset(entry)
	}

	node, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if result, ok := accept(node); ok {
		return result, nil
	}
	p.scanner.Reset(entry)

	if result, ok := accept(p.parseOperand()); ok {
		return result, nil
	}
	p.scanner.Reset(entry)
	return nil, nil
}

// parseOperation implements spec.md §4.4's parse_operation: try the
// prefix production, then the infix production, restoring the cursor to
// entry between attempts.
func (p *Parser) parseOperation() (*ast.Node, error) {
	entry := p.scanner.Mark()

	node, err, matched := p.tryPrefixOperation()
	if err != nil {
		return nil, err
	}
	if matched {
		return node, nil
	}
	p.scanner.Reset(entry)

	node, err, matched = p.tryInfixOperation()
	if err != nil {
		return nil, err
	}
	if matched {
		return node, nil
	}
	p.scanner.Reset(entry)
	return nil, nil
}

// tryPrefixOperation implements the "(prefix_op statement)" production.
func (p *Parser) tryPrefixOperation() (*ast.Node, error, bool) {
	opRes, ok := p.scanner.MatchOperator(catalogue.Prefix)
	if !ok {
		return nil, nil, false
	}
	rhs, err := p.parseStatement(statementFlags{})
	if err != nil {
		return nil, err, false
	}
	if rhs == nil {
		return nil, nil, false
	}
	op := p.arena.NewOperator(ast.OperatorItem(opRes.Info.ToASTOperator(), opRes.Offset), nil, rhs, false)
	return fixup(op, true), nil, true
}

// tryInfixOperation implements the
// "(statement[¬operation] infix_op statement)" production. The
// not_operation guard on lhs breaks left-recursion; left-associativity at
// equal priority comes from fixup, not from left recursion (spec.md §4.4).
func (p *Parser) tryInfixOperation() (*ast.Node, error, bool) {
	lhs, err := p.parseStatement(statementFlags{notOperation: true})
	if err != nil {
		return nil, err, false
	}
	if lhs == nil {
		return nil, nil, false
	}
	opRes, ok := p.scanner.MatchOperator(catalogue.Infix)
	if !ok {
		return nil, nil, false
	}
	rhs, err := p.parseStatement(statementFlags{})
	if err != nil {
		return nil, err, false
	}
	if rhs == nil {
		return nil, nil, false
	}
	op := p.arena.NewOperator(ast.OperatorItem(opRes.Info.ToASTOperator(), opRes.Offset), lhs, rhs, false)
	return fixup(op, false), nil, true
}

// parseBlock implements spec.md §4.6: '(' statement ')'. Once the opening
// brace is consumed, a missing statement or closing brace escalates
// immediately as a hard error rather than backtracking.
func (p *Parser) parseBlock() (*ast.Node, error) {
	entry := p.scanner.Mark()
	if !p.scanner.MatchOpeningBrace() {
		return nil, nil
	}
	stmt, err := p.parseStatement(statementFlags{})
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, p.errorAt(p.scanner.OffsetAt(entry), synerr.InvalidStatement,
			"expected a statement after '('", p.scanner.PeekToken())
	}
	if !p.scanner.MatchClosingBrace() {
		return nil, p.errorAt(p.scanner.Offset(), synerr.UnmatchedBraces,
			"expected a closing ')'", "")
	}
	stmt.Grouped = true
	return stmt, nil
}

// parseOperand implements spec.md §4.4's operand = number | variable.
// Operand failures are always soft (no hard error kind is defined for a
// bare operand miss); the caller falls through to the next alternative.
func (p *Parser) parseOperand() *ast.Node {
	if res, ok := p.scanner.MatchNumber(); ok {
		return p.arena.NewLeaf(ast.NumberItem(res.Lexeme, res.Offset))
	}
	if res, ok := p.scanner.MatchVariableName(); ok {
		return p.arena.NewLeaf(ast.VariableItem(res.Name, res.Offset))
	}
	return nil
}

// errorAt builds a *synerr.SyntaxError carrying a fuzzy-suggestion when
// got is non-empty (SPEC_FULL.md §4.9).
func (p *Parser) errorAt(offset int, kind synerr.Kind, message, got string) error {
	var suggestion string
	if got != "" {
		candidates := append(append([]string{}, p.cat.Names()...), p.knownVariables...)
		suggestion = catalogue.SuggestAmong(got, candidates)
	}
	return &synerr.SyntaxError{
		Kind:       kind,
		Offset:     offset,
		Message:    message,
		Suggestion: suggestion,
		Input:      p.input,
	}
}

func (p *Parser) trace(scope, event string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(event, append([]any{"scope", scope}, args...)...)
}
