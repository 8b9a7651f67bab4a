// Package odatafilter parses OData v4 $filter boolean expressions into fully
// typed expression trees. Every identifier, property path, and function call
// is resolved eagerly against an injected SchemaResolver while the tree is
// built, so a successful parse always yields a completely typed tree and a
// failed parse yields exactly one typed error and no tree.
package odatafilter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nlstn/go-odata-filter/edm"
	"github.com/nlstn/go-odata-filter/internal/observability"
)

// FilterQueryOption is the root artifact of a parse: the element type of the
// filtered collection, the range variable bound for the query scope, and the
// boolean-typed root expression. It is immutable after ParseFilter returns
// and independently owned by its caller.
type FilterQueryOption struct {
	ItemType      edm.TypeReference
	RangeVariable *RangeVariable
	Expression    ExpressionNode
}

// ParseFilter parses a filter expression against the resolver, binding the
// named range variable as the current item. Parsing is all-or-nothing: any
// lexer, grammar, resolver, or type failure aborts with a typed error and no
// partial tree.
func ParseFilter(filterStr, rangeVar string, resolver SchemaResolver) (*FilterQueryOption, error) {
	filterStr = strings.TrimSpace(filterStr)

	rv, err := resolver.ResolveRangeVariable(rangeVar)
	if err != nil {
		return nil, err
	}

	lexer := NewLexer(filterStr)
	tokens, err := lexer.TokenizeAll()
	if err != nil {
		return nil, err
	}

	p := newParser(tokens, resolver, rv)
	expr, err := p.parse()
	if err != nil {
		return nil, err
	}

	if expr.TypeRef().Family() != edm.FamilyBoolean {
		return nil, &TypeMismatchError{
			Operator: "$filter",
			Left:     expr.TypeRef(),
			Right:    boolType,
		}
	}

	return &FilterQueryOption{
		ItemType:      rv.Type,
		RangeVariable: rv,
		Expression:    expr,
	}, nil
}

// Parser is a reusable parsing service wrapping ParseFilter with structured
// logging, OpenTelemetry tracing and metrics, and an optional parse cache.
// Hosts that need none of these can call ParseFilter directly.
type Parser struct {
	resolver SchemaResolver
	logger   *slog.Logger
	obs      *observability.Config
	cache    *ParseCache
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the structured logger used for parse failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithObservability enables tracing and metrics using the given options.
func WithObservability(opts ...observability.Option) Option {
	return func(p *Parser) {
		p.obs = observability.NewConfig(opts...)
	}
}

// WithCache enables a bounded cache of parsed trees keyed by expression text
// and range variable. Cached trees are shared between callers; they are
// immutable, so this is safe.
func WithCache(capacity int) Option {
	return func(p *Parser) {
		p.cache = NewParseCache(capacity)
	}
}

// NewParser creates a parsing service over the given resolver.
func NewParser(resolver SchemaResolver, opts ...Option) *Parser {
	p := &Parser{
		resolver: resolver,
		logger:   slog.Default(),
		obs:      observability.NewConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the expression, consulting the cache first when one is
// configured. The context carries the active trace span, if any; parsing
// itself is synchronous and CPU-bound.
func (p *Parser) Parse(ctx context.Context, filterStr, rangeVar string) (*FilterQueryOption, error) {
	ctx, span := p.obs.Tracer().StartParse(ctx, len(filterStr), rangeVar)
	defer span.End()

	if p.cache != nil {
		if fq, ok := p.cache.get(filterStr, rangeVar); ok {
			p.obs.Metrics().RecordCacheHit(ctx)
			return fq, nil
		}
	}

	start := time.Now()
	fq, err := ParseFilter(filterStr, rangeVar, p.resolver)
	p.obs.Metrics().RecordParse(ctx, time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		p.logger.Debug("filter parse failed",
			slog.String("filter", filterStr),
			slog.String("rangeVariable", rangeVar),
			slog.Any("error", err))
		return nil, err
	}

	if p.cache != nil {
		p.cache.put(filterStr, rangeVar, fq)
	}

	return fq, nil
}
