package report

import (
	"context"
	"fmt"

	"github.com/akulij/zkparser/internal/logger"
	"github.com/akulij/zkparser/internal/network"
)

// Fetcher returns the raw report page of a wallet on one network
type Fetcher interface {
	Fetch(ctx context.Context, wallet, accessCode string, n network.Network) (string, error)
}

// Parser fetches report pages and parses them.
//
// Every method returns a nil report with a nil error when the page does not
// hold a complete report. Errors are reserved for fetch failures.
type Parser struct {
	fetcher Fetcher
	log     *logger.Logger
	metrics *logger.Metrics
}

// NewParser creates a Parser. A nil log or metrics selects the package defaults.
func NewParser(fetcher Fetcher, log *logger.Logger, metrics *logger.Metrics) *Parser {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = logger.DefaultMetrics()
	}
	return &Parser{fetcher: fetcher, log: log, metrics: metrics}
}

func (p *Parser) page(ctx context.Context, wallet, accessCode string, n network.Network) (string, error) {
	page, err := p.fetcher.Fetch(ctx, wallet, accessCode, n)
	if err != nil {
		return "", err
	}
	p.metrics.SetGauge("page.bytes."+n.String(), float64(len(page)))
	return page, nil
}

// settle logs and counts the outcome of one parse
func settle[T any](p *Parser, kind Kind, wallet string, rep *T, err error) *T {
	if err != nil {
		p.metrics.IncrCounter("report.unavailable." + string(kind))
		p.log.Warn("report unavailable", logger.Fields{
			"kind":   string(kind),
			"wallet": wallet,
			"reason": err.Error(),
		})
		return nil
	}
	p.metrics.IncrCounter("report.parsed." + string(kind))
	return rep
}

func fetchAndParse[T any](ctx context.Context, p *Parser, kind Kind, wallet, accessCode string,
	parse func(wallet, page string) (*T, error)) (*T, error) {
	n, _ := kind.Network()
	page, err := p.page(ctx, wallet, accessCode, n)
	if err != nil {
		return nil, err
	}
	rep, err := parse(wallet, page)
	return settle(p, kind, wallet, rep, err), nil
}

// Era fetches and parses the zkSync Era report
func (p *Parser) Era(ctx context.Context, wallet, accessCode string) (*Era, error) {
	return fetchAndParse(ctx, p, KindEra, wallet, accessCode, parseEra)
}

// Lite fetches the ERA page and parses its lite report
func (p *Parser) Lite(ctx context.Context, wallet, accessCode string) (*Lite, error) {
	return fetchAndParse(ctx, p, KindLite, wallet, accessCode, parseLite)
}

// EraAndLite parses both ERA reports from a single page fetch. The lite
// report is nil whenever the ERA report is.
func (p *Parser) EraAndLite(ctx context.Context, wallet, accessCode string) (*Era, *Lite, error) {
	page, err := p.page(ctx, wallet, accessCode, network.Era)
	if err != nil {
		return nil, nil, err
	}
	era, err := parseEra(wallet, page)
	era = settle(p, KindEra, wallet, era, err)
	if era == nil {
		settle[Lite](p, KindLite, wallet, nil, fmt.Errorf("era report: %w", err))
		return nil, nil, nil
	}
	lite, err := liteFromEra(era, page)
	lite = settle(p, KindLite, wallet, lite, err)
	return era, lite, nil
}

// Zero fetches and parses the LayerZero report
func (p *Parser) Zero(ctx context.Context, wallet, accessCode string) (*Zero, error) {
	return fetchAndParse(ctx, p, KindZero, wallet, accessCode, parseZero)
}

// Starknet fetches and parses the Starknet report
func (p *Parser) Starknet(ctx context.Context, wallet, accessCode string) (*Starknet, error) {
	return fetchAndParse(ctx, p, KindStarknet, wallet, accessCode, parseStarknet)
}

// Scroll fetches and parses the Scroll report
func (p *Parser) Scroll(ctx context.Context, wallet, accessCode string) (*Scroll, error) {
	return fetchAndParse(ctx, p, KindScroll, wallet, accessCode, parseScroll)
}

// Linea fetches and parses the Linea mainnet report
func (p *Parser) Linea(ctx context.Context, wallet, accessCode string) (*Linea, error) {
	return fetchAndParse(ctx, p, KindLinea, wallet, accessCode, func(wallet, page string) (*Linea, error) {
		return parseLinea(wallet, page, "_mn")
	})
}

// LineaTestnet fetches and parses the Linea testnet report
func (p *Parser) LineaTestnet(ctx context.Context, wallet, accessCode string) (*Linea, error) {
	return fetchAndParse(ctx, p, KindLineaTestnet, wallet, accessCode, func(wallet, page string) (*Linea, error) {
		return parseLinea(wallet, page, "")
	})
}

// Polygon fetches and parses the Polygon zkEVM report
func (p *Parser) Polygon(ctx context.Context, wallet, accessCode string) (*Polygon, error) {
	return fetchAndParse(ctx, p, KindPolygon, wallet, accessCode, parsePolygon)
}

// Sybil fetches and parses the sybil-list check
func (p *Parser) Sybil(ctx context.Context, wallet, accessCode string) (*Sybil, error) {
	return fetchAndParse(ctx, p, KindSybil, wallet, accessCode, parseSybil)
}

// Report fetches the report of the given kind. The result is nil when the
// report is unavailable; otherwise it is a pointer to the kind's record type.
func (p *Parser) Report(ctx context.Context, kind Kind, wallet, accessCode string) (any, error) {
	switch kind {
	case KindEra:
		rep, err := p.Era(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindEraVerbose:
		era, err := p.Era(ctx, wallet, accessCode)
		if err != nil || era == nil {
			return nil, err
		}
		return era.Verbose(), nil
	case KindLite:
		rep, err := p.Lite(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindZero:
		rep, err := p.Zero(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindStarknet:
		rep, err := p.Starknet(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindScroll:
		rep, err := p.Scroll(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindLinea:
		rep, err := p.Linea(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindLineaTestnet:
		rep, err := p.LineaTestnet(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindPolygon:
		rep, err := p.Polygon(ctx, wallet, accessCode)
		return orNil(rep, err)
	case KindSybil:
		rep, err := p.Sybil(ctx, wallet, accessCode)
		return orNil(rep, err)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// orNil keeps a nil *T from turning into a non-nil interface
func orNil[T any](rep *T, err error) (any, error) {
	if rep == nil {
		return nil, err
	}
	return rep, err
}
