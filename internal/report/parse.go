package report

import (
	"fmt"

	"github.com/akulij/zkparser/internal/extract"
)

const (
	// eraMonthsRow is the #walletResults1 row listing active months
	eraMonthsRow = 7

	isoTimestampPattern  = `\d\d\d\d-\d\d-\d\dT\d\d:\d\d:\d\d.\d\d\dZ`
	liteTimestampPattern = `\d\d\d\d-\d\d-\d\d \d\d:\d\d:\d\d`
)

// fields reads values from one page in order. The first failure sticks: later
// reads return zero values and err reports it.
type fields struct {
	page string
	err  error
}

func (f *fields) raw(name string) string {
	if f.err != nil {
		return ""
	}
	v, err := extract.DeclaredValue(f.page, name)
	if err != nil {
		f.err = err
	}
	return v
}

func (f *fields) str(name string) string {
	return f.raw(name)
}

func (f *fields) integer(name string) int {
	return convert(f, f.raw(name), extract.Int, name)
}

func (f *fields) number(name string) float64 {
	return convert(f, f.raw(name), extract.Float, name)
}

func (f *fields) flag(name string) bool {
	return convert(f, f.raw(name), extract.Bool, name)
}

// optionalFloat maps the site's not-implemented marker (-1) to nil
func (f *fields) optionalFloat(name string) *float64 {
	v := f.number(name)
	if f.err != nil || v == -1 {
		return nil
	}
	return &v
}

func (f *fields) months(name string) []int {
	raw := f.raw(name)
	if f.err != nil {
		return nil
	}
	return extract.IntSequence(raw)
}

func (f *fields) pattern(expr string) string {
	if f.err != nil {
		return ""
	}
	v, err := extract.FindPattern(f.page, expr)
	if err != nil {
		f.err = err
	}
	return v
}

func (f *fields) tableMonths(row int) []int {
	if f.err != nil {
		return nil
	}
	cell, err := extract.TableCell(f.page, row)
	if err != nil {
		f.err = err
		return nil
	}
	return extract.IntSequence(cell)
}

func (f *fields) element(id string) string {
	if f.err != nil {
		return ""
	}
	v, ok := extract.ElementHTML(f.page, id)
	if !ok {
		f.err = fmt.Errorf("%w: #%s", extract.ErrFieldNotFound, id)
	}
	return v
}

func (f *fields) ethPrice() float64 {
	if f.err != nil {
		return 0
	}
	v, err := extract.EthPrice(f.page)
	if err != nil {
		f.err = err
	}
	return v
}

func convert[T any](f *fields, raw string, parse func(string) (T, error), name string) T {
	var zero T
	if f.err != nil {
		return zero
	}
	v, err := parse(raw)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", name, err)
		return zero
	}
	return v
}

// ParseEra reads the zkSync Era report from an ERA page, or returns nil
func ParseEra(wallet, page string) *Era {
	era, _ := parseEra(wallet, page)
	return era
}

func parseEra(wallet, page string) (*Era, error) {
	f := &fields{page: page}

	ethUSD := f.ethPrice()
	era := &Era{
		Wallet:               wallet,
		Rank:                 f.integer("value1_fixed_erarank"),
		Balance:              f.number("value1"),
		Transactions:         f.integer("value2"),
		LastTransaction:      f.pattern(isoTimestampPattern),
		TotalGas:             f.number("value1_gasfees"),
		TransactionMonths:    f.tableMonths(eraMonthsRow),
		InternalTransactions: f.integer("value3"),
		AggregateETH:         f.number("value4"),
	}
	aggregateUSD := f.number("valueUsdcPro1unfixed")
	if f.flag("thresholdUsdcPro1") {
		era.AggregateUSD = &aggregateUSD
	}
	era.Protocols = f.integer("valuePro1")
	era.NativeBridgeUsed = f.flag("valuePro2")

	if f.err != nil {
		return nil, f.err
	}
	era.BalanceUSD = era.Balance * ethUSD
	return era, nil
}

// ParseLite reads the lite report from an ERA page, or returns nil. The lite
// report is only available when the page also holds a complete ERA report.
func ParseLite(wallet, page string) *Lite {
	lite, _ := parseLite(wallet, page)
	return lite
}

func parseLite(wallet, page string) (*Lite, error) {
	era, err := parseEra(wallet, page)
	if err != nil {
		return nil, fmt.Errorf("era report: %w", err)
	}
	return liteFromEra(era, page)
}

// liteFromEra reads the lite fields of a page era was parsed from
func liteFromEra(era *Era, page string) (*Lite, error) {
	f := &fields{page: page}

	ethUSD := f.ethPrice()
	lite := &Lite{
		Wallet:          era.Wallet,
		Balance:         f.number("value1_lite_bal"),
		Transactions:    f.integer("value5"),
		LastTransaction: f.pattern(liteTimestampPattern),
		TotalGas:        f.number("value1_gasfees_lite"),
		AggregateETH:    f.number("value1_lite_totalamount"),
	}

	if f.err != nil {
		return nil, f.err
	}
	lite.TotalInvestment = lite.TotalGas + era.TotalGas
	lite.TotalInvestmentUSD = lite.TotalInvestment * ethUSD
	return lite, nil
}

// ParseZero reads the LayerZero report, or returns nil
func ParseZero(wallet, page string) *Zero {
	zero, _ := parseZero(wallet, page)
	return zero
}

func parseZero(wallet, page string) (*Zero, error) {
	f := &fields{page: page}
	zero := &Zero{
		Wallet:              wallet,
		Rank:                f.integer("value1_fixed"),
		Transactions:        f.integer("valuePro2"),
		Bridged:             f.number("valuePro3"),
		SourceChains:        f.integer("valuePro4"),
		DestinationChains:   f.integer("valuePro5"),
		InteractedContracts: f.integer("valuePro6"),
		ActiveDays:          f.integer("valuePro7"),
		ActiveWeeks:         f.integer("valuePro8"),
		ActiveMonths:        f.integer("valuePro9"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return zero, nil
}

// ParseLinea reads the Linea mainnet report, or returns nil
func ParseLinea(wallet, page string) *Linea {
	linea, _ := parseLinea(wallet, page, "_mn")
	return linea
}

// ParseLineaTestnet reads the Linea testnet report, or returns nil
func ParseLineaTestnet(wallet, page string) *Linea {
	linea, _ := parseLinea(wallet, page, "")
	return linea
}

// parseLinea reads the variables ending in suffix; mainnet uses "_mn"
func parseLinea(wallet, page, suffix string) (*Linea, error) {
	f := &fields{page: page}
	linea := &Linea{
		Wallet:           wallet,
		BalanceETH:       f.optionalFloat("value1_unfixed" + suffix),
		BalanceUSDC:      f.optionalFloat("valuePro1" + suffix),
		Transactions:     f.number("valuePro2" + suffix),
		NativeBridgeUsed: f.flag("valuePro3" + suffix),
		FirstTxDate:      f.str("valuePro4" + suffix),
		TxMonths:         f.months("valuePro5" + suffix),
		ActiveMonths:     f.integer("valuePro51" + suffix),
		ActiveWeeks:      f.integer("valuePro52" + suffix),
		ActiveDays:       f.integer("valuePro53" + suffix),
		LastTxDate:       f.str("valuePro6" + suffix),
	}
	if f.err != nil {
		return nil, f.err
	}
	return linea, nil
}

// ParseStarknet reads the Starknet report, or returns nil
func ParseStarknet(wallet, page string) *Starknet {
	starknet, _ := parseStarknet(wallet, page)
	return starknet
}

func parseStarknet(wallet, page string) (*Starknet, error) {
	f := &fields{page: page}
	starknet := &Starknet{
		Wallet:             wallet,
		Transactions:       f.integer("value1_fixed"),
		TxMonths:           f.str("valuePro5"),
		ActiveMonths:       f.integer("activeMonthsPro1"),
		ActiveWeeks:        f.integer("activeWeeksPro1"),
		ActiveDays:         f.integer("activeDaysPro1"),
		DidSwap:            f.flag("did_swap1Bool"),
		DidMint:            f.flag("did_mint1Bool"),
		DidAddLiquidity:    f.flag("did_addLiquidity1Bool"),
		DidRemoveLiquidity: f.flag("did_removeLiquidity1Bool"),
		TotalGas:           f.number("totalGasfees1unfixed"),
		AggregateTx:        f.number("aggregateValueTxPro1unfixed"),
		FirstTransaction:   f.element("valueFirstTx1"),
		LastTransaction:    f.str("lastTxPro1"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return starknet, nil
}

// ParseScroll reads the Scroll report, or returns nil
func ParseScroll(wallet, page string) *Scroll {
	scroll, _ := parseScroll(wallet, page)
	return scroll
}

func parseScroll(wallet, page string) (*Scroll, error) {
	f := &fields{page: page}
	scroll := &Scroll{
		Wallet:           wallet,
		BalanceETH:       f.number("value1_fixed"),
		BalanceUSDC:      f.number("valuePro1"),
		Transactions:     f.integer("valuePro2"),
		NativeBridgeUsed: f.flag("valuePro3"),
		FirstTxDate:      f.str("valuePro4"),
		TxMonths:         f.months("valuePro5"),
		LastTxDate:       f.str("valuePro6"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return scroll, nil
}

// ParsePolygon reads the Polygon zkEVM report, or returns nil
func ParsePolygon(wallet, page string) *Polygon {
	polygon, _ := parsePolygon(wallet, page)
	return polygon
}

func parsePolygon(wallet, page string) (*Polygon, error) {
	scroll, err := parseScroll(wallet, page)
	if err != nil {
		return nil, err
	}
	return (*Polygon)(scroll), nil
}

// ParseSybil reads the sybil-list check, or returns nil
func ParseSybil(wallet, page string) *Sybil {
	sybil, _ := parseSybil(wallet, page)
	return sybil
}

func parseSybil(wallet, page string) (*Sybil, error) {
	f := &fields{page: page}
	sybil := &Sybil{
		Wallet:      wallet,
		Blacklisted: f.flag("blacklisted12"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return sybil, nil
}
