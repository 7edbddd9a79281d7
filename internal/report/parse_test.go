package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x52c7b8e21b4c7c2b0b2c1a1f6f0e3f4d5a6b7c8d"

func loadPage(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "loading fixture %s", name)
	return string(data)
}

// withoutDeclaration renames a declared variable so lookups for it fail
func withoutDeclaration(page, name string) string {
	return strings.Replace(page, "const "+name+" = ", "const "+name+"_gone = ", 1)
}

func TestParseEra(t *testing.T) {
	era := ParseEra(testWallet, loadPage(t, "era.html"))
	require.NotNil(t, era)

	assert.Equal(t, testWallet, era.Wallet)
	assert.Equal(t, 1520, era.Rank)
	assert.InDelta(t, 0.25, era.Balance, 1e-9)
	assert.InDelta(t, 500.0, era.BalanceUSD, 1e-9)
	assert.Equal(t, 42, era.Transactions)
	assert.Equal(t, 5, era.InternalTransactions)
	assert.Equal(t, "2023-11-05T14:22:31.120Z", era.LastTransaction)
	assert.InDelta(t, 0.02, era.TotalGas, 1e-9)
	assert.Equal(t, []int{1, 2, 5, 11}, era.TransactionMonths)
	assert.InDelta(t, 3.5, era.AggregateETH, 1e-9)
	require.NotNil(t, era.AggregateUSD)
	assert.InDelta(t, 1234.5, *era.AggregateUSD, 1e-9)
	assert.Equal(t, 6, era.Protocols)
	assert.True(t, era.NativeBridgeUsed)
}

func TestParseEraBelowUSDThreshold(t *testing.T) {
	page := strings.Replace(loadPage(t, "era.html"),
		"const thresholdUsdcPro1 = 1;", "const thresholdUsdcPro1 = 0;", 1)

	era := ParseEra(testWallet, page)
	require.NotNil(t, era)
	assert.Nil(t, era.AggregateUSD)
}

func TestParseEraMissingFields(t *testing.T) {
	page := loadPage(t, "era.html")

	names := []string{
		"value1_fixed_erarank", "value1", "value2", "value3", "value4",
		"value1_gasfees", "valueUsdcPro1unfixed", "thresholdUsdcPro1",
		"valuePro1", "valuePro2",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseEra(testWallet, withoutDeclaration(page, name)))
		})
	}

	tests := []struct {
		name string
		page string
	}{
		{"no eth price", strings.Replace(page, "window.ethusd_price", "window.ethprice", 1)},
		{"no timestamp", strings.Replace(page, "2023-11-05T14:22:31.120Z", "recently", 1)},
		{"no results table", strings.Replace(page, `id="walletResults1"`, `id="walletResults2"`, 1)},
		{"short results table", strings.Replace(page, "<tr><td>Active months</td><td><span>1</span>, 2, 5, 11</td></tr>", "", 1)},
		{"malformed number", strings.Replace(page, `const value1 = "0.25";`, `const value1 = "0.2.5";`, 1)},
		{"empty page", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseEra(testWallet, tt.page))
		})
	}
}

func TestEraVerbose(t *testing.T) {
	era := ParseEra(testWallet, loadPage(t, "era.html"))
	require.NotNil(t, era)

	verbose := era.Verbose()
	assert.Equal(t, "1520", verbose.Rank)
	assert.Equal(t, era.Balance, verbose.Balance)
	assert.Equal(t, era.TransactionMonths, verbose.TransactionMonths)

	era.Rank = 0
	assert.Equal(t, RankBeyondDisplayed, era.Verbose().Rank)
}

func TestParseLite(t *testing.T) {
	lite := ParseLite(testWallet, loadPage(t, "era.html"))
	require.NotNil(t, lite)

	assert.Equal(t, testWallet, lite.Wallet)
	assert.InDelta(t, 0.1, lite.Balance, 1e-9)
	assert.Equal(t, 7, lite.Transactions)
	assert.Equal(t, "2023-10-01 08:15:00", lite.LastTransaction)
	assert.InDelta(t, 0.01, lite.TotalGas, 1e-9)
	assert.InDelta(t, 0.8, lite.AggregateETH, 1e-9)
	assert.InDelta(t, 0.03, lite.TotalInvestment, 1e-9)
	assert.InDelta(t, 60.0, lite.TotalInvestmentUSD, 1e-6)
}

func TestParseLiteMissingFields(t *testing.T) {
	page := loadPage(t, "era.html")

	for _, name := range []string{
		"value1_lite_bal", "value5", "value1_gasfees_lite",
		"value1_lite_totalamount", "value1_gasfees",
		// ERA fields: no lite report without a complete ERA report
		"value2", "value1_fixed_erarank", "thresholdUsdcPro1",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseLite(testWallet, withoutDeclaration(page, name)))
		})
	}

	t.Run("no timestamp", func(t *testing.T) {
		assert.Nil(t, ParseLite(testWallet, strings.Replace(page, "2023-10-01 08:15:00", "n/a", 1)))
	})
	t.Run("no results table", func(t *testing.T) {
		assert.Nil(t, ParseLite(testWallet, strings.Replace(page, `id="walletResults1"`, `id="walletResults2"`, 1)))
	})
}

func TestParseZero(t *testing.T) {
	page := loadPage(t, "zero.html")

	zero := ParseZero(testWallet, page)
	require.NotNil(t, zero)
	assert.Equal(t, &Zero{
		Wallet:              testWallet,
		Rank:                88,
		Transactions:        31,
		Bridged:             1520.75,
		SourceChains:        4,
		DestinationChains:   6,
		InteractedContracts: 12,
		ActiveDays:          20,
		ActiveWeeks:         9,
		ActiveMonths:        4,
	}, zero)

	for _, name := range []string{
		"value1_fixed", "valuePro2", "valuePro3", "valuePro4", "valuePro5",
		"valuePro6", "valuePro7", "valuePro8", "valuePro9",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseZero(testWallet, withoutDeclaration(page, name)))
		})
	}
}

func TestParseLinea(t *testing.T) {
	page := loadPage(t, "linea.html")

	linea := ParseLinea(testWallet, page)
	require.NotNil(t, linea)

	assert.Nil(t, linea.BalanceETH, "None maps to no value")
	require.NotNil(t, linea.BalanceUSDC)
	assert.InDelta(t, 150.5, *linea.BalanceUSDC, 1e-9)
	assert.InDelta(t, 33.0, linea.Transactions, 1e-9)
	assert.False(t, linea.NativeBridgeUsed)
	assert.Equal(t, "12.07.2023", linea.FirstTxDate)
	assert.Equal(t, []int{7, 8, 10}, linea.TxMonths)
	assert.Equal(t, 3, linea.ActiveMonths)
	assert.Equal(t, 8, linea.ActiveWeeks)
	assert.Equal(t, 15, linea.ActiveDays)
	assert.Equal(t, "01.10.2023", linea.LastTxDate)

	for _, name := range []string{
		"value1_unfixed_mn", "valuePro1_mn", "valuePro2_mn", "valuePro3_mn",
		"valuePro4_mn", "valuePro5_mn", "valuePro51_mn", "valuePro52_mn",
		"valuePro53_mn", "valuePro6_mn",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseLinea(testWallet, withoutDeclaration(page, name)))
		})
	}
}

func TestParseLineaTestnet(t *testing.T) {
	page := loadPage(t, "linea.html")

	linea := ParseLineaTestnet(testWallet, page)
	require.NotNil(t, linea)

	require.NotNil(t, linea.BalanceETH)
	assert.InDelta(t, 0.75, *linea.BalanceETH, 1e-9)
	assert.Nil(t, linea.BalanceUSDC)
	assert.InDelta(t, 12.0, linea.Transactions, 1e-9)
	assert.True(t, linea.NativeBridgeUsed)
	assert.Equal(t, []int{3}, linea.TxMonths)
	assert.Equal(t, "20.03.2023", linea.LastTxDate)

	// mainnet variables alone do not make a testnet report
	assert.Nil(t, ParseLineaTestnet(testWallet, withoutDeclaration(page, "valuePro53")))
}

func TestParseStarknet(t *testing.T) {
	page := loadPage(t, "starknet.html")

	starknet := ParseStarknet(testWallet, page)
	require.NotNil(t, starknet)
	assert.Equal(t, &Starknet{
		Wallet:             testWallet,
		Transactions:       120,
		TxMonths:           "5.6.7",
		ActiveMonths:       3,
		ActiveWeeks:        10,
		ActiveDays:         25,
		DidSwap:            true,
		DidMint:            false,
		DidAddLiquidity:    true,
		DidRemoveLiquidity: false,
		TotalGas:           0.004,
		AggregateTx:        2.5,
		FirstTransaction:   "2023-02-01",
		LastTransaction:    "20.10.2023",
	}, starknet)

	for _, name := range []string{
		"value1_fixed", "valuePro5", "activeMonthsPro1", "activeWeeksPro1",
		"activeDaysPro1", "did_swap1Bool", "did_mint1Bool", "did_addLiquidity1Bool",
		"did_removeLiquidity1Bool", "totalGasfees1unfixed",
		"aggregateValueTxPro1unfixed", "lastTxPro1",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseStarknet(testWallet, withoutDeclaration(page, name)))
		})
	}

	t.Run("no first transaction element", func(t *testing.T) {
		assert.Nil(t, ParseStarknet(testWallet, strings.Replace(page, `id="valueFirstTx1"`, `id="valueFirstTx2"`, 1)))
	})
}

func TestParseScrollAndPolygon(t *testing.T) {
	page := loadPage(t, "scroll.html")
	want := Scroll{
		Wallet:           testWallet,
		BalanceETH:       0.3,
		BalanceUSDC:      20,
		Transactions:     14,
		NativeBridgeUsed: true,
		FirstTxDate:      "01.03.2023",
		TxMonths:         []int{3, 4},
		LastTxDate:       "09.09.2023",
	}

	scroll := ParseScroll(testWallet, page)
	require.NotNil(t, scroll)
	assert.Equal(t, want, *scroll)

	polygon := ParsePolygon(testWallet, page)
	require.NotNil(t, polygon)
	assert.Equal(t, Polygon(want), *polygon)

	for _, name := range []string{
		"value1_fixed", "valuePro1", "valuePro2", "valuePro3",
		"valuePro4", "valuePro5", "valuePro6",
	} {
		t.Run(name, func(t *testing.T) {
			broken := withoutDeclaration(page, name)
			assert.Nil(t, ParseScroll(testWallet, broken))
			assert.Nil(t, ParsePolygon(testWallet, broken))
		})
	}
}

func TestParseSybil(t *testing.T) {
	page := loadPage(t, "sybil.html")

	sybil := ParseSybil(testWallet, page)
	require.NotNil(t, sybil)
	assert.False(t, sybil.Blacklisted)

	listed := ParseSybil(testWallet, strings.Replace(page, "blacklisted12 = 0", "blacklisted12 = 1", 1))
	require.NotNil(t, listed)
	assert.True(t, listed.Blacklisted)

	assert.Nil(t, ParseSybil(testWallet, withoutDeclaration(page, "blacklisted12")))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(strings.ToUpper(string(k)))
		require.NoError(t, err)
		assert.Equal(t, k, got)

		_, ok := k.Network()
		assert.True(t, ok, "kind %s has a network", k)
	}

	_, err := ParseKind("arbitrum")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
