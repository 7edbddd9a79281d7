package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/akulij/zkparser/internal/network"
)

// RankBeyondDisplayed is shown instead of a zero ERA rank; the site reports 0
// for wallets ranked past the end of its leaderboard.
const RankBeyondDisplayed = "+650'000"

// Era is the zkSync Era report
type Era struct {
	Wallet               string   `json:"wallet" yaml:"wallet"`
	Rank                 int      `json:"rank" yaml:"rank"`
	Balance              float64  `json:"balance" yaml:"balance"`
	BalanceUSD           float64  `json:"balance_usd" yaml:"balance_usd"`
	Transactions         int      `json:"transactions" yaml:"transactions"`
	InternalTransactions int      `json:"internal_transactions" yaml:"internal_transactions"`
	LastTransaction      string   `json:"last_transaction" yaml:"last_transaction"`
	TotalGas             float64  `json:"total_gas" yaml:"total_gas"`
	TransactionMonths    []int    `json:"transaction_months" yaml:"transaction_months"`
	AggregateETH         float64  `json:"aggregate_eth" yaml:"aggregate_eth"`
	AggregateUSD         *float64 `json:"aggregate_usd" yaml:"aggregate_usd"` // nil until the site enables it
	Protocols            int      `json:"protocols" yaml:"protocols"`
	NativeBridgeUsed     bool     `json:"native_bridge_used" yaml:"native_bridge_used"`
}

// EraVerbose is the display form of an Era report
type EraVerbose struct {
	Wallet            string   `json:"wallet" yaml:"wallet"`
	Rank              string   `json:"rank" yaml:"rank"`
	Balance           float64  `json:"balance" yaml:"balance"`
	Transactions      int      `json:"transactions" yaml:"transactions"`
	LastTransaction   string   `json:"last_transaction" yaml:"last_transaction"`
	TotalGas          float64  `json:"total_gas" yaml:"total_gas"`
	TransactionMonths []int    `json:"transaction_months" yaml:"transaction_months"`
	AggregateETH      float64  `json:"aggregate_eth" yaml:"aggregate_eth"`
	AggregateUSD      *float64 `json:"aggregate_usd" yaml:"aggregate_usd"`
	Protocols         int      `json:"protocols" yaml:"protocols"`
	NativeBridgeUsed  bool     `json:"native_bridge_used" yaml:"native_bridge_used"`
}

// Lite is the coarser report the ERA page carries next to the main one
type Lite struct {
	Wallet             string  `json:"wallet" yaml:"wallet"`
	Balance            float64 `json:"balance" yaml:"balance"`
	Transactions       int     `json:"transactions" yaml:"transactions"`
	LastTransaction    string  `json:"last_transaction" yaml:"last_transaction"`
	TotalGas           float64 `json:"total_gas" yaml:"total_gas"`
	AggregateETH       float64 `json:"aggregate_eth" yaml:"aggregate_eth"`
	TotalInvestment    float64 `json:"total_investment" yaml:"total_investment"`
	TotalInvestmentUSD float64 `json:"total_investment_usd" yaml:"total_investment_usd"`
}

// Zero is the LayerZero report
type Zero struct {
	Wallet              string  `json:"wallet" yaml:"wallet"`
	Rank                int     `json:"rank" yaml:"rank"`
	Transactions        int     `json:"transactions" yaml:"transactions"`
	Bridged             float64 `json:"bridged" yaml:"bridged"`
	SourceChains        int     `json:"source_chains" yaml:"source_chains"`
	DestinationChains   int     `json:"destination_chains" yaml:"destination_chains"`
	InteractedContracts int     `json:"interacted_contracts" yaml:"interacted_contracts"`
	ActiveDays          int     `json:"active_days" yaml:"active_days"`
	ActiveWeeks         int     `json:"active_weeks" yaml:"active_weeks"`
	ActiveMonths        int     `json:"active_months" yaml:"active_months"`
}

// Linea is the Linea report, for either mainnet or testnet
type Linea struct {
	Wallet           string   `json:"wallet" yaml:"wallet"`
	BalanceETH       *float64 `json:"balance_eth" yaml:"balance_eth"`
	BalanceUSDC      *float64 `json:"balance_usdc" yaml:"balance_usdc"`
	Transactions     float64  `json:"transactions" yaml:"transactions"`
	NativeBridgeUsed bool     `json:"native_bridge_used" yaml:"native_bridge_used"`
	FirstTxDate      string   `json:"first_tx_date" yaml:"first_tx_date"`
	TxMonths         []int    `json:"tx_months" yaml:"tx_months"`
	ActiveMonths     int      `json:"active_months" yaml:"active_months"`
	ActiveWeeks      int      `json:"active_weeks" yaml:"active_weeks"`
	ActiveDays       int      `json:"active_days" yaml:"active_days"`
	LastTxDate       string   `json:"last_tx_date" yaml:"last_tx_date"`
}

// Starknet is the Starknet report
type Starknet struct {
	Wallet             string  `json:"wallet" yaml:"wallet"`
	Transactions       int     `json:"transactions" yaml:"transactions"`
	TxMonths           string  `json:"tx_months" yaml:"tx_months"`
	ActiveMonths       int     `json:"active_months" yaml:"active_months"`
	ActiveWeeks        int     `json:"active_weeks" yaml:"active_weeks"`
	ActiveDays         int     `json:"active_days" yaml:"active_days"`
	DidSwap            bool    `json:"did_swap" yaml:"did_swap"`
	DidMint            bool    `json:"did_mint" yaml:"did_mint"`
	DidAddLiquidity    bool    `json:"did_add_liquidity" yaml:"did_add_liquidity"`
	DidRemoveLiquidity bool    `json:"did_remove_liquidity" yaml:"did_remove_liquidity"`
	TotalGas           float64 `json:"total_gas" yaml:"total_gas"`
	AggregateTx        float64 `json:"aggregate_tx" yaml:"aggregate_tx"`
	FirstTransaction   string  `json:"first_transaction" yaml:"first_transaction"`
	LastTransaction    string  `json:"last_transaction" yaml:"last_transaction"`
}

// Scroll is the Scroll report
type Scroll struct {
	Wallet           string  `json:"wallet" yaml:"wallet"`
	BalanceETH       float64 `json:"balance_eth" yaml:"balance_eth"`
	BalanceUSDC      float64 `json:"balance_usdc" yaml:"balance_usdc"`
	Transactions     int     `json:"transactions" yaml:"transactions"`
	NativeBridgeUsed bool    `json:"native_bridge_used" yaml:"native_bridge_used"`
	FirstTxDate      string  `json:"first_tx_date" yaml:"first_tx_date"`
	TxMonths         []int   `json:"tx_months" yaml:"tx_months"`
	LastTxDate       string  `json:"last_tx_date" yaml:"last_tx_date"`
}

// Polygon is the Polygon zkEVM report. Its page uses the Scroll layout.
type Polygon Scroll

// Sybil is the sybil-list check
type Sybil struct {
	Wallet      string `json:"wallet" yaml:"wallet"`
	Blacklisted bool   `json:"blacklisted" yaml:"blacklisted"`
}

// Verbose returns the display form of e, with a zero rank shown as
// RankBeyondDisplayed.
func (e *Era) Verbose() *EraVerbose {
	rank := RankBeyondDisplayed
	if e.Rank != 0 {
		rank = strconv.Itoa(e.Rank)
	}
	return &EraVerbose{
		Wallet:            e.Wallet,
		Rank:              rank,
		Balance:           e.Balance,
		Transactions:      e.Transactions,
		LastTransaction:   e.LastTransaction,
		TotalGas:          e.TotalGas,
		TransactionMonths: e.TransactionMonths,
		AggregateETH:      e.AggregateETH,
		AggregateUSD:      e.AggregateUSD,
		Protocols:         e.Protocols,
		NativeBridgeUsed:  e.NativeBridgeUsed,
	}
}

// Kind names a report layout. Most kinds map one-to-one onto a network; the
// ERA page carries three of them and the LINEA page two.
type Kind string

const (
	KindEra          Kind = "era"
	KindEraVerbose   Kind = "era-verbose"
	KindLite         Kind = "lite"
	KindZero         Kind = "zero"
	KindStarknet     Kind = "starknet"
	KindScroll       Kind = "scroll"
	KindLinea        Kind = "linea"
	KindLineaTestnet Kind = "linea-testnet"
	KindPolygon      Kind = "polygon"
	KindSybil        Kind = "sybil"
)

var kindNetworks = map[Kind]network.Network{
	KindEra:          network.Era,
	KindEraVerbose:   network.Era,
	KindLite:         network.Era,
	KindZero:         network.Zero,
	KindStarknet:     network.Starknet,
	KindScroll:       network.Scroll,
	KindLinea:        network.Linea,
	KindLineaTestnet: network.Linea,
	KindPolygon:      network.Polygon,
	KindSybil:        network.Sybil,
}

// ErrUnknownKind is returned for report kinds outside Kinds()
var ErrUnknownKind = errors.New("unknown report kind")

// ParseKind converts a user-supplied name (case-insensitive) into a Kind
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := kindNetworks[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Kinds returns every report kind in display order
func Kinds() []Kind {
	return []Kind{
		KindEra, KindEraVerbose, KindLite, KindZero, KindStarknet,
		KindScroll, KindLinea, KindLineaTestnet, KindPolygon, KindSybil,
	}
}

// PrimaryKinds returns one kind per network
func PrimaryKinds() []Kind {
	return []Kind{KindEra, KindZero, KindStarknet, KindScroll, KindLinea, KindPolygon, KindSybil}
}

// Network returns the network whose page holds reports of kind k
func (k Kind) Network() (network.Network, bool) {
	n, ok := kindNetworks[k]
	return n, ok
}
