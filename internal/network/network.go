package network

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBaseURL is the checker site every report page lives on.
const DefaultBaseURL = "https://www.10kdrop.com"

// ErrUnsupportedNetwork is returned for identifiers outside the supported set.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// Network identifies a blockchain network with a report page on the checker site
type Network string

const (
	Era      Network = "ERA"
	Zero     Network = "ZERO"
	Starknet Network = "STARKNET"
	Scroll   Network = "SCROLL"
	Linea    Network = "LINEA"
	Polygon  Network = "POLYGON"
	Sybil    Network = "SYBIL"
)

// urlTemplate renders the report page URL for one network
type urlTemplate func(base, wallet, accessCode string) string

// simple covers every page that only takes walletAddress and proCode
func simple(path string) urlTemplate {
	return func(base, wallet, accessCode string) string {
		return fmt.Sprintf("%s/%s?walletAddress=%s&proCode=%s", base, path, wallet, accessCode)
	}
}

var templates = map[Network]urlTemplate{
	Era: func(base, wallet, accessCode string) string {
		return fmt.Sprintf("%s/results?walletAddress=%s&walletAddress2=&walletAddress3=&walletAddress4=&proCode=%s",
			base, wallet, accessCode)
	},
	Zero:     simple("layerzeroresults"),
	Starknet: simple("starknetresults"),
	Scroll:   simple("scrollresults"),
	Linea:    simple("linearesults"),
	Polygon:  simple("polygonzkevmresults"),
	Sybil:    simple("sybilcheckresults"),
}

// All returns every supported network in a stable order
func All() []Network {
	return []Network{Era, Zero, Starknet, Scroll, Linea, Polygon, Sybil}
}

// Parse converts a user-supplied name (case-insensitive) into a Network
func Parse(name string) (Network, error) {
	n := Network(strings.ToUpper(strings.TrimSpace(name)))
	if !n.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}
	return n, nil
}

// Valid reports whether n is one of the supported networks
func (n Network) Valid() bool {
	_, ok := templates[n]
	return ok
}

// String returns the network identifier
func (n Network) String() string {
	return string(n)
}

// BuildURL returns the report page URL on the default checker site
func BuildURL(wallet, accessCode string, n Network) (string, error) {
	return URLFor(DefaultBaseURL, wallet, accessCode, n)
}

// URLFor returns the report page URL for n on the site rooted at base.
// Wallet and access code are not validated or escaped.
func URLFor(base, wallet, accessCode string, n Network) (string, error) {
	tmpl, ok := templates[n]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, string(n))
	}
	return tmpl(strings.TrimSuffix(base, "/"), wallet, accessCode), nil
}
