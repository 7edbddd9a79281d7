// Package network enumerates the blockchain networks supported by the 10kdrop
// airdrop checker and builds the report page URL for each of them.
//
// Every network maps to one results page on the checker site. The wallet address
// and access code are embedded verbatim as query parameters, the same way the
// site links to its own result pages.
package network
