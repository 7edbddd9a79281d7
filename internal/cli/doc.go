// Package cli implements the command-line interface for zkparser.
//
// The cli package provides the Cobra-based CLI for building checker URLs,
// fetching raw report pages, printing parsed wallet reports (text/JSON/YAML)
// and estimating the zkSync reward range. It wires the config, scraper,
// report and estimate packages together; everything below it stays usable
// as a library.
package cli
