// Package report turns checker report pages into typed wallet reports.
//
// There is one parser per report layout. ParseEra, ParseZero and the other
// Parse functions are pure: they read a fixed list of fields from an already
// fetched page and return nil as soon as one field is missing or malformed.
// A report is either complete or absent, never partially filled.
//
// Parser combines a Fetcher with those functions. It fetches the network's page
// and hands it to the matching parse function. EraAndLite parses both ERA
// layouts from a single fetch.
package report
