// Package scraper fetches wallet report pages from the 10kdrop checker site.
//
// A Scraper builds the report URL for a network, issues a single GET through a
// resty client and returns the body as text whatever the status code; parsing
// and the decision whether the page holds a usable report belong to the report
// package. Read timeouts are retried according to a RetryPolicy (five attempts,
// no delay, by default). Other failures are returned immediately.
package scraper
