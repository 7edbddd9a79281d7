// Package extract provides the text and markup primitives used to pull values
// out of checker report pages.
//
// Report pages carry most of their numbers as script-level declarations such as
// `const value1 = "0.42";`, which are matched with regular expressions. A few
// values only appear inside HTML, either in the #walletResults1 table or in an
// element with a known id; those are read with goquery.
//
// All functions are pure over their input text. Missing values are reported
// with the sentinel errors below; IsMissing groups them so report parsers can
// treat every one of them as "field not available".
package extract
