package extract

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ResultsTableID is the id of the per-wallet results table on the ERA page
const ResultsTableID = "walletResults1"

var (
	ErrFieldNotFound   = errors.New("field not found")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrMalformedValue  = errors.New("malformed value")
	ErrNoTable         = errors.New("no such table")
	ErrRowOutOfRange   = errors.New("index out of range")
	ErrNoCell          = errors.New("row has no cells")
)

// NotImplemented is what the site's None literal maps to
const NotImplemented = "-1"

var (
	ethPricePattern = regexp.MustCompile(`window\.ethusd_price = ([\d".;]+)`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

// IsMissing reports whether err means a value is absent or unusable.
func IsMissing(err error) bool {
	return errors.Is(err, ErrFieldNotFound) ||
		errors.Is(err, ErrPatternNotFound) ||
		errors.Is(err, ErrMalformedValue) ||
		errors.Is(err, ErrNoTable) ||
		errors.Is(err, ErrRowOutOfRange) ||
		errors.Is(err, ErrNoCell)
}

// declarationPattern builds the default `const <name> = <literal>` matcher
func declarationPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`const ` + regexp.QuoteMeta(name) + ` = ([a-zA-Z\d".;]+)`)
}

// DeclaredValue returns the literal assigned to the script constant name.
//
// Trailing comments, statement terminators and quotes are stripped, the token
// None becomes "-1" and an empty literal becomes "0".
func DeclaredValue(text, name string) (string, error) {
	value, err := declaredValue(text, declarationPattern(name))
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, name)
	}
	return value, nil
}

// DeclaredValueMatching is DeclaredValue with a caller-supplied pattern whose
// first capture group holds the literal.
func DeclaredValueMatching(text, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	value, err := declaredValue(text, re)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, pattern)
	}
	return value, nil
}

func declaredValue(text string, re *regexp.Regexp) (string, error) {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 {
		return "", ErrFieldNotFound
	}
	return cleanLiteral(match[1]), nil
}

func cleanLiteral(raw string) string {
	value, _, _ := strings.Cut(raw, "//")
	value = strings.ReplaceAll(value, ";", "")
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.ReplaceAll(value, "None", NotImplemented)
	if value == "" {
		return "0"
	}
	return value
}

// FindPattern returns the first substring of text matching expr
func FindPattern(text, expr string) (string, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return "", fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", fmt.Errorf("%w: %s", ErrPatternNotFound, expr)
	}
	return text[loc[0]:loc[1]], nil
}

// EthPrice returns the page's ETH/USD price (window.ethusd_price)
func EthPrice(text string) (float64, error) {
	raw, err := declaredValue(text, ethPricePattern)
	if err != nil {
		return 0, fmt.Errorf("%w: window.ethusd_price", err)
	}
	return Float(raw)
}

// IntSequence returns every run of digits in s, in order.
// The site encodes active-month sets as comma-joined numbers. Runs too long
// for an int are capped at math.MaxInt.
func IntSequence(s string) []int {
	runs := digitsPattern.FindAllString(s, -1)
	out := make([]int, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil {
			n = math.MaxInt
		}
		out = append(out, n)
	}
	return out
}

// Int parses a declared literal as an integer
func Int(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedValue, raw)
	}
	return n, nil
}

// Float parses a declared literal as a float
func Float(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, raw)
	}
	return f, nil
}

// Bool parses a 0/1 literal; any non-zero integer is true
func Bool(raw string) (bool, error) {
	n, err := Int(raw)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// ElementHTML returns the inner markup of the element whose id is elementID.
// The second result is false when no such element exists.
func ElementHTML(text, elementID string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", false
	}

	sel := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == elementID
	}).First()
	if sel.Length() == 0 {
		return "", false
	}

	inner, err := innerHTML(sel)
	if err != nil {
		return "", false
	}
	return inner, true
}

// TableCell returns the inner markup of the last cell of row rowIndex
// (zero-based) in the #walletResults1 table.
func TableCell(text string, rowIndex int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("#" + ResultsTableID).First()
	if table.Length() == 0 {
		return "", fmt.Errorf("%w: #%s", ErrNoTable, ResultsTableID)
	}

	rows := table.Find("tr")
	if rowIndex < 0 || rowIndex >= rows.Length() {
		return "", fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, rowIndex, rows.Length())
	}

	cells := rows.Eq(rowIndex).Find("td")
	if cells.Length() == 0 {
		return "", fmt.Errorf("%w: row %d", ErrNoCell, rowIndex)
	}

	return innerHTML(cells.Last())
}

// innerHTML renders the children of the first node in sel back to markup
func innerHTML(sel *goquery.Selection) (string, error) {
	var buf bytes.Buffer
	for c := sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return buf.String(), nil
}
