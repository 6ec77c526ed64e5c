package rebalance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains adapters from pasted spreadsheet text and broker JSON
// exports into the structured inputs of the rebalancing core. The core
// itself never reads anything.

var (
	percentRe = regexp.MustCompile(`^([\d.]+)\s*%$`)
	amountRe  = regexp.MustCompile(`^([+-])?\$?([\d.,]+)$`)
)

// parseAmount parses a spreadsheet dollar cell like "$1,234.56".
func parseAmount(s string) (Money, error) {
	m := amountRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Money{}, fmt.Errorf("unable to parse amount %q", s)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
	if err != nil {
		return Money{}, fmt.Errorf("unable to parse amount %q: %w", s, err)
	}
	if m[1] == "-" {
		d = d.Neg()
	}
	return USD(d), nil
}

// ImportSummary reads summary records pasted from a spreadsheet.
//
// Each line holds tab-separated columns: ticker, target percentage ("33%"),
// balanced dollar amount, and an optional actual dollar amount. Reading
// stops at the first blank line.
func ImportSummary(r io.Reader) ([]SummaryRecord, error) {
	var records []SummaryRecord
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			if len(records) > 0 {
				break
			}
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 tab-separated columns, got %d", line, len(cols))
		}

		ticker := strings.TrimSpace(cols[0])
		if ticker == "" {
			return nil, fmt.Errorf("line %d: empty ticker", line)
		}

		pm := percentRe.FindStringSubmatch(strings.TrimSpace(cols[1]))
		if pm == nil {
			return nil, fmt.Errorf("line %d: unable to parse target percentage %q", line, cols[1])
		}
		percent, err := decimal.NewFromString(pm[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: unable to parse target percentage %q: %w", line, cols[1], err)
		}

		balanced, err := parseAmount(cols[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		actual := USD(0)
		if len(cols) > 3 && strings.TrimSpace(cols[3]) != "" {
			actual, err = parseAmount(cols[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		records = append(records, SummaryRecord{
			Ticker:   ticker,
			Target:   Q(percent.Div(hundred)),
			Balanced: balanced,
			Actual:   actual,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ImportPositions reads implementation records pasted from a spreadsheet.
//
// The layout is sets of 2-column, 3-row entries repeated horizontally:
// the first row repeats each ticker twice, the second row holds the price
// in the second column of each pair, the third the quantity held. The two
// ticker cells of a pair must agree.
func ImportPositions(r io.Reader) ([]Position, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && len(rows) < 3 {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rows = append(rows, strings.Split(text, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("want 3 rows of implementation records, got %d", len(rows))
	}

	tickers := cells(rows[0])
	if len(tickers)%2 != 0 {
		return nil, fmt.Errorf("ticker row must hold pairs of symbols, got %d cells", len(tickers))
	}
	n := len(tickers) / 2
	var positions []Position
	for i := 0; i < n; i++ {
		a, b := tickers[2*i], tickers[2*i+1]
		if a != b {
			return nil, fmt.Errorf("ticker symbols must match between columns: %q and %q do not", a, b)
		}
		positions = append(positions, Position{Ticker: a})
	}

	prices := cells(rows[1])
	if len(prices) != n {
		return nil, fmt.Errorf("want %d prices, got %d", n, len(prices))
	}
	quantities := cells(rows[2])
	if len(quantities) != n {
		return nil, fmt.Errorf("want %d quantities, got %d", n, len(quantities))
	}
	for i := range positions {
		price, err := parseAmount(prices[i])
		if err != nil {
			return nil, fmt.Errorf("price for %s: %w", positions[i].Ticker, err)
		}
		qty, err := ParseQuantity(strings.ReplaceAll(quantities[i], ",", ""))
		if err != nil {
			return nil, fmt.Errorf("quantity for %s: %w", positions[i].Ticker, err)
		}
		positions[i].Price = price
		positions[i].Quantity = qty
	}
	return positions, nil
}

// cells returns the non-empty trimmed cells of a tab-split row.
func cells(row []string) []string {
	var out []string
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// JSONPaths locates position fields inside an arbitrary broker JSON export.
// The zero value matches a plain `[{"ticker":..,"price":..,"quantity":..}]`
// array.
type JSONPaths struct {
	Records  string // path to the array of records, default "$"
	Ticker   string // path inside one record, default "$.ticker"
	Price    string // default "$.price"
	Quantity string // default "$.quantity"
}

// ImportPositionsJSON reads positions out of a JSON document using the
// given jsonpath expressions, so exports from different brokers can be
// consumed without reshaping them first.
func ImportPositionsJSON(r io.Reader, paths JSONPaths) ([]Position, error) {
	if paths.Records == "" {
		paths.Records = "$"
	}
	if paths.Ticker == "" {
		paths.Ticker = "$.ticker"
	}
	if paths.Price == "" {
		paths.Price = "$.price"
	}
	if paths.Quantity == "" {
		paths.Quantity = "$.quantity"
	}

	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse JSON export: %w", err)
	}
	jrecords, err := jsonpath.Get(paths.Records, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating records path %q: %w", paths.Records, err)
	}
	jlist, ok := jrecords.([]any)
	if !ok {
		return nil, fmt.Errorf("records path %q does not select an array", paths.Records)
	}

	var positions []Position
	for i, jrec := range jlist {
		ticker, err := jsonString(paths.Ticker, jrec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		price, err := jsonDecimal(paths.Price, jrec)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, ticker, err)
		}
		qty, err := jsonDecimal(paths.Quantity, jrec)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, ticker, err)
		}
		positions = append(positions, Position{Ticker: ticker, Price: USD(price), Quantity: Q(qty)})
	}
	return positions, nil
}

func jsonString(path string, jobj any) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return s, nil
}

func jsonDecimal(path string, jobj any) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	default:
		return decimal.Zero, fmt.Errorf("%q is not a number: %v", path, jval)
	}
}

// ParseDesiredValue interprets a desired total portfolio value against the
// current one and returns the implied cash flow. A '+' or '-' prefix means
// an offset from the current value ("+500" infuses $500); a plain amount is
// the desired total itself; an empty string keeps the current value.
func ParseDesiredValue(s string, current Money) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return USD(0), nil
	}
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return Money{}, fmt.Errorf("unable to parse desired portfolio value %q", s)
	}
	amount, err := parseAmount(strings.TrimPrefix(s, "+"))
	if err != nil {
		return Money{}, err
	}
	if m[1] != "" {
		return amount, nil // signed offset is the cash flow itself
	}
	return amount.Sub(current), nil
}
