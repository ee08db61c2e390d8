package fifo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Andzelika002/FIFO-Trade-Calculator/date"
	"github.com/shopspring/decimal"
)

// this file contains functions to read the trade import format:
// semicolon separated text, one header line naming the columns, one
// trade per following line.

// Delimiter separates columns in the trade import format.
const Delimiter = ";"

// Column names of the import format, matched case-insensitively.
const (
	colTradeID  = "tradeid"
	colType     = "type"
	colDate     = "date"
	colClient   = "client" // optional
	colSecurity = "security"
	colAmount   = "amount"
	colPrice    = "price"
	colFee      = "fee"
)

// requiredColumns are the columns a header must declare. Client is optional.
var requiredColumns = []string{colTradeID, colType, colDate, colSecurity, colAmount, colPrice, colFee}

// Issue is one problem found while reading one row or field of the
// import format. Issues accumulate in order, they are diagnostics next
// to the trade stream, not errors thrown past the importer.
type Issue struct {
	Line    int    // 1-based line number within the non-empty lines, 0 for file-level
	Raw     string // the raw offending line
	Field   string // offending column name, empty for structural issues
	Message string
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("line %d: field %q: %s", i.Line, i.Field, i.Message)
	}
	if i.Line > 0 {
		return fmt.Sprintf("line %d: %s", i.Line, i.Message)
	}
	return i.Message
}

// ImportResult holds everything a successful (possibly partial) import produced.
type ImportResult struct {
	Trades []Trade // successfully parsed trades, in file order
	Issues []Issue // ordered diagnostics for rows that contributed no trade
}

// Clients returns the distinct non-empty client names across the
// imported trades, case-insensitively sorted. Names differing only in
// case count as one client (the filter matches case-insensitively too);
// the first spelling seen in the file wins.
func (r *ImportResult) Clients() []string {
	seen := make(map[string]bool)
	var clients []string
	for _, t := range r.Trades {
		key := strings.ToLower(t.Client)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		clients = append(clients, t.Client)
	}
	slices.SortStableFunc(clients, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return clients
}

// ImportFile imports trades from the file at path.
func ImportFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trade file: %w", err)
	}
	defer f.Close()
	return ImportTrades(f)
}

// ImportTrades imports trades from 'r' in the trade import format.
//
// File-level problems (empty input, missing required columns, read errors)
// are returned as an error with no result. Row and field level problems
// never abort the import: the offending row contributes no trade and one
// Issue per problem is accumulated, so a parseable row is never discarded
// because a sibling row failed.
func ImportTrades(r io.Reader) (*ImportResult, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read trade file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("trade file is empty")
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("trade file has no data rows, want a header line and at least one trade")
	}

	columns, width, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for n, line := range lines[1:] {
		trade, issues := parseRow(n+2, line, columns, width)
		if len(issues) > 0 {
			result.Issues = append(result.Issues, issues...)
			continue
		}
		result.Trades = append(result.Trades, trade)
	}
	return result, nil
}

// parseHeader maps column names to their position and returns the raw
// column count. Names are matched case-insensitively and
// whitespace-trimmed. All required columns must be present, missing
// ones are reported in one combined error.
func parseHeader(line string) (map[string]int, int, error) {
	names := strings.Split(line, Delimiter)
	columns := make(map[string]int)
	for i, name := range names {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("trade file header is missing required column(s): %s", strings.Join(missing, ", "))
	}
	return columns, len(names), nil
}

// parseRow converts one data line into a Trade. The returned issue list
// is empty exactly when the trade is valid; a row with any failed field
// contributes no trade at all.
func parseRow(n int, line string, columns map[string]int, width int) (Trade, []Issue) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != width {
		return Trade{}, []Issue{{
			Line:    n,
			Raw:     line,
			Message: fmt.Sprintf("want %d fields, got %d", width, len(fields)),
		}}
	}

	var issues []Issue
	fail := func(field, msg string) {
		issues = append(issues, Issue{Line: n, Raw: line, Field: field, Message: msg})
	}
	// field returns the trimmed value of a named column, failing on
	// unmapped or empty values.
	field := func(name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(fields) {
			fail(name, "column is not mapped")
			return "", false
		}
		v := strings.TrimSpace(fields[i])
		if v == "" {
			fail(name, "value is empty")
			return "", false
		}
		return v, true
	}

	var trade Trade

	if v, ok := field(colTradeID); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fail(colTradeID, fmt.Sprintf("cannot parse %q as an integer", v))
		} else {
			trade.ID = id
		}
	}
	if v, ok := field(colType); ok {
		side, err := ParseSide(v)
		if err != nil {
			fail(colType, err.Error())
		} else {
			trade.Side = side
		}
	}
	if v, ok := field(colDate); ok {
		d, err := date.Parse(v)
		if err != nil {
			fail(colDate, fmt.Sprintf("cannot parse %q as a date, want %s", v, date.Format))
		} else {
			trade.Date = d
		}
	}
	if v, ok := field(colSecurity); ok {
		trade.Security = v
	}
	if v, ok := field(colAmount); ok {
		q, err := strconv.ParseInt(v, 10, 64)
		switch {
		case err != nil:
			fail(colAmount, fmt.Sprintf("cannot parse %q as an integer", v))
		case q < 0:
			fail(colAmount, fmt.Sprintf("quantity %d is negative", q))
		default:
			trade.Quantity = q
		}
	}
	if v, ok := field(colPrice); ok {
		p, err := parseLocaleDecimal(v)
		switch {
		case err != nil:
			fail(colPrice, fmt.Sprintf("cannot parse %q as a decimal", v))
		case p.IsNegative():
			fail(colPrice, fmt.Sprintf("price %s is negative", p))
		default:
			trade.Price = M(p, "")
		}
	}
	if v, ok := field(colFee); ok {
		f, err := parseLocaleDecimal(v)
		switch {
		case err != nil:
			fail(colFee, fmt.Sprintf("cannot parse %q as a decimal", v))
		case f.IsNegative():
			fail(colFee, fmt.Sprintf("fee %s is negative", f))
		default:
			trade.Fee = M(f, "")
		}
	}
	// client is the only optional column, an absent or empty value is fine.
	if i, ok := columns[colClient]; ok && i < len(fields) {
		trade.Client = strings.TrimSpace(fields[i])
	}

	if len(issues) > 0 {
		return Trade{}, issues
	}
	return trade, nil
}

// parseLocaleDecimal parses a decimal in the import locale convention:
// comma as decimal separator, dot (or space) as thousands grouping.
// "1.234,56" parses as 1234.56.
func parseLocaleDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
