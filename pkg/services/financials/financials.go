// Package financials merges the yearly expenses and income exports into one
// JSON document for the dashboard.
package financials

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/service-reports/pkg/store/fs"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	ExpensesSuffix = "expenses.csv"
	IncomeSuffix   = "income.csv"

	TypeExpense = "expense"
	TypeIncome  = "income"
)

var (
	leadingInt    = regexp.MustCompile(`^[+-]?\d+`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	amountNoise   = regexp.MustCompile(`[,\s$]`)
)

// row is one line of an export: Year,Category,Source,Amount.
type row struct {
	Year     string `csv:"Year"`
	Category string `csv:"Category"`
	Source   string `csv:"Source"`
	Amount   string `csv:"Amount"`
}

type Entry struct {
	Year     int
	Category string
	Source   string
	Amount   decimal.Decimal
	Type     string
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year     int         `json:"year"`
		Category string      `json:"category"`
		Source   string      `json:"source"`
		Amount   json.Number `json:"amount"`
		Type     string      `json:"type"`
	}{e.Year, e.Category, e.Source, json.Number(e.Amount.String()), e.Type})
}

type Financials struct {
	Expenses []Entry `json:"expenses"`
	Income   []Entry `json:"income"`
	Years    []int   `json:"years"`
}

// Consolidate reads the expenses and income exports found in inputDir and
// writes the merged document to outputPath.
func Consolidate(ctx context.Context, inputDir, outputPath string) (*Financials, error) {
	logger := zerolog.Ctx(ctx)

	expensesFile, err := findExport(inputDir, ExpensesSuffix)
	if err != nil {
		return nil, err
	}
	incomeFile, err := findExport(inputDir, IncomeSuffix)
	if err != nil {
		return nil, err
	}

	var result Financials
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Expenses, err = readExport(expensesFile, TypeExpense)
		return err
	})
	g.Go(func() error {
		var err error
		result.Income, err = readExport(incomeFile, TypeIncome)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Years = years(result.Expenses, result.Income)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal financials: %w", err)
	}
	if err := fs.WriteFile(outputPath, data); err != nil {
		return nil, err
	}
	logger.Info().
		Str("output", outputPath).
		Int("expenses", len(result.Expenses)).
		Int("income", len(result.Income)).
		Msg("wrote financial data")
	return &result, nil
}

// findExport returns the first file in dir whose name ends with suffix,
// ignoring case.
func findExport(dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no %s file found in %s", suffix, dir)
}

func readExport(path, entryType string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rows []row
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		year, ok := parseYear(r.Year)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Year:     year,
			Category: strings.TrimSpace(r.Category),
			Source:   strings.TrimSpace(r.Source),
			Amount:   ParseAmount(r.Amount),
			Type:     entryType,
		})
	}
	return entries, nil
}

// parseYear reads the leading integer of s, so "2024 (est.)" is 2024.
func parseYear(s string) (int, bool) {
	digits := leadingInt.FindString(strings.TrimSpace(s))
	if digits == "" {
		return 0, false
	}
	year, err := strconv.Atoi(digits)
	return year, err == nil
}

// ParseAmount reads a currency cell such as " $43,533.10 ". Empty or
// unreadable cells are zero.
func ParseAmount(s string) decimal.Decimal {
	number := leadingNumber.FindString(amountNoise.ReplaceAllString(s, ""))
	if number == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(number, "."))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func years(groups ...[]Entry) []int {
	seen := make(map[int]struct{})
	out := []int{}
	for _, entries := range groups {
		for _, e := range entries {
			if _, ok := seen[e.Year]; !ok {
				seen[e.Year] = struct{}{}
				out = append(out, e.Year)
			}
		}
	}
	sort.Ints(out)
	return out
}
