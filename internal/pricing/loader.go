package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"

	"quote-service/internal/models"
)

// The broker maintains the rule sheet outside this service (a spreadsheet
// or a database table). Whatever the source, the table is read once at
// startup and is immutable afterwards.

// LoadFromPostgres reads the pricing_rules table in declared order.
func LoadFromPostgres(ctx context.Context, db *sqlx.DB) (*Table, error) {
	query := `SELECT insurance_type, year_min, year_max, age_min, age_max, coverage, base_price
		FROM pricing_rules ORDER BY position ASC`

	var rules []Rule
	if err := db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}
	if err := checkRules(rules); err != nil {
		return nil, err
	}

	slog.Info("Loaded pricing rules from postgres", "rule_count", len(rules))
	return NewTable(rules), nil
}

// LoadFromSheet reads an xlsx rule sheet. Expected header row:
// insurance_type, year_min, year_max, age_min, age_max, coverage, base_price.
func LoadFromSheet(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule sheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("rule sheet %q has no data rows", path)
	}

	var rules []Rule
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		rule, err := parseSheetRow(row)
		if err != nil {
			return nil, fmt.Errorf("rule sheet row %d: %w", i+2, err)
		}
		rules = append(rules, rule)
	}
	if err := checkRules(rules); err != nil {
		return nil, err
	}

	slog.Info("Loaded pricing rules from sheet", "path", path, "rule_count", len(rules))
	return NewTable(rules), nil
}

func parseSheetRow(row []string) (Rule, error) {
	rule := Rule{
		Type:     models.InsuranceType(strings.TrimSpace(cell(row, 0))),
		Coverage: models.HealthCoverage(strings.TrimSpace(cell(row, 5))),
	}

	var err error
	if rule.YearMin, err = cellInt(row, 1); err != nil {
		return Rule{}, err
	}
	if rule.YearMax, err = cellInt(row, 2); err != nil {
		return Rule{}, err
	}
	if rule.AgeMin, err = cellInt(row, 3); err != nil {
		return Rule{}, err
	}
	if rule.AgeMax, err = cellInt(row, 4); err != nil {
		return Rule{}, err
	}

	base := strings.TrimSpace(cell(row, 6))
	if base == "" {
		return Rule{}, fmt.Errorf("missing base_price")
	}
	if rule.BasePrice, err = strconv.ParseFloat(base, 64); err != nil {
		return Rule{}, fmt.Errorf("invalid base_price %q", base)
	}
	return rule, nil
}

func checkRules(rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("pricing rule source is empty")
	}
	for i, r := range rules {
		if r.Type != models.InsuranceCar && r.Type != models.InsuranceHealth {
			return fmt.Errorf("rule %d: unknown insurance type %q", i+1, r.Type)
		}
		if r.BasePrice <= 0 {
			return fmt.Errorf("rule %d: base price must be positive", i+1)
		}
		switch r.Type {
		case models.InsuranceCar:
			if r.YearMin > r.YearMax {
				return fmt.Errorf("rule %d: year range [%d,%d] is inverted", i+1, r.YearMin, r.YearMax)
			}
		case models.InsuranceHealth:
			if r.AgeMin > r.AgeMax {
				return fmt.Errorf("rule %d: age range [%d,%d] is inverted", i+1, r.AgeMin, r.AgeMax)
			}
			if !models.IsValidCoverage(r.Coverage) {
				return fmt.Errorf("rule %d: unknown coverage %q", i+1, r.Coverage)
			}
		}
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func cellInt(row []string, i int) (int, error) {
	raw := strings.TrimSpace(cell(row, i))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return n, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
