// Package pricing implements the ballpark estimator: a static rule table
// keyed by insurance type, an emirate multiplier, and a ±10% range rounded
// to 50 AED increments.
package pricing

import (
	"quote-service/internal/models"
)

// Rule is one row of the pricing table. Car rules use the year range,
// health rules use the age range plus coverage tier.
type Rule struct {
	Type      models.InsuranceType  `db:"insurance_type"`
	YearMin   int                   `db:"year_min"`
	YearMax   int                   `db:"year_max"`
	AgeMin    int                   `db:"age_min"`
	AgeMax    int                   `db:"age_max"`
	Coverage  models.HealthCoverage `db:"coverage"`
	BasePrice float64               `db:"base_price"`
}

// Table is the immutable rule set plus the per-emirate multipliers.
// It is built once at process start and never mutated afterwards.
type Table struct {
	rules       []Rule
	multipliers map[models.Emirate]float64
}

// defaultRules mirrors the broker's simplified MVP sheet.
var defaultRules = []Rule{
	{Type: models.InsuranceCar, YearMin: 2020, YearMax: 2024, BasePrice: 1500},
	{Type: models.InsuranceCar, YearMin: 2015, YearMax: 2019, BasePrice: 2000},
	{Type: models.InsuranceCar, YearMin: 2010, YearMax: 2014, BasePrice: 2800},

	{Type: models.InsuranceHealth, AgeMin: 18, AgeMax: 30, Coverage: models.CoverageBasic, BasePrice: 1200},
	{Type: models.InsuranceHealth, AgeMin: 18, AgeMax: 30, Coverage: models.CoverageEnhanced, BasePrice: 2500},
	{Type: models.InsuranceHealth, AgeMin: 18, AgeMax: 30, Coverage: models.CoveragePremium, BasePrice: 5000},
	{Type: models.InsuranceHealth, AgeMin: 31, AgeMax: 45, Coverage: models.CoverageBasic, BasePrice: 1800},
	{Type: models.InsuranceHealth, AgeMin: 31, AgeMax: 45, Coverage: models.CoverageEnhanced, BasePrice: 3500},
	{Type: models.InsuranceHealth, AgeMin: 31, AgeMax: 45, Coverage: models.CoveragePremium, BasePrice: 7000},
	{Type: models.InsuranceHealth, AgeMin: 46, AgeMax: 100, Coverage: models.CoverageBasic, BasePrice: 3000},
	{Type: models.InsuranceHealth, AgeMin: 46, AgeMax: 100, Coverage: models.CoverageEnhanced, BasePrice: 6000},
	{Type: models.InsuranceHealth, AgeMin: 46, AgeMax: 100, Coverage: models.CoveragePremium, BasePrice: 12000},
}

var defaultMultipliers = map[models.Emirate]float64{
	models.Dubai:        1.2,
	models.AbuDhabi:     1.15,
	models.Sharjah:      1.0,
	models.Ajman:        0.95,
	models.UmmAlQuwain:  0.9,
	models.RasAlKhaimah: 0.9,
	models.Fujairah:     0.85,
}

// DefaultTable returns the embedded rule set.
func DefaultTable() *Table {
	return NewTable(defaultRules)
}

// NewTable builds a table over the given rules, keeping their declared
// order, with the standard emirate multipliers.
func NewTable(rules []Rule) *Table {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Table{rules: owned, multipliers: defaultMultipliers}
}

// Len reports the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Match scans the table in declared order and returns the first rule that
// contains the request. Ranges are inclusive on both ends. A request whose
// variant fields are absent never matches; ranges are non-overlapping by
// construction, and if they ever were not, the earliest-declared rule wins.
func (t *Table) Match(req models.QuoteRequest) (Rule, bool) {
	switch req.InsuranceType {
	case models.InsuranceCar:
		if req.Car == nil || req.Car.VehicleYear == 0 {
			return Rule{}, false
		}
		for _, r := range t.rules {
			if r.Type != models.InsuranceCar {
				continue
			}
			if req.Car.VehicleYear >= r.YearMin && req.Car.VehicleYear <= r.YearMax {
				return r, true
			}
		}
	case models.InsuranceHealth:
		if req.Health == nil || req.Health.Age == 0 || req.Health.Coverage == "" {
			return Rule{}, false
		}
		for _, r := range t.rules {
			if r.Type != models.InsuranceHealth {
				continue
			}
			if req.Health.Age >= r.AgeMin && req.Health.Age <= r.AgeMax && req.Health.Coverage == r.Coverage {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Multiplier returns the emirate's pricing multiplier, 1.0 when unknown.
func (t *Table) Multiplier(e models.Emirate) float64 {
	if m, ok := t.multipliers[e]; ok {
		return m
	}
	return 1.0
}
