package pricing

import (
	"context"
	"math"
	"math/rand"
	"time"

	"quote-service/internal/models"
)

// Estimator turns a quote request into a price range with a confidence
// score. Estimate never fails: a request no rule covers is a normal
// outcome reported as QuoteError, not an error value.
type Estimator struct {
	table   *Table
	delay   time.Duration
	randInt func(n int) int
}

// NewEstimator builds an estimator over the given table. The delay stands
// in for the upstream pricing call the MVP does not make yet; pass zero in
// tests.
func NewEstimator(table *Table, delay time.Duration) *Estimator {
	return &Estimator{
		table:   table,
		delay:   delay,
		randInt: rand.Intn,
	}
}

// WithRand replaces the confidence-score source, for deterministic tests.
func (e *Estimator) WithRand(randInt func(n int) int) *Estimator {
	e.randInt = randInt
	return e
}

// Estimate computes the ballpark range for the request.
//
// On a rule match the base price is scaled by the emirate multiplier and
// widened into a ±10% band, both ends rounded to the nearest 50 AED, with
// a confidence score in [80,99]. On a miss it reports QuoteError with a
// zero range and a confidence score in [10,39].
func (e *Estimator) Estimate(ctx context.Context, req models.QuoteRequest) models.Estimate {
	e.wait(ctx)

	rule, ok := e.table.Match(req)
	if !ok {
		return models.Estimate{
			RangeLow:        0,
			RangeHigh:       0,
			Status:          models.QuoteError,
			ConfidenceScore: 10 + e.randInt(30),
		}
	}

	finalPrice := rule.BasePrice * e.table.Multiplier(req.Emirate)

	return models.Estimate{
		RangeLow:        roundTo50(finalPrice * 0.9),
		RangeHigh:       roundTo50(finalPrice * 1.1),
		Status:          models.QuoteSuccess,
		ConfidenceScore: 80 + e.randInt(20),
	}
}

func (e *Estimator) wait(ctx context.Context) {
	if e.delay <= 0 {
		return
	}
	timer := time.NewTimer(e.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func roundTo50(v float64) int {
	return int(math.Round(v/50.0)) * 50
}
