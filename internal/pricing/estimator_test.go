package pricing

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quote-service/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestEstimator() *Estimator {
	rng := rand.New(rand.NewSource(42))
	return NewEstimator(DefaultTable(), 0).WithRand(rng.Intn)
}

func carRequest(year int, emirate models.Emirate) models.QuoteRequest {
	return models.QuoteRequest{
		InsuranceType:         models.InsuranceCar,
		Name:                  "John Doe",
		Phone:                 "+971501234567",
		Emirate:               emirate,
		PrivacyPolicyAccepted: true,
		Car: &models.CarDetails{
			VehicleModel: "Toyota Camry",
			VehicleYear:  year,
		},
	}
}

func healthRequest(age int, coverage models.HealthCoverage, emirate models.Emirate) models.QuoteRequest {
	return models.QuoteRequest{
		InsuranceType:         models.InsuranceHealth,
		Name:                  "John Doe",
		Phone:                 "+971501234567",
		Emirate:               emirate,
		PrivacyPolicyAccepted: true,
		Health: &models.HealthDetails{
			Age:      age,
			Coverage: coverage,
		},
	}
}

// ============================================================================
// TEST SUITE 1: RULE MATCHING AND PRICE RANGES
// ============================================================================

func TestEstimate_HealthBasicDubai(t *testing.T) {
	// base 1200 * 1.2 = 1440 -> [round(1296/50)*50, round(1584/50)*50]
	est := newTestEstimator().Estimate(context.Background(), healthRequest(25, models.CoverageBasic, models.Dubai))

	assert.Equal(t, models.QuoteSuccess, est.Status)
	assert.Equal(t, 1300, est.RangeLow)
	assert.Equal(t, 1600, est.RangeHigh)
}

func TestEstimate_CarSharjah2012(t *testing.T) {
	// base 2800 * 1.0 -> [round(2520/50)*50, round(3080/50)*50]
	est := newTestEstimator().Estimate(context.Background(), carRequest(2012, models.Sharjah))

	assert.Equal(t, models.QuoteSuccess, est.Status)
	assert.Equal(t, 2500, est.RangeLow)
	assert.Equal(t, 3100, est.RangeHigh)
}

func TestEstimate_UnmatchedYearIsErrorOutcome(t *testing.T) {
	est := newTestEstimator().Estimate(context.Background(), carRequest(1990, models.Sharjah))

	assert.Equal(t, models.QuoteError, est.Status)
	assert.Equal(t, 0, est.RangeLow)
	assert.Equal(t, 0, est.RangeHigh)
}

func TestEstimate_YearBoundariesAreInclusive(t *testing.T) {
	matched := []int{2010, 2014, 2015, 2019, 2020, 2024}
	for _, year := range matched {
		est := newTestEstimator().Estimate(context.Background(), carRequest(year, models.Sharjah))
		assert.Equal(t, models.QuoteSuccess, est.Status, "year %d should match a rule", year)
	}

	unmatched := []int{2009, 2025}
	for _, year := range unmatched {
		est := newTestEstimator().Estimate(context.Background(), carRequest(year, models.Sharjah))
		assert.Equal(t, models.QuoteError, est.Status, "year %d should not match any rule", year)
	}
}

func TestEstimate_AgeBoundariesAreInclusive(t *testing.T) {
	matched := []int{18, 30, 31, 45, 46, 100}
	for _, age := range matched {
		est := newTestEstimator().Estimate(context.Background(), healthRequest(age, models.CoverageBasic, models.Sharjah))
		assert.Equal(t, models.QuoteSuccess, est.Status, "age %d should match a rule", age)
	}

	unmatched := []int{17, 101}
	for _, age := range unmatched {
		est := newTestEstimator().Estimate(context.Background(), healthRequest(age, models.CoverageBasic, models.Sharjah))
		assert.Equal(t, models.QuoteError, est.Status, "age %d should not match any rule", age)
	}
}

func TestEstimate_MissingVariantFieldsNeverMatch(t *testing.T) {
	noCar := models.QuoteRequest{InsuranceType: models.InsuranceCar, Emirate: models.Dubai}
	assert.Equal(t, models.QuoteError, newTestEstimator().Estimate(context.Background(), noCar).Status)

	noHealth := models.QuoteRequest{InsuranceType: models.InsuranceHealth, Emirate: models.Dubai}
	assert.Equal(t, models.QuoteError, newTestEstimator().Estimate(context.Background(), noHealth).Status)

	noCoverage := healthRequest(25, "", models.Dubai)
	assert.Equal(t, models.QuoteError, newTestEstimator().Estimate(context.Background(), noCoverage).Status)
}

func TestEstimate_UnknownEmirateUsesUnitMultiplier(t *testing.T) {
	est := newTestEstimator().Estimate(context.Background(), carRequest(2012, "Atlantis"))

	assert.Equal(t, models.QuoteSuccess, est.Status)
	assert.Equal(t, 2500, est.RangeLow)
	assert.Equal(t, 3100, est.RangeHigh)
}

func TestEstimate_FirstDeclaredRuleWinsOnOverlap(t *testing.T) {
	table := NewTable([]Rule{
		{Type: models.InsuranceCar, YearMin: 2000, YearMax: 2024, BasePrice: 1000},
		{Type: models.InsuranceCar, YearMin: 2010, YearMax: 2014, BasePrice: 9999},
	})
	rule, ok := table.Match(carRequest(2012, models.Sharjah))

	assert.True(t, ok)
	assert.Equal(t, 1000.0, rule.BasePrice, "earliest-declared rule must win when ranges overlap")
}

func TestEstimate_RangeInvariants(t *testing.T) {
	for year := 2010; year <= 2024; year++ {
		for _, emirate := range models.Emirates {
			est := newTestEstimator().Estimate(context.Background(), carRequest(year, emirate))

			assert.Equal(t, models.QuoteSuccess, est.Status)
			assert.LessOrEqual(t, est.RangeLow, est.RangeHigh, "year=%d emirate=%s", year, emirate)
			assert.Zero(t, est.RangeLow%50, "low bound must be a multiple of 50")
			assert.Zero(t, est.RangeHigh%50, "high bound must be a multiple of 50")
		}
	}
}

// ============================================================================
// TEST SUITE 2: CONFIDENCE SCORES
// ============================================================================

func TestEstimate_ConfidenceBands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	estimator := NewEstimator(DefaultTable(), 0).WithRand(rng.Intn)

	for i := 0; i < 50; i++ {
		success := estimator.Estimate(context.Background(), carRequest(2012, models.Dubai))
		assert.GreaterOrEqual(t, success.ConfidenceScore, 80)
		assert.LessOrEqual(t, success.ConfidenceScore, 99)

		miss := estimator.Estimate(context.Background(), carRequest(1990, models.Dubai))
		assert.GreaterOrEqual(t, miss.ConfidenceScore, 10)
		assert.LessOrEqual(t, miss.ConfidenceScore, 39)
	}
}

// ============================================================================
// TEST SUITE 3: SIMULATED LATENCY
// ============================================================================

func TestEstimate_DelayIsConfigurable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	estimator := NewEstimator(DefaultTable(), 30*time.Millisecond).WithRand(rng.Intn)

	start := time.Now()
	estimator.Estimate(context.Background(), carRequest(2012, models.Dubai))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestEstimate_CancelledContextSkipsDelay(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	estimator := NewEstimator(DefaultTable(), 5*time.Second).WithRand(rng.Intn)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	est := estimator.Estimate(ctx, carRequest(2012, models.Dubai))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, models.QuoteSuccess, est.Status, "a cancelled wait still produces an estimate")
}
