package models

type InsuranceType string

const (
	InsuranceCar    InsuranceType = "car"
	InsuranceHealth InsuranceType = "health"
)

type Emirate string

const (
	AbuDhabi     Emirate = "Abu Dhabi"
	Dubai        Emirate = "Dubai"
	Sharjah      Emirate = "Sharjah"
	Ajman        Emirate = "Ajman"
	UmmAlQuwain  Emirate = "Umm Al Quwain"
	RasAlKhaimah Emirate = "Ras Al Khaimah"
	Fujairah     Emirate = "Fujairah"
)

// Emirates lists the seven regions in their declared order.
var Emirates = []Emirate{
	AbuDhabi,
	Dubai,
	Sharjah,
	Ajman,
	UmmAlQuwain,
	RasAlKhaimah,
	Fujairah,
}

type HealthCoverage string

const (
	CoverageBasic    HealthCoverage = "basic"
	CoverageEnhanced HealthCoverage = "enhanced"
	CoveragePremium  HealthCoverage = "premium"
)

var HealthCoverageOptions = []HealthCoverage{
	CoverageBasic,
	CoverageEnhanced,
	CoveragePremium,
}

func IsValidCoverage(c HealthCoverage) bool {
	switch c {
	case CoverageBasic, CoverageEnhanced, CoveragePremium:
		return true
	default:
		return false
	}
}

type QuoteStatus string

const (
	QuoteSuccess QuoteStatus = "success"
	QuoteError   QuoteStatus = "error"
)

type Language string

const (
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// PipelineState tracks a submission through the lead pipeline:
// validating -> (rejected | submitting) -> (succeeded | failed).
type PipelineState string

const (
	PipelineValidating PipelineState = "validating"
	PipelineRejected   PipelineState = "rejected"
	PipelineSubmitting PipelineState = "submitting"
	PipelineSucceeded  PipelineState = "succeeded"
	PipelineFailed     PipelineState = "failed"
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ClassifyConfidence buckets a 0-100 confidence score for presentation.
func ClassifyConfidence(score int) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score < 50:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}
