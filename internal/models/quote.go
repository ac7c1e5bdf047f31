package models

import "time"

// CarDetails carries the car-insurance variant of a quote request.
type CarDetails struct {
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  int    `json:"vehicle_year"`
}

// HealthDetails carries the health-insurance variant of a quote request.
type HealthDetails struct {
	Age      int            `json:"age"`
	Coverage HealthCoverage `json:"coverage"`
}

// QuoteRequest is the assembled, cleaned lead. Exactly one of Car or Health
// is set, selected by InsuranceType.
type QuoteRequest struct {
	InsuranceType         InsuranceType  `json:"insurance_type"`
	Name                  string         `json:"name"`
	Phone                 string         `json:"phone"`
	Emirate               Emirate        `json:"emirate"`
	PrivacyPolicyAccepted bool           `json:"privacy_policy_accepted"`
	Car                   *CarDetails    `json:"car,omitempty"`
	Health                *HealthDetails `json:"health,omitempty"`
}

// Estimate is the estimator's verdict before presentation formatting.
type Estimate struct {
	RangeLow        int         `json:"range_low"`
	RangeHigh       int         `json:"range_high"`
	Status          QuoteStatus `json:"status"`
	ConfidenceScore int         `json:"confidence_score"`
}

// QuoteResult is the per-submission result record. It lives only for the
// session: the store replaces it on every new submission and expires it.
type QuoteResult struct {
	ID              string          `json:"id"`
	FormData        QuoteRequest    `json:"form_data"`
	PriceRange      string          `json:"price_range"`
	Status          QuoteStatus     `json:"status"`
	ConfidenceScore int             `json:"confidence_score"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	WhatsAppLink    string          `json:"whatsapp_link"`
	Language        Language        `json:"language"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PriceRangeNA is the literal shown when no estimate could be produced.
const PriceRangeNA = "N/A"
