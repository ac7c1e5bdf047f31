package models

// QuoteSubmission is the raw form payload as the front end sends it: free
// text everywhere, phone split into dial code and national part. Cleaning
// and numeric coercion happen in the pipeline after validation.
type QuoteSubmission struct {
	InsuranceType string `json:"insurance_type"`
	Name          string `json:"name"`
	PhoneCode     string `json:"phone_code"`
	PhoneNumber   string `json:"phone_number"`
	Emirate       string `json:"emirate"`
	VehicleModel  string `json:"vehicle_model,omitempty"`
	VehicleYear   string `json:"vehicle_year,omitempty"`
	Age           string `json:"age,omitempty"`
	Coverage      string `json:"coverage,omitempty"`
	PrivacyPolicy bool   `json:"privacy_policy"`
	Language      string `json:"language,omitempty"`
}

// CountryCode is one dial-code option offered next to the phone field.
type CountryCode struct {
	ISO  string `json:"iso"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountryCodes lists the supported dial codes; the first entry is the default.
var CountryCodes = []CountryCode{
	{ISO: "AE", Code: "+971", Name: "United Arab Emirates"},
	{ISO: "SA", Code: "+966", Name: "Saudi Arabia"},
	{ISO: "OM", Code: "+968", Name: "Oman"},
	{ISO: "QA", Code: "+974", Name: "Qatar"},
	{ISO: "BH", Code: "+973", Name: "Bahrain"},
	{ISO: "KW", Code: "+965", Name: "Kuwait"},
	{ISO: "EG", Code: "+20", Name: "Egypt"},
	{ISO: "JO", Code: "+962", Name: "Jordan"},
	{ISO: "LB", Code: "+961", Name: "Lebanon"},
	{ISO: "IN", Code: "+91", Name: "India"},
	{ISO: "PK", Code: "+92", Name: "Pakistan"},
	{ISO: "PH", Code: "+63", Name: "Philippines"},
	{ISO: "GB", Code: "+44", Name: "United Kingdom"},
	{ISO: "US", Code: "+1", Name: "United States"},
}
