// Package validation implements the field-local checks applied to a quote
// submission. Every field is validated independently and all failures are
// reported together, never fail-fast on the first one.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"quote-service/internal/i18n"
	"quote-service/internal/models"
)

const (
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmirate       = "emirate"
	FieldPrivacyPolicy = "privacyPolicy"
	FieldVehicleModel  = "vehicleModel"
	FieldVehicleYear   = "vehicleYear"
	FieldAge           = "age"
	FieldCoverage      = "coverage"
)

const minVehicleYear = 1980

// Free text may contain Latin letters, Arabic letters, Arabic-Indic digits,
// digits, spaces and ". , -". Anything else is rejected outright.
var (
	safePattern        = regexp.MustCompile(`^[a-zA-Z0-9\s.,\-\x{0621}-\x{064A}\x{0660}-\x{0669}]+$`)
	arabicNamePattern  = regexp.MustCompile(`^[\x{0621}-\x{064A}\s]+$`)
	englishNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern       = regexp.MustCompile(`^\+\d{9,15}$`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Context carries the submission-level state a single field check needs.
type Context struct {
	InsuranceType models.InsuranceType
	Language      models.Language
	PhoneCode     string
}

// Field validates one field value and returns a localized error message,
// or "" when the value is acceptable.
func Field(name, value string, ctx Context) string {
	if name == FieldPrivacyPolicy {
		if value != "true" {
			return i18n.T(ctx.Language, i18n.KeyPrivacyPolicyRequired)
		}
		return ""
	}

	val := strings.TrimSpace(value)

	if isRequired(name, ctx.InsuranceType) && val == "" {
		return i18n.T(ctx.Language, i18n.KeyRequired)
	}
	if val == "" {
		return ""
	}

	if name != FieldPhone && !safePattern.MatchString(val) {
		return i18n.T(ctx.Language, i18n.KeyInvalidCharacters)
	}

	switch name {
	case FieldName:
		if ctx.Language == models.LanguageAR {
			if !arabicNamePattern.MatchString(val) {
				return i18n.T(ctx.Language, i18n.KeyNameMustBeArabic)
			}
		} else if !englishNamePattern.MatchString(val) {
			return i18n.T(ctx.Language, i18n.KeyNameMustBeEnglish)
		}
	case FieldPhone:
		full := ctx.PhoneCode + whitespacePattern.ReplaceAllString(value, "")
		if !phonePattern.MatchString(full) {
			return i18n.T(ctx.Language, i18n.KeyInvalidPhone)
		}
	case FieldVehicleYear:
		year, err := strconv.Atoi(val)
		if err != nil || year < minVehicleYear || year > time.Now().Year() {
			return i18n.T(ctx.Language, i18n.KeyInvalidYear)
		}
	case FieldAge:
		age, err := strconv.Atoi(val)
		if err != nil || age < 0 || age > 100 {
			return i18n.T(ctx.Language, i18n.KeyInvalidAge)
		}
	}

	return ""
}

// ValidateSubmission checks every field of the submission and returns all
// failing fields at once, keyed by field name.
func ValidateSubmission(sub models.QuoteSubmission) map[string]string {
	ctx := Context{
		InsuranceType: models.InsuranceType(sub.InsuranceType),
		Language:      language(sub.Language),
		PhoneCode:     strings.TrimSpace(sub.PhoneCode),
	}

	values := map[string]string{
		FieldName:    sub.Name,
		FieldPhone:   sub.PhoneNumber,
		FieldEmirate: sub.Emirate,
	}
	if ctx.InsuranceType == models.InsuranceCar {
		values[FieldVehicleModel] = sub.VehicleModel
		values[FieldVehicleYear] = sub.VehicleYear
	} else {
		values[FieldAge] = sub.Age
		values[FieldCoverage] = sub.Coverage
	}
	values[FieldPrivacyPolicy] = strconv.FormatBool(sub.PrivacyPolicy)

	errors := make(map[string]string)
	for name, value := range values {
		if msg := Field(name, value, ctx); msg != "" {
			errors[name] = msg
		}
	}
	return errors
}

// StripPhone joins the dial code and national part with all whitespace
// removed, the exact string the phone rule was checked against.
func StripPhone(code, number string) string {
	return strings.TrimSpace(code) + whitespacePattern.ReplaceAllString(number, "")
}

func isRequired(name string, t models.InsuranceType) bool {
	switch name {
	case FieldName, FieldPhone, FieldEmirate:
		return true
	case FieldAge, FieldCoverage:
		return t == models.InsuranceHealth
	case FieldVehicleModel, FieldVehicleYear:
		return t == models.InsuranceCar
	}
	return false
}

func language(raw string) models.Language {
	if models.Language(raw) == models.LanguageAR {
		return models.LanguageAR
	}
	return models.LanguageEN
}
