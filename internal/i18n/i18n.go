// Package i18n holds the bilingual text tables used for validation
// messages, the WhatsApp summary labels, and the PDF export.
package i18n

import (
	"fmt"
	"time"

	"quote-service/internal/models"
)

const (
	KeyRequired              = "required"
	KeyInvalidCharacters     = "invalidCharacters"
	KeyNameMustBeArabic      = "nameMustBeArabic"
	KeyNameMustBeEnglish     = "nameMustBeEnglish"
	KeyInvalidPhone          = "invalidPhone"
	KeyInvalidYear           = "invalidYear"
	KeyInvalidAge            = "invalidAge"
	KeyPrivacyPolicyRequired = "privacyPolicyRequired"
	KeyFillAllFields         = "fillAllFields"
	KeyCouldNotEstimate      = "couldNotEstimate"

	KeyCar           = "car"
	KeyHealth        = "health"
	KeyPDFTitle      = "pdfTitle"
	KeyPDFDate       = "pdfDate"
	KeyPDFName       = "pdfName"
	KeyPDFType       = "pdfInsuranceType"
	KeyPDFVehicle    = "pdfVehicle"
	KeyPDFAge        = "pdfAge"
	KeyPDFCoverage   = "pdfCoverage"
	KeyPDFEmirate    = "pdfEmirate"
	KeyPDFPrice      = "pdfEstimatedPrice"
	KeyPDFDisclaimer = "pdfDisclaimer"
	KeyPDFThankYou   = "pdfThankYou"
)

var messages = map[models.Language]map[string]string{
	models.LanguageEN: {
		KeyRequired:              "This field is required",
		KeyInvalidCharacters:     "Contains invalid characters",
		KeyNameMustBeArabic:      "Name must be in Arabic letters",
		KeyNameMustBeEnglish:     "Name must be in English letters",
		KeyInvalidPhone:          "Enter a valid phone number",
		KeyInvalidYear:           "Enter a valid vehicle year",
		KeyInvalidAge:            "Enter a valid age",
		KeyPrivacyPolicyRequired: "You must accept the privacy policy",
		KeyFillAllFields:         "Please fill all required fields correctly",
		KeyCouldNotEstimate:      "We could not estimate a price for your request",

		KeyCar:           "Car",
		KeyHealth:        "Health",
		KeyPDFTitle:      "Insurance Quote Summary",
		KeyPDFDate:       "Date",
		KeyPDFName:       "Name",
		KeyPDFType:       "Insurance Type",
		KeyPDFVehicle:    "Vehicle",
		KeyPDFAge:        "Age",
		KeyPDFCoverage:   "Coverage",
		KeyPDFEmirate:    "Emirate",
		KeyPDFPrice:      "Estimated Price Range",
		KeyPDFDisclaimer: "This is a non-binding ballpark estimate, not a final quote.",
		KeyPDFThankYou:   "Thank you for using InsuranceAE.com",
	},
	models.LanguageAR: {
		KeyRequired:              "هذا الحقل مطلوب",
		KeyInvalidCharacters:     "يحتوي على رموز غير مسموح بها",
		KeyNameMustBeArabic:      "يجب كتابة الاسم بحروف عربية",
		KeyNameMustBeEnglish:     "يجب كتابة الاسم بحروف إنجليزية",
		KeyInvalidPhone:          "أدخل رقم هاتف صحيح",
		KeyInvalidYear:           "أدخل سنة صنع صحيحة",
		KeyInvalidAge:            "أدخل عمراً صحيحاً",
		KeyPrivacyPolicyRequired: "يجب الموافقة على سياسة الخصوصية",
		KeyFillAllFields:         "يرجى تعبئة جميع الحقول المطلوبة بشكل صحيح",
		KeyCouldNotEstimate:      "تعذر تقدير سعر لطلبك",

		KeyCar:           "سيارات",
		KeyHealth:        "صحي",
		KeyPDFTitle:      "ملخص عرض سعر التأمين",
		KeyPDFDate:       "التاريخ",
		KeyPDFName:       "الاسم",
		KeyPDFType:       "نوع التأمين",
		KeyPDFVehicle:    "المركبة",
		KeyPDFAge:        "العمر",
		KeyPDFCoverage:   "التغطية",
		KeyPDFEmirate:    "الإمارة",
		KeyPDFPrice:      "نطاق السعر التقريبي",
		KeyPDFDisclaimer: "هذا تقدير تقريبي غير ملزم وليس عرض سعر نهائي.",
		KeyPDFThankYou:   "شكراً لاستخدامكم InsuranceAE.com",
	},
}

var emirateNames = map[models.Emirate]string{
	models.AbuDhabi:     "أبوظبي",
	models.Dubai:        "دبي",
	models.Sharjah:      "الشارقة",
	models.Ajman:        "عجمان",
	models.UmmAlQuwain:  "أم القيوين",
	models.RasAlKhaimah: "رأس الخيمة",
	models.Fujairah:     "الفجيرة",
}

var coverageNames = map[models.Language]map[models.HealthCoverage]string{
	models.LanguageEN: {
		models.CoverageBasic:    "Basic",
		models.CoverageEnhanced: "Enhanced",
		models.CoveragePremium:  "Premium",
	},
	models.LanguageAR: {
		models.CoverageBasic:    "أساسية",
		models.CoverageEnhanced: "موسعة",
		models.CoveragePremium:  "شاملة",
	},
}

var arabicMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// T resolves a message key for a language, falling back to English.
func T(lang models.Language, key string) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return messages[models.LanguageEN][key]
}

// EmirateName returns the display name of an emirate in the given language.
func EmirateName(lang models.Language, e models.Emirate) string {
	if lang == models.LanguageAR {
		if name, ok := emirateNames[e]; ok {
			return name
		}
	}
	return string(e)
}

// CoverageName returns the display label of a coverage tier.
func CoverageName(lang models.Language, c models.HealthCoverage) string {
	if table, ok := coverageNames[lang]; ok {
		if name, ok := table[c]; ok {
			return name
		}
	}
	return string(c)
}

// InsuranceTypeName returns the display label of an insurance type.
func InsuranceTypeName(lang models.Language, t models.InsuranceType) string {
	if t == models.InsuranceCar {
		return T(lang, KeyCar)
	}
	return T(lang, KeyHealth)
}

// MonthName returns the language-specific month name.
func MonthName(lang models.Language, m time.Month) string {
	if lang == models.LanguageAR {
		return arabicMonths[int(m)-1]
	}
	return m.String()
}

// FormatDate renders a date the way the summary document shows it:
// "January 2, 2006" in English, "2 يناير 2006" in Arabic.
func FormatDate(lang models.Language, t time.Time) string {
	if lang == models.LanguageAR {
		return fmt.Sprintf("%d %s %d", t.Day(), MonthName(lang, t.Month()), t.Year())
	}
	return fmt.Sprintf("%s %d, %d", MonthName(lang, t.Month()), t.Day(), t.Year())
}
