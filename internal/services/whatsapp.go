package services

import (
	"fmt"
	"net/url"
	"strings"

	"quote-service/internal/models"
)

// GenerateWhatsAppLink builds the broker hand-off deep link: a wa.me URL
// whose text parameter carries a human-readable summary of the lead and
// the estimated range label (which may be the literal "N/A").
//
// Pure function of its inputs: identical request and range label always
// produce a byte-identical link.
func GenerateWhatsAppLink(req models.QuoteRequest, rangeLabel, brokerPhone string) string {
	var b strings.Builder

	b.WriteString("Hello, I got a quote from InsuranceAE.com.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	if req.InsuranceType == models.InsuranceCar {
		b.WriteString("Insurance Type: Car\n")
		fmt.Fprintf(&b, "Vehicle: %s %s\n", orNA(carModel(req)), orNA(carYear(req)))
	} else {
		b.WriteString("Insurance Type: Health\n")
		fmt.Fprintf(&b, "Age: %s\n", orNA(healthAge(req)))
		fmt.Fprintf(&b, "Coverage: %s\n", orNA(healthCoverage(req)))
	}
	fmt.Fprintf(&b, "Emirate: %s\n", req.Emirate)
	fmt.Fprintf(&b, "Estimated Range: %s\n\n", rangeLabel)
	b.WriteString("Please provide me with a detailed quote.")

	return fmt.Sprintf("https://wa.me/%s?text=%s", brokerPhone, encodeComponent(b.String()))
}

// encodeComponent percent-encodes UTF-8 text for a query value. QueryEscape
// writes spaces as '+', which messaging apps render literally, so those are
// rewritten to %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func orNA(s string) string {
	if s == "" {
		return models.PriceRangeNA
	}
	return s
}

func carModel(req models.QuoteRequest) string {
	if req.Car == nil {
		return ""
	}
	return req.Car.VehicleModel
}

func carYear(req models.QuoteRequest) string {
	if req.Car == nil || req.Car.VehicleYear == 0 {
		return ""
	}
	return fmt.Sprintf("%d", req.Car.VehicleYear)
}

func healthAge(req models.QuoteRequest) string {
	if req.Health == nil || req.Health.Age == 0 {
		return ""
	}
	return fmt.Sprintf("%d", req.Health.Age)
}

func healthCoverage(req models.QuoteRequest) string {
	if req.Health == nil {
		return ""
	}
	return string(req.Health.Coverage)
}
