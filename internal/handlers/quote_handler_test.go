package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/services"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestApp(t *testing.T) (*fiber.App, services.ResultStore) {
	t.Helper()

	estimator := pricing.NewEstimator(pricing.DefaultTable(), 0)
	store := services.NewMemoryResultStore(time.Minute)
	quoteService := services.NewQuoteService(estimator, store, services.NoopAnalytics{}, "971501234567")
	pdfService := services.NewSummaryPDFService(services.NoFontSource{})

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	NewQuoteHandler(quoteService, pdfService, store).Register(app)
	return app, store
}

func submissionBody(t *testing.T, overrides map[string]any) *bytes.Reader {
	t.Helper()
	payload := map[string]any{
		"insurance_type": "health",
		"name":           "John Doe",
		"phone_code":     "+971",
		"phone_number":   "501234567",
		"emirate":        "Dubai",
		"age":            "25",
		"coverage":       "basic",
		"privacy_policy": true,
		"language":       "en",
	}
	for k, v := range overrides {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func postQuote(t *testing.T, app *fiber.App, sessionID string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quote/api/v1/quotes", body)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

// ============================================================================
// TEST SUITE 1: SUBMISSION ENDPOINT
// ============================================================================

func TestSubmitQuote_ValidSubmission(t *testing.T) {
	app, store := newTestApp(t)

	resp := postQuote(t, app, "s1", submissionBody(t, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "s1", data["session_id"])
	assert.Equal(t, "succeeded", data["state"])

	result := data["result"].(map[string]any)
	assert.Equal(t, "1300 - 1600 AED", result["price_range"])
	assert.Equal(t, "success", result["status"])

	stored, err := store.Get(t.Context(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "1300 - 1600 AED", stored.PriceRange)
}

func TestSubmitQuote_ValidationFailure(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postQuote(t, app, "s1", submissionBody(t, map[string]any{
		"privacy_policy": false,
		"name":           "",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])

	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", apiErr["code"])
	fieldErrors := apiErr["field_errors"].(map[string]any)
	assert.Contains(t, fieldErrors, "privacyPolicy")
	assert.Contains(t, fieldErrors, "name")
}

func TestSubmitQuote_MalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postQuote(t, app, "s1", strings.NewReader("{not json"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "INVALID_REQUEST", apiErr["code"])
}

func TestSubmitQuote_MissingSessionHeaderGetsGenerated(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postQuote(t, app, "", submissionBody(t, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.NotEmpty(t, data["session_id"])
}

func TestSubmitQuote_UnmatchedRuleStillReturnsResult(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postQuote(t, app, "s1", submissionBody(t, map[string]any{
		"insurance_type": "car",
		"vehicle_model":  "Lada Niva",
		"vehicle_year":   "1995",
		"age":            "",
		"coverage":       "",
	}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	result := data["result"].(map[string]any)
	assert.Equal(t, "N/A", result["price_range"])
	assert.Equal(t, "error", result["status"])
}

// ============================================================================
// TEST SUITE 2: RESULT AND DOCUMENT ENDPOINTS
// ============================================================================

func TestGetResult(t *testing.T) {
	app, _ := newTestApp(t)

	postQuote(t, app, "s1", submissionBody(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/quotes/s1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "1300 - 1600 AED", data["price_range"])
}

func TestGetResult_UnknownSession(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/quotes/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	apiErr := decodeBody(t, resp)["error"].(map[string]any)
	assert.Equal(t, "RESULT_NOT_FOUND", apiErr["code"])
}

func TestDownloadDocument(t *testing.T) {
	app, _ := newTestApp(t)

	postQuote(t, app, "s1", submissionBody(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/quotes/s1/document", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), services.SummaryFileName)

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDownloadDocument_LanguageOverride(t *testing.T) {
	app, _ := newTestApp(t)

	postQuote(t, app, "s1", submissionBody(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/quotes/s1/document?lang=ar", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ============================================================================
// TEST SUITE 3: CONTACT AND CATALOG ENDPOINTS
// ============================================================================

func TestContactBroker(t *testing.T) {
	app, _ := newTestApp(t)

	postQuote(t, app, "s1", submissionBody(t, nil))

	req := httptest.NewRequest(http.MethodPost, "/quote/api/v1/quotes/s1/contact", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Contains(t, data["whatsapp_link"], "https://wa.me/971501234567")
}

func TestGetFormOptions(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/form-options", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)

	emirates := data["emirates"].([]any)
	assert.Len(t, emirates, len(models.Emirates))
	first := emirates[0].(map[string]any)
	assert.Equal(t, "Abu Dhabi", first["value"])
	assert.Equal(t, "أبوظبي", first["label_ar"])

	coverages := data["coverage_levels"].([]any)
	assert.Len(t, coverages, len(models.HealthCoverageOptions))
	basic := coverages[0].(map[string]any)
	assert.Equal(t, "basic", basic["value"])
	assert.Equal(t, "Basic", basic["label_en"])
}

func TestGetCountryCodes(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/quote/api/v1/country-codes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	codes := body["data"].([]any)
	assert.Len(t, codes, len(models.CountryCodes))
	first := codes[0].(map[string]any)
	assert.Equal(t, "+971", first["code"])
}
