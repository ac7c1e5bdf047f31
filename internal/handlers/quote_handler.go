package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"quote-service/internal/i18n"
	"quote-service/internal/models"
	"quote-service/internal/services"
	"quote-service/internal/utils"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
	pdfService   *services.SummaryPDFService
	store        services.ResultStore
}

func NewQuoteHandler(quoteService *services.QuoteService, pdfService *services.SummaryPDFService, store services.ResultStore) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		pdfService:   pdfService,
		store:        store,
	}
}

func (qh *QuoteHandler) Register(app *fiber.App) {
	api := app.Group("quote/api/v1")

	api.Post("/quotes", qh.SubmitQuote)               // POST /quotes - run the lead submission pipeline
	api.Get("/quotes/:sessionID", qh.GetResult)       // GET  /quotes/{session} - current session result
	api.Get("/quotes/:sessionID/document", qh.DownloadDocument)
	api.Post("/quotes/:sessionID/contact", qh.ContactBroker)
	api.Get("/country-codes", qh.GetCountryCodes)
	api.Get("/form-options", qh.GetFormOptions)
}

// SubmitQuote validates the form payload and runs it through the pipeline.
// A rejected submission returns the per-field messages plus the summary
// notice; everything past validation returns a result record, whatever
// its status.
func (qh *QuoteHandler) SubmitQuote(c fiber.Ctx) error {
	var sub models.QuoteSubmission
	if err := c.Bind().Body(&sub); err != nil {
		slog.Error("error parsing submission", "error", err)
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	outcome, err := qh.quoteService.Submit(c.Context(), sessionID, sub)
	if errors.Is(err, services.ErrSubmissionInFlight) {
		return c.Status(http.StatusConflict).JSON(utils.CreateErrorResponse("SUBMISSION_IN_FLIGHT", err.Error()))
	}
	if err != nil {
		slog.Error("submission pipeline error", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "failed to process submission"))
	}

	if outcome.State == models.PipelineRejected {
		return c.Status(http.StatusUnprocessableEntity).JSON(utils.CreateValidationErrorResponse(outcome.Message, outcome.FieldErrors))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{
		"session_id": sessionID,
		"state":      outcome.State,
		"message":    outcome.Message,
		"result":     outcome.Result,
	}))
}

// GetResult returns the session's current result, used by the result view
// and the start-over pre-fill.
func (qh *QuoteHandler) GetResult(c fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	result, err := qh.store.Get(c.Context(), sessionID)
	if errors.Is(err, services.ErrResultNotFound) {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("RESULT_NOT_FOUND", "no quote result for this session"))
	}
	if err != nil {
		slog.Error("failed to load quote result", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "failed to load quote result"))
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

// DownloadDocument renders the session result into the summary PDF. The
// language defaults to the one the quote was submitted under.
func (qh *QuoteHandler) DownloadDocument(c fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	result, err := qh.store.Get(c.Context(), sessionID)
	if errors.Is(err, services.ErrResultNotFound) {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("RESULT_NOT_FOUND", "no quote result for this session"))
	}
	if err != nil {
		slog.Error("failed to load quote result", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "failed to load quote result"))
	}

	lang := result.Language
	if raw := c.Query("lang"); raw != "" {
		lang = models.Language(raw)
	}

	data, err := qh.pdfService.Render(c.Context(), *result, lang)
	if err != nil {
		slog.Error("failed to render summary document", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("DOCUMENT_RENDER_FAILED", "failed to render summary document"))
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.SummaryFileName))
	return c.Status(http.StatusOK).Send(data)
}

// ContactBroker records the conversion event behind the WhatsApp button
// and echoes the link for the client to open.
func (qh *QuoteHandler) ContactBroker(c fiber.Ctx) error {
	sessionID := c.Params("sessionID")
	result, err := qh.store.Get(c.Context(), sessionID)
	if errors.Is(err, services.ErrResultNotFound) {
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("RESULT_NOT_FOUND", "no quote result for this session"))
	}
	if err != nil {
		slog.Error("failed to load quote result", "session_id", sessionID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "failed to load quote result"))
	}

	qh.quoteService.RecordContactClick(c.Context(), *result)

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{
		"whatsapp_link": result.WhatsAppLink,
	}))
}

// GetCountryCodes returns the dial-code catalog for the phone field.
func (qh *QuoteHandler) GetCountryCodes(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(models.CountryCodes))
}

// GetFormOptions returns the select-field catalogs for the quote form:
// emirates and health coverage tiers with their bilingual labels.
func (qh *QuoteHandler) GetFormOptions(c fiber.Ctx) error {
	emirates := make([]fiber.Map, 0, len(models.Emirates))
	for _, e := range models.Emirates {
		emirates = append(emirates, fiber.Map{
			"value":    e,
			"label_en": i18n.EmirateName(models.LanguageEN, e),
			"label_ar": i18n.EmirateName(models.LanguageAR, e),
		})
	}

	coverages := make([]fiber.Map, 0, len(models.HealthCoverageOptions))
	for _, tier := range models.HealthCoverageOptions {
		coverages = append(coverages, fiber.Map{
			"value":    tier,
			"label_en": i18n.CoverageName(models.LanguageEN, tier),
			"label_ar": i18n.CoverageName(models.LanguageAR, tier),
		})
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(fiber.Map{
		"emirates":        emirates,
		"coverage_levels": coverages,
	}))
}
