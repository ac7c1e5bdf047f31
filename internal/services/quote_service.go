package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quote-service/internal/event"
	"quote-service/internal/i18n"
	"quote-service/internal/models"
	"quote-service/internal/validation"
)

// Estimator is the pricing dependency of the pipeline.
type Estimator interface {
	Estimate(ctx context.Context, req models.QuoteRequest) models.Estimate
}

// AnalyticsPublisher is the best-effort analytics sink. Publish errors are
// logged and swallowed; the pipeline never fails because of analytics.
type AnalyticsPublisher interface {
	Publish(ctx context.Context, event event.AnalyticsEvent) error
}

// NoopAnalytics is used when no analytics sink is configured.
type NoopAnalytics struct{}

func (NoopAnalytics) Publish(context.Context, event.AnalyticsEvent) error { return nil }

// ErrSubmissionInFlight rejects a second submit while one is running for
// the same form session.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this session")

// SubmissionOutcome is the terminal state of one pipeline run. Rejected
// runs carry field errors; succeeded and failed runs both carry a result
// record, so the caller always has something to present.
type SubmissionOutcome struct {
	State       models.PipelineState `json:"state"`
	FieldErrors map[string]string    `json:"field_errors,omitempty"`
	Message     string               `json:"message,omitempty"`
	Result      *models.QuoteResult  `json:"result,omitempty"`
}

// QuoteService drives a submission through
// validating -> (rejected | submitting) -> (succeeded | failed).
type QuoteService struct {
	estimator   Estimator
	store       ResultStore
	analytics   AnalyticsPublisher
	brokerPhone string

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewQuoteService(estimator Estimator, store ResultStore, analytics AnalyticsPublisher, brokerPhone string) *QuoteService {
	return &QuoteService{
		estimator:   estimator,
		store:       store,
		analytics:   analytics,
		brokerPhone: brokerPhone,
		inflight:    make(map[string]struct{}),
	}
}

// Submit runs the pipeline for one form session. Validation failures stop
// before the estimator and return a rejected outcome. Once the estimator
// runs, the outcome is always result-bearing: an estimation miss is a
// normal error-status result, and an estimator panic is converted into a
// synthesized error result so the caller is never left hanging.
func (s *QuoteService) Submit(ctx context.Context, sessionID string, sub models.QuoteSubmission) (*SubmissionOutcome, error) {
	if !s.begin(sessionID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.end(sessionID)

	lang := normalizeLanguage(sub.Language)

	slog.Info("Submission received",
		"session_id", sessionID,
		"insurance_type", sub.InsuranceType,
		"state", models.PipelineValidating)

	fieldErrors := validation.ValidateSubmission(sub)
	if len(fieldErrors) > 0 {
		slog.Info("Submission rejected by validation",
			"session_id", sessionID,
			"state", models.PipelineRejected,
			"failing_fields", len(fieldErrors))
		return &SubmissionOutcome{
			State:       models.PipelineRejected,
			FieldErrors: fieldErrors,
			Message:     i18n.T(lang, i18n.KeyFillAllFields),
		}, nil
	}

	req := assembleRequest(sub)

	slog.Info("Submission passed validation",
		"session_id", sessionID,
		"state", models.PipelineSubmitting)

	estimate, panicked := s.estimate(ctx, req)

	state := models.PipelineSucceeded
	priceRange := models.PriceRangeNA
	confidence := 0
	status := models.QuoteError

	if panicked {
		state = models.PipelineFailed
	} else {
		status = estimate.Status
		confidence = estimate.ConfidenceScore
		if estimate.Status == models.QuoteSuccess {
			priceRange = fmt.Sprintf("%d - %d AED", estimate.RangeLow, estimate.RangeHigh)
		}
	}

	result := models.QuoteResult{
		ID:              uuid.NewString(),
		FormData:        req,
		PriceRange:      priceRange,
		Status:          status,
		ConfidenceScore: confidence,
		ConfidenceLevel: models.ClassifyConfidence(confidence),
		WhatsAppLink:    GenerateWhatsAppLink(req, priceRange, s.brokerPhone),
		Language:        lang,
		CreatedAt:       time.Now(),
	}

	if err := s.store.Save(ctx, sessionID, result); err != nil {
		// The caller still gets the result; only the session replay is lost.
		slog.Warn("Failed to store quote result", "session_id", sessionID, "error", err)
	}

	successFlag := 0
	if status == models.QuoteSuccess {
		successFlag = 1
	}
	s.emit(ctx, event.AnalyticsEvent{
		Event:    event.EventFormSubmit,
		Category: event.CategoryEngagement,
		Label:    string(req.InsuranceType),
		Value:    &successFlag,
	})

	message := ""
	if status == models.QuoteError {
		message = i18n.T(lang, i18n.KeyCouldNotEstimate)
	}

	return &SubmissionOutcome{
		State:   state,
		Message: message,
		Result:  &result,
	}, nil
}

// RecordContactClick emits the conversion event fired when the user opens
// the broker WhatsApp link.
func (s *QuoteService) RecordContactClick(ctx context.Context, result models.QuoteResult) {
	s.emit(ctx, event.AnalyticsEvent{
		Event:    event.EventWhatsAppClick,
		Category: event.CategoryConversion,
		Label:    string(result.FormData.InsuranceType),
	})
}

// estimate invokes the estimator, converting a panic into a failed flag
// instead of letting it escape the pipeline.
func (s *QuoteService) estimate(ctx context.Context, req models.QuoteRequest) (estimate models.Estimate, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Estimator panicked", "panic", r, "insurance_type", req.InsuranceType)
			panicked = true
		}
	}()
	return s.estimator.Estimate(ctx, req), false
}

func (s *QuoteService) emit(ctx context.Context, ev event.AnalyticsEvent) {
	detached := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Analytics publisher panicked", "panic", r)
			}
		}()
		if err := s.analytics.Publish(detached, ev); err != nil {
			slog.Warn("Failed to publish analytics event", "event", ev.Event, "error", err)
		}
	}()
}

func (s *QuoteService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *QuoteService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// assembleRequest turns the validated raw submission into the cleaned
// tagged-union request: trimmed strings, reassembled phone, numeric
// coercion for year and age.
func assembleRequest(sub models.QuoteSubmission) models.QuoteRequest {
	req := models.QuoteRequest{
		InsuranceType:         models.InsuranceType(sub.InsuranceType),
		Name:                  strings.TrimSpace(sub.Name),
		Phone:                 validation.StripPhone(sub.PhoneCode, sub.PhoneNumber),
		Emirate:               models.Emirate(strings.TrimSpace(sub.Emirate)),
		PrivacyPolicyAccepted: sub.PrivacyPolicy,
	}

	if req.InsuranceType == models.InsuranceCar {
		year, _ := strconv.Atoi(strings.TrimSpace(sub.VehicleYear))
		req.Car = &models.CarDetails{
			VehicleModel: strings.TrimSpace(sub.VehicleModel),
			VehicleYear:  year,
		}
	} else {
		age, _ := strconv.Atoi(strings.TrimSpace(sub.Age))
		req.Health = &models.HealthDetails{
			Age:      age,
			Coverage: models.HealthCoverage(strings.TrimSpace(sub.Coverage)),
		}
	}
	return req
}

func normalizeLanguage(raw string) models.Language {
	if models.Language(raw) == models.LanguageAR {
		return models.LanguageAR
	}
	return models.LanguageEN
}
