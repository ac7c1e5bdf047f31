package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"quote-service/internal/database/minio"
	"quote-service/internal/i18n"
	"quote-service/internal/models"
)

// SummaryFileName is the fixed name the exported document is saved under.
const SummaryFileName = "InsuranceAE_Quote_Summary.pdf"

// FontSource provides the Arabic glyph set for the summary document.
type FontSource interface {
	ArabicFont(ctx context.Context) ([]byte, error)
}

// MinioFontSource fetches the font from object storage.
type MinioFontSource struct {
	client *minio.MinioClient
	bucket string
	object string
}

func NewMinioFontSource(client *minio.MinioClient, bucket, object string) *MinioFontSource {
	return &MinioFontSource{client: client, bucket: bucket, object: object}
}

func (s *MinioFontSource) ArabicFont(ctx context.Context) ([]byte, error) {
	data, err := s.client.FetchBytes(ctx, s.bucket, s.object)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch font %s/%s: %w", s.bucket, s.object, err)
	}
	return data, nil
}

// FileFontSource reads the font from the local filesystem.
type FileFontSource struct {
	Path string
}

func (s FileFontSource) ArabicFont(context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return data, nil
}

// NoFontSource always reports the glyph set as unavailable, which makes
// Arabic exports fall back to the default font.
type NoFontSource struct{}

func (NoFontSource) ArabicFont(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("no arabic font source configured")
}

const (
	docWidth  = 210.0
	docMargin = 20.0
)

// SummaryPDFService renders a stored quote result into the one-page
// summary document. The path is independent of the submission pipeline
// and can be invoked repeatedly on the same result.
type SummaryPDFService struct {
	fonts FontSource
	now   func() time.Time
}

func NewSummaryPDFService(fonts FontSource) *SummaryPDFService {
	return &SummaryPDFService{fonts: fonts, now: time.Now}
}

// WithClock fixes the document date, for deterministic tests.
func (s *SummaryPDFService) WithClock(now func() time.Time) *SummaryPDFService {
	s.now = now
	return s
}

// Render produces the PDF bytes. A missing Arabic glyph set degrades to
// the default font with a logged warning; it never fails the export.
func (s *SummaryPDFService) Render(ctx context.Context, result models.QuoteResult, lang models.Language) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	r := &summaryRenderer{
		doc:      doc,
		family:   "Helvetica",
		tr:       doc.UnicodeTranslatorFromDescriptor(""),
		isArabic: lang == models.LanguageAR,
	}

	if r.isArabic {
		fontData, err := s.fonts.ArabicFont(ctx)
		if err != nil {
			slog.Warn("Arabic glyph set unavailable, falling back to default font", "error", err)
		} else {
			doc.AddUTF8FontFromBytes("NotoNaskhArabic", "", fontData)
			r.family = "NotoNaskhArabic"
			r.utf8 = true
		}
	}

	r.render(result, lang, s.now())

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary document: %w", err)
	}
	return buf.Bytes(), nil
}

type summaryRenderer struct {
	doc      *fpdf.Fpdf
	family   string
	tr       func(string) string
	isArabic bool
	utf8     bool
	rowIndex int
}

// Palette shared with the web result view.
var (
	colorPrimary   = [3]int{15, 23, 42}
	colorAccent    = [3]int{0, 119, 255}
	colorWhite     = [3]int{255, 255, 255}
	colorGrey      = [3]int{107, 114, 128}
	colorLightGrey = [3]int{243, 244, 246}
)

func (r *summaryRenderer) render(result models.QuoteResult, lang models.Language, now time.Time) {
	// Header bar with brand name.
	r.doc.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	r.doc.Rect(0, 0, docWidth, 20, "F")
	r.setText(colorWhite, 16)
	r.centered("InsuranceAE.com", 6, 8)

	// Title and locale-aware date.
	r.setText(colorPrimary, 22)
	r.centered(i18n.T(lang, i18n.KeyPDFTitle), 34, 10)

	r.setText(colorGrey, 10)
	dateLabel := i18n.T(lang, i18n.KeyPDFDate) + ": " + i18n.FormatDate(lang, now)
	dateAlign := "R"
	if r.isArabic {
		dateAlign = "L"
	}
	r.doc.SetXY(docMargin, 45)
	r.doc.CellFormat(docWidth-2*docMargin, 6, r.t(dateLabel), "", 0, dateAlign, false, 0, "")

	// Separator rule.
	r.doc.SetDrawColor(colorAccent[0], colorAccent[1], colorAccent[2])
	r.doc.SetLineWidth(1)
	r.doc.Line(docMargin, 53, docWidth-docMargin, 53)

	// Detail rows.
	y := 60.0
	y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFName), result.FormData.Name)
	y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFType), i18n.InsuranceTypeName(lang, result.FormData.InsuranceType))

	if result.FormData.InsuranceType == models.InsuranceCar && result.FormData.Car != nil {
		vehicle := fmt.Sprintf("%s %d", result.FormData.Car.VehicleModel, result.FormData.Car.VehicleYear)
		y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFVehicle), vehicle)
	} else if result.FormData.Health != nil {
		y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFAge), fmt.Sprintf("%d", result.FormData.Health.Age))
		y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFCoverage), i18n.CoverageName(lang, result.FormData.Health.Coverage))
	}
	y = r.detailRow(y, i18n.T(lang, i18n.KeyPDFEmirate), i18n.EmirateName(lang, result.FormData.Emirate))

	// Highlighted price band.
	y += 10
	r.doc.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	r.doc.Rect(docMargin, y, docWidth-2*docMargin, 25, "F")
	r.setText(colorWhite, 14)
	r.centered(i18n.T(lang, i18n.KeyPDFPrice), y+3, 7)
	r.setText(colorWhite, 18)
	r.centered(result.PriceRange, y+12, 9)
	y += 45

	// Disclaimer footer.
	r.doc.SetDrawColor(colorLightGrey[0], colorLightGrey[1], colorLightGrey[2])
	r.doc.SetLineWidth(0.5)
	r.doc.Line(docMargin, y, docWidth-docMargin, y)
	y += 6
	r.setText(colorGrey, 10)
	r.centered(i18n.T(lang, i18n.KeyPDFDisclaimer), y, 6)
	r.centered(i18n.T(lang, i18n.KeyPDFThankYou), y+7, 6)
}

// detailRow draws one alternating-background label/value row and returns
// the next row's y. Labels sit at the start margin and values at the end
// margin; under Arabic the sides swap.
func (r *summaryRenderer) detailRow(y float64, label, value string) float64 {
	if r.rowIndex%2 == 0 {
		r.doc.SetFillColor(colorLightGrey[0], colorLightGrey[1], colorLightGrey[2])
		r.doc.Rect(docMargin-5, y, docWidth-2*docMargin+10, 8, "F")
	}
	r.rowIndex++

	labelText := label + ":"
	half := (docWidth - 2*docMargin) / 2

	leftText, leftAlign := labelText, "L"
	rightText, rightAlign := value, "R"
	if r.isArabic {
		leftText, leftAlign = value, "L"
		rightText, rightAlign = labelText, "R"
	}

	r.setText(colorPrimary, 12)
	r.doc.SetXY(docMargin, y)
	r.doc.CellFormat(half, 8, r.t(leftText), "", 0, leftAlign, false, 0, "")
	r.setText(colorGrey, 12)
	r.doc.SetXY(docMargin+half, y)
	r.doc.CellFormat(half, 8, r.t(rightText), "", 0, rightAlign, false, 0, "")

	return y + 10
}

func (r *summaryRenderer) centered(text string, y, h float64) {
	r.doc.SetXY(0, y)
	r.doc.CellFormat(docWidth, h, r.t(text), "", 0, "C", false, 0, "")
}

func (r *summaryRenderer) setText(color [3]int, size float64) {
	r.doc.SetFont(r.family, "", size)
	r.doc.SetTextColor(color[0], color[1], color[2])
}

// t maps text through the codepage translator when the core font is in
// use; the embedded UTF-8 font needs no translation.
func (r *summaryRenderer) t(s string) string {
	if r.utf8 {
		return s
	}
	return r.tr(s)
}
