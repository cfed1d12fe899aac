package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finanzas-api/internal/database"
	"finanzas-api/internal/dto"
	"finanzas-api/internal/models"
	"finanzas-api/internal/repositories"
	"finanzas-api/internal/services"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const (
	testMaxUploadBytes = int64(1 << 20)
	testMaxBatchSize   = 100
)

type ImportHandlerTestSuite struct {
	suite.Suite
	db      *database.DB
	echo    *echo.Echo
	handler *ImportHandler
	user    *models.User
}

func (s *ImportHandlerTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	importService := services.NewImportService(categoryRepo, paymentMethodRepo, transactionRepo, slog.Default())

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.handler = NewImportHandler(importService, testMaxUploadBytes, testMaxBatchSize)
	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
}

func (s *ImportHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestImportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ImportHandlerTestSuite))
}

const handlerCSVSample = `Fecha,Tipo,Categoria,Descripcion,Importe
24/08/2026,Gasto,Supermercado,Compra VISA GALICIA super,"1.249,16"
25/08/2026,Ingreso,,Sueldo agosto,"1.500.000,00"
`

// multipartUpload builds a multipart body with a "file" part and an optional
// "filters" part.
func multipartUpload(t *testing.T, filename, content, filters string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}

	if filters != "" {
		if err := writer.WriteField("filters", filters); err != nil {
			t.Fatalf("failed to write filters field: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func (s *ImportHandlerTestSuite) newUploadContext(path, filename, content, filters string) (echo.Context, *httptest.ResponseRecorder) {
	body, contentType := multipartUpload(s.T(), filename, content, filters)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)
	return c, rec
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_Success() {
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Supermercado")

	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", handlerCSVSample, "")

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportPreviewResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Len(envelope.Data.Preview, 2)
	s.Equal(2, envelope.Data.Summary.Total)
	s.Equal(1, envelope.Data.Summary.Incomes)
	s.Require().Len(envelope.Data.AvailableCategories, 1)
	s.Equal("Supermercado", envelope.Data.AvailableCategories[0].Name)

	first := envelope.Data.Preview[0]
	s.Require().NotNil(first.SuggestedCategoryID)
	s.Equal(envelope.Data.AvailableCategories[0].ID, *first.SuggestedCategoryID)
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_WithFilters() {
	filters := `{"date_from":"25/08/2026"}`
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", handlerCSVSample, filters)

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportPreviewResponse `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Len(envelope.Data.Preview, 1)
	s.Equal("Sueldo agosto", envelope.Data.Preview[0].Description)
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_MissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/csv/preview", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=empty")
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "UPLOAD_001")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_WrongExtension() {
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "resumen.pdf", handlerCSVSample, "")

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
	s.Contains(rec.Body.String(), "UPLOAD_003")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_FileTooLarge() {
	s.handler = NewImportHandler(s.handler.importService, 16, testMaxBatchSize)
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", handlerCSVSample, "")

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Contains(rec.Body.String(), "UPLOAD_002")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_InvalidFiltersJSON() {
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", handlerCSVSample, "{not json")

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "UPLOAD_004")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_InvalidFilterDate() {
	filters := `{"date_from":"pronto"}`
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", handlerCSVSample, filters)

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "UPLOAD_004")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_BadHeader() {
	c, rec := s.newUploadContext("/api/v1/imports/csv/preview", "movimientos.csv", "Columna,Otra\n1,2\n", "")

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "PARSE_001")
}

func (s *ImportHandlerTestSuite) TestPreviewCSV_Unauthenticated() {
	body, contentType := multipartUpload(s.T(), "movimientos.csv", handlerCSVSample, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/csv/preview", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.PreviewCSV(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *ImportHandlerTestSuite) TestPreviewPDF_NotAPDF() {
	c, rec := s.newUploadContext("/api/v1/imports/pdf/preview", "resumen.pdf", "plain text, not a pdf", "")

	s.Require().NoError(s.handler.PreviewPDF(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "PARSE_004")
}

func (s *ImportHandlerTestSuite) newJSONContext(path string, payload interface{}) (echo.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)
	return c, rec
}

func (s *ImportHandlerTestSuite) TestConfirm_Success() {
	req := dto.ConfirmImportRequest{
		Transactions: []dto.ConfirmTransaction{
			{
				Date:        "24/08/2026",
				Type:        "expense",
				Description: "Compra super",
				Amount:      "1.249,16",
				Category:    "Supermercado",
			},
		},
		CreateMissingCategories: true,
	}
	c, rec := s.newJSONContext("/api/v1/imports/confirm", req)

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportSummary `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Equal(1, envelope.Data.Imported)
	s.Equal(0, envelope.Data.Failed)
	s.Equal(1, envelope.Data.NewCategoriesCreated)
}

func (s *ImportHandlerTestSuite) TestConfirm_EmptyBatch() {
	c, rec := s.newJSONContext("/api/v1/imports/confirm", dto.ConfirmImportRequest{})

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "IMPORT_001")
}

func (s *ImportHandlerTestSuite) TestConfirm_BatchTooLarge() {
	transactions := make([]dto.ConfirmTransaction, testMaxBatchSize+1)
	for i := range transactions {
		transactions[i] = dto.ConfirmTransaction{
			Date:        "24/08/2026",
			Type:        "expense",
			Description: "Compra",
			Amount:      "100",
		}
	}
	c, rec := s.newJSONContext("/api/v1/imports/confirm", dto.ConfirmImportRequest{Transactions: transactions})

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Contains(rec.Body.String(), "IMPORT_002")
}

func (s *ImportHandlerTestSuite) TestConfirm_MalformedInstallmentsRowIsIsolated() {
	badInstallments := "5/3"
	req := dto.ConfirmImportRequest{
		Transactions: []dto.ConfirmTransaction{
			{Date: "24/08/2026", Type: "expense", Description: "Compra super", Amount: "100"},
			{Date: "24/08/2026", Type: "expense", Description: "Compra cuotas", Amount: "200", Installments: &badInstallments},
			{Date: "25/08/2026", Type: "income", Description: "Sueldo", Amount: "1.500.000,00"},
		},
		CreateMissingCategories: true,
	}
	c, rec := s.newJSONContext("/api/v1/imports/confirm", req)

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportSummary `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Equal(2, envelope.Data.Imported)
	s.Equal(1, envelope.Data.Failed)
	s.Require().Len(envelope.Data.Errors, 1)
	s.Equal(2, envelope.Data.Errors[0].Row)

	count, err := repositories.NewTransactionRepository(s.db.DB).CountByUserID(s.user.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *ImportHandlerTestSuite) TestConfirm_InvalidTypeFailsOnlyThatRow() {
	req := dto.ConfirmImportRequest{
		Transactions: []dto.ConfirmTransaction{
			{
				Date:        "24/08/2026",
				Type:        "transferencia",
				Description: "Compra",
				Amount:      "100",
			},
		},
		CreateMissingCategories: true,
	}
	c, rec := s.newJSONContext("/api/v1/imports/confirm", req)

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportSummary `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Equal(0, envelope.Data.Imported)
	s.Equal(1, envelope.Data.Failed)
}

func (s *ImportHandlerTestSuite) TestConfirm_PartialFailureStillImports() {
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Sueldo")

	req := dto.ConfirmImportRequest{
		Transactions: []dto.ConfirmTransaction{
			{Date: "24/08/2026", Type: "expense", Description: "Compra super", Amount: "100", Category: "Inexistente"},
			{Date: "25/08/2026", Type: "income", Description: "Sueldo", Amount: "1.500.000,00"},
		},
		CreateMissingCategories: false,
	}
	c, rec := s.newJSONContext("/api/v1/imports/confirm", req)

	s.Require().NoError(s.handler.Confirm(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data dto.ImportSummary `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Equal(1, envelope.Data.Imported)
	s.Equal(1, envelope.Data.Failed)
	s.Require().Len(envelope.Data.Errors, 1)
	s.Equal(1, envelope.Data.Errors[0].Row)
}
