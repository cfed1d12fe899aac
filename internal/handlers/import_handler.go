package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"finanzas-api/internal/dto"
	"finanzas-api/internal/errors"
	"finanzas-api/internal/extractor"
	"finanzas-api/internal/parser"
	"finanzas-api/internal/services"

	"github.com/labstack/echo/v4"
)

// ImportHandler handles statement import HTTP requests
type ImportHandler struct {
	importService  services.ImportServiceInterface
	maxUploadBytes int64
	maxBatchSize   int
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService services.ImportServiceInterface, maxUploadBytes int64, maxBatchSize int) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
		maxBatchSize:   maxBatchSize,
	}
}

// PreviewCSV parses an uploaded CSV export and returns the candidate
// transactions for review without persisting anything
// POST /api/v1/imports/csv/preview
func (h *ImportHandler) PreviewCSV(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	data, filters, errResp := h.readUpload(c, ".csv")
	if errResp != nil {
		return errResp
	}

	response, err := h.importService.PreviewCSV(userID, data, filters)
	if err != nil {
		return h.sendPreviewError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// PreviewPDF extracts text from an uploaded bank statement PDF and returns
// the candidate transactions for review
// POST /api/v1/imports/pdf/preview
func (h *ImportHandler) PreviewPDF(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	data, filters, errResp := h.readUpload(c, ".pdf")
	if errResp != nil {
		return errResp
	}

	response, err := h.importService.PreviewPDF(userID, data, filters)
	if err != nil {
		return h.sendPreviewError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// Confirm persists a reviewed batch of transactions. Rows that fail are
// reported individually and do not abort the batch
// POST /api/v1/imports/csv/confirm
// POST /api/v1/imports/pdf/confirm
func (h *ImportHandler) Confirm(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ConfirmImportRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if len(req.Transactions) == 0 {
		return SendError(c, errors.ImportNoTransactions)
	}
	if len(req.Transactions) > h.maxBatchSize {
		return SendError(c, errors.ImportBatchTooLarge)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.importService.Confirm(userID, &req)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}

// readUpload reads the multipart "file" field, enforcing size and extension
// limits, and decodes the optional "filters" field. A non-nil third return
// value is a response already sent to the client.
func (h *ImportHandler) readUpload(c echo.Context, wantExt string) ([]byte, dto.ImportFilters, error) {
	var filters dto.ImportFilters

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, filters, SendError(c, errors.UploadMissingFile)
	}

	if fileHeader.Size > h.maxUploadBytes {
		return nil, filters, SendError(c, errors.UploadFileTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != wantExt {
		return nil, filters, SendError(c, errors.UploadInvalidFileType,
			errors.WithDetails("Expected a "+wantExt+" file"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, filters, SendSystemError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, filters, SendSystemError(c, err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, filters, SendError(c, errors.UploadFileTooLarge)
	}

	if raw := c.FormValue("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			return nil, filters, SendError(c, errors.UploadInvalidFilters)
		}
	}

	return data, filters, nil
}

// sendPreviewError maps parse and extraction failures onto stable error codes
func (h *ImportHandler) sendPreviewError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, parser.ErrHeaderFormat):
		return SendError(c, errors.ParseInvalidHeader, errors.WithDetails(err.Error()))
	case stderrors.Is(err, parser.ErrEmptyFile):
		return SendError(c, errors.ParseEmptyFile)
	case stderrors.Is(err, parser.ErrAmountFormat):
		return SendError(c, errors.ParseInvalidAmount, errors.WithDetails(err.Error()))
	case stderrors.Is(err, parser.ErrRowFormat), stderrors.Is(err, parser.ErrDateFormat):
		return SendError(c, errors.ParseInvalidRow, errors.WithDetails(err.Error()))
	case stderrors.Is(err, extractor.ErrExtraction):
		return SendError(c, errors.ParseExtractionError)
	case stderrors.Is(err, services.ErrInvalidFilters):
		return SendError(c, errors.UploadInvalidFilters, errors.WithDetails(err.Error()))
	default:
		return SendSystemError(c, err)
	}
}
