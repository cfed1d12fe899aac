package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finanzas-api/internal/database"
	"finanzas-api/internal/models"
	"finanzas-api/internal/repositories"
	"finanzas-api/internal/services"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	db      *database.DB
	echo    *echo.Echo
	handler *CatalogHandler
	user    *models.User
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(s.db.DB)
	catalogService := services.NewCatalogService(categoryRepo, paymentMethodRepo)

	s.echo = echo.New()
	s.handler = NewCatalogHandler(catalogService)
	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) newGetContext(path string, authenticated bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if authenticated {
		c.Set("user_id", s.user.ID)
	}
	return c, rec
}

func (s *CatalogHandlerTestSuite) TestListCategories() {
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Supermercado")
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Transporte")

	// Another user's category must not leak into the listing
	other := database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	database.CreateTestCategory(s.T(), s.db, other.ID, "Ajena")

	c, rec := s.newGetContext("/api/v1/categories", true)

	s.Require().NoError(s.handler.ListCategories(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.Category `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Len(envelope.Data, 2)
}

func (s *CatalogHandlerTestSuite) TestListCategories_Unauthenticated() {
	c, rec := s.newGetContext("/api/v1/categories", false)

	s.Require().NoError(s.handler.ListCategories(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *CatalogHandlerTestSuite) TestListPaymentMethods() {
	database.CreateTestPaymentMethod(s.T(), s.db, s.user.ID, "Visa Galicia")

	c, rec := s.newGetContext("/api/v1/payment-methods", true)

	s.Require().NoError(s.handler.ListPaymentMethods(c))
	s.Equal(http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.PaymentMethod `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Require().Len(envelope.Data, 1)
	s.Equal("Visa Galicia", envelope.Data[0].Name)
}
