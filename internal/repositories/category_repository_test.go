package repositories

import (
	"testing"

	"finanzas-api/internal/database"
	"finanzas-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestCategoryRepository(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

type CategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo CategoryRepositoryInterface
	user *models.User
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
}

func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestCategoryRepository_Create() {
	category := &models.Category{
		UserID: s.user.ID,
		Name:   "Supermercado",
	}

	err := s.repo.Create(category)
	s.NoError(err)
	s.NotEqual(uuid.Nil, category.ID)
}

func (s *CategoryRepositorySuite) TestCategoryRepository_GetByUserID() {
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Supermercado")
	database.CreateTestCategory(s.T(), s.db, s.user.ID, "Farmacia")

	otherUser := database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	database.CreateTestCategory(s.T(), s.db, otherUser.ID, "Viajes")

	categories, err := s.repo.GetByUserID(s.user.ID)
	s.NoError(err)
	s.Len(categories, 2)
	s.Equal("Farmacia", categories[0].Name) // ordered by name
}

func (s *CategoryRepositorySuite) TestCategoryRepository_FindOrCreate_Existing() {
	existing := database.CreateTestCategory(s.T(), s.db, s.user.ID, "Supermercado")

	// lookup is case-insensitive and must not create a duplicate
	category, created, err := s.repo.FindOrCreate(s.user.ID, "SUPERMERCADO", nil)
	s.NoError(err)
	s.False(created)
	s.Equal(existing.ID, category.ID)

	categories, err := s.repo.GetByUserID(s.user.ID)
	s.NoError(err)
	s.Len(categories, 1)
}

func (s *CategoryRepositorySuite) TestCategoryRepository_FindOrCreate_New() {
	parent := database.CreateTestCategory(s.T(), s.db, s.user.ID, models.DefaultImportParentName)

	category, created, err := s.repo.FindOrCreate(s.user.ID, "Kiosco", &parent.ID)
	s.NoError(err)
	s.True(created)
	s.NotEqual(uuid.Nil, category.ID)
	s.Require().NotNil(category.ParentID)
	s.Equal(parent.ID, *category.ParentID)
}

func (s *CategoryRepositorySuite) TestCategoryRepository_GetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.Equal(ErrCategoryNotFound, err)
}
