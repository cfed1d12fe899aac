package repositories

import (
	"testing"

	"finanzas-api/internal/database"
	"finanzas-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUserRepository_Create() {
	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestUserRepository_GetByEmail() {
	user := &models.User{
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
	}
	s.NoError(s.repo.Create(user))

	foundUser, err := s.repo.GetByEmail("test@example.com")
	s.NoError(err)
	s.Equal(user.ID, foundUser.ID)

	_, err = s.repo.GetByEmail("nonexistent@example.com")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_GetByID() {
	user := database.CreateTestUser(s.T(), s.db, gofakeit.Email())

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(user.Email, found.Email)

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrUserNotFound, err)
}
