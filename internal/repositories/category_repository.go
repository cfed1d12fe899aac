package repositories

import (
	"errors"
	"fmt"

	"finanzas-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	category := &models.Category{ID: id}
	if err := r.db.First(category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) GetByUserID(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindOrCreate(userID uuid.UUID, name string, parentID *uuid.UUID) (*models.Category, bool, error) {
	var category models.Category
	err := r.db.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up category: %w", err)
	}

	category = models.Category{
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, true, nil
}
