package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
)

// GormProductStore implements the catalog repository port using GORM
type GormProductStore struct {
	db *gorm.DB
}

// NewGormProductStore creates a new GormProductStore
func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

// FindByID retrieves a product by its identifier
func (s *GormProductStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model productModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.toDomain(), nil
}

// FindAll retrieves the full catalog ordered by name
func (s *GormProductStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var models []productModel
	if err := s.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(models))
	for i := range models {
		products = append(products, *models[i].toDomain())
	}
	return products, nil
}

// Ensure GormProductStore implements the catalog repository port
var _ catalog.Repository = (*GormProductStore)(nil)
