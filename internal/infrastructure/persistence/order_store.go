package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
)

// GormOrderStore implements the order repository port using GORM
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore creates a new GormOrderStore
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// FindByID loads an order with its items by identifier
func (s *GormOrderStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model orderModel
	if err := s.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.toDomain(), nil
}

// FindByNumber loads an order with its items by order number
func (s *GormOrderStore) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, order.ErrOrderNumberRequired
	}
	var model orderModel
	if err := s.db.WithContext(ctx).Preload("Items").First(&model, "order_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.toDomain(), nil
}

// Ensure GormOrderStore implements the order repository port
var _ order.Repository = (*GormOrderStore)(nil)
