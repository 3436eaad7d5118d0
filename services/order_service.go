package services

import (
	"petmarket-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrdersByBusiness returns orders containing at least one product from the
// business, newest first, with user and items loaded.
func (s *OrderService) OrdersByBusiness(businessID uuid.UUID) ([]models.Order, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.business_id = ?", businessID).
		Distinct().
		Pluck("order_items.order_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Order{}, nil
	}

	var orders []models.Order
	err = s.db.Preload("User").Preload("Items.Product").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ItemsForBusiness filters an order's items down to the given business's
// products.
func ItemsForBusiness(order *models.Order, businessID uuid.UUID) []models.OrderItem {
	var items []models.OrderItem
	for _, oi := range order.Items {
		if oi.Product != nil && oi.Product.BusinessID == businessID {
			items = append(items, oi)
		}
	}
	return items
}
