package services

import (
	"errors"
	"fmt"
	"strings"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

func (s *BusinessService) GetAll() ([]models.Business, error) {
	var businesses []models.Business
	err := s.db.Preload("Services").Preload("Products").Find(&businesses).Error
	return businesses, err
}

func (s *BusinessService) GetByID(id uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := s.db.Preload("Services").Preload("Products").Preload("Owner").
		First(&business, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: business %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &business, nil
}

// Save persists a business. An update that omits the owner keeps the stored
// owner instead of clearing it.
func (s *BusinessService) Save(business *models.Business) error {
	if business.ID != uuid.Nil && business.OwnerID == nil {
		var existing models.Business
		if err := s.db.First(&existing, "id = ?", business.ID).Error; err == nil {
			business.OwnerID = existing.OwnerID
		}
	}
	return s.db.Save(business).Error
}

func (s *BusinessService) FindByCategory(category string) ([]models.Business, error) {
	var businesses []models.Business
	err := s.db.Preload("Services").Preload("Products").
		Where("category = ?", category).
		Find(&businesses).Error
	return businesses, err
}

func (s *BusinessService) SearchByAddress(query string) ([]models.Business, error) {
	var businesses []models.Business
	err := s.db.Preload("Services").Preload("Products").
		Where("LOWER(address) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&businesses).Error
	return businesses, err
}

func (s *BusinessService) GetByOwner(ownerID uuid.UUID) ([]models.Business, error) {
	var businesses []models.Business
	err := s.db.Preload("Services").Preload("Products").
		Where("owner_id = ?", ownerID).
		Find(&businesses).Error
	return businesses, err
}

// Delete removes a business with its services, products and the bookings
// that reference those services.
func (s *BusinessService) Delete(id uuid.UUID) error {
	var business models.Business
	if err := s.db.First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: business %s", ErrNotFound, id)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		serviceIDs := tx.Model(&models.Service{}).Select("id").Where("business_id = ?", id)
		if err := tx.Where("service_id IN (?)", serviceIDs).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Business{}, "id = ?", id).Error
	})
}
