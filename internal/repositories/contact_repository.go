package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"backend/internal/models"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.Prepare()
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByID returns nil, nil when no row matches.
func (r *ContactRepository) FindByID(ctx context.Context, id uint) (*models.Contact, error) {
	var c models.Contact
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// FindByEmail returns nil, nil when no row matches.
func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	var c models.Contact
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	contact.Prepare()
	return r.db.WithContext(ctx).Model(contact).Updates(map[string]interface{}{
		"first_name": contact.FirstName,
		"last_name":  contact.LastName,
		"email":      contact.Email,
	}).Error
}

// Delete reports whether a row was removed.
func (r *ContactRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
