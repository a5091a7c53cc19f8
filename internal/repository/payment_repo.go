package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindAll() ([]model.Payment, error)
	FindByID(id uuid.UUID) (*model.Payment, error)
	FindByType(t model.PaymentType) ([]model.Payment, error)
	FindByEntity(t model.PaymentType, entityID string) ([]model.Payment, error)
	Delete(id uuid.UUID) error
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepo) FindAll() ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Order("date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) FindByID(id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	return &payment, err
}

func (r *paymentRepo) FindByType(t model.PaymentType) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("type = ?", t).Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) FindByEntity(t model.PaymentType, entityID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("type = ? AND entity_id = ?", t, entityID).Order("date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Payment{}, "id = ?", id).Error
}
