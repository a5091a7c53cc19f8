package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, purchase *model.Purchase) error
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindBySupplier(supplierID uuid.UUID) ([]model.Purchase, error)
	Delete(id uuid.UUID) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) CreateTx(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Order("date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.First(&purchase, "id = ?", id).Error
	return &purchase, err
}

func (r *purchaseRepo) FindBySupplier(supplierID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("supplier_id = ?", supplierID).Order("date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Purchase{}, "id = ?", id).Error
}
