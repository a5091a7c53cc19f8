package repository

import (
	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuotationRepository interface {
	CreateTx(tx *gorm.DB, quotation *model.Quotation) error
	FindAll() ([]model.Quotation, error)
	FindByID(id uuid.UUID) (*model.Quotation, error)
	Delete(id uuid.UUID) error
}

type quotationRepo struct {
	db *gorm.DB
}

func NewQuotationRepo(db *gorm.DB) QuotationRepository {
	return &quotationRepo{db}
}

func (r *quotationRepo) CreateTx(tx *gorm.DB, quotation *model.Quotation) error {
	return tx.Create(quotation).Error
}

func (r *quotationRepo) FindAll() ([]model.Quotation, error) {
	var quotations []model.Quotation
	err := r.db.Preload("Items").Order("date DESC").Find(&quotations).Error
	return quotations, err
}

func (r *quotationRepo) FindByID(id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	err := r.db.Preload("Items").First(&quotation, "id = ?", id).Error
	return &quotation, err
}

func (r *quotationRepo) Delete(id uuid.UUID) error {
	if err := r.db.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Quotation{}, "id = ?", id).Error
}
