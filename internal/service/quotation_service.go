package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuotationService freezes the current cart into a priced proposal. A
// quotation never moves stock and never creates a customer; it has no edit
// operation, only create/read/delete.
type QuotationService interface {
	CreateQuotation(userID string, req CreateQuotationRequest) (*model.Quotation, error)
	GetQuotation(id uuid.UUID) (*model.Quotation, error)
	ListQuotations() ([]model.Quotation, error)
	DeleteQuotation(id uuid.UUID) error
}

type CreateQuotationRequest struct {
	DiscountValue float64            `json:"discount_value" validate:"gte=0"`
	DiscountType  model.DiscountType `json:"discount_type" validate:"required,oneof=percent fixed"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
}

type quotationService struct {
	db            *gorm.DB
	carts         CartService
	quotationRepo repository.QuotationRepository
	counterRepo   repository.CounterRepository
}

func NewQuotationService(
	db *gorm.DB,
	carts CartService,
	quotationRepo repository.QuotationRepository,
	counterRepo repository.CounterRepository,
) QuotationService {
	return &quotationService{
		db:            db,
		carts:         carts,
		quotationRepo: quotationRepo,
		counterRepo:   counterRepo,
	}
}

// CreateQuotation consumes the user's cart the same way a sale does, but
// skips every side effect a sale has: no stock check or deduction, no
// payment, no customer upsert.
func (s *quotationService) CreateQuotation(userID string, req CreateQuotationRequest) (*model.Quotation, error) {
	cart := s.carts.Get(userID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(cart.Subtotal(), req.DiscountValue, req.DiscountType)

	var quotation *model.Quotation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := s.counterRepo.Next(tx, model.CounterQuotation, model.QuotationCounterSeed)
		if err != nil {
			return err
		}

		now := time.Now()
		items := make([]model.QuotationItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			items = append(items, model.QuotationItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Qty:       line.Qty,
			})
		}

		quotation = &model.Quotation{
			QuotationNo:   model.FormatQuotationNo(seq),
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Items:         items,
			Subtotal:      totals.Subtotal,
			Discount:      totals.Discount,
			DiscountValue: req.DiscountValue,
			DiscountType:  req.DiscountType,
			Total:         totals.Total,
			Date:          now,
			ValidUntil:    now.Add(model.QuotationValidity),
		}
		quotation.CreatedBy = userID
		quotation.UpdatedBy = userID

		return s.quotationRepo.CreateTx(tx, quotation)
	})
	if err != nil {
		return nil, err
	}

	s.carts.Clear(userID)
	return quotation, nil
}

func (s *quotationService) GetQuotation(id uuid.UUID) (*model.Quotation, error) {
	quotation, err := s.quotationRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuotationNotFound
	}
	return quotation, err
}

func (s *quotationService) ListQuotations() ([]model.Quotation, error) {
	return s.quotationRepo.FindAll()
}

func (s *quotationService) DeleteQuotation(id uuid.UUID) error {
	if _, err := s.quotationRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuotationNotFound
		}
		return err
	}
	return s.quotationRepo.Delete(id)
}
