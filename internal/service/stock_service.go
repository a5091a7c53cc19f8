package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService covers inbound stock: manual adjustments and supplier
// purchases. Sales-side deductions live in SaleService.
type StockService interface {
	AddStock(productID uuid.UUID, qty int, actor string) (*model.Product, error)
	RecordPurchase(req RecordPurchaseRequest, actor string) (*model.Purchase, error)
	// DeletePurchase removes the purchase record only. Stock added by the
	// purchase stays on the shelf; the goods were physically received.
	DeletePurchase(id uuid.UUID) error
	ListPurchases() ([]model.Purchase, error)
	ListBySupplier(supplierID uuid.UUID) ([]model.Purchase, error)
}

type RecordPurchaseRequest struct {
	SupplierID uuid.UUID `json:"supplier_id" validate:"uuid_required"`
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	Qty        int       `json:"qty" validate:"required,gt=0"`
	UnitCost   float64   `json:"unit_cost" validate:"gte=0"`
	PaidAmount float64   `json:"paid_amount" validate:"gte=0"`
}

type stockService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	hub          *ws.Hub
}

func NewStockService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	hub *ws.Hub,
) StockService {
	return &stockService{
		db:           db,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		hub:          hub,
	}
}

func (s *stockService) AddStock(productID uuid.UUID, qty int, actor string) (*model.Product, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := s.productRepo.UpdateStock(tx, p.ID, p.Stock+qty, actor); err != nil {
			return err
		}
		p.Stock += qty
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStockUpdate(product)
	return product, nil
}

// RecordPurchase books goods received from a supplier: the purchase row
// snapshots supplier and product names, stock goes up by qty, and the
// product's buy price moves to the latest unit cost.
func (s *stockService) RecordPurchase(req RecordPurchaseRequest, actor string) (*model.Purchase, error) {
	if req.Qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	totalCost := float64(req.Qty) * req.UnitCost
	if req.PaidAmount < 0 || req.PaidAmount > totalCost {
		return nil, ErrInvalidAmount
	}

	var purchase *model.Purchase
	var product *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := s.supplierRepo.FindByID(req.SupplierID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}

		p, err := s.productRepo.FindByIDTx(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		purchase = &model.Purchase{
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Qty:          req.Qty,
			UnitCost:     req.UnitCost,
			TotalCost:    totalCost,
			PaidAmount:   req.PaidAmount,
			Date:         time.Now(),
		}
		purchase.CreatedBy = actor
		purchase.UpdatedBy = actor
		if err := s.purchaseRepo.CreateTx(tx, purchase); err != nil {
			return err
		}

		p.Stock += req.Qty
		p.BuyPrice = req.UnitCost
		p.UpdatedBy = actor
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStockUpdate(product)
	return purchase, nil
}

func (s *stockService) DeletePurchase(id uuid.UUID) error {
	if _, err := s.purchaseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPurchaseNotFound
		}
		return err
	}
	return s.purchaseRepo.Delete(id)
}

func (s *stockService) ListPurchases() ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll()
}

func (s *stockService) ListBySupplier(supplierID uuid.UUID) ([]model.Purchase, error) {
	return s.purchaseRepo.FindBySupplier(supplierID)
}

func (s *stockService) publishStockUpdate(product *model.Product) {
	if s.hub == nil || product == nil {
		return
	}
	s.hub.Publish(ws.EventStockUpdate, map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"stock":      product.Stock,
	})
}
