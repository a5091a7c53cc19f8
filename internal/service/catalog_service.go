package service

import (
	"errors"
	"strings"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages products and the category registry.
type CatalogService interface {
	CreateProduct(req ProductRequest, actor string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req ProductRequest, actor string) (*model.Product, error)
	// DeleteProduct removes the product unconditionally. Invoice and
	// purchase history keep their name/price snapshots and their weak
	// product references.
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(barcode string) (*model.Product, error)
	ListProducts() ([]model.Product, error)
	ListLowStock() ([]model.Product, error)

	ListCategories() ([]model.Category, error)
	AddCategory(name, actor string) (*model.Category, error)
	DeleteCategory(name string) error
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Barcode     string  `json:"barcode"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	BuyPrice    float64 `json:"buy_price" validate:"gte=0"`
	SellPrice   float64 `json:"sell_price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	LowStock    int     `json:"low_stock" validate:"gte=0"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	hub          *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		hub:          hub,
	}
}

func (s *catalogService) CreateProduct(req ProductRequest, actor string) (*model.Product, error) {
	if err := s.ensureCategory(req.Category); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Category:    req.Category,
		Barcode:     req.Barcode,
		Brand:       req.Brand,
		Description: req.Description,
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		Stock:       req.Stock,
		LowStock:    req.LowStock,
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req ProductRequest, actor string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if err := s.ensureCategory(req.Category); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Barcode = req.Barcode
	product.Brand = req.Brand
	product.Description = req.Description
	product.BuyPrice = req.BuyPrice
	product.SellPrice = req.SellPrice
	product.Stock = req.Stock
	product.LowStock = req.LowStock
	product.UpdatedBy = actor

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(ws.EventStockUpdate, map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"stock":      product.Stock,
		})
	}
	return product, nil
}

func (s *catalogService) ensureCategory(name string) error {
	if _, err := s.categoryRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *catalogService) GetProductByBarcode(barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(barcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) ListLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) AddCategory(name, actor string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNotFound
	}
	if _, err := s.categoryRepo.FindByName(name); err == nil {
		return nil, ErrDuplicateCategory
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{Name: name}
	category.CreatedBy = actor
	category.UpdatedBy = actor
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses when any product still carries the category. The
// product rows are the source of truth for "in use", not the registry.
func (s *catalogService) DeleteCategory(name string) error {
	if _, err := s.categoryRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	count, err := s.productRepo.CountByCategory(name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(name)
}
