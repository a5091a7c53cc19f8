package service

import (
	"errors"
	"sync"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartService owns the per-user draft carts. Carts live in memory only: a
// draft is not data until it becomes an invoice or quotation.
type CartService interface {
	Get(userID string) *Cart
	// AddLine is a no-op when the product is missing or out of stock
	// (matching the terminal behavior of tapping an unavailable tile);
	// incrementing an existing line past available stock is an error.
	AddLine(userID string, productID uuid.UUID) (*Cart, error)
	SetLineQty(userID string, productID uuid.UUID, delta int) (*Cart, error)
	SetLinePrice(userID string, productID uuid.UUID, price float64) (*Cart, error)
	SetLineMeta(userID string, productID uuid.UUID, serial, warranty string) (*Cart, error)
	RemoveLine(userID string, productID uuid.UUID) *Cart
	Clear(userID string)
	Totals(userID string, discountValue float64, discountType model.DiscountType) CartTotals
}

type cartService struct {
	mu          sync.Mutex
	carts       map[string]*Cart
	productRepo repository.ProductRepository
}

func NewCartService(productRepo repository.ProductRepository) CartService {
	return &cartService{
		carts:       make(map[string]*Cart),
		productRepo: productRepo,
	}
}

func (s *cartService) cart(userID string) *Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}
	return c
}

func (s *cartService) Get(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(userID)
}

// snapshot copies the cart so callers never hold a reference into the
// locked map.
func (s *cartService) snapshot(userID string) *Cart {
	c := s.cart(userID)
	out := &Cart{Lines: make([]CartLine, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

func (s *cartService) AddLine(userID string, productID uuid.UUID) (*Cart, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil || product.Stock <= 0 {
		// Silent no-op per the POS flow: the tile is unavailable.
		return s.Get(userID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	if line := c.Line(productID); line != nil {
		if line.Qty >= product.Stock {
			return s.snapshot(userID), ErrInsufficientStock
		}
		line.Qty++
	} else {
		c.Lines = append(c.Lines, CartLine{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.SellPrice,
			Qty:       1,
		})
	}
	return s.snapshot(userID), nil
}

func (s *cartService) SetLineQty(userID string, productID uuid.UUID, delta int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	line := c.Line(productID)
	if line == nil {
		return s.snapshot(userID), nil
	}

	newQty := line.Qty + delta
	if newQty <= 0 {
		c.removeLine(productID)
		return s.snapshot(userID), nil
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.snapshot(userID), ErrProductNotFound
		}
		return s.snapshot(userID), err
	}
	if newQty > product.Stock {
		return s.snapshot(userID), ErrInsufficientStock
	}

	line.Qty = newQty
	return s.snapshot(userID), nil
}

func (s *cartService) SetLinePrice(userID string, productID uuid.UUID, price float64) (*Cart, error) {
	if price < 0 {
		return s.Get(userID), ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	if line := c.Line(productID); line != nil {
		line.Price = price
	}
	return s.snapshot(userID), nil
}

func (s *cartService) SetLineMeta(userID string, productID uuid.UUID, serial, warranty string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	if line := c.Line(productID); line != nil {
		line.Serial = serial
		line.Warranty = warranty
	}
	return s.snapshot(userID), nil
}

func (s *cartService) RemoveLine(userID string, productID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart(userID).removeLine(productID)
	return s.snapshot(userID)
}

func (s *cartService) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *cartService) Totals(userID string, discountValue float64, discountType model.DiscountType) CartTotals {
	s.mu.Lock()
	subtotal := s.cart(userID).Subtotal()
	s.mu.Unlock()
	return ComputeTotals(subtotal, discountValue, discountType)
}
