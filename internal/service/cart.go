package service

import (
	"math"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
)

// CartLine is an ephemeral line in an in-progress sale or quotation draft.
// Name and price are captured when the line is added; the price is
// independently editable per line and never written back to the product.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
	Serial    string    `json:"serial,omitempty"`
	Warranty  string    `json:"warranty,omitempty"`
}

// Cart is the transient working set for one terminal user. It exists only
// while a sale or quotation is being drafted and is discarded on completion
// or explicit clear.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Line returns the line for productID, or nil.
func (c *Cart) Line(productID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

func (c *Cart) removeLine(productID uuid.UUID) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal is the sum of price x qty over all lines, before discount.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.Lines {
		subtotal += line.Price * float64(line.Qty)
	}
	return subtotal
}

// CartTotals is the result of the pricing formula shared by sales,
// quotations, and invoice edits.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeTotals applies the discount formula:
//
//	discount = percent ? subtotal*value/100 : min(value, subtotal)
//	total    = max(subtotal - discount, 0)
//
// Pure function; shared by every component that prices a line set.
func ComputeTotals(subtotal, discountValue float64, discountType model.DiscountType) CartTotals {
	var discount float64
	if discountType == model.DiscountPercent {
		discount = subtotal * discountValue / 100
	} else {
		discount = math.Min(discountValue, subtotal)
	}
	total := math.Max(subtotal-discount, 0)
	return CartTotals{Subtotal: subtotal, Discount: discount, Total: total}
}
