package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string  `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	Barcode     string  `gorm:"type:varchar(100)" json:"barcode"`
	Brand       string  `gorm:"type:varchar(100)" json:"brand"`
	Description string  `json:"description"`
	BuyPrice    float64 `gorm:"not null;default:0" json:"buy_price" validate:"gte=0"`
	SellPrice   float64 `gorm:"not null;default:0" json:"sell_price" validate:"gte=0"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	LowStock    int     `gorm:"not null;default:5" json:"low_stock" validate:"gte=0"`
}

// IsLowStock reports whether on-hand quantity is at or below the threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStock
}

// IsOutOfStock reports whether the product has no sellable units left.
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// StockValue is the inventory valuation at cost.
func (p *Product) StockValue() float64 {
	return p.BuyPrice * float64(p.Stock)
}
