package model

// Settings is the singleton shop profile row (ID is always 1).
type Settings struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	ShopName          string  `gorm:"type:varchar(255)" json:"shop_name"`
	ShopAddress       string  `json:"shop_address"`
	ShopPhone         string  `gorm:"type:varchar(30)" json:"shop_phone"`
	ShopEmail         string  `gorm:"type:varchar(255)" json:"shop_email"`
	Currency          string  `gorm:"type:varchar(10)" json:"currency"`
	InvoiceFooter     string  `json:"invoice_footer"`
	LowStockThreshold int     `gorm:"default:5" json:"low_stock_threshold"`
}

// DefaultSettings seeds the singleton on first start.
func DefaultSettings() Settings {
	return Settings{
		ID:                1,
		ShopName:          "BEE TECHNOLOGIES",
		ShopAddress:       "No. 456, Highlevel Road, Maharagama",
		ShopPhone:         "011-2345678",
		ShopEmail:         "info@beetechnologies.com",
		Currency:          "Rs.",
		InvoiceFooter:     "Thank you for your business! Please come again.",
		LowStockThreshold: 5,
	}
}
