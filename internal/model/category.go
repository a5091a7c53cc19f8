package model

// Category is the registry of known product categories. The set is seeded
// with shop defaults at startup and extended by users; free-form category
// strings on products must match a registry entry.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

// DefaultCategories is merged into the registry on every startup.
var DefaultCategories = []string{
	"Processors", "Motherboards", "RAM", "Graphic Cards", "Storage (SSD/HDD)",
	"Power Supplies (PSU)", "Cooling Solutions", "Casing", "Monitors",
	"Keyboards", "Mice", "Headsets / Speakers", "Laptops", "Networking",
	"Printers / Scanners", "UPS / Power", "Accessories", "Software",
	"Mobile Phone Accessories", "CCTV Systems", "Other",
}
