package model

type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Contact string `gorm:"type:varchar(255)" json:"contact"`
	Phone   string `gorm:"type:varchar(30)" json:"phone" validate:"required"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
}
