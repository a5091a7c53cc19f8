package service

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
)

type SettingsService interface {
	Get() (*model.Settings, error)
	Update(req SettingsRequest) (*model.Settings, error)
}

type SettingsRequest struct {
	ShopName          string `json:"shop_name" validate:"required"`
	ShopAddress       string `json:"shop_address"`
	ShopPhone         string `json:"shop_phone"`
	ShopEmail         string `json:"shop_email" validate:"omitempty,email"`
	Currency          string `json:"currency" validate:"required"`
	InvoiceFooter     string `json:"invoice_footer"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo}
}

func (s *settingsService) Get() (*model.Settings, error) {
	return s.settingsRepo.Get()
}

func (s *settingsService) Update(req SettingsRequest) (*model.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	settings.ShopName = req.ShopName
	settings.ShopAddress = req.ShopAddress
	settings.ShopPhone = req.ShopPhone
	settings.ShopEmail = req.ShopEmail
	settings.Currency = req.Currency
	settings.InvoiceFooter = req.InvoiceFooter
	settings.LowStockThreshold = req.LowStockThreshold

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
