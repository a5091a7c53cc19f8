package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

// BackupPayload is the full portable state of the shop in one document.
type BackupPayload struct {
	ExportedAt time.Time         `json:"exported_at"`
	Version    int               `json:"version"`
	Settings   *model.Settings   `json:"settings"`
	Categories []model.Category  `json:"categories"`
	Products   []model.Product   `json:"products"`
	Customers  []model.Customer  `json:"customers"`
	Suppliers  []model.Supplier  `json:"suppliers"`
	Invoices   []model.Invoice   `json:"invoices"`
	Quotations []model.Quotation `json:"quotations"`
	Purchases  []model.Purchase  `json:"purchases"`
	Payments   []model.Payment   `json:"payments"`
	Expenses   []model.Expense   `json:"expenses"`
	Counters   []model.Counter   `json:"counters"`
	Users      []model.User      `json:"users"`
}

const backupVersion = 1

// BackupService exports the entire database as one JSON-able payload and
// restores from one. Import is wholesale replacement, not a merge.
type BackupService interface {
	Export() (*BackupPayload, error)
	Import(payload *BackupPayload) error
}

type backupService struct {
	db *gorm.DB
}

func NewBackupService(db *gorm.DB) BackupService {
	return &backupService{db}
}

func (s *backupService) Export() (*BackupPayload, error) {
	payload := &BackupPayload{
		ExportedAt: time.Now(),
		Version:    backupVersion,
	}

	var settings model.Settings
	if err := s.db.First(&settings, 1).Error; err == nil {
		payload.Settings = &settings
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Order("name").Find(&payload.Categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("name").Find(&payload.Products).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&payload.Customers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&payload.Suppliers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items").Order("date").Find(&payload.Invoices).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items").Order("date").Find(&payload.Quotations).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("date").Find(&payload.Purchases).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("date").Find(&payload.Payments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("date").Find(&payload.Expenses).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&payload.Counters).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&payload.Users).Error; err != nil {
		return nil, err
	}

	return payload, nil
}

// Import wipes every table and loads the payload in a single transaction.
// A failed import rolls back to the pre-import state.
func (s *backupService) Import(payload *BackupPayload) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{
			&model.InvoiceItem{}, &model.Invoice{},
			&model.QuotationItem{}, &model.Quotation{},
			&model.Purchase{}, &model.Payment{}, &model.Expense{},
			&model.Product{}, &model.Category{},
			&model.Customer{}, &model.Supplier{},
			&model.Counter{}, &model.User{}, &model.Settings{},
		} {
			if err := wipe.Delete(m).Error; err != nil {
				return err
			}
		}

		if payload.Settings != nil {
			payload.Settings.ID = 1
			if err := tx.Create(payload.Settings).Error; err != nil {
				return err
			}
		}
		if len(payload.Categories) > 0 {
			if err := tx.Create(&payload.Categories).Error; err != nil {
				return err
			}
		}
		if len(payload.Products) > 0 {
			if err := tx.Create(&payload.Products).Error; err != nil {
				return err
			}
		}
		if len(payload.Customers) > 0 {
			if err := tx.Create(&payload.Customers).Error; err != nil {
				return err
			}
		}
		if len(payload.Suppliers) > 0 {
			if err := tx.Create(&payload.Suppliers).Error; err != nil {
				return err
			}
		}
		if len(payload.Invoices) > 0 {
			if err := tx.Create(&payload.Invoices).Error; err != nil {
				return err
			}
		}
		if len(payload.Quotations) > 0 {
			if err := tx.Create(&payload.Quotations).Error; err != nil {
				return err
			}
		}
		if len(payload.Purchases) > 0 {
			if err := tx.Create(&payload.Purchases).Error; err != nil {
				return err
			}
		}
		if len(payload.Payments) > 0 {
			if err := tx.Create(&payload.Payments).Error; err != nil {
				return err
			}
		}
		if len(payload.Expenses) > 0 {
			if err := tx.Create(&payload.Expenses).Error; err != nil {
				return err
			}
		}
		if len(payload.Counters) > 0 {
			if err := tx.Create(&payload.Counters).Error; err != nil {
				return err
			}
		}
		if len(payload.Users) > 0 {
			if err := tx.Create(&payload.Users).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
