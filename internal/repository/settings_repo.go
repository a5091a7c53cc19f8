package repository

import (
	"errors"

	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.Settings, error)
	Save(settings *model.Settings) error
	// SeedDefault creates the singleton row when missing.
	SeedDefault() error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) Get() (*model.Settings, error) {
	var settings model.Settings
	err := r.db.First(&settings, "id = ?", 1).Error
	return &settings, err
}

func (r *settingsRepo) Save(settings *model.Settings) error {
	settings.ID = 1
	return r.db.Save(settings).Error
}

func (r *settingsRepo) SeedDefault() error {
	var existing model.Settings
	err := r.db.First(&existing, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := model.DefaultSettings()
		return r.db.Create(&defaults).Error
	}
	return err
}
