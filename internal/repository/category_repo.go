package repository

import (
	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindByName(name string) (*model.Category, error)
	Create(category *model.Category) error
	Delete(name string) error
	// SeedDefaults merges the default category list into the registry,
	// leaving user-added entries untouched.
	SeedDefaults() error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "name = ?", name).Error
	return &category, err
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) Delete(name string) error {
	return r.db.Delete(&model.Category{}, "name = ?", name).Error
}

func (r *categoryRepo) SeedDefaults() error {
	for _, name := range model.DefaultCategories {
		var existing model.Category
		err := r.db.First(&existing, "name = ?", name).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := r.db.Create(&model.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
