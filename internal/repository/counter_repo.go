package repository

import (
	"errors"

	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

type CounterRepository interface {
	// Next increments the named sequence and returns the new value. Must be
	// called with the transaction that creates the numbered document so a
	// rolled-back creation does not burn a number silently out of sequence.
	Next(tx *gorm.DB, name string, seed int64) (int64, error)
	Current(name string, seed int64) (int64, error)
}

type counterRepo struct {
	db *gorm.DB
}

func NewCounterRepo(db *gorm.DB) CounterRepository {
	return &counterRepo{db}
}

func (r *counterRepo) Next(tx *gorm.DB, name string, seed int64) (int64, error) {
	var c model.Counter
	err := tx.First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.Counter{Name: name, Value: seed}
		if err := tx.Create(&c).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	c.Value++
	if err := tx.Save(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}

func (r *counterRepo) Current(name string, seed int64) (int64, error) {
	var c model.Counter
	err := r.db.First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return seed, nil
	}
	return c.Value, err
}
