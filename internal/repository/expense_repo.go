package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindAll(from, to *time.Time) ([]model.Expense, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	Delete(id uuid.UUID) error
	SumBetween(from, to *time.Time) (float64, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) FindAll(from, to *time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.Order("date DESC")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepo) SumBetween(from, to *time.Time) (float64, error) {
	var total float64
	q := r.db.Model(&model.Expense{}).Select("COALESCE(SUM(amount), 0)")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	err := q.Scan(&total).Error
	return total, err
}
