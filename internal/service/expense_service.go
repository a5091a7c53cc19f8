package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseService interface {
	RecordExpense(req ExpenseRequest, actor string) (*model.Expense, error)
	DeleteExpense(id uuid.UUID) error
	ListExpenses(from, to *time.Time) ([]model.Expense, error)
}

type ExpenseRequest struct {
	Category    string     `json:"category" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo}
}

func (s *expenseService) RecordExpense(req ExpenseRequest, actor string) (*model.Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	expense := &model.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	}
	expense.CreatedBy = actor
	expense.UpdatedBy = actor
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	return s.expenseRepo.Delete(id)
}

func (s *expenseService) ListExpenses(from, to *time.Time) ([]model.Expense, error) {
	return s.expenseRepo.FindAll(from, to)
}
