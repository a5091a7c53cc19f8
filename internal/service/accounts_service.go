package service

import (
	"errors"
	"sort"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// outstandingEpsilon is the threshold at or below which a balance counts as
// settled. Balances are derived from float arithmetic over many rows, so a
// strict zero comparison would keep phantom cents on the books forever.
const outstandingEpsilon = 0.5

// walkInKey groups receivables from phoneless invoices into one bucket.
const walkInKey = "walk-in"

// AccountRow is one entity's derived balance in the receivables or payables
// view. Nothing here is stored; it is recomputed from invoices, purchases,
// and payments on every read.
type AccountRow struct {
	EntityID    string  `json:"entity_id"`
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

// PaymentHistoryEntry is one row of an entity's payment timeline. Synthetic
// entries represent amounts paid at sale or purchase time, which have no
// Payment record of their own.
type PaymentHistoryEntry struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	Synthetic bool      `json:"synthetic"`
}

type AccountsService interface {
	Receivables() ([]AccountRow, error)
	Payables() ([]AccountRow, error)
	RecordPayment(t model.PaymentType, entityID string, amount float64, note, actor string) (*model.Payment, error)
	// DeletePayment removes the ledger entry; the entity's outstanding
	// balance grows back by the deleted amount on the next read.
	DeletePayment(id uuid.UUID) error
	PaymentHistory(t model.PaymentType, entityID string) ([]PaymentHistoryEntry, error)
	ListPayments(t model.PaymentType) ([]model.Payment, error)
}

type accountsService struct {
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

func NewAccountsService(
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) AccountsService {
	return &accountsService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// Receivables derives per-customer balances from invoices, keyed by phone.
// Invoices without a tracked paid amount count as fully paid, and phoneless
// invoices fall into the shared walk-in bucket. Rows settled to within the
// epsilon are dropped.
func (s *accountsService) Receivables() ([]AccountRow, error) {
	invoices, err := s.invoiceRepo.FindAll(repository.InvoiceFilter{})
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*AccountRow)
	for _, inv := range invoices {
		key := inv.CustomerPhone
		if key == "" {
			key = walkInKey
		}
		row, ok := rows[key]
		if !ok {
			row = &AccountRow{EntityID: key, Name: inv.CustomerName}
			if key == walkInKey {
				row.Name = "Walk-in customers"
			}
			rows[key] = row
		}
		if row.Name == "" {
			row.Name = inv.CustomerName
		}
		row.Total += inv.Total
		row.Paid += inv.PaidOrTotal()
	}

	payments, err := s.paymentRepo.FindByType(model.PaymentCustomer)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if row, ok := rows[p.EntityID]; ok {
			row.Paid += p.Amount
		}
	}

	// Prefer the directory name over whatever was typed at the till.
	for key, row := range rows {
		if key == walkInKey {
			continue
		}
		if customer, err := s.customerRepo.FindByPhone(key); err == nil && customer.Name != "" {
			row.Name = customer.Name
		}
	}

	return settleRows(rows), nil
}

// Payables derives per-supplier balances from purchases.
func (s *accountsService) Payables() ([]AccountRow, error) {
	purchases, err := s.purchaseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*AccountRow)
	for _, pu := range purchases {
		key := pu.SupplierID.String()
		row, ok := rows[key]
		if !ok {
			row = &AccountRow{EntityID: key, Name: pu.SupplierName}
			rows[key] = row
		}
		row.Total += pu.TotalCost
		row.Paid += pu.PaidAmount
	}

	payments, err := s.paymentRepo.FindByType(model.PaymentSupplier)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if row, ok := rows[p.EntityID]; ok {
			row.Paid += p.Amount
		}
	}

	return settleRows(rows), nil
}

func settleRows(rows map[string]*AccountRow) []AccountRow {
	out := make([]AccountRow, 0, len(rows))
	for _, row := range rows {
		row.Outstanding = row.Total - row.Paid
		if row.Outstanding <= outstandingEpsilon {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Outstanding > out[j].Outstanding
	})
	return out
}

func (s *accountsService) RecordPayment(t model.PaymentType, entityID string, amount float64, note, actor string) (*model.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	payment := &model.Payment{
		Type:     t,
		EntityID: entityID,
		Amount:   amount,
		Note:     note,
		Date:     time.Now(),
	}
	payment.CreatedBy = actor
	payment.UpdatedBy = actor
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *accountsService) DeletePayment(id uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return s.paymentRepo.Delete(id)
}

// PaymentHistory merges explicit Payment rows with synthetic entries for the
// amounts paid at sale/purchase time, newest first.
func (s *accountsService) PaymentHistory(t model.PaymentType, entityID string) ([]PaymentHistoryEntry, error) {
	payments, err := s.paymentRepo.FindByEntity(t, entityID)
	if err != nil {
		return nil, err
	}

	entries := make([]PaymentHistoryEntry, 0, len(payments))
	for _, p := range payments {
		entries = append(entries, PaymentHistoryEntry{
			ID:     p.ID,
			Amount: p.Amount,
			Note:   p.Note,
			Date:   p.Date,
		})
	}

	switch t {
	case model.PaymentCustomer:
		invoices, err := s.invoiceRepo.FindByPhone(entityID)
		if err != nil {
			return nil, err
		}
		for _, inv := range invoices {
			paid := inv.PaidOrTotal()
			if paid <= 0 {
				continue
			}
			entries = append(entries, PaymentHistoryEntry{
				Amount:    paid,
				Note:      "Paid with invoice " + inv.InvoiceNo,
				Date:      inv.Date,
				Synthetic: true,
			})
		}
	case model.PaymentSupplier:
		supplierID, err := uuid.Parse(entityID)
		if err != nil {
			return nil, ErrSupplierNotFound
		}
		if _, err := s.supplierRepo.FindByID(supplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupplierNotFound
			}
			return nil, err
		}
		purchases, err := s.purchaseRepo.FindBySupplier(supplierID)
		if err != nil {
			return nil, err
		}
		for _, pu := range purchases {
			if pu.PaidAmount <= 0 {
				continue
			}
			entries = append(entries, PaymentHistoryEntry{
				Amount:    pu.PaidAmount,
				Note:      "Paid on purchase of " + pu.ProductName,
				Date:      pu.Date,
				Synthetic: true,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *accountsService) ListPayments(t model.PaymentType) ([]model.Payment, error) {
	return s.paymentRepo.FindByType(t)
}
