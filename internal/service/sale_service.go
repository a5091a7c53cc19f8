package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleService turns a draft cart into a durable invoice and owns the later
// life of that invoice: editing (which never reconciles stock) and
// retraction (which restores the stock deducted at sale time).
type SaleService interface {
	CompleteSale(userID string, req CompleteSaleRequest) (*model.Invoice, error)
	UpdateInvoice(id uuid.UUID, req UpdateInvoiceRequest, actor string) (*model.Invoice, error)
	DeleteInvoice(id uuid.UUID) error
	GetInvoice(id uuid.UUID) (*model.Invoice, error)
	ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, error)
}

type CompleteSaleRequest struct {
	DiscountValue float64             `json:"discount_value" validate:"gte=0"`
	DiscountType  model.DiscountType  `json:"discount_type" validate:"required,oneof=percent fixed"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card transfer"`
	CashTendered  float64             `json:"cash_tendered" validate:"gte=0"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
}

// InvoiceRowEdit adjusts one existing invoice line. Rows edited to qty <= 0
// are dropped before validation, mirroring the edit form behavior.
type InvoiceRowEdit struct {
	ItemID uuid.UUID `json:"item_id"`
	Qty    int       `json:"qty"`
	Price  float64   `json:"price" validate:"gte=0"`
}

type UpdateInvoiceRequest struct {
	Rows          []InvoiceRowEdit    `json:"rows"`
	DiscountValue float64             `json:"discount_value" validate:"gte=0"`
	DiscountType  model.DiscountType  `json:"discount_type" validate:"required,oneof=percent fixed"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Note          string              `json:"note"`
}

type saleService struct {
	db           *gorm.DB
	carts        CartService
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	counterRepo  repository.CounterRepository
	hub          *ws.Hub
}

func NewSaleService(
	db *gorm.DB,
	carts CartService,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	counterRepo repository.CounterRepository,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		db:           db,
		carts:        carts,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		counterRepo:  counterRepo,
		hub:          hub,
	}
}

// CompleteSale commits the user's cart as an invoice. Everything runs in one
// DB transaction: stock re-verification and deduction, number assignment,
// invoice creation, and the customer upsert. The cart is cleared only after
// the transaction commits, so a failed sale leaves the draft intact.
func (s *saleService) CompleteSale(userID string, req CompleteSaleRequest) (*model.Invoice, error) {
	cart := s.carts.Get(userID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(cart.Subtotal(), req.DiscountValue, req.DiscountType)
	if req.PaymentMethod == model.PayCash && req.CashTendered < totals.Total {
		return nil, ErrInsufficientPayment
	}

	var invoice *model.Invoice
	var lowStock []model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-verify stock at commit time. The cart enforced limits when
		// lines were added, but stock may have moved since (another sale,
		// a retraction, a product deletion), and that is fatal to the
		// whole sale.
		for _, line := range cart.Lines {
			product, err := s.productRepo.FindByIDTx(tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if product.Stock < line.Qty {
				return ErrInsufficientStock
			}
			if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock-line.Qty, userID); err != nil {
				return err
			}
			if product.Stock-line.Qty <= product.LowStock {
				product.Stock -= line.Qty
				lowStock = append(lowStock, *product)
			}
		}

		seq, err := s.counterRepo.Next(tx, model.CounterInvoice, model.InvoiceCounterSeed)
		if err != nil {
			return err
		}

		now := time.Now()
		items := make([]model.InvoiceItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			items = append(items, model.InvoiceItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Qty:       line.Qty,
				Serial:    line.Serial,
				Warranty:  line.Warranty,
			})
		}

		invoice = &model.Invoice{
			InvoiceNo:     model.FormatInvoiceNo(seq),
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Items:         items,
			Subtotal:      totals.Subtotal,
			Discount:      totals.Discount,
			DiscountValue: req.DiscountValue,
			DiscountType:  req.DiscountType,
			Total:         totals.Total,
			PaymentMethod: req.PaymentMethod,
			Date:          now,
		}
		invoice.CreatedBy = userID
		invoice.UpdatedBy = userID

		if req.PaymentMethod == model.PayCash {
			tendered := req.CashTendered
			invoice.PaidAmount = &tendered
			invoice.CashTendered = req.CashTendered
			invoice.Change = req.CashTendered - totals.Total
			if invoice.Change < 0 {
				invoice.Change = 0
			}
		} else {
			// Card/transfer sales carry no tracked cash amount; the
			// accounts ledger treats them as fully paid.
			invoice.CashTendered = totals.Total
			invoice.Change = 0
		}

		if err := s.invoiceRepo.CreateTx(tx, invoice); err != nil {
			return err
		}

		return s.upsertCustomer(tx, req.CustomerName, req.CustomerPhone, userID)
	})
	if err != nil {
		return nil, err
	}

	s.carts.Clear(userID)

	if s.hub != nil {
		s.hub.Publish(ws.EventSaleCompleted, map[string]interface{}{
			"invoice_no": invoice.InvoiceNo,
			"total":      invoice.Total,
			"items":      len(invoice.Items),
		})
		for _, p := range lowStock {
			s.hub.Publish(ws.EventLowStock, map[string]interface{}{
				"product_id": p.ID,
				"name":       p.Name,
				"stock":      p.Stock,
			})
		}
	}

	return invoice, nil
}

// upsertCustomer links the sale to a customer record by phone: fill in a
// missing name on an existing record, otherwise create one. Sales without a
// phone stay anonymous walk-ins.
func (s *saleService) upsertCustomer(tx *gorm.DB, name, phone, actor string) error {
	if phone == "" {
		return nil
	}

	existing, err := s.customerRepo.FindByPhoneTx(tx, phone)
	if err == nil {
		if name != "" && existing.Name == "" {
			existing.Name = name
			existing.UpdatedBy = actor
			return s.customerRepo.UpdateTx(tx, existing)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	customer := &model.Customer{
		Name:  name,
		Phone: phone,
	}
	if customer.Name == "" {
		customer.Name = "Unknown"
	}
	customer.CreatedBy = actor
	customer.UpdatedBy = actor
	return s.customerRepo.CreateTx(tx, customer)
}

// UpdateInvoice rewrites an invoice's lines, discount, customer, and payment
// fields and recomputes the derived totals. It deliberately does not touch
// product stock: stock was deducted at sale time and edits do not restock or
// re-deduct. InvoiceNo, ID, and Date are immutable.
func (s *saleService) UpdateInvoice(id uuid.UUID, req UpdateInvoiceRequest, actor string) (*model.Invoice, error) {
	var updated *model.Invoice

	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		byID := make(map[uuid.UUID]InvoiceRowEdit, len(req.Rows))
		for _, row := range req.Rows {
			byID[row.ItemID] = row
		}

		kept := make([]model.InvoiceItem, 0, len(invoice.Items))
		for _, item := range invoice.Items {
			row, ok := byID[item.ID]
			if !ok {
				// Untouched rows keep their snapshot values.
				kept = append(kept, item)
				continue
			}
			if row.Qty <= 0 {
				continue // dropped row
			}
			item.Qty = row.Qty
			item.Price = row.Price
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			return ErrEmptyInvoice
		}

		var subtotal float64
		for _, item := range kept {
			subtotal += item.LineTotal()
		}
		totals := ComputeTotals(subtotal, req.DiscountValue, req.DiscountType)

		if err := s.invoiceRepo.ReplaceItemsTx(tx, invoice.ID, kept); err != nil {
			return err
		}

		invoice.Items = kept
		invoice.Subtotal = totals.Subtotal
		invoice.Discount = totals.Discount
		invoice.DiscountValue = req.DiscountValue
		invoice.DiscountType = req.DiscountType
		invoice.Total = totals.Total
		invoice.CustomerName = req.CustomerName
		invoice.CustomerPhone = req.CustomerPhone
		invoice.PaymentMethod = req.PaymentMethod
		invoice.Note = req.Note
		invoice.UpdatedBy = actor

		if err := s.invoiceRepo.UpdateTx(tx, invoice); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteInvoice restores the stock each line deducted at sale time, then
// removes the record entirely. If the invoice was edited to different
// quantities after the sale, the restoration follows the CURRENT lines,
// which can overcorrect; that is the documented behavior.
func (s *saleService) DeleteInvoice(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		for _, item := range invoice.Items {
			product, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // product deleted since the sale; nothing to restore
				}
				return err
			}
			if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock+item.Qty, invoice.UpdatedBy); err != nil {
				return err
			}
		}

		return s.invoiceRepo.DeleteTx(tx, invoice.ID)
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Publish(ws.EventStockUpdate, map[string]interface{}{
			"reason": "invoice_deleted",
		})
	}
	return nil
}

func (s *saleService) GetInvoice(id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	return invoice, err
}

func (s *saleService) ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll(filter)
}
