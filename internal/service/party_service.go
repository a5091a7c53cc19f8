package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyService manages the customer and supplier directories.
type PartyService interface {
	CreateCustomer(req CustomerRequest, actor string) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req CustomerRequest, actor string) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	ListCustomers() ([]model.Customer, error)
	// CustomerHistory returns the customer's invoices, matched by phone.
	CustomerHistory(id uuid.UUID) ([]model.Invoice, error)

	CreateSupplier(req SupplierRequest, actor string) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req SupplierRequest, actor string) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	ListSuppliers() ([]model.Supplier, error)
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	NIC     string `json:"nic"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type partyService struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
}

func NewPartyService(
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.InvoiceRepository,
) PartyService {
	return &partyService{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
	}
}

func (s *partyService) CreateCustomer(req CustomerRequest, actor string) (*model.Customer, error) {
	if _, err := s.customerRepo.FindByPhone(req.Phone); err == nil {
		return nil, ErrDuplicateCustomerPhone
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		NIC:     req.NIC,
		Address: req.Address,
		Notes:   req.Notes,
	}
	customer.CreatedBy = actor
	customer.UpdatedBy = actor
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *partyService) UpdateCustomer(id uuid.UUID, req CustomerRequest, actor string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	// Phone is the accounts-ledger key; moving it to one already taken
	// would silently merge two balances.
	if req.Phone != customer.Phone {
		if other, err := s.customerRepo.FindByPhone(req.Phone); err == nil && other.ID != customer.ID {
			return nil, ErrDuplicateCustomerPhone
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.NIC = req.NIC
	customer.Address = req.Address
	customer.Notes = req.Notes
	customer.UpdatedBy = actor

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *partyService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customerRepo.Delete(id)
}

func (s *partyService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	return customer, err
}

func (s *partyService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *partyService) CustomerHistory(id uuid.UUID) ([]model.Invoice, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.invoiceRepo.FindByPhone(customer.Phone)
}

func (s *partyService) CreateSupplier(req SupplierRequest, actor string) (*model.Supplier, error) {
	supplier := &model.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	supplier.CreatedBy = actor
	supplier.UpdatedBy = actor
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *partyService) UpdateSupplier(id uuid.UUID, req SupplierRequest, actor string) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	supplier.Name = req.Name
	supplier.Contact = req.Contact
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.UpdatedBy = actor

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *partyService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *partyService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSupplierNotFound
	}
	return supplier, err
}

func (s *partyService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}
