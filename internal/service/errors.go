package service

import "errors"

// Domain error kinds. All are surfaced synchronously to the caller and are
// locally recoverable: correct the input and retry. Validation always runs
// before any mutation, so no operation partially applies on failure.
var (
	ErrInvalidQuantity     = errors.New("quantity must be a positive number")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrInsufficientPayment = errors.New("insufficient cash tendered")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrEmptyInvoice        = errors.New("invoice must have at least one item")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrDuplicateCustomerPhone = errors.New("a customer with this phone already exists")
	ErrDuplicateCategory      = errors.New("category already exists")
	ErrCategoryInUse          = errors.New("category is assigned to products and cannot be deleted")
	ErrUsernameExists         = errors.New("username already exists")

	ErrProductNotFound   = errors.New("product not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrPaymentNotFound   = errors.New("payment record not found")
	ErrExpenseNotFound   = errors.New("expense record not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUserNotFound      = errors.New("user not found")
)

// IsNotFound reports whether err is one of the not-found kinds.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrProductNotFound, ErrCustomerNotFound, ErrSupplierNotFound,
		ErrInvoiceNotFound, ErrQuotationNotFound, ErrPurchaseNotFound,
		ErrPaymentNotFound, ErrExpenseNotFound, ErrCategoryNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err is a duplicate/in-use kind.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateCustomerPhone) ||
		errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrCategoryInUse) ||
		errors.Is(err, ErrUsernameExists)
}
