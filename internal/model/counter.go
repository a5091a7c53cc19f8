package model

import "fmt"

// Counter is a persisted monotonic sequence. Document numbers are taken from
// these rows inside the creating transaction and are never derived from
// collection size, so a delete-then-create cycle can never reissue a number.
type Counter struct {
	Name  string `gorm:"type:varchar(30);primaryKey" json:"name"`
	Value int64  `gorm:"not null" json:"value"`
}

const (
	CounterInvoice   = "invoice"
	CounterQuotation = "quotation"

	// Seeds are chosen so the first issued numbers are 1001 and Q101,
	// matching the numbering the shop already has on paper.
	InvoiceCounterSeed   = 1000
	QuotationCounterSeed = 100
)

// FormatInvoiceNo renders an invoice sequence value, zero-padded to 4 digits.
func FormatInvoiceNo(n int64) string {
	return fmt.Sprintf("%04d", n)
}

// FormatQuotationNo renders a quotation sequence value as Q + 3 digits.
func FormatQuotationNo(n int64) string {
	return fmt.Sprintf("Q%03d", n)
}
