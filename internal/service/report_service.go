package service

import (
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
)

// Dashboard is the at-a-glance view: today's and this month's trade, stock
// alerts, top sellers, and the latest invoices.
type Dashboard struct {
	TodaySales     float64            `json:"today_sales"`
	TodayInvoices  int64              `json:"today_invoices"`
	TodayProfit    float64            `json:"today_profit"`
	MonthSales     float64            `json:"month_sales"`
	MonthInvoices  int64              `json:"month_invoices"`
	MonthProfit    float64            `json:"month_profit"`
	LowStock       []model.Product    `json:"low_stock"`
	BestSellers    []repository.BestSeller `json:"best_sellers"`
	RecentInvoices []model.Invoice    `json:"recent_invoices"`
}

// SalesReport pairs the aggregate header with the invoice rows it covers.
type SalesReport struct {
	Summary  repository.SalesSummary `json:"summary"`
	Invoices []model.Invoice         `json:"invoices"`
}

type StockReport struct {
	Stats    repository.StockStats `json:"stats"`
	Products []model.Product       `json:"products"`
}

// ProfitReport: gross = revenue - cost of goods sold; net additionally
// subtracts expenses booked in the same window.
type ProfitReport struct {
	Rows        []repository.ProfitRow `json:"rows"`
	Revenue     float64                `json:"revenue"`
	Cost        float64                `json:"cost"`
	GrossProfit float64                `json:"gross_profit"`
	Expenses    float64                `json:"expenses"`
	NetProfit   float64                `json:"net_profit"`
}

type ReportService interface {
	Dashboard() (*Dashboard, error)
	SalesReport(from, to *time.Time) (*SalesReport, error)
	StockReport() (*StockReport, error)
	ProfitReport(from, to *time.Time) (*ProfitReport, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	expenseRepo repository.ExpenseRepository
}

func NewReportService(
	reportRepo repository.ReportRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	expenseRepo repository.ExpenseRepository,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *reportService) Dashboard() (*Dashboard, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tomorrow := dayStart.AddDate(0, 0, 1)

	d := &Dashboard{}

	var err error
	if d.TodaySales, d.TodayInvoices, err = s.reportRepo.RevenueBetween(dayStart, tomorrow); err != nil {
		return nil, err
	}
	if d.MonthSales, d.MonthInvoices, err = s.reportRepo.RevenueBetween(monthStart, tomorrow); err != nil {
		return nil, err
	}

	todayCost, err := s.reportRepo.CostOfSalesBetween(dayStart, tomorrow)
	if err != nil {
		return nil, err
	}
	d.TodayProfit = d.TodaySales - todayCost

	monthCost, err := s.reportRepo.CostOfSalesBetween(monthStart, tomorrow)
	if err != nil {
		return nil, err
	}
	d.MonthProfit = d.MonthSales - monthCost

	if d.LowStock, err = s.productRepo.FindLowStock(); err != nil {
		return nil, err
	}
	if d.BestSellers, err = s.reportRepo.BestSellers(5); err != nil {
		return nil, err
	}
	if d.RecentInvoices, err = s.invoiceRepo.Recent(5); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *reportService) SalesReport(from, to *time.Time) (*SalesReport, error) {
	summary, err := s.reportRepo.SalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindAll(repository.InvoiceFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return &SalesReport{Summary: *summary, Invoices: invoices}, nil
}

func (s *reportService) StockReport() (*StockReport, error) {
	stats, err := s.reportRepo.StockStats()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return &StockReport{Stats: *stats, Products: products}, nil
}

func (s *reportService) ProfitReport(from, to *time.Time) (*ProfitReport, error) {
	rows, err := s.reportRepo.ProfitRows(from, to)
	if err != nil {
		return nil, err
	}

	report := &ProfitReport{Rows: rows}
	for _, row := range rows {
		report.Revenue += row.Revenue
		report.Cost += row.Cost
	}
	report.GrossProfit = report.Revenue - report.Cost

	if report.Expenses, err = s.expenseRepo.SumBetween(from, to); err != nil {
		return nil, err
	}
	report.NetProfit = report.GrossProfit - report.Expenses
	return report, nil
}
