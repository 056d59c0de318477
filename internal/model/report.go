package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TotalItemsSold int             `json:"total_items_sold"`
	SaleCount      int             `json:"sale_count"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
}

type ProductRank struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DailyRevenue struct {
	Date      string          `json:"date"`
	SaleCount int             `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ReportSnapshot is the exportable report document.
type ReportSnapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     Summary        `json:"summary"`
	TopProducts []ProductRank  `json:"top_products"`
	LastDays    []DailyRevenue `json:"last_days"`
	Sales       []Sale         `json:"sales"`
}

type Dashboard struct {
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	TodaySales    int             `json:"today_sales"`
	ProductCount  int             `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
	LowStock      []Product       `json:"low_stock"`
	DrawerOpen    bool            `json:"drawer_open"`
	DrawerBalance decimal.Decimal `json:"drawer_balance"`
	RecentSales   []Sale          `json:"recent_sales"`
}
