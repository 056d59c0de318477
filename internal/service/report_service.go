package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"go-caixa-pos/internal/model"
	"go-caixa-pos/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	TopProductsLimit = 5
	ReportDays       = 7
	dashboardLowList = 3
	dashboardRecent  = 5
	dayLayout        = "2006-01-02"
)

// ReportService aggregates the sales history. "Today" and day buckets are
// calendar dates in the configured location.
type ReportService interface {
	Sales(ctx context.Context) ([]model.Sale, error)
	Summary(ctx context.Context) (*model.Summary, error)
	TopProducts(ctx context.Context, n int) ([]model.ProductRank, error)
	LastDays(ctx context.Context, days int) ([]model.DailyRevenue, error)
	TodaySales(ctx context.Context) (decimal.Decimal, int, error)
	Export(ctx context.Context) (*model.ReportSnapshot, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	caixa       CaixaService
	loc         *time.Location
	now         func() time.Time
}

func NewReportService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, caixa CaixaService, loc *time.Location, clock func() time.Time) ReportService {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &reportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		caixa:       caixa,
		loc:         loc,
		now:         clock,
	}
}

func (s *reportService) day(t time.Time) string {
	return t.In(s.loc).Format(dayLayout)
}

func (s *reportService) Sales(ctx context.Context) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ctx)
}

func (s *reportService) Summary(ctx context.Context) (*model.Summary, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := s.summarize(sales)
	return &summary, nil
}

func (s *reportService) summarize(sales []model.Sale) model.Summary {
	today := s.day(s.now())
	out := model.Summary{
		TotalRevenue:  decimal.Zero,
		TodayRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		SaleCount:     len(sales),
	}
	for _, sale := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(sale.Total)
		out.TotalItemsSold += sale.ItemCount()
		if s.day(sale.Timestamp) == today {
			out.TodayRevenue = out.TodayRevenue.Add(sale.Total)
		}
	}
	out.TotalRevenue = model.RoundMoney(out.TotalRevenue)
	out.TodayRevenue = model.RoundMoney(out.TodayRevenue)
	if len(sales) > 0 {
		out.AverageTicket = model.RoundMoney(out.TotalRevenue.Div(decimal.NewFromInt(int64(len(sales)))))
	}
	return out
}

func (s *reportService) TopProducts(ctx context.Context, n int) ([]model.ProductRank, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return rankProducts(sales, n), nil
}

// rankProducts orders products by units sold. Ties go to numeric ids in
// ascending order, then to other ids in first-sold order.
func rankProducts(sales []model.Sale, n int) []model.ProductRank {
	index := map[string]int{}
	ranks := []model.ProductRank{}
	for _, sale := range sales {
		for _, l := range sale.Lines {
			i, ok := index[l.Product.ID]
			if !ok {
				i = len(ranks)
				index[l.Product.ID] = i
				ranks = append(ranks, model.ProductRank{ProductID: l.Product.ID, Name: l.Product.Name, Revenue: decimal.Zero})
			}
			ranks[i].Quantity += l.Quantity
			ranks[i].Revenue = ranks[i].Revenue.Add(l.Subtotal())
		}
	}
	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Quantity != ranks[b].Quantity {
			return ranks[a].Quantity > ranks[b].Quantity
		}
		return idBefore(ranks[a].ProductID, ranks[b].ProductID)
	})
	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	for i := range ranks {
		ranks[i].Revenue = model.RoundMoney(ranks[i].Revenue)
	}
	return ranks
}

func idBefore(a, b string) bool {
	na, aNum := numericID(a)
	nb, bNum := numericID(b)
	if aNum && bNum {
		return na < nb
	}
	return aNum && !bNum
}

// numericID reports whether id is a canonical unsigned integer such as "7"
// (not "07" or "+7").
func numericID(id string) (uint64, bool) {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return n, true
}

func (s *reportService) LastDays(ctx context.Context, days int) ([]model.DailyRevenue, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.lastDays(sales, days), nil
}

// lastDays buckets sales per day, oldest first and ending today.
func (s *reportService) lastDays(sales []model.Sale, days int) []model.DailyRevenue {
	now := s.now().In(s.loc)
	out := make([]model.DailyRevenue, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := now.AddDate(0, 0, -i).Format(dayLayout)
		j := days - 1 - i
		out[j] = model.DailyRevenue{Date: d, Revenue: decimal.Zero}
		index[d] = j
	}
	for _, sale := range sales {
		if i, ok := index[s.day(sale.Timestamp)]; ok {
			out[i].SaleCount++
			out[i].Revenue = out[i].Revenue.Add(sale.Total)
		}
	}
	for i := range out {
		out[i].Revenue = model.RoundMoney(out[i].Revenue)
	}
	return out
}

func (s *reportService) TodaySales(ctx context.Context) (decimal.Decimal, int, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return decimal.Zero, 0, err
	}
	today := s.day(s.now())
	total, count := decimal.Zero, 0
	for _, sale := range sales {
		if s.day(sale.Timestamp) == today {
			total = total.Add(sale.Total)
			count++
		}
	}
	return model.RoundMoney(total), count, nil
}

func (s *reportService) Export(ctx context.Context) (*model.ReportSnapshot, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ReportSnapshot{
		GeneratedAt: s.now(),
		Summary:     s.summarize(sales),
		TopProducts: rankProducts(sales, TopProductsLimit),
		LastDays:    s.lastDays(sales, ReportDays),
		Sales:       sales,
	}, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	todayRevenue, todayCount, err := s.TodaySales(ctx)
	if err != nil {
		return nil, err
	}

	low := []model.Product{}
	lowCount := 0
	for _, p := range products {
		if p.LowStock() {
			lowCount++
			if len(low) < dashboardLowList {
				low = append(low, p)
			}
		}
	}

	recent := []model.Sale{}
	for i := len(sales) - 1; i >= 0 && len(recent) < dashboardRecent; i-- {
		recent = append(recent, sales[i])
	}

	return &model.Dashboard{
		TodayRevenue:  todayRevenue,
		TodaySales:    todayCount,
		ProductCount:  len(products),
		LowStockCount: lowCount,
		LowStock:      low,
		DrawerOpen:    s.caixa.IsOpen(),
		DrawerBalance: s.caixa.Balance(),
		RecentSales:   recent,
	}, nil
}
