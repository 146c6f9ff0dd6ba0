package service

import (
	"cmp"
	"slices"
	"time"

	"libreria-pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultLowStockThreshold = 5
	topProductsLimit         = 10
	dashboardLowStockLimit   = 5
	uncategorized            = "Uncategorized"
)

type ProductSales struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type CategorySales struct {
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type Summary struct {
	CompletedSales   int             `json:"completed_sales"`
	Revenue          decimal.Decimal `json:"revenue"`
	SalesToday       int             `json:"sales_today"`
	LowStockProducts int             `json:"low_stock_products"`
}

type Report struct {
	Summary     Summary         `json:"summary"`
	TopProducts []ProductSales  `json:"top_products"`
	Categories  []CategorySales `json:"categories"`
	LowStock    []model.Product `json:"low_stock"`
}

type Dashboard struct {
	TotalProducts   int             `json:"total_products"`
	ProductsInStock int             `json:"products_in_stock"`
	SalesToday      int             `json:"sales_today"`
	RevenueToday    decimal.Decimal `json:"revenue_today"`
	Clients         int             `json:"clients"`
	LowStock        []model.Product `json:"low_stock"`
}

// Snapshot is the data a report is computed from.
type Snapshot struct {
	Sales      []model.Sale
	Products   []model.Product
	Categories []model.Category
	Clients    []model.Client
}

// counts reports whether a sale contributes to sales figures.
func counts(s model.SaleStatus) bool {
	switch s {
	case model.SaleCompleted:
		return true
	case model.SalePending, model.SaleCancelled:
		return false
	default:
		return false
	}
}

func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BuildReport aggregates completed sales. Top products are ranked by units
// sold; categories cover every sold product.
func BuildReport(in Snapshot, now time.Time, lowStock int) Report {
	products := make(map[uuid.UUID]model.Product, len(in.Products))
	for _, p := range in.Products {
		products[p.ID] = p
	}
	categoryNames := make(map[uuid.UUID]string, len(in.Categories))
	for _, c := range in.Categories {
		categoryNames[c.ID] = c.Name
	}

	r := Report{Summary: Summary{Revenue: decimal.Zero}}
	byProduct := map[uuid.UUID]*ProductSales{}
	var order []uuid.UUID
	for _, sale := range in.Sales {
		if !counts(sale.Status) {
			continue
		}
		r.Summary.CompletedSales++
		r.Summary.Revenue = r.Summary.Revenue.Add(sale.Total)
		if sameDay(sale.Date, now) {
			r.Summary.SalesToday++
		}
		for _, it := range sale.Items {
			ps, ok := byProduct[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, Name: it.ProductID.String(), Revenue: decimal.Zero}
				if p, found := products[it.ProductID]; found {
					ps.Name = p.Name
					ps.CategoryID = p.CategoryID
				}
				byProduct[it.ProductID] = ps
				order = append(order, it.ProductID)
			}
			ps.Quantity += it.Quantity
			ps.Revenue = ps.Revenue.Add(it.Subtotal)
		}
	}

	sold := make([]ProductSales, 0, len(order))
	for _, id := range order {
		sold = append(sold, *byProduct[id])
	}
	slices.SortStableFunc(sold, func(a, b ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return b.Revenue.Cmp(a.Revenue)
	})

	r.Categories = categorySales(sold, categoryNames)
	r.TopProducts = sold[:min(len(sold), topProductsLimit)]

	r.LowStock = []model.Product{}
	for _, p := range in.Products {
		if p.Stock <= lowStock {
			r.LowStock = append(r.LowStock, p)
		}
	}
	r.Summary.LowStockProducts = len(r.LowStock)
	return r
}

func categorySales(sold []ProductSales, names map[uuid.UUID]string) []CategorySales {
	index := map[uuid.UUID]int{}
	out := []CategorySales{}
	none := -1
	for _, ps := range sold {
		var i int
		switch {
		case ps.CategoryID == nil:
			if none < 0 {
				none = len(out)
				out = append(out, CategorySales{Name: uncategorized, Revenue: decimal.Zero})
			}
			i = none
		default:
			var ok bool
			if i, ok = index[*ps.CategoryID]; !ok {
				id := *ps.CategoryID
				name, known := names[id]
				if !known {
					name = uncategorized
				}
				i = len(out)
				index[id] = i
				out = append(out, CategorySales{CategoryID: &id, Name: name, Revenue: decimal.Zero})
			}
		}
		out[i].Quantity += ps.Quantity
		out[i].Revenue = out[i].Revenue.Add(ps.Revenue)
	}
	slices.SortStableFunc(out, func(a, b CategorySales) int { return b.Revenue.Cmp(a.Revenue) })
	return out
}

// BuildDashboard sums today's completed sales. LowStock lists the first few
// products at or below the lowStock threshold.
func BuildDashboard(in Snapshot, now time.Time, lowStock int) Dashboard {
	d := Dashboard{
		TotalProducts: len(in.Products),
		Clients:       len(in.Clients),
		RevenueToday:  decimal.Zero,
		LowStock:      []model.Product{},
	}
	for _, p := range in.Products {
		if p.Stock > 0 {
			d.ProductsInStock++
		}
		if p.Stock <= lowStock && len(d.LowStock) < dashboardLowStockLimit {
			d.LowStock = append(d.LowStock, p)
		}
	}
	for _, sale := range in.Sales {
		if counts(sale.Status) && sameDay(sale.Date, now) {
			d.SalesToday++
			d.RevenueToday = d.RevenueToday.Add(sale.Total)
		}
	}
	return d
}
