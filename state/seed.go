package state

import (
	"context"

	"libreria-pos/model"

	"github.com/shopspring/decimal"
)

var demoCategories = []model.CategoryInput{
	{Name: "Cuadernos", Description: "Cuadernos y libretas"},
	{Name: "Lapiceros", Description: "Bolígrafos y plumas"},
	{Name: "Útiles Escolares", Description: "Material escolar básico"},
	{Name: "Papelería", Description: "Papel y material de oficina"},
	{Name: "Artículos de Arte", Description: "Materiales para dibujo y pintura"},
}

var demoProducts = []struct {
	category string
	in       model.ProductInput
}{
	{"Cuadernos", model.ProductInput{Name: "Cuaderno Cuadriculado A4", Brand: "Stanford", Price: decimal.RequireFromString("8.50"), Stock: 25}},
	{"Lapiceros", model.ProductInput{Name: "Lapicero Azul", Brand: "Pilot", Price: decimal.RequireFromString("2.00"), Stock: 50}},
	{"Útiles Escolares", model.ProductInput{Name: "Borrador Blanco", Brand: "Faber-Castell", Price: decimal.RequireFromString("1.50"), Stock: 30}},
	{"Papelería", model.ProductInput{Name: "Hojas Bond A4", Brand: "Copy", Price: decimal.RequireFromString("12.00"), Stock: 20}},
	{"Artículos de Arte", model.ProductInput{Name: "Lápices de Colores x12", Brand: "Faber-Castell", Price: decimal.RequireFromString("15.50"), Stock: 15}},
}

// SeedDemo fills an empty catalog with the demo stationery catalog.
// A catalog that already has categories or products is left alone.
func (st *State) SeedDemo(ctx context.Context) error {
	st.mu.RLock()
	empty := len(st.categories) == 0 && len(st.products) == 0
	st.mu.RUnlock()
	if !empty {
		return nil
	}

	byName := map[string]model.Category{}
	for _, in := range demoCategories {
		c, err := st.CreateCategory(ctx, in)
		if err != nil {
			return err
		}
		byName[c.Name] = c
	}
	for _, dp := range demoProducts {
		in := dp.in
		if c, ok := byName[dp.category]; ok {
			in.CategoryID = &c.ID
		}
		if _, err := st.CreateProduct(ctx, in); err != nil {
			return err
		}
	}
	st.log.Info("demo catalog seeded", "categories", len(demoCategories), "products", len(demoProducts))
	return nil
}
