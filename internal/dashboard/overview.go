// internal/dashboard/overview.go
package dashboard

import (
	"fmt"
	"html/template"

	"inventory-dashboard/internal/models"
	"inventory-dashboard/internal/pricing"
)

// EmptyMessage replaces the table and chart when there are no products.
const EmptyMessage = "No products have been added yet."

// Row is one products table line.
type Row struct {
	Name        string
	Description string
	Price       string
	Quantity    int
}

// Overview is the "Products Overview" section of the dashboard.
type Overview struct {
	Empty   bool
	Message string
	Rows    []Row
	Chart   template.JS
}

// BuildOverview turns the read-only product sequence into table rows and
// chart data. products is not modified.
func BuildOverview(products []models.Product, chart ChartRenderer) (*Overview, error) {
	if len(products) == 0 {
		return &Overview{Empty: true, Message: EmptyMessage}, nil
	}

	rows := make([]Row, len(products))
	for i, p := range products {
		rows[i] = Row{
			Name:        p.Name,
			Description: p.Description,
			Price:       pricing.FormatPrice(p.Price),
			Quantity:    p.Quantity,
		}
	}

	ov := &Overview{Rows: rows}
	if chart != nil {
		js, err := chart.RenderChart(products)
		if err != nil {
			return nil, fmt.Errorf("render products chart: %w", err)
		}
		ov.Chart = js
	}
	return ov, nil
}
