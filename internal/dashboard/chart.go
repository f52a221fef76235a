// internal/dashboard/chart.go
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"

	"inventory-dashboard/internal/models"
)

// ChartRenderer draws the products chart. It receives the product sequence
// exactly as the overview got it.
type ChartRenderer interface {
	RenderChart(products []models.Product) (template.JS, error)
}

// BarChart hands the products to the bar chart widget on the page as JSON.
type BarChart struct{}

func (BarChart) RenderChart(products []models.Product) (template.JS, error) {
	b, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("encode chart data: %w", err)
	}
	return template.JS(b), nil
}
