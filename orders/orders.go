// Package orders holds the pure projections over order data: the display
// grouping and the status-history append rule.
package orders

import (
	"errors"
	"strings"

	"localconnect/models"
)

// Tally is a product shown with how many times it appears in one business
// subgroup of an order.
type Tally struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type BusinessGroup struct {
	Business string  `json:"business"`
	Items    []Tally `json:"items"`
}

type DisplayOrder struct {
	OrderID          string          `json:"order_id"`
	CollectionMethod string          `json:"collection_method"`
	Status           []string        `json:"status"`
	Businesses       []BusinessGroup `json:"businesses"`
}

// GroupForDisplay groups order lines by order, then by business, collapsing
// repeated products into tallies. Display-only: the order payloads themselves
// are never grouped. A product id missing from the catalog is shown as the
// raw id.
func GroupForDisplay(orderList []models.Order, products []models.Product) []DisplayOrder {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ProductID] = p.Name
	}

	display := make([]DisplayOrder, 0, len(orderList))
	for _, o := range orderList {
		d := DisplayOrder{
			OrderID:          o.OrderID,
			CollectionMethod: o.CollectionMethod,
			Status:           o.Status,
		}
		groupIdx := make(map[string]int)
		for _, line := range o.Lines {
			gi, ok := groupIdx[line.BusinessOwned]
			if !ok {
				gi = len(d.Businesses)
				groupIdx[line.BusinessOwned] = gi
				d.Businesses = append(d.Businesses, BusinessGroup{Business: line.BusinessOwned})
			}
			group := &d.Businesses[gi]
			found := false
			for i := range group.Items {
				if group.Items[i].ProductID == line.ProductID {
					group.Items[i].Count++
					found = true
					break
				}
			}
			if !found {
				name, ok := names[line.ProductID]
				if !ok {
					name = line.ProductID
				}
				group.Items = append(group.Items, Tally{ProductID: line.ProductID, Name: name, Count: 1})
			}
		}
		display = append(display, d)
	}
	return display
}

// AppendStatus returns the full history with the new label appended. The
// history is append-only: callers resubmit the whole list, never a delta.
// Any non-empty trimmed string is a legal status.
func AppendStatus(history []string, status string) ([]string, error) {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return nil, errors.New("status cannot be empty")
	}
	updated := make([]string, 0, len(history)+1)
	updated = append(updated, history...)
	return append(updated, trimmed), nil
}
