// Package directory answers "what is around this coordinate": it forwards
// the lookup to the backend, which owns all proximity and category matching,
// and applies the storefront's text filter to whatever comes back.
package directory

import (
	"context"
	"strings"

	"localconnect/backend"
	"localconnect/models"
)

type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

// Nearby passes the coordinate through unchanged and filters the result.
func (s *Service) Nearby(ctx context.Context, location []float64, term string) ([]models.Business, error) {
	businesses, err := s.client.FetchNearby(ctx, location)
	if err != nil {
		return nil, err
	}
	return Filter(businesses, term), nil
}

func (s *Service) ByCategory(ctx context.Context, category, term string) ([]models.Business, error) {
	businesses, err := s.client.FetchByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return Filter(businesses, term), nil
}

// Filter keeps businesses whose name, category, or any tag contains the term,
// case-insensitively. An empty term keeps everything.
func Filter(businesses []models.Business, term string) []models.Business {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return businesses
	}
	var matched []models.Business
	for _, b := range businesses {
		if matches(b, term) {
			matched = append(matched, b)
		}
	}
	return matched
}

func matches(b models.Business, term string) bool {
	if strings.Contains(strings.ToLower(b.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Category), term) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
