package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sjperalta/clientpulse-api/internal/listing"
	"github.com/sjperalta/clientpulse-api/internal/repository"
	"github.com/sjperalta/clientpulse-api/internal/search"
)

// Searchable entities
const (
	EntityClients  = "clients"
	EntityPayments = "payments"
	EntityVisits   = "visits"
	EntityGoals    = "goals"
)

// SearchQuery describes one list-screen query: filters first, then
// relevance ranking, then an optional explicit sort, then the limit.
type SearchQuery struct {
	Entity  string
	Query   string
	Limit   int
	Sort    listing.SortConfig
	Filters []listing.Predicate
}

// SearchResponse is the ranked page returned for a query
type SearchResponse struct {
	Entity  string `json:"entity"`
	Query   string `json:"query"`
	Total   int    `json:"total"`
	Results any    `json:"results"`
}

type SearchService struct {
	clientRepo  repository.ClientRepository
	paymentRepo repository.PaymentRepository
	visitRepo   repository.VisitRepository
	goalRepo    repository.GoalRepository
}

func NewSearchService(
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
	visitRepo repository.VisitRepository,
	goalRepo repository.GoalRepository,
) *SearchService {
	return &SearchService{
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		visitRepo:   visitRepo,
		goalRepo:    goalRepo,
	}
}

// Search runs q against the records of q.Entity
func (s *SearchService) Search(ctx context.Context, q SearchQuery) (*SearchResponse, error) {
	switch strings.ToLower(q.Entity) {
	case EntityClients:
		items, err := s.clientRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load clients: %w", err)
		}
		return respond(EntityClients, q, items, search.ClientFields), nil
	case EntityPayments:
		items, err := s.paymentRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		return respond(EntityPayments, q, items, search.PaymentFields), nil
	case EntityVisits:
		items, err := s.visitRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load visits: %w", err)
		}
		return respond(EntityVisits, q, items, search.VisitFields), nil
	case EntityGoals:
		items, err := s.goalRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load goals: %w", err)
		}
		return respond(EntityGoals, q, items, search.GoalFields), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, q.Entity)
	}
}

func respond[T any](entity string, q SearchQuery, items []T, fields []search.Field) *SearchResponse {
	items = listing.Filter(items, q.Filters)
	results := search.Search(items, q.Query, fields, 0)

	if q.Sort.Field != "" {
		// sort paths are relative to the record, results wrap it under "item"
		results = listing.Sort(results, listing.SortConfig{
			Field:     "item." + q.Sort.Field,
			Direction: q.Sort.Direction,
		})
	}

	total := len(results)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	return &SearchResponse{
		Entity:  entity,
		Query:   q.Query,
		Total:   total,
		Results: results,
	}
}
