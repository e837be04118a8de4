package search

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/models"
)

// Limit caps each result list. Results come back in store order; this is a
// convenience lookup, not a ranked search.
const Limit = 5

// Result is the combined fan-out response.
type Result struct {
	Cases   []models.Case   `json:"cases"`
	Clients []models.Client `json:"clients"`
}

// Service fans a query out across the caller's cases and clients.
type Service struct {
	caseRepo   cases.Repository
	clientRepo clients.Repository
}

func NewService(cr cases.Repository, clr clients.Repository) *Service {
	return &Service{caseRepo: cr, clientRepo: clr}
}

// Search performs a case-insensitive substring match over case
// {title, caseNumber, court} and client {name, email, phone}, scoped to the
// caller. An empty query yields two empty lists, not an error. The query is
// quoted before it reaches the regex engine, so metacharacters match
// literally.
func (s *Service) Search(ctx context.Context, caller primitive.ObjectID, q string) (*Result, error) {
	res := &Result{Cases: []models.Case{}, Clients: []models.Client{}}
	if q == "" {
		return res, nil
	}
	pattern := regexp.QuoteMeta(q)

	cs, err := s.caseRepo.Search(ctx, caller, pattern, Limit)
	if err != nil {
		return nil, err
	}
	cls, err := s.clientRepo.Search(ctx, caller, pattern, Limit)
	if err != nil {
		return nil, err
	}
	res.Cases = cs
	res.Clients = cls
	return res, nil
}
