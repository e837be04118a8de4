package analytics

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/models"
)

// Service scans the caller's scoped collections and runs the pure
// computation. Cases are read through the case service so the embedded
// recentCases/upcomingHearings payloads carry the joined client, exactly like
// GET /api/cases. No caching; correctness is "what a fresh scan would produce
// at the moment of the call".
type Service struct {
	cases      *cases.Service
	clientRepo clients.Repository
}

func NewService(cs *cases.Service, clr clients.Repository) *Service {
	return &Service{cases: cs, clientRepo: clr}
}

func (s *Service) Stats(ctx context.Context, caller primitive.ObjectID) (*Stats, error) {
	cs, cls, err := s.scan(ctx, caller)
	if err != nil {
		return nil, err
	}
	st := Compute(cs, cls, time.Now())
	return &st, nil
}

func (s *Service) Notifications(ctx context.Context, caller primitive.ObjectID) ([]Notification, error) {
	cs, err := s.cases.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	return Notifications(cs, time.Now()), nil
}

func (s *Service) scan(ctx context.Context, caller primitive.ObjectID) ([]models.Case, []models.Client, error) {
	cs, err := s.cases.List(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	cls, err := s.clientRepo.List(ctx, caller)
	if err != nil {
		return nil, nil, err
	}
	return cs, cls, nil
}
