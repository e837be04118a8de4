package cases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/models"
)

// Service applies validation, defaulting, and ownership forcing over the
// case repository, and joins the referenced client on list responses.
type Service struct {
	repo       Repository
	clientRepo clients.Repository
}

func NewService(r Repository, cr clients.Repository) *Service {
	return &Service{repo: r, clientRepo: cr}
}

// List returns the caller's cases with each referenced client resolved.
// A case whose client was deleted keeps its reference and a nil join.
func (s *Service) List(ctx context.Context, caller primitive.ObjectID) ([]models.Case, error) {
	cs, err := s.repo.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) populate(ctx context.Context, cs []models.Case) error {
	ids := make([]primitive.ObjectID, 0, len(cs))
	seen := map[primitive.ObjectID]bool{}
	for _, c := range cs {
		if !c.Client.IsZero() && !seen[c.Client] {
			seen[c.Client] = true
			ids = append(ids, c.Client)
		}
	}
	found, err := s.clientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range cs {
		if cl, ok := found[cs[i].Client]; ok {
			clCopy := cl
			cs[i].Resolved = &clCopy
		}
	}
	return nil
}

// Create persists a new case owned by the caller, applying the Open/Medium
// defaults before validation. Any attorney value in the payload is
// overwritten.
func (s *Service) Create(ctx context.Context, caller primitive.ObjectID, c *models.Case) (*models.Case, error) {
	c.Attorney = caller
	if c.Status == "" {
		c.Status = models.StatusOpen
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if err := models.ValidateNewCase(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a partial payload under the ownership filter. Closing a
// case is an ordinary update carrying {status: Closed, resolution,
// closingDate}; the write is idempotent, so a caller that never saw the
// response retries the whole update.
func (s *Service) Update(ctx context.Context, caller, id primitive.ObjectID, patch models.CasePatch) (*models.Case, error) {
	if err := models.ValidateCasePatch(&patch); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, caller, id, patch)
}

func (s *Service) Delete(ctx context.Context, caller, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, caller, id)
}
