package clients

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/models"
)

// Service applies validation and ownership forcing over the repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context, caller primitive.ObjectID) ([]models.Client, error) {
	return s.repo.List(ctx, caller)
}

// Create persists a new client owned by the caller. Any attorney value in
// the payload is overwritten; resources cannot be created on another
// attorney's behalf.
func (s *Service) Create(ctx context.Context, caller primitive.ObjectID, c *models.Client) (*models.Client, error) {
	c.Attorney = caller
	if err := models.ValidateNewClient(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, caller, id primitive.ObjectID, patch models.ClientPatch) (*models.Client, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, models.NewValidationError("name cannot be empty")
	}
	if patch.Email != nil && *patch.Email == "" {
		return nil, models.NewValidationError("email cannot be empty")
	}
	return s.repo.Update(ctx, caller, id, patch)
}

// Delete removes the client permanently. Cases referencing it keep their
// dangling reference; list responses then carry a nil joined client.
func (s *Service) Delete(ctx context.Context, caller, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, caller, id)
}
