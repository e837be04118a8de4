package clients

import (
	"context"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/models"
)

// MemoryRepository mirrors the Mongo repository's contract for unit tests,
// including insertion order ("store natural order" in search results).
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]*models.Client
	order []primitive.ObjectID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[primitive.ObjectID]*models.Client)}
}

func (r *MemoryRepository) List(ctx context.Context, attorney primitive.ObjectID) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Client{}
	for _, id := range r.order {
		c := r.byID[id]
		if c.Attorney == attorney {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.ClientPatch) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.Attorney != attorney {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, attorney, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.Attorney != attorney {
		return models.ErrNotFoundOrUnauthorized
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Client, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Client{}
	for _, id := range r.order {
		c := r.byID[id]
		if c.Attorney != attorney {
			continue
		}
		if re.MatchString(c.Name) || re.MatchString(c.Email) || re.MatchString(c.Phone) {
			out = append(out, *c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *MemoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[primitive.ObjectID]models.Client, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out[id] = *c
		}
	}
	return out, nil
}
