package cases

import (
	"context"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/models"
)

// MemoryRepository mirrors the Mongo repository's contract for unit tests,
// including caseNumber uniqueness and insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]*models.Case
	order []primitive.ObjectID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[primitive.ObjectID]*models.Case)}
}

func (r *MemoryRepository) List(ctx context.Context, attorney primitive.ObjectID) ([]models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Case{}
	for _, id := range r.order {
		c := r.byID[id]
		if c.Attorney == attorney {
			out = append(out, cloneCase(c))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CaseNumber == c.CaseNumber {
			return models.ErrDuplicateCaseNumber
		}
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Documents == nil {
		c.Documents = []models.Document{}
	}
	if c.Checklists == nil {
		c.Checklists = []models.ChecklistItem{}
	}
	cp := cloneCase(c)
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.CasePatch) (*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.Attorney != attorney {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if patch.CaseNumber != nil && *patch.CaseNumber != c.CaseNumber {
		for _, other := range r.byID {
			if other.CaseNumber == *patch.CaseNumber {
				return nil, models.ErrDuplicateCaseNumber
			}
		}
		c.CaseNumber = *patch.CaseNumber
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Priority != nil {
		c.Priority = *patch.Priority
	}
	if patch.Client != nil {
		c.Client = *patch.Client
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Court != nil {
		c.Court = *patch.Court
	}
	if patch.Judge != nil {
		c.Judge = *patch.Judge
	}
	if patch.OpposingCounsel != nil {
		c.OpposingCounsel = *patch.OpposingCounsel
	}
	if patch.InternalNotes != nil {
		c.InternalNotes = *patch.InternalNotes
	}
	if patch.FilingDate != nil {
		d := *patch.FilingDate
		c.FilingDate = &d
	}
	if patch.HearingDate != nil {
		d := *patch.HearingDate
		c.HearingDate = &d
	}
	if patch.ClosingDate != nil {
		d := *patch.ClosingDate
		c.ClosingDate = &d
	}
	if patch.Resolution != nil {
		c.Resolution = *patch.Resolution
	}
	if patch.Documents != nil {
		c.Documents = append([]models.Document{}, (*patch.Documents)...)
	}
	if patch.Checklists != nil {
		c.Checklists = append([]models.ChecklistItem{}, (*patch.Checklists)...)
	}
	c.UpdatedAt = time.Now().UTC()
	cp := cloneCase(c)
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

func (r *MemoryRepository) GetOwned(ctx context.Context, attorney, id primitive.ObjectID) (*models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok || c.Attorney != attorney {
		return nil, models.ErrCaseNotFound
	}
	cp := cloneCase(c)
	return &cp, nil
}

func (r *MemoryRepository) SetDocuments(ctx context.Context, id primitive.ObjectID, docs []models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return models.ErrCaseNotFound
	}
	c.Documents = append([]models.Document{}, docs...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Case, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Case{}
	for _, id := range r.order {
		c := r.byID[id]
		if c.Attorney != attorney {
			continue
		}
		if re.MatchString(c.Title) || re.MatchString(c.CaseNumber) || re.MatchString(c.Court) {
			out = append(out, cloneCase(c))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func cloneCase(c *models.Case) models.Case {
	cp := *c
	cp.Documents = append([]models.Document{}, c.Documents...)
	cp.Checklists = append([]models.ChecklistItem{}, c.Checklists...)
	if c.FilingDate != nil {
		d := *c.FilingDate
		cp.FilingDate = &d
	}
	if c.HearingDate != nil {
		d := *c.HearingDate
		cp.HearingDate = &d
	}
	if c.ClosingDate != nil {
		d := *c.ClosingDate
		cp.ClosingDate = &d
	}
	return cp
}
