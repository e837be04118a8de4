package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/models"
	"github.com/lexdesk/lexdesk/internal/storage"
)

// Service manages file attachments embedded in a Case: blob storage side
// effects plus the document-array write. The two side effects are not
// transactional; a crash between them can orphan a blob or leave metadata
// pointing at a deleted object. Accepted at this system's scale.
type Service struct {
	cases cases.Repository
	blobs storage.BlobStore
}

func NewService(cr cases.Repository, bs storage.BlobStore) *Service {
	return &Service{cases: cr, blobs: bs}
}

// objectKey builds a collision-resistant storage key from the original name.
func objectKey(name string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewString(), name)
}

// Upload stores the file and appends a Document record to the case. The case
// is resolved under the caller's ownership filter: attaching to another
// attorney's case fails with ErrCaseNotFound.
func (s *Service) Upload(ctx context.Context, caller, caseID primitive.ObjectID, name, contentType string, data []byte) (*models.Document, error) {
	c, err := s.cases.GetOwned(ctx, caller, caseID)
	if err != nil {
		return nil, err
	}

	url, err := s.blobs.Store(ctx, objectKey(name), bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:         primitive.NewObjectID(),
		Name:       name,
		URL:        url,
		Type:       contentType,
		Size:       int64(len(data)),
		Version:    1,
		UploadedAt: time.Now().UTC(),
	}
	docs := append(c.Documents, doc)
	if err := s.cases.SetDocuments(ctx, caseID, docs); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Open resolves a document under the caller's ownership filter and streams
// the backing blob. The caller closes the reader. A blob missing from storage
// reads the same as a missing document record.
func (s *Service) Open(ctx context.Context, caller, caseID, docID primitive.ObjectID) (*models.Document, io.ReadCloser, error) {
	c, err := s.cases.GetOwned(ctx, caller, caseID)
	if err != nil {
		return nil, nil, err
	}
	for i := range c.Documents {
		if c.Documents[i].ID == docID {
			rc, err := s.blobs.Fetch(ctx, c.Documents[i].URL)
			if errors.Is(err, storage.ErrBlobNotFound) {
				return nil, nil, models.ErrDocumentNotFound
			}
			if err != nil {
				return nil, nil, err
			}
			return &c.Documents[i], rc, nil
		}
	}
	return nil, nil, models.ErrDocumentNotFound
}

// Remove deletes the backing blob (tolerating an already-absent object) and
// drops the record from the case's document array.
func (s *Service) Remove(ctx context.Context, caller, caseID, docID primitive.ObjectID) error {
	c, err := s.cases.GetOwned(ctx, caller, caseID)
	if err != nil {
		return err
	}

	idx := -1
	for i, d := range c.Documents {
		if d.ID == docID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ErrDocumentNotFound
	}

	if err := s.blobs.Delete(ctx, c.Documents[idx].URL); err != nil {
		return err
	}

	docs := append(append([]models.Document{}, c.Documents[:idx]...), c.Documents[idx+1:]...)
	return s.cases.SetDocuments(ctx, caseID, docs)
}
