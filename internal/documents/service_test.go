package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/models"
	"github.com/lexdesk/lexdesk/internal/storage"
)

func newFixture(t *testing.T) (*Service, *cases.MemoryRepository, *storage.MemoryBlobStore, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	repo := cases.NewMemoryRepository()
	blobs := storage.NewMemoryBlobStore()
	svc := NewService(repo, blobs)

	owner := primitive.NewObjectID()
	c := &models.Case{
		CaseNumber: "2025-CR-0042",
		Title:      "State v. Marcus Wells",
		Type:       "Criminal",
		Status:     models.StatusOpen,
		Priority:   models.PriorityMedium,
		Client:     primitive.NewObjectID(),
		Attorney:   owner,
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return svc, repo, blobs, owner, c.ID
}

func TestUpload_AppendsDocumentAndStoresBlob(t *testing.T) {
	svc, repo, blobs, owner, caseID := newFixture(t)
	ctx := context.Background()

	payload := []byte("%PDF-1.4 motion to dismiss")
	doc, err := svc.Upload(ctx, owner, caseID, "motion.pdf", "application/pdf", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID.IsZero() {
		t.Fatal("expected document id")
	}
	if doc.Name != "motion.pdf" || doc.Type != "application/pdf" || doc.Size != int64(len(payload)) {
		t.Fatalf("unexpected metadata: %+v", doc)
	}
	if doc.Version != 1 {
		t.Fatalf("expected version 1, got %d", doc.Version)
	}
	if !strings.Contains(doc.URL, "motion.pdf") {
		t.Fatalf("url should carry the original name: %s", doc.URL)
	}

	stored, ok := blobs.Get(doc.URL)
	if !ok {
		t.Fatal("blob not stored")
	}
	if string(stored) != string(payload) {
		t.Fatal("stored bytes differ from upload")
	}

	c, err := repo.GetOwned(ctx, owner, caseID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Documents) != 1 || c.Documents[0].ID != doc.ID {
		t.Fatalf("document not appended to case: %+v", c.Documents)
	}
}

func TestUpload_KeysAreCollisionResistant(t *testing.T) {
	svc, repo, _, owner, caseID := newFixture(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, owner, caseID, "exhibit.pdf", "application/pdf", []byte("first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Upload(ctx, owner, caseID, "exhibit.pdf", "application/pdf", []byte("second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.URL == b.URL {
		t.Fatalf("same-named uploads collided: %s", a.URL)
	}

	c, _ := repo.GetOwned(ctx, owner, caseID)
	if len(c.Documents) != 2 {
		t.Fatalf("expected both documents kept, got %d", len(c.Documents))
	}
}

func TestUpload_OwnershipEnforced(t *testing.T) {
	svc, _, blobs, _, caseID := newFixture(t)
	ctx := context.Background()

	intruder := primitive.NewObjectID()
	_, err := svc.Upload(ctx, intruder, caseID, "leak.pdf", "application/pdf", []byte("x"))
	if !errors.Is(err, models.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
	// no blob may be written on a rejected upload
	if _, ok := blobs.Get("/uploads/leak.pdf"); ok {
		t.Fatal("blob written for unauthorized upload")
	}
}

func TestOpen_StreamsStoredBytes(t *testing.T) {
	svc, _, _, owner, caseID := newFixture(t)
	ctx := context.Background()

	payload := []byte("%PDF-1.4 deposition transcript")
	uploaded, err := svc.Upload(ctx, owner, caseID, "deposition.pdf", "application/pdf", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, rc, err := svc.Open(ctx, owner, caseID, uploaded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()
	if doc.Name != "deposition.pdf" || doc.Type != "application/pdf" {
		t.Fatalf("unexpected metadata: %+v", doc)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatal("streamed bytes differ from upload")
	}
}

func TestOpen_UnknownDocument(t *testing.T) {
	svc, _, _, owner, caseID := newFixture(t)

	_, _, err := svc.Open(context.Background(), owner, caseID, primitive.NewObjectID())
	if !errors.Is(err, models.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestOpen_OwnershipEnforced(t *testing.T) {
	svc, _, _, owner, caseID := newFixture(t)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, owner, caseID, "exhibit.pdf", "application/pdf", []byte("e"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = svc.Open(ctx, primitive.NewObjectID(), caseID, uploaded.ID)
	if !errors.Is(err, models.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}

func TestOpen_MissingBlobReadsAsMissingDocument(t *testing.T) {
	svc, _, blobs, owner, caseID := newFixture(t)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, owner, caseID, "orphaned.pdf", "application/pdf", []byte("o"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// simulate a blob lost out-of-band; the record still exists
	if err := blobs.Delete(ctx, uploaded.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = svc.Open(ctx, owner, caseID, uploaded.ID)
	if !errors.Is(err, models.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRemove_DeletesBlobAndRecord(t *testing.T) {
	svc, repo, blobs, owner, caseID := newFixture(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, owner, caseID, "contract.docx", "application/msword", []byte("draft"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Remove(ctx, owner, caseID, doc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := blobs.Get(doc.URL); ok {
		t.Fatal("blob not deleted")
	}
	c, _ := repo.GetOwned(ctx, owner, caseID)
	if len(c.Documents) != 0 {
		t.Fatalf("document record survived removal: %+v", c.Documents)
	}
}

func TestRemove_UnknownDocument(t *testing.T) {
	svc, _, _, owner, caseID := newFixture(t)

	err := svc.Remove(context.Background(), owner, caseID, primitive.NewObjectID())
	if !errors.Is(err, models.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRemove_OwnershipEnforced(t *testing.T) {
	svc, _, _, owner, caseID := newFixture(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, owner, caseID, "brief.pdf", "application/pdf", []byte("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.Remove(ctx, primitive.NewObjectID(), caseID, doc.ID)
	if !errors.Is(err, models.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}
