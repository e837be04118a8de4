package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lexdesk/lexdesk/internal/analytics"
	"github.com/lexdesk/lexdesk/internal/attorneys"
	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/documents"
	"github.com/lexdesk/lexdesk/internal/search"
	"github.com/lexdesk/lexdesk/internal/storage"
	"github.com/lexdesk/lexdesk/pkg/middleware"
)

// apiFixture wires the full protected API surface over memory repositories,
// mirroring the production router layout.
type apiFixture struct {
	router *gin.Engine
	cfg    *config.Config
	blobs  *storage.MemoryBlobStore
}

func newAPIFixture() *apiFixture {
	cfg := handlerTestConfig()

	attorneySvc := attorneys.NewService(attorneys.NewMemoryRepository())
	clientRepo := clients.NewMemoryRepository()
	caseRepo := cases.NewMemoryRepository()
	blobs := storage.NewMemoryBlobStore()

	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(cfg, attorneySvc, nil).Register(api)

	caseSvc := cases.NewService(caseRepo, clientRepo)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, nil))
	NewClientHandler(clients.NewService(clientRepo)).Register(protected)
	NewCaseHandler(caseSvc).Register(protected)
	NewSearchHandler(search.NewService(caseRepo, clientRepo)).Register(protected)
	NewDashboardHandler(analytics.NewService(caseSvc, clientRepo)).Register(protected)
	NewDocumentHandler(cfg, documents.NewService(caseRepo, blobs)).Register(protected)

	return &apiFixture{router: r, cfg: cfg, blobs: blobs}
}

func (f *apiFixture) register(t *testing.T, name, email string) string {
	t.Helper()
	w := postJSON(f.router, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "a-long-password",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d: %s", email, w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token", email)
	}
	return token
}

func (f *apiFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad list body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCaseLifecycle(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")
	other := f.register(t, "Other", "other@firm.com")

	// create a client, then a case referencing it
	w := f.do(http.MethodPost, "/api/clients", owner, gin.H{
		"name":  "Sarah Mitchell",
		"email": "sarah.mitchell@email.com",
		"phone": "+1 (555) 123-4567",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clientID, _ := decode(t, w)["id"].(string)
	assert.NotEmpty(t, clientID)

	w = f.do(http.MethodPost, "/api/cases", owner, gin.H{
		"caseNumber": "2025-CR-0042",
		"title":      "State v. Marcus Wells",
		"type":       "Criminal",
		"clientId":   clientID,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	caseID, _ := created["id"].(string)
	assert.Equal(t, "Open", created["status"])
	assert.Equal(t, "Medium", created["priority"])

	// owner sees the case with the client joined; the other attorney sees nothing
	w = f.do(http.MethodGet, "/api/cases", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	if assert.Len(t, list, 1) {
		joined, _ := list[0]["client"].(map[string]any)
		if assert.NotNil(t, joined) {
			assert.Equal(t, "Sarah Mitchell", joined["name"])
		}
	}

	w = f.do(http.MethodGet, "/api/cases", other, nil)
	assert.Len(t, decodeList(t, w), 0)

	// the other attorney cannot update or delete it, and cannot tell it exists
	w = f.do(http.MethodPut, "/api/cases/"+caseID, other, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.do(http.MethodDelete, "/api/cases/"+caseID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// close the case
	w = f.do(http.MethodPut, "/api/cases/"+caseID, owner, gin.H{
		"status":      "Closed",
		"resolution":  "Won",
		"closingDate": "2026-08-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Won", decode(t, w)["resolution"])

	// delete
	w = f.do(http.MethodDelete, "/api/cases/"+caseID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = f.do(http.MethodGet, "/api/cases", owner, nil)
	assert.Len(t, decodeList(t, w), 0)
}

func TestCaseCreate_ValidationErrors(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")

	w := f.do(http.MethodPost, "/api/cases", owner, gin.H{"title": "No Number"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.NotNil(t, body["fields"])
}

func TestCaseUpdate_MalformedID(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")

	// a malformed id is indistinguishable from a missing one
	w := f.do(http.MethodPut, "/api/cases/not-a-hex-id", owner, gin.H{"title": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCases_RequireAuth(t *testing.T) {
	f := newAPIFixture()
	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (f *apiFixture) uploadFile(t *testing.T, token, caseID, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents/"+caseID, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestDocumentUploadAndDelete(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")
	other := f.register(t, "Other", "other@firm.com")

	w := f.do(http.MethodPost, "/api/clients", owner, gin.H{"name": "Emily Chen", "email": "emily.chen@corp.com"})
	clientID, _ := decode(t, w)["id"].(string)
	w = f.do(http.MethodPost, "/api/cases", owner, gin.H{
		"caseNumber": "2024-LB-0821",
		"title":      "Chen Wrongful Termination",
		"type":       "Labor",
		"clientId":   clientID,
	})
	caseID, _ := decode(t, w)["id"].(string)

	// another attorney cannot attach to this case
	w = f.uploadFile(t, other, caseID, "leak.pdf", []byte("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	payload := []byte("%PDF-1.4 agreement")
	w = f.uploadFile(t, owner, caseID, "severance-agreement.pdf", payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decode(t, w)
	docID, _ := doc["id"].(string)
	url, _ := doc["url"].(string)
	assert.NotEmpty(t, docID)
	assert.NotEmpty(t, url)
	_, stored := f.blobs.Get(url)
	assert.True(t, stored)

	// the uploaded file is retrievable, but only by the owner
	w = f.do(http.MethodGet, "/api/documents/"+caseID+"/"+docID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "severance-agreement.pdf")

	w = f.do(http.MethodGet, "/api/documents/"+caseID+"/"+docID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the document rides on the case payload
	w = f.do(http.MethodGet, "/api/cases", owner, nil)
	list := decodeList(t, w)
	docs, _ := list[0]["documents"].([]any)
	assert.Len(t, docs, 1)

	w = f.do(http.MethodDelete, "/api/documents/"+caseID+"/"+docID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, stored = f.blobs.Get(url)
	assert.False(t, stored)

	w = f.do(http.MethodGet, "/api/documents/"+caseID+"/"+docID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentUpload_SizeCap(t *testing.T) {
	f := newAPIFixture()
	f.cfg.Upload.MaxBytes = 16
	owner := f.register(t, "Owner", "owner@firm.com")

	w := f.do(http.MethodPost, "/api/clients", owner, gin.H{"name": "X", "email": "x@x.com"})
	clientID, _ := decode(t, w)["id"].(string)
	w = f.do(http.MethodPost, "/api/cases", owner, gin.H{
		"caseNumber": "2025-XX-0001", "title": "Big File", "type": "Corporate", "clientId": clientID,
	})
	caseID, _ := decode(t, w)["id"].(string)

	w = f.uploadFile(t, owner, caseID, "huge.bin", bytes.Repeat([]byte("a"), 64))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")

	w := f.do(http.MethodPost, "/api/clients", owner, gin.H{"name": "Emily Chen", "email": "emily.chen@corp.com"})
	clientID, _ := decode(t, w)["id"].(string)
	f.do(http.MethodPost, "/api/cases", owner, gin.H{
		"caseNumber": "2024-LB-0821", "title": "Chen Wrongful Termination", "type": "Labor", "clientId": clientID,
	})

	w = f.do(http.MethodGet, "/api/search?q=chen", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	caseHits, _ := res["cases"].([]any)
	clientHits, _ := res["clients"].([]any)
	assert.Len(t, caseHits, 1)
	assert.Len(t, clientHits, 1)
}

func TestDashboardEndpoints(t *testing.T) {
	f := newAPIFixture()
	owner := f.register(t, "Owner", "owner@firm.com")

	w := f.do(http.MethodPost, "/api/clients", owner, gin.H{"name": "Emily Chen", "email": "emily.chen@corp.com"})
	clientID, _ := decode(t, w)["id"].(string)
	f.do(http.MethodPost, "/api/cases", owner, gin.H{
		"caseNumber": "2025-CV-1187", "title": "Mitchell Corp v. DataSync Inc.", "type": "Corporate",
		"priority": "Urgent", "clientId": clientID,
	})

	w = f.do(http.MethodGet, "/api/dashboard/stats", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	st := decode(t, w)
	assert.Equal(t, float64(1), st["totalCases"])
	assert.Equal(t, float64(1), st["activeCases"])
	assert.Equal(t, float64(1), st["highPriority"])

	// embedded case payloads carry the joined client, same as GET /api/cases
	recent, _ := st["recentCases"].([]any)
	if assert.Len(t, recent, 1) {
		first, _ := recent[0].(map[string]any)
		joined, _ := first["client"].(map[string]any)
		if assert.NotNil(t, joined) {
			assert.Equal(t, "Emily Chen", joined["name"])
		}
	}

	w = f.do(http.MethodGet, "/api/dashboard/notifications", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
