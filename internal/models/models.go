package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attorney is the sole user role. The password hash is stored in Mongo but
// never serialized to JSON.
type Attorney struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password" json:"-"`
	Specialization string             `bson:"specialization" json:"specialization"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// Client is an ownership-scoped resource: the Attorney reference is set at
// creation and never changes.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Attorney  primitive.ObjectID `bson:"attorney" json:"attorney"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Document is a file attachment embedded in a Case. Version is always 1 for
// now; it is kept for wire compatibility with existing records.
type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	URL        string             `bson:"url" json:"url"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	Size       int64              `bson:"size,omitempty" json:"size,omitempty"`
	Version    int                `bson:"version" json:"version"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}

// ChecklistItem is an embedded case-progress task.
type ChecklistItem struct {
	Task      string `bson:"task" json:"task"`
	Completed bool   `bson:"completed" json:"completed"`
}

// Case is the central ownership-scoped resource. Client holds the stored
// reference; Resolved carries the joined Client record on list responses and
// is never persisted.
type Case struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CaseNumber      string             `bson:"caseNumber" json:"caseNumber"`
	Title           string             `bson:"title" json:"title"`
	Type            string             `bson:"type" json:"type"`
	Status          string             `bson:"status" json:"status"`
	Priority        string             `bson:"priority" json:"priority"`
	Client          primitive.ObjectID `bson:"client" json:"clientId"`
	Resolved        *Client            `bson:"-" json:"client,omitempty"`
	Attorney        primitive.ObjectID `bson:"attorney" json:"attorney"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Court           string             `bson:"court,omitempty" json:"court,omitempty"`
	Judge           string             `bson:"judge,omitempty" json:"judge,omitempty"`
	OpposingCounsel string             `bson:"opposingCounsel,omitempty" json:"opposingCounsel,omitempty"`
	InternalNotes   string             `bson:"internalNotes,omitempty" json:"internalNotes,omitempty"`
	FilingDate      *time.Time         `bson:"filingDate,omitempty" json:"filingDate,omitempty"`
	HearingDate     *time.Time         `bson:"hearingDate,omitempty" json:"hearingDate,omitempty"`
	ClosingDate     *time.Time         `bson:"closingDate,omitempty" json:"closingDate,omitempty"`
	Resolution      string             `bson:"resolution,omitempty" json:"resolution,omitempty"`
	Documents       []Document         `bson:"documents" json:"documents"`
	Checklists      []ChecklistItem    `bson:"checklists" json:"checklists"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ClientPatch carries a partial client update. A nil field is left untouched;
// a present field replaces the stored value.
type ClientPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// CasePatch carries a partial case update. Documents and Checklists, when
// present, replace the stored array wholesale (no merge). The attorney
// reference is not patchable.
type CasePatch struct {
	CaseNumber      *string             `json:"caseNumber"`
	Title           *string             `json:"title"`
	Type            *string             `json:"type"`
	Status          *string             `json:"status"`
	Priority        *string             `json:"priority"`
	Client          *primitive.ObjectID `json:"clientId"`
	Description     *string             `json:"description"`
	Court           *string             `json:"court"`
	Judge           *string             `json:"judge"`
	OpposingCounsel *string             `json:"opposingCounsel"`
	InternalNotes   *string             `json:"internalNotes"`
	FilingDate      *time.Time          `json:"filingDate"`
	HearingDate     *time.Time          `json:"hearingDate"`
	ClosingDate     *time.Time          `json:"closingDate"`
	Resolution      *string             `json:"resolution"`
	Documents       *[]Document         `json:"documents"`
	Checklists      *[]ChecklistItem    `json:"checklists"`
}
