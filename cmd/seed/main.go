package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/lexdesk/lexdesk/internal/attorneys"
	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/database"
	"github.com/lexdesk/lexdesk/internal/models"
)

// Development data seeder: wipes clients/cases and inserts a demo attorney
// with a small docket. Not for production databases.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	if _, err := db.Collection("cases").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("clear cases: %v", err)
	}
	if _, err := db.Collection("clients").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("clear clients: %v", err)
	}

	attorneyRepo := attorneys.NewMongoRepository(db.Collection("attorneys"))
	attorney, err := attorneyRepo.GetByEmail(ctx, "demo@lexdesk.local")
	if err != nil {
		log.Fatalf("lookup demo attorney: %v", err)
	}
	if attorney == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		attorney = &models.Attorney{
			Name:           "Demo Attorney",
			Email:          "demo@lexdesk.local",
			PasswordHash:   string(hash),
			Specialization: "General Practice",
		}
		if err := attorneyRepo.Create(ctx, attorney); err != nil {
			log.Fatalf("create demo attorney: %v", err)
		}
	}

	clientRepo := clients.NewMongoRepository(db.Collection("clients"))
	seedClients := []models.Client{
		{Name: "Sarah Mitchell", Email: "sarah.mitchell@email.com", Phone: "+1 (555) 123-4567", Address: "450 Park Avenue, New York, NY 10022"},
		{Name: "James Rodriguez", Email: "j.rodriguez@lawfirm.com", Phone: "+1 (555) 234-5678", Address: "1200 Elm Street, Dallas, TX 75270"},
		{Name: "Emily Chen", Email: "emily.chen@corp.com", Phone: "+1 (555) 345-6789", Address: "88 Market Street, San Francisco, CA 94105"},
		{Name: "Robert Thompson", Email: "r.thompson@business.net", Phone: "+1 (555) 456-7890", Address: "200 Michigan Ave, Chicago, IL 60601"},
		{Name: "Amanda Foster", Email: "a.foster@email.com", Phone: "+1 (555) 567-8901", Address: "500 Boylston Street, Boston, MA 02116"},
	}
	for i := range seedClients {
		seedClients[i].Attorney = attorney.ID
		if err := clientRepo.Create(ctx, &seedClients[i]); err != nil {
			log.Fatalf("create client %s: %v", seedClients[i].Name, err)
		}
	}

	caseRepo := cases.NewMongoRepository(db.Collection("cases"))
	date := func(s string) *time.Time {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			log.Fatalf("bad seed date %q: %v", s, err)
		}
		return &t
	}
	seedCases := []models.Case{
		{CaseNumber: "2025-CR-0042", Title: "State v. Marcus Wells", Type: "Criminal", Status: models.StatusInProgress, Priority: models.PriorityHigh, Client: seedClients[0].ID, FilingDate: date("2025-03-15")},
		{CaseNumber: "2025-CV-1187", Title: "Mitchell Corp v. DataSync Inc.", Type: "Corporate", Status: models.StatusOpen, Priority: models.PriorityUrgent, Client: seedClients[2].ID, FilingDate: date("2025-06-20")},
		{CaseNumber: "2025-FL-0389", Title: "Rodriguez Custody Arrangement", Type: "Family", Status: models.StatusPendingReview, Priority: models.PriorityMedium, Client: seedClients[1].ID, FilingDate: date("2025-08-01")},
		{CaseNumber: "2025-RE-0455", Title: "Thompson Property Dispute", Type: "Real Estate", Status: models.StatusInProgress, Priority: models.PriorityMedium, Client: seedClients[3].ID, FilingDate: date("2025-04-10")},
		{CaseNumber: "2025-IP-0078", Title: "Foster Patent Infringement", Type: "IP", Status: models.StatusOpen, Priority: models.PriorityHigh, Client: seedClients[4].ID, FilingDate: date("2025-09-22")},
		{CaseNumber: "2024-LB-0821", Title: "Chen Wrongful Termination", Type: "Labor", Status: models.StatusClosed, Priority: models.PriorityLow, Client: seedClients[2].ID, FilingDate: date("2024-11-15"), ClosingDate: date("2025-02-10"), Resolution: models.ResolutionSettled},
		{CaseNumber: "2025-IM-0156", Title: "Rodriguez Immigration Appeal", Type: "Immigration", Status: models.StatusOnHold, Priority: models.PriorityMedium, Client: seedClients[1].ID, FilingDate: date("2025-07-30")},
	}
	for i := range seedCases {
		seedCases[i].Attorney = attorney.ID
		if err := caseRepo.Create(ctx, &seedCases[i]); err != nil {
			log.Fatalf("create case %s: %v", seedCases[i].CaseNumber, err)
		}
	}

	log.Println("data seeded successfully")
}
