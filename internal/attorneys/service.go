package attorneys

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/lexdesk/lexdesk/internal/models"
)

const defaultSpecialization = "General Practice"

// Service encapsulates attorney account logic: registration with one-way
// password hashing and credential verification for login.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register creates a new attorney account. Fails with ErrDuplicateEmail when
// the email (case-insensitive) is already taken. The plaintext password is
// hashed before it reaches the repository and is never stored.
func (s *Service) Register(ctx context.Context, name, email, password, specialization string) (*models.Attorney, error) {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name is required")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email is required")
	}
	if len(password) < 8 {
		missing = append(missing, "password must be at least 8 characters")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError(missing...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if specialization == "" {
		specialization = defaultSpecialization
	}
	a := &models.Attorney{
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordHash:   string(hash),
		Specialization: specialization,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate verifies email+password. Unknown email and wrong password
// produce the identical ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Attorney, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return a, nil
}

// GetByID returns the attorney by id, or nil when absent.
func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Attorney, error) {
	return s.repo.GetByID(ctx, id)
}
