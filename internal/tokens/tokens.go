package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/models"
)

// Identity is the verified caller threaded through every protected request.
type Identity struct {
	ID   primitive.ObjectID
	Name string
}

// Generate creates a signed HS256 access token for the attorney.
func Generate(cfg *config.Config, a *models.Attorney, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  a.ID.Hex(),
		"name": a.Name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Parse verifies signature and expiry and returns the embedded identity.
func Parse(cfg *config.Config, raw string) (*Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	name, _ := claims["name"].(string)
	return &Identity{ID: id, Name: name}, nil
}

// Expiry returns the exp claim of a token signed with our secret. Used to
// bound blacklist TTLs on logout.
func Expiry(cfg *config.Config, raw string) (time.Time, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	return exp.Time, nil
}
