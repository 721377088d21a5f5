// Package auth handles account registration, login and token verification
// for the storefront. Its session slot (the auth token cookie) is
// independent of the cart slot; the cart subsystem never reads or writes it.
package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaan-distributors/storefront/pkg/model"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("auth: invalid email or password")

type Service struct {
	repo   UserRepository
	secret []byte
}

func NewService(repo UserRepository) *Service {
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		// dev fallback only; deployments set AUTH_JWT_SECRET
		secret = "jaan_dev_secret"
	}
	return &Service{repo: repo, secret: []byte(secret)}
}

func toUser(rec *Record) model.User {
	return model.User{
		ID:        rec.UserID,
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		PartnerID: rec.PartnerID,
		Addresses: []model.Address{},
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}

// Register creates an account and returns the user plus a signed token, so
// registration doubles as login.
func (s *Service) Register(ctx context.Context, name, email, password, phone string) (model.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", errors.Wrap(err, "failed to hash password")
	}

	rec := &Record{
		UserID:       uuid.New().String(),
		Name:         name,
		Email:        normalizeEmail(email),
		Phone:        phone,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, rec); err != nil {
		return model.User{}, "", err
	}

	token, err := s.sign(rec.UserID)
	if err != nil {
		return model.User{}, "", err
	}
	return toUser(rec), token, nil
}

// Login verifies credentials and returns the user plus a signed token.
// Lookup and password failures collapse into ErrInvalidCredentials so the
// response doesn't leak which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, string, error) {
	rec, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := s.sign(rec.UserID)
	if err != nil {
		return model.User{}, "", err
	}
	return toUser(rec), token, nil
}

// Account returns the user record for a verified user id.
func (s *Service) Account(ctx context.Context, userID string) (model.User, error) {
	rec, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return toUser(rec), nil
}

func (s *Service) sign(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	return signed, errors.Wrap(err, "failed to sign token")
}

// Verify parses and validates a token, returning the embedded user id.
func (s *Service) Verify(tokenStr string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	return userID, ok
}
