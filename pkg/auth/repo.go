package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("auth: email already registered")
	ErrUserNotFound = errors.New("auth: user not found")
)

// Record is the stored account. The password hash never leaves this package.
type Record struct {
	UserID       string `gorm:"primaryKey;type:varchar(64)"`
	Name         string `gorm:"type:varchar(128)"`
	Email        string `gorm:"uniqueIndex;type:varchar(128);not null"`
	Phone        string `gorm:"type:varchar(32)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	PartnerID    int64
	CreatedAt    time.Time
}

func (Record) TableName() string { return "users" }

type UserRepository interface {
	CreateUser(ctx context.Context, u *Record) error
	GetUserByEmail(ctx context.Context, email string) (*Record, error)
	GetUserByID(ctx context.Context, userID string) (*Record, error)
}

type gormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) UserRepository {
	return &gormRepo{db: db}
}

func (r *gormRepo) CreateUser(ctx context.Context, u *Record) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return errors.Wrap(err, "failed to create user")
}

func (r *gormRepo) GetUserByEmail(ctx context.Context, email string) (*Record, error) {
	var u Record
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &u, nil
}

func (r *gormRepo) GetUserByID(ctx context.Context, userID string) (*Record, error) {
	var u Record
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &u, nil
}

// memoryRepo backs auth when no DSN is configured (dev mode) and in tests.
type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*Record
}

func NewMemoryRepo() UserRepository {
	return &memoryRepo{users: make(map[string]*Record)}
}

func (r *memoryRepo) CreateUser(ctx context.Context, u *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return ErrUserExists
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memoryRepo) GetUserByEmail(ctx context.Context, email string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[normalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) GetUserByID(ctx context.Context, userID string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
