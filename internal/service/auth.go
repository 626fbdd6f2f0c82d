package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/omiete01/eCommerce-microservice/internal/cache"
	"github.com/omiete01/eCommerce-microservice/internal/models"
	"github.com/omiete01/eCommerce-microservice/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login for the user service.
type AuthService interface {
	Register(ctx context.Context, name, password string) (*UserView, error)
	Login(ctx context.Context, name, password string) (string, error)
}

type authService struct {
	repo       repository.UserRepository
	jwtService JWTService
	cache      cache.Store
	keys       cache.KeyBuilder
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(repo repository.UserRepository, jwtService JWTService, cacheStore cache.Store) AuthService {
	return &authService{
		repo:       repo,
		jwtService: jwtService,
		cache:      cacheStore,
		keys:       cache.NewKeyBuilder("user", "users"),
	}
}

func (s *authService) Register(ctx context.Context, name, password string) (*UserView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("name is required")
	}
	if password == "" {
		return nil, validationErrorf("password is required")
	}

	// Uniqueness is an exact, case-sensitive name match. The pre-check
	// gives a clean Conflict; the unique index closes the race with a
	// concurrent register, which maps to Conflict below.
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	// The cached user listing no longer includes everyone.
	if err := s.cache.Delete(ctx, s.keys.All()); err != nil {
		log.Printf("cache invalidation failed for %s: %v", s.keys.All(), err)
	}

	view := userView(&user)
	return &view, nil
}

func (s *authService) Login(ctx context.Context, name, password string) (string, error) {
	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		// Unknown name and wrong password are indistinguishable on purpose.
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to stamp last login: %w", err)
	}

	// last_login changed, so any cached copies of this user are stale.
	if err := s.cache.Delete(ctx, s.keys.Entity(user.ID), s.keys.All()); err != nil {
		log.Printf("cache invalidation failed after login for user %d: %v", user.ID, err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Name)
	if err != nil {
		// Token signing failure is an internal fault, not a credential one.
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
