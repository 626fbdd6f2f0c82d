package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/omiete01/eCommerce-microservice/internal/cache"
	"github.com/omiete01/eCommerce-microservice/internal/metrics"
	"github.com/omiete01/eCommerce-microservice/internal/models"
	"github.com/omiete01/eCommerce-microservice/internal/repository"
	"gorm.io/gorm"
)

// ProductCounter resolves per-user product counts in the sibling product
// service.
type ProductCounter interface {
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// UserView is the canonical user representation returned to clients.
// ProductCount is enrichment from the product service; nil means the
// lookup was degraded.
type UserView struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	LastLogin    *time.Time `json:"last_login"`
	ProductCount *int64     `json:"product_count"`
}

// UserUpdate carries a partial update: nil fields keep their prior value.
type UserUpdate struct {
	Name *string `json:"name"`
}

// UserService orchestrates user reads and writes against the store, the
// cache and the product service.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*UserView, bool, error)
	List(ctx context.Context) ([]UserView, bool, error)
	Update(ctx context.Context, id int64, update UserUpdate) (*UserView, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo          repository.UserRepository
	cache         cache.Store
	keys          cache.KeyBuilder
	products      ProductCounter
	ttl           CacheTTLs
	enrichTimeout time.Duration
}

// NewUserService creates a UserService with explicit dependencies.
func NewUserService(
	repo repository.UserRepository,
	cacheStore cache.Store,
	products ProductCounter,
	ttl CacheTTLs,
	enrichTimeout time.Duration,
) UserService {
	return &userService{
		repo:          repo,
		cache:         cacheStore,
		keys:          cache.NewKeyBuilder("user", "users"),
		products:      products,
		ttl:           ttl,
		enrichTimeout: enrichTimeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*UserView, bool, error) {
	key := s.keys.Entity(id)
	if raw, ok := s.cacheGet(ctx, key); ok {
		var view UserView
		if err := json.Unmarshal([]byte(raw), &view); err == nil {
			view.ProductCount = s.productCount(ctx, view.ID)
			return &view, true, nil
		}
		log.Printf("discarding unreadable cache entry %s", key)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	view := userView(user)
	view.ProductCount = s.productCount(ctx, view.ID)
	s.cachePutJSON(ctx, key, view, s.ttl.Entity)
	return &view, false, nil
}

func (s *userService) List(ctx context.Context) ([]UserView, bool, error) {
	key := s.keys.All()
	if raw, ok := s.cacheGet(ctx, key); ok {
		var views []UserView
		if err := json.Unmarshal([]byte(raw), &views); err == nil {
			return views, true, nil
		}
		log.Printf("discarding unreadable cache entry %s", key)
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		view := userView(&users[i])
		view.ProductCount = s.productCount(ctx, view.ID)
		views = append(views, view)
	}

	s.cachePutJSON(ctx, key, views, s.ttl.List)
	return views, false, nil
}

func (s *userService) Update(ctx context.Context, id int64, update UserUpdate) (*UserView, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, validationErrorf("name must not be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.invalidate(ctx, s.keys.Entity(id), s.keys.All())

	view := userView(user)
	view.ProductCount = s.productCount(ctx, view.ID)
	return &view, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, s.keys.Entity(id), s.keys.All())
	return nil
}

func userView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		LastLogin: u.LastLogin,
	}
}

func (s *userService) productCount(ctx context.Context, userID int64) *int64 {
	if s.products == nil {
		return nil
	}

	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	count, err := s.products.CountByUser(enrichCtx, userID)
	if err != nil {
		metrics.EnrichmentFailuresTotal.WithLabelValues("product").Inc()
		return nil
	}
	return &count
}

func (s *userService) cacheGet(ctx context.Context, key string) (string, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			metrics.CacheErrorsTotal.WithLabelValues(s.keys.Namespace(), "get").Inc()
			log.Printf("cache read failed, falling through to store: %v", err)
		}
		metrics.CacheMissesTotal.WithLabelValues(s.keys.Namespace()).Inc()
		return "", false
	}
	metrics.CacheHitsTotal.WithLabelValues(s.keys.Namespace()).Inc()
	return raw, true
}

func (s *userService) cachePutJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache marshal failed for %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues(s.keys.Namespace(), "set").Inc()
		log.Printf("cache write failed for %s: %v", key, err)
	}
}

func (s *userService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues(s.keys.Namespace(), "delete").Inc()
		log.Printf("cache invalidation failed for %v: %v", keys, err)
	}
}
