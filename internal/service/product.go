// Package service contains the entity services: the read-through cache and
// write-invalidation protocol around the store, plus best-effort response
// enrichment from the sibling service.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/omiete01/eCommerce-microservice/internal/cache"
	"github.com/omiete01/eCommerce-microservice/internal/metrics"
	"github.com/omiete01/eCommerce-microservice/internal/models"
	"github.com/omiete01/eCommerce-microservice/internal/repository"
	"gorm.io/gorm"
)

// UserDirectory resolves user display names in the sibling user service.
// Implementations must bound their own transport; callers additionally pass
// a deadline context and absorb any failure.
type UserDirectory interface {
	UserName(ctx context.Context, id int64) (string, error)
}

// ProductView is the canonical product representation returned to clients.
// CreatorName is enrichment from the user service; nil means the lookup
// was degraded, not that the product has no owner.
type ProductView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	UserID      *int64  `json:"user_id"`
	CreatorName *string `json:"creator_name"`
}

// ProductInput carries the fields accepted on create. Price is a pointer
// so "absent" and "zero" can be told apart during validation.
type ProductInput struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	UserID      *int64   `json:"user_id"`
}

// ProductUpdate carries a partial update: nil fields keep their prior value.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	UserID      *int64   `json:"user_id"`
}

// CacheTTLs bundles the fixed cache lifetimes for one entity service.
type CacheTTLs struct {
	Entity time.Duration
	List   time.Duration
	Count  time.Duration
}

// ProductService orchestrates product reads and writes against the store,
// the cache and the user service.
type ProductService interface {
	GetByID(ctx context.Context, id int64) (*ProductView, bool, error)
	List(ctx context.Context) ([]ProductView, bool, error)
	CountByUser(ctx context.Context, userID int64) (int64, bool, error)
	Create(ctx context.Context, input ProductInput) (*ProductView, error)
	Update(ctx context.Context, id int64, update ProductUpdate) (*ProductView, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo          repository.ProductRepository
	cache         cache.Store
	keys          cache.KeyBuilder
	users         UserDirectory
	ttl           CacheTTLs
	enrichTimeout time.Duration
}

// NewProductService creates a ProductService with explicit dependencies.
func NewProductService(
	repo repository.ProductRepository,
	cacheStore cache.Store,
	users UserDirectory,
	ttl CacheTTLs,
	enrichTimeout time.Duration,
) ProductService {
	return &productService{
		repo:          repo,
		cache:         cacheStore,
		keys:          cache.NewKeyBuilder("product", "products"),
		users:         users,
		ttl:           ttl,
		enrichTimeout: enrichTimeout,
	}
}

func (s *productService) GetByID(ctx context.Context, id int64) (*ProductView, bool, error) {
	key := s.keys.Entity(id)
	if raw, ok := s.cacheGet(ctx, key); ok {
		var view ProductView
		if err := json.Unmarshal([]byte(raw), &view); err == nil {
			// Single-entity hits are re-enriched on every read so the
			// creator name tracks the user service, not the cached copy.
			view.CreatorName = s.creatorName(ctx, view.UserID)
			return &view, true, nil
		}
		log.Printf("discarding unreadable cache entry %s", key)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	view := productView(product)
	view.CreatorName = s.creatorName(ctx, view.UserID)
	s.cachePutJSON(ctx, key, view, s.ttl.Entity)
	return &view, false, nil
}

func (s *productService) List(ctx context.Context) ([]ProductView, bool, error) {
	key := s.keys.All()
	if raw, ok := s.cacheGet(ctx, key); ok {
		var views []ProductView
		if err := json.Unmarshal([]byte(raw), &views); err == nil {
			// Cached lists are returned verbatim: enrichment was captured
			// at population time and is not refreshed per hit.
			return views, true, nil
		}
		log.Printf("discarding unreadable cache entry %s", key)
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view := productView(&products[i])
		view.CreatorName = s.creatorName(ctx, view.UserID)
		views = append(views, view)
	}

	s.cachePutJSON(ctx, key, views, s.ttl.List)
	return views, false, nil
}

func (s *productService) CountByUser(ctx context.Context, userID int64) (int64, bool, error) {
	key := s.keys.CountByUser(userID)
	if raw, ok := s.cacheGet(ctx, key); ok {
		if count, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return count, true, nil
		}
		log.Printf("discarding unreadable cache entry %s", key)
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	s.cachePut(ctx, key, strconv.FormatInt(count, 10), s.ttl.Count)
	return count, false, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*ProductView, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       *input.Price,
		Description: input.Description,
		UserID:      input.UserID,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}

	// The listing and the owner's count are now stale. The fresh entity key
	// is left alone: nothing was ever cached under the new id.
	keys := []string{s.keys.All()}
	if product.UserID != nil {
		keys = append(keys, s.keys.CountByUser(*product.UserID))
	}
	s.invalidate(ctx, keys...)

	view := productView(&product)
	view.CreatorName = s.creatorName(ctx, view.UserID)
	return &view, nil
}

func (s *productService) Update(ctx context.Context, id int64, update ProductUpdate) (*ProductView, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	previousOwner := product.UserID
	if update.Name != nil {
		product.Name = strings.TrimSpace(*update.Name)
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Description != nil {
		product.Description = update.Description
	}
	if update.UserID != nil {
		product.UserID = update.UserID
	}

	// No invalidation if the persist fails: the cache still matches the
	// committed row.
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	keys := []string{s.keys.Entity(id), s.keys.All()}
	keys = appendOwnerCountKeys(keys, s.keys, previousOwner, product.UserID)
	s.invalidate(ctx, keys...)

	view := productView(product)
	view.CreatorName = s.creatorName(ctx, view.UserID)
	return &view, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Capture the owner before the row disappears; its count key has to go.
	owner := product.UserID

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{s.keys.Entity(id), s.keys.All()}
	if owner != nil {
		keys = append(keys, s.keys.CountByUser(*owner))
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationErrorf("name is required")
	}
	if in.Price == nil {
		return validationErrorf("price is required")
	}
	if *in.Price < 0 {
		return validationErrorf("price must be non-negative")
	}
	return nil
}

func (up ProductUpdate) validate() error {
	if up.Name != nil && strings.TrimSpace(*up.Name) == "" {
		return validationErrorf("name must not be empty")
	}
	if up.Price != nil && *up.Price < 0 {
		return validationErrorf("price must be non-negative")
	}
	return nil
}

func productView(p *models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		UserID:      p.UserID,
	}
}

// creatorName performs the best-effort user lookup. Any failure degrades
// the field to nil; the read itself never fails because of enrichment.
func (s *productService) creatorName(ctx context.Context, userID *int64) *string {
	if userID == nil || s.users == nil {
		return nil
	}

	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	name, err := s.users.UserName(enrichCtx, *userID)
	if err != nil {
		metrics.EnrichmentFailuresTotal.WithLabelValues("user").Inc()
		return nil
	}
	return &name
}

func (s *productService) cacheGet(ctx context.Context, key string) (string, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		// An unreachable cache is a forced miss, not a request failure.
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

func (s *productService) cachePutJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache marshal failed for %s: %v", key, err)
		return
	}
	s.cachePut(ctx, key, string(raw), ttl)
}

func (s *productService) cachePut(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues(s.keys.Namespace(), "set").Inc()
		log.Printf("cache write failed for %s: %v", key, err)
	}
}

func (s *productService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		// The entries will still age out at their TTL; bounded staleness
		// is accepted here rather than failing the committed write.
		metrics.CacheErrorsTotal.WithLabelValues(s.keys.Namespace(), "delete").Inc()
		log.Printf("cache invalidation failed for %v: %v", keys, err)
	}
}

func appendOwnerCountKeys(keys []string, kb cache.KeyBuilder, before, after *int64) []string {
	if before != nil {
		keys = append(keys, kb.CountByUser(*before))
	}
	if after != nil && (before == nil || *after != *before) {
		keys = append(keys, kb.CountByUser(*after))
	}
	return keys
}
