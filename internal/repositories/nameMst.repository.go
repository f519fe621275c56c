package repositories

import (
	"context"
	"time"

	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"
	"haisou/internal/services"
)

const (
	NAME_CACHE_EXPIRY = 24 * time.Hour
)

type NameMstRepository interface {
	Create(ctx context.Context, name *NameMst) error
	GetByCode(ctx context.Context, code int) (*NameMst, error)
	Exists(ctx context.Context, code int) (bool, error)
	List(ctx context.Context) ([]*NameMst, error)
	NameMap(ctx context.Context) (map[int]string, error)
	ResolveName(ctx context.Context, code int) (string, error)
	Update(ctx context.Context, name *NameMst) error
	Delete(ctx context.Context, code int) error
}

type nameMstRepository struct {
	baseRepository
	ttl          time.Duration
	invalidation *services.CacheInvalidationService
}

// NewNameMst caches lookups for ttl; 0 uses NAME_CACHE_EXPIRY.
func NewNameMst(db database.DB, ttl time.Duration) NameMstRepository {
	if ttl <= 0 {
		ttl = NAME_CACHE_EXPIRY
	}
	return &nameMstRepository{
		baseRepository: baseRepository{db: db, log: logger.New("nameMstRepository")},
		ttl:            ttl,
		invalidation:   services.NewCacheInvalidationService(db),
	}
}

func (r *nameMstRepository) Create(ctx context.Context, name *NameMst) error {
	log := r.log.Function("Create")

	if err := r.create(ctx, name); err != nil {
		return log.Err("failed to create name", err, "cd", name.Cd)
	}

	r.cacheName(ctx, name)
	return nil
}

func (r *nameMstRepository) GetByCode(ctx context.Context, code int) (*NameMst, error) {
	log := r.log.Function("GetByCode")

	var name NameMst
	if _, ok := services.GetTransaction(ctx); ok {
		// uncommitted reads stay out of the cache
		if err := r.getDBByCode(ctx, code, &name); err != nil {
			return nil, err
		}
		return &name, nil
	}

	found, err := database.NewCacheBuilder(r.db.Cache.Names, database.NameCacheKey(code)).
		WithContext(ctx).
		Get(&name)
	if err != nil {
		log.Warn("failed to read name from cache", "cd", code, "error", err)
	}
	if found {
		return &name, nil
	}

	if err := r.getDBByCode(ctx, code, &name); err != nil {
		return nil, err
	}

	r.cacheName(ctx, &name)
	return &name, nil
}

func (r *nameMstRepository) Exists(ctx context.Context, code int) (bool, error) {
	log := r.log.Function("Exists")

	var count int64
	if err := r.getDB(ctx).
		Model(&NameMst{}).
		Where(map[string]any{ColNameCode: code}).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check name", err, "cd", code)
	}

	return count > 0, nil
}

// List returns names in display order: sort, then code.
func (r *nameMstRepository) List(ctx context.Context) ([]*NameMst, error) {
	log := r.log.Function("List")

	var names []*NameMst
	if err := r.getDB(ctx).
		Order(ColNameSort).
		Order(ColNameCode).
		Find(&names).Error; err != nil {
		return nil, log.Err("failed to list names", err)
	}

	return names, nil
}

func (r *nameMstRepository) NameMap(ctx context.Context) (map[int]string, error) {
	names, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int]string, len(names))
	for _, n := range names {
		out[n.Cd] = n.Nm
	}
	return out, nil
}

func (r *nameMstRepository) ResolveName(ctx context.Context, code int) (string, error) {
	name, err := r.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	return name.Nm, nil
}

func (r *nameMstRepository) Update(ctx context.Context, name *NameMst) error {
	log := r.log.Function("Update")

	if err := r.updateAll(ctx, name, map[string]any{ColNameCode: name.Cd}); err != nil {
		return log.Err("failed to update name", err, "cd", name.Cd)
	}

	if _, ok := services.GetTransaction(ctx); ok {
		r.invalidate(ctx, name.Cd)
		return nil
	}

	// re-read so the cached copy carries the stored timestamps
	var stored NameMst
	if err := r.getDBByCode(ctx, name.Cd, &stored); err != nil {
		r.invalidate(ctx, name.Cd)
		return nil
	}

	r.cacheName(ctx, &stored)
	return nil
}

func (r *nameMstRepository) Delete(ctx context.Context, code int) error {
	log := r.log.Function("Delete")

	if err := r.deleteWhere(ctx, &NameMst{}, map[string]any{ColNameCode: code}); err != nil {
		return log.Err("failed to delete name", err, "cd", code)
	}

	r.invalidate(ctx, code)
	return nil
}

func (r *nameMstRepository) getDBByCode(ctx context.Context, code int, name *NameMst) error {
	log := r.log.Function("getDBByCode")

	if err := r.getDB(ctx).Where(map[string]any{ColNameCode: code}).First(name).Error; err != nil {
		return log.Err("failed to get name by code", err, "cd", code)
	}

	return nil
}

func (r *nameMstRepository) addNameToCache(ctx context.Context, name *NameMst) error {
	if err := database.NewCacheBuilder(r.db.Cache.Names, database.NameCacheKey(name.Cd)).
		WithStruct(name).
		WithTTL(r.ttl).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addNameToCache").
			Err("failed to add name to cache", err, "cd", name.Cd)
	}
	return nil
}

// cacheName writes name through to the cache. Inside a transaction the key is
// dropped instead, so a rollback never leaves a row in the cache that the
// database does not hold.
func (r *nameMstRepository) cacheName(ctx context.Context, name *NameMst) {
	if _, ok := services.GetTransaction(ctx); ok {
		r.invalidate(ctx, name.Cd)
		return
	}

	if err := r.addNameToCache(ctx, name); err != nil {
		r.log.Function("cacheName").Warn("failed to add name to cache", "cd", name.Cd, "error", err)
		r.invalidation.InvalidateNames(ctx, name.Cd)
	}
}

// invalidate drops the cached name now and, inside a transaction, once more
// after commit in case a reader cached the old row in between.
func (r *nameMstRepository) invalidate(ctx context.Context, code int) {
	r.invalidation.InvalidateNames(ctx, code)
	if _, ok := services.GetTransaction(ctx); ok {
		services.AfterCommit(ctx, func(ctx context.Context) {
			r.invalidation.InvalidateNames(ctx, code)
		})
	}
}
