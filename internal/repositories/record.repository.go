package repositories

import (
	"context"

	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"
)

// RecordRepository covers the surrogate-keyed scaffold tables.
type RecordRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, offset, limit int) ([]*T, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id uint) error
}

type recordRepository[T any] struct {
	baseRepository
}

func newRecord[T any](db database.DB, name string) RecordRepository[T] {
	return &recordRepository[T]{
		baseRepository{db: db, log: logger.New(name)},
	}
}

func NewIntTest(db database.DB) RecordRepository[IntTest] {
	return newRecord[IntTest](db, "intTestRepository")
}

func NewCharTest(db database.DB) RecordRepository[CharTest] {
	return newRecord[CharTest](db, "charTestRepository")
}

func NewDateTest(db database.DB) RecordRepository[DateTest] {
	return newRecord[DateTest](db, "dateTestRepository")
}

func NewFieldTest(db database.DB) RecordRepository[FieldTest] {
	return newRecord[FieldTest](db, "fieldTestRepository")
}

func (r *recordRepository[T]) Create(ctx context.Context, rec *T) error {
	log := r.log.Function("Create")

	if err := r.create(ctx, rec); err != nil {
		return log.Err("failed to create record", err)
	}

	return nil
}

func (r *recordRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	log := r.log.Function("GetByID")

	var rec T
	if err := r.getDB(ctx).First(&rec, id).Error; err != nil {
		return nil, log.Err("failed to get record by id", err, "id", id)
	}

	return &rec, nil
}

func (r *recordRepository[T]) List(ctx context.Context, offset, limit int) ([]*T, error) {
	log := r.log.Function("List")

	if offset < 0 || limit < 0 {
		return nil, log.Error("invalid pagination", "offset", offset, "limit", limit)
	}

	query := r.getDB(ctx).Order("id")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recs []*T
	if err := query.Find(&recs).Error; err != nil {
		return nil, log.Err("failed to list records", err, "offset", offset, "limit", limit)
	}

	return recs, nil
}

func (r *recordRepository[T]) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count records", err)
	}

	return count, nil
}

// Update rewrites the row identified by rec's ID.
func (r *recordRepository[T]) Update(ctx context.Context, rec *T) error {
	log := r.log.Function("Update")

	if err := r.updateAll(ctx, rec, nil); err != nil {
		return log.Err("failed to update record", err)
	}

	return nil
}

func (r *recordRepository[T]) Delete(ctx context.Context, id uint) error {
	log := r.log.Function("Delete")

	if err := r.deleteWhere(ctx, new(T), map[string]any{"id": id}); err != nil {
		return log.Err("failed to delete record", err, "id", id)
	}

	return nil
}
