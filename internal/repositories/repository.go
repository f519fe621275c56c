package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"haisou/internal/database"
	"haisou/internal/logger"
	"haisou/internal/services"

	"gorm.io/gorm"
)

var ErrDuplicateKey = errors.New("duplicate key")

type baseRepository struct {
	db  database.DB
	log logger.Logger
}

func (r *baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// create inserts rec and maps key collisions onto ErrDuplicateKey.
func (r *baseRepository) create(ctx context.Context, rec any) error {
	err := r.getDB(ctx).Create(rec).Error
	if isDuplicate(err) {
		return duplicate(err)
	}
	return err
}

// updateAll writes every column of rec except ins_at, so zero values and
// nils are stored too. A missing row yields gorm.ErrRecordNotFound.
func (r *baseRepository) updateAll(ctx context.Context, rec any, where map[string]any) error {
	query := r.getDB(ctx).Model(rec)
	if len(where) > 0 {
		query = query.Where(where)
	}

	result := query.Select("*").Omit("ins_at").Updates(rec)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return duplicate(result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *baseRepository) deleteWhere(ctx context.Context, model any, where map[string]any) error {
	result := r.getDB(ctx).Where(where).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func duplicate(err error) error {
	return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
