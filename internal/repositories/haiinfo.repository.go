package repositories

import (
	"context"
	"time"

	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"
)

type HaiinfoRepository interface {
	Create(ctx context.Context, info *HaiinfoTbl) error
	GetByDenno(ctx context.Context, denno string) (*HaiinfoTbl, error)
	ListByType(ctx context.Context, denType string) ([]*HaiinfoTbl, error)
	ListOrderedBetween(ctx context.Context, from, to time.Time) ([]*HaiinfoTbl, error)
	Update(ctx context.Context, info *HaiinfoTbl) error
	Delete(ctx context.Context, denno string) error
}

type haiinfoRepository struct {
	baseRepository
}

func NewHaiinfo(db database.DB) HaiinfoRepository {
	return &haiinfoRepository{
		baseRepository{db: db, log: logger.New("haiinfoRepository")},
	}
}

func (r *haiinfoRepository) Create(ctx context.Context, info *HaiinfoTbl) error {
	log := r.log.Function("Create")

	if err := r.create(ctx, info); err != nil {
		return log.Err("failed to create delivery info", err, "denno", info.Denno)
	}

	return nil
}

func (r *haiinfoRepository) GetByDenno(ctx context.Context, denno string) (*HaiinfoTbl, error) {
	log := r.log.Function("GetByDenno")

	var info HaiinfoTbl
	if err := r.getDB(ctx).Where(map[string]any{ColHaiinfoDenno: denno}).First(&info).Error; err != nil {
		return nil, log.Err("failed to get delivery info", err, "denno", denno)
	}

	return &info, nil
}

func (r *haiinfoRepository) ListByType(ctx context.Context, denType string) ([]*HaiinfoTbl, error) {
	log := r.log.Function("ListByType")

	var infos []*HaiinfoTbl
	if err := r.getDB(ctx).
		Where(map[string]any{ColHaiinfoType: denType}).
		Order(ColHaiinfoDenno).
		Find(&infos).Error; err != nil {
		return nil, log.Err("failed to list delivery info by type", err, "denType", denType)
	}

	return infos, nil
}

// ListOrderedBetween returns rows whose order date falls in [from, to).
// Rows without an order date never match.
func (r *haiinfoRepository) ListOrderedBetween(ctx context.Context, from, to time.Time) ([]*HaiinfoTbl, error) {
	log := r.log.Function("ListOrderedBetween")

	if !to.After(from) {
		return nil, log.Error("empty order date range", "from", from, "to", to)
	}

	var infos []*HaiinfoTbl
	if err := r.getDB(ctx).
		Where(ColHaiinfoOrderDate+" >= ? AND "+ColHaiinfoOrderDate+" < ?", from.UTC(), to.UTC()).
		Order(ColHaiinfoOrderDate).
		Find(&infos).Error; err != nil {
		return nil, log.Err("failed to list delivery info by order date", err, "from", from, "to", to)
	}

	return infos, nil
}

func (r *haiinfoRepository) Update(ctx context.Context, info *HaiinfoTbl) error {
	log := r.log.Function("Update")

	if err := r.updateAll(ctx, info, map[string]any{ColHaiinfoDenno: info.Denno}); err != nil {
		return log.Err("failed to update delivery info", err, "denno", info.Denno)
	}

	return nil
}

func (r *haiinfoRepository) Delete(ctx context.Context, denno string) error {
	log := r.log.Function("Delete")

	if err := r.deleteWhere(ctx, &HaiinfoTbl{}, map[string]any{ColHaiinfoDenno: denno}); err != nil {
		return log.Err("failed to delete delivery info", err, "denno", denno)
	}

	return nil
}
