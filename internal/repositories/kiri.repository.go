package repositories

import (
	"context"

	"haisou/internal/database"
	"haisou/internal/logger"
	. "haisou/internal/models"

	"gorm.io/gorm"
)

type KiriRepository interface {
	Create(ctx context.Context, kiri *KiriTbl) error
	GetByChild(ctx context.Context, sDenno string) (*KiriTbl, error)
	ListByParent(ctx context.Context, denno string) ([]*KiriTbl, error)
	Split(ctx context.Context, denno string, children []string) ([]*KiriTbl, error)
	Update(ctx context.Context, kiri *KiriTbl) error
	Delete(ctx context.Context, sDenno string) error
}

type kiriRepository struct {
	baseRepository
}

func NewKiri(db database.DB) KiriRepository {
	return &kiriRepository{
		baseRepository{db: db, log: logger.New("kiriRepository")},
	}
}

func (r *kiriRepository) Create(ctx context.Context, kiri *KiriTbl) error {
	log := r.log.Function("Create")

	if err := r.create(ctx, kiri); err != nil {
		return log.Err("failed to create kiri", err, "sDenno", kiri.SDenno)
	}

	return nil
}

func (r *kiriRepository) GetByChild(ctx context.Context, sDenno string) (*KiriTbl, error) {
	log := r.log.Function("GetByChild")

	var kiri KiriTbl
	if err := r.getDB(ctx).Where(map[string]any{ColKiriChild: sDenno}).First(&kiri).Error; err != nil {
		return nil, log.Err("failed to get kiri by child number", err, "sDenno", sDenno)
	}

	return &kiri, nil
}

func (r *kiriRepository) ListByParent(ctx context.Context, denno string) ([]*KiriTbl, error) {
	log := r.log.Function("ListByParent")

	var kiris []*KiriTbl
	if err := r.getDB(ctx).
		Where(map[string]any{ColKiriParent: denno}).
		Order(ColKiriChild).
		Find(&kiris).Error; err != nil {
		return nil, log.Err("failed to list kiri by parent number", err, "denno", denno)
	}

	return kiris, nil
}

// Split records children under denno in one transaction: either every child
// is stored or none is.
func (r *kiriRepository) Split(ctx context.Context, denno string, children []string) ([]*KiriTbl, error) {
	log := r.log.Function("Split")

	if len(children) == 0 {
		return nil, log.Error("no child numbers provided", "denno", denno)
	}

	kiris := make([]*KiriTbl, 0, len(children))
	for _, child := range children {
		kiris = append(kiris, &KiriTbl{Denno: denno, SDenno: child})
	}

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&kiris).Error
		if isDuplicate(err) {
			return duplicate(err)
		}
		return err
	})
	if err != nil {
		return nil, log.Err("failed to split parent number", err, "denno", denno, "children", len(children))
	}

	log.Info("split parent number", "denno", denno, "children", len(children))
	return kiris, nil
}

func (r *kiriRepository) Update(ctx context.Context, kiri *KiriTbl) error {
	log := r.log.Function("Update")

	if err := r.updateAll(ctx, kiri, map[string]any{ColKiriChild: kiri.SDenno}); err != nil {
		return log.Err("failed to update kiri", err, "sDenno", kiri.SDenno)
	}

	return nil
}

func (r *kiriRepository) Delete(ctx context.Context, sDenno string) error {
	log := r.log.Function("Delete")

	if err := r.deleteWhere(ctx, &KiriTbl{}, map[string]any{ColKiriChild: sDenno}); err != nil {
		return log.Err("failed to delete kiri", err, "sDenno", sDenno)
	}

	return nil
}
