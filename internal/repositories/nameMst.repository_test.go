package repositories_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"haisou/internal/database/dbtest"
	. "haisou/internal/models"
	"haisou/internal/repositories"
	"haisou/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameMstRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewNameMst(dbtest.New(t), 0)

	require.NoError(t, repo.Create(ctx, &NameMst{Cd: 0, Nm: "未設定"}))

	exists, err := repo.Exists(ctx, 0)
	require.NoError(t, err)
	assert.True(t, exists, "code 0 is a real key, not an auto-increment placeholder")

	name, err := repo.GetByCode(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "未設定", name.Nm)

	err = repo.Create(ctx, &NameMst{Cd: 0, Nm: "重複"})
	assert.True(t, errors.Is(err, repositories.ErrDuplicateKey), "got %v", err)

	name.Memo = "初期値"
	name.Digit = 3
	require.NoError(t, repo.Update(ctx, name))

	name, err = repo.GetByCode(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "初期値", name.Memo)
	assert.Equal(t, "000", name.DisplayCode())

	require.NoError(t, repo.Delete(ctx, 0))
	exists, err = repo.Exists(ctx, 0)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByCode(ctx, 0)
	assert.True(t, repositories.IsNotFound(err))
}

func TestNameMstRepository_Bounds(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewNameMst(dbtest.New(t), 0)

	require.NoError(t, repo.Create(ctx, &NameMst{Cd: NameCodeMax, Sort: NameSortMax}))

	tests := []struct {
		name  string
		rec   NameMst
		field string
		tag   string
	}{
		{"code too large", NameMst{Cd: NameCodeMax + 1}, "cd", "max"},
		{"negative code", NameMst{Cd: -1}, "cd", "min"},
		{"sort too large", NameMst{Cd: 1, Sort: NameSortMax + 1}, "sort", "max"},
		{"name too long", NameMst{Cd: 1, Nm: strings.Repeat("名", 11)}, "nm", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, &tt.rec)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.True(t, verr.Has(tt.field, tt.tag))
		})
	}

	exists, err := repo.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists, "rejected rows are never written")
}

func TestNameMstRepository_Listing(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewNameMst(dbtest.New(t), 0)

	for _, n := range []*NameMst{
		{Cd: 3, Nm: "返品", Sort: 1},
		{Cd: 1, Nm: "通常", Sort: 1},
		{Cd: 2, Nm: "代金引換", Sort: 0},
	} {
		require.NoError(t, repo.Create(ctx, n))
	}

	names, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{names[0].Cd, names[1].Cd, names[2].Cd})

	nameMap, err := repo.NameMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "通常", 2: "代金引換", 3: "返品"}, nameMap)

	resolved, err := repo.ResolveName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "代金引換", resolved)

	_, err = repo.ResolveName(ctx, 42)
	assert.True(t, repositories.IsNotFound(err))
}

func TestNameMstRepository_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := repositories.NewNameMst(db, 0)
	txService := services.NewTransactionService(db)

	boom := errors.New("boom")
	err := txService.Execute(ctx, func(txCtx context.Context) error {
		require.NotEmpty(t, services.TransactionID(txCtx))
		if err := repo.Create(txCtx, &NameMst{Cd: 5, Nm: "一時"}); err != nil {
			return err
		}
		exists, err := repo.Exists(txCtx, 5)
		if err != nil {
			return err
		}
		assert.True(t, exists, "the row is visible inside its transaction")
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	exists, err := repo.Exists(ctx, 5)
	require.NoError(t, err)
	assert.False(t, exists)

	err = txService.Execute(ctx, func(txCtx context.Context) error {
		return repo.Create(txCtx, &NameMst{Cd: 6, Nm: "確定"})
	})
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, 6)
	require.NoError(t, err)
	assert.True(t, exists)
}
