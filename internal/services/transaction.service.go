package services

import (
	"context"

	"haisou/internal/database"
	"haisou/internal/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txKey struct{}

type txState struct {
	tx          *gorm.DB
	id          string
	afterCommit []func(ctx context.Context)
}

// GetTransaction returns the transaction stored in ctx by Execute, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok || state == nil {
		return nil, false
	}
	return state.tx, true
}

// TransactionID returns the correlation id of the transaction in ctx.
func TransactionID(ctx context.Context) string {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && state != nil {
		return state.id
	}
	return ""
}

// AfterCommit defers fn until the transaction in ctx commits. It is dropped
// on rollback. Without a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && state != nil {
		state.afterCommit = append(state.afterCommit, fn)
		return
	}
	fn(ctx)
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn in a transaction. Repositories called with txCtx use it.
// When ctx already carries a transaction fn joins it instead of nesting.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	log := s.log.Function("Execute")

	if _, ok := GetTransaction(ctx); ok {
		return fn(ctx)
	}

	state := &txState{id: uuid.NewString()}
	err := s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state.tx = tx
		return fn(context.WithValue(ctx, txKey{}, state))
	})
	if err != nil {
		return log.Err("transaction rolled back", err, "txID", state.id)
	}

	log.Debug("transaction committed", "txID", state.id, "afterCommit", len(state.afterCommit))
	for _, hook := range state.afterCommit {
		hook(ctx)
	}
	return nil
}
