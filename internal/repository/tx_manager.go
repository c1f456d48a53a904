package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// ErrNoTransaction is returned by helpers that only make sense inside RunInTx.
var ErrNoTransaction = errors.New("repository: no transaction in context")

// TransactionManager manages database transactions via context injection.
// Nested RunInTx calls join the outer transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

// txState travels in the context for the lifetime of one transaction.
type txState struct {
	tx          *gorm.DB
	mu          sync.Mutex
	afterCommit []func()
	onDone      []func()
	held        map[string]bool
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*txState); ok {
		return fn(ctx)
	}

	state := &txState{held: make(map[string]bool)}
	err := func() error {
		defer state.done()
		return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			state.tx = tx
			return fn(context.WithValue(ctx, txKey, state))
		})
	}()
	if err != nil {
		return err
	}

	for _, hook := range state.afterCommit {
		hook()
	}
	return nil
}

// done releases everything held for the transaction, newest first.
func (s *txState) done() {
	s.mu.Lock()
	hooks := s.onDone
	s.onDone = nil
	s.mu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// GetDB extracts the transaction DB from context if present, otherwise returns root DB.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if state, ok := ctx.Value(txKey).(*txState); ok {
		return state.tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}

// InTx reports whether ctx carries an open transaction.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey).(*txState)
	return ok
}

// AfterCommit schedules fn to run once the enclosing transaction commits. It
// is dropped on rollback. Outside a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok {
		fn()
		return
	}
	state.mu.Lock()
	state.afterCommit = append(state.afterCommit, fn)
	state.mu.Unlock()
}

// LockUntilDone acquires l and keeps it until the enclosing transaction has
// committed or rolled back. A key already held by this transaction is not
// locked again.
func LockUntilDone(ctx context.Context, key string, l sync.Locker) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok {
		return ErrNoTransaction
	}

	state.mu.Lock()
	if state.held[key] {
		state.mu.Unlock()
		return nil
	}
	state.mu.Unlock()

	l.Lock()

	state.mu.Lock()
	state.held[key] = true
	state.onDone = append(state.onDone, l.Unlock)
	state.mu.Unlock()
	return nil
}

// AdvisoryXactLock takes a Postgres transaction-scoped advisory lock. Other
// dialects have no equivalent and rely on LockUntilDone alone.
func AdvisoryXactLock(ctx context.Context, key int64) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok {
		return ErrNoTransaction
	}
	if state.tx.Dialector.Name() != "postgres" {
		return nil
	}
	return state.tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", key).Error
}
