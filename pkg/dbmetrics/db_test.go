package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	*sql.DB
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutorPrefersTransaction(t *testing.T) {
	db := &DB{}
	tx := &fakeTx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM slots"))
	assert.Equal(t, "insert", operation("\n\tINSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operation("   "))
}
