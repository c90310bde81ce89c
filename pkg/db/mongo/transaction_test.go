package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestExecuteTransaction_NoClient(t *testing.T) {
	m := NewTransactionManager(nil)

	called := false
	err := m.ExecuteTransaction(context.Background(), func(mongo.SessionContext) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrNoClient)
	assert.False(t, called)
}

func TestNewTransactionManager_Options(t *testing.T) {
	m := NewTransactionManager(nil, WithMaxCommitTime(time.Second), WithStandaloneFallback(logger.Discard()))

	assert.True(t, m.fallback)
	assert.NotNil(t, m.log)
	opts := m.txOptions()
	require.NotNil(t, opts.MaxCommitTime)
	assert.Equal(t, time.Second, *opts.MaxCommitTime)
}

func TestTransactionsUnsupported(t *testing.T) {
	standalone := mongo.CommandError{
		Code:    codeIllegalOperation,
		Message: "Transaction numbers are only allowed on a replica set member or mongos",
	}

	assert.True(t, transactionsUnsupported(standalone))
	assert.True(t, transactionsUnsupported(fmt.Errorf("insert: %w", standalone)))
	assert.False(t, transactionsUnsupported(mongo.CommandError{Code: codeIllegalOperation, Message: "other"}))
	assert.False(t, transactionsUnsupported(errors.New("boom")))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	conflict := apperrors.Conflict("room taken")
	assert.Same(t, conflict, classify(conflict))

	raw := errors.New("write conflict")
	wrapped := classify(raw)
	assert.ErrorIs(t, wrapped, raw)
	assert.Contains(t, wrapped.Error(), "transaction:")
}
