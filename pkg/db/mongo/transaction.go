package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// IllegalOperation, as returned by a standalone server asked to open a transaction.
const codeIllegalOperation = 20

var ErrNoClient = errors.New("mongo client is not connected")

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type Option func(*Manager)

// WithStandaloneFallback reruns fn in a plain session when the server cannot
// run transactions. Writes are then not atomic; meant for single-node dev setups.
func WithStandaloneFallback(log *logger.Logger) Option {
	return func(m *Manager) {
		m.fallback = true
		m.log = log
	}
}

func WithMaxCommitTime(d time.Duration) Option {
	return func(m *Manager) { m.maxCommitTime = d }
}

type Manager struct {
	client        *mongo.Client
	fallback      bool
	maxCommitTime time.Duration
	log           *logger.Logger
}

func NewTransactionManager(client *mongo.Client, opts ...Option) *Manager {
	m := &Manager{client: client, maxCommitTime: 10 * time.Second}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) txOptions() *options.TransactionOptions {
	return options.Transaction().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority()).
		SetMaxCommitTime(&m.maxCommitTime)
}

// ExecuteTransaction runs fn inside a majority read/write transaction.
// AppErrors returned by fn are passed through unwrapped.
func (m *Manager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	if m.client == nil {
		return ErrNoClient
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	}, m.txOptions())

	if err != nil && m.fallback && transactionsUnsupported(err) {
		if m.log != nil {
			m.log.Warn("Server does not support transactions, running without one")
		}
		err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
			return fn(sc)
		})
	}
	return classify(err)
}

func classify(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	return fmt.Errorf("transaction: %w", err)
}

func transactionsUnsupported(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorCodeWithMessage(codeIllegalOperation, "Transaction numbers are only allowed")
}
