package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

const (
	// DefaultMaxAttempts количество попыток для сериализуемой транзакции
	DefaultMaxAttempts = 3
	// DefaultRetryBackoff базовая пауза между попытками
	DefaultRetryBackoff = 20 * time.Millisecond
)

// Коды SQLSTATE, после которых транзакцию можно безопасно повторить
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")
	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
	// ErrRetriesExhausted транзакция не прошла за отведённое количество попыток
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через context
type TransactionManager struct {
	db          TxBeginner
	metrics     *metrics.Metrics
	maxAttempts int
	backoff     time.Duration
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithMetrics включает подсчёт повторов транзакций
func WithMetrics(m *metrics.Metrics) Option {
	return func(tm *TransactionManager) {
		tm.metrics = m
	}
}

// WithRetry задаёт количество попыток и базовую паузу для сериализуемых транзакций
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(tm *TransactionManager) {
		if maxAttempts > 0 {
			tm.maxAttempts = maxAttempts
		}
		if backoff >= 0 {
			tm.backoff = backoff
		}
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	tm := &TransactionManager{
		db:          db,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Do выполняет fn в транзакции READ COMMITTED
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (tm *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При конфликте сериализации (40001) или дедлоке (40P01) транзакция повторяется целиком,
// поэтому fn должна быть идемпотентной до коммита.
func (tm *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= tm.maxAttempts; attempt++ {
		lastErr = tm.run(ctx, opts, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == tm.maxAttempts {
			break
		}

		tm.metrics.RecordTxRetry("serializable")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(tm.backoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

func (tm *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок сериализации и дедлоков PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
