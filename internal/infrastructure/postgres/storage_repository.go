package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

var _ repository.Storage = (*StorageRepo)(nil)

// notifyChannel canal LISTEN/NOTIFY compartido por todas las claves.
const notifyChannel = "storefront_storage_changes"

const schema = `
CREATE TABLE IF NOT EXISTS storefront_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// StorageRepo implementación del puerto Storage sobre PostgreSQL. Cada escritura
// emite pg_notify para que las demás instancias del mismo namespace converjan.
type StorageRepo struct {
	pool      *pgxpool.Pool
	namespace string
	log       *logger.Logger
}

// notification payload enviado por pg_notify.
type notification struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Deleted   bool   `json:"deleted"`
}

// NewStorageRepository crea la tabla si no existe y construye el adaptador.
func NewStorageRepository(ctx context.Context, pool *pgxpool.Pool, namespace string, log *logger.Logger) (*StorageRepo, error) {
	if log == nil {
		log = logger.Nop()
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("crear tabla storefront_storage: %w", err)
	}
	return &StorageRepo{pool: pool, namespace: namespace, log: log}, nil
}

// Get devuelve el valor de key.
func (r *StorageRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM storefront_storage WHERE namespace = $1 AND key = $2`,
		r.namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select storage %s: %w", key, err)
	}
	return value, true, nil
}

// Set hace upsert de key y notifica en la misma transacción.
func (r *StorageRepo) Set(ctx context.Context, key, value string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO storefront_storage (namespace, key, value, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			r.namespace, key, value,
		)
		if err != nil {
			return fmt.Errorf("upsert storage %s: %w", key, err)
		}
		return r.notify(ctx, tx, notification{Namespace: r.namespace, Key: key, Value: value})
	})
}

// Delete borra key; solo notifica si existía.
func (r *StorageRepo) Delete(ctx context.Context, key string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM storefront_storage WHERE namespace = $1 AND key = $2`,
			r.namespace, key,
		)
		if err != nil {
			return fmt.Errorf("delete storage %s: %w", key, err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		return r.notify(ctx, tx, notification{Namespace: r.namespace, Key: key, Deleted: true})
	})
}

func (r *StorageRepo) notify(ctx context.Context, tx pgx.Tx, n notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
		return fmt.Errorf("pg_notify: %w", err)
	}
	return nil
}

func (r *StorageRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Watch toma una conexión dedicada del pool, ejecuta LISTEN y filtra por namespace y key.
func (r *StorageRepo) Watch(ctx context.Context, key string) (<-chan repository.Change, func(), error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, nil, fmt.Errorf("listen: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	out := make(chan repository.Change, 8)
	go func() {
		defer func() {
			// Tras cancelar WaitForNotification la conexión queda cerrada; el pool la descarta.
			conn.Release()
			close(out)
		}()
		for {
			n, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					r.log.Warn().Err(err).Str("key", key).Msg("LISTEN interrumpido")
				}
				return
			}
			var payload notification
			if err := json.Unmarshal([]byte(n.Payload), &payload); err != nil {
				continue
			}
			if payload.Namespace != r.namespace || payload.Key != key {
				continue
			}
			select {
			case out <- repository.Change{Key: payload.Key, Value: payload.Value, Deleted: payload.Deleted}:
			case <-subCtx.Done():
				return
			}
		}
	}()
	return out, cancel, nil
}

// Close no cierra el pool: su dueño es main.
func (r *StorageRepo) Close() error { return nil }
