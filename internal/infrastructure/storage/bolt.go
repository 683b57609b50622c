package storage

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
)

var _ repository.Storage = (*Bolt)(nil)

var boltBucket = []byte("storefront")

// Bolt almacenamiento durable en un archivo bbolt local.
// bbolt bloquea el archivo por proceso: los observadores reciben los cambios hechos
// por las sesiones de este mismo proceso. Para varias instancias usar Redis o Postgres.
type Bolt struct {
	db  *bolt.DB
	hub *hub
}

// OpenBolt abre (o crea) el archivo en path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: abrir %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: crear bucket: %w", err)
	}
	return &Bolt{db: db, hub: newHub()}, nil
}

// Get devuelve el valor de key.
func (b *Bolt) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("bolt: get %s: %w", key, err)
	}
	return value, ok, nil
}

// Set guarda value.
func (b *Bolt) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("bolt: set %s: %w", key, err)
	}
	b.hub.publish(repository.Change{Key: key, Value: value})
	return nil
}

// Delete borra key.
func (b *Bolt) Delete(_ context.Context, key string) error {
	existed := false
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		existed = bucket.Get([]byte(key)) != nil
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("bolt: delete %s: %w", key, err)
	}
	if existed {
		b.hub.publish(repository.Change{Key: key, Deleted: true})
	}
	return nil
}

// Watch registra un observador de key.
func (b *Bolt) Watch(ctx context.Context, key string) (<-chan repository.Change, func(), error) {
	ch, stop := b.hub.watch(ctx, key)
	return ch, stop, nil
}

// Close cierra observadores y archivo.
func (b *Bolt) Close() error {
	b.hub.close()
	return b.db.Close()
}
