package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

var _ repository.Storage = (*Redis)(nil)

// Redis almacenamiento compartido entre instancias. Cada escritura publica el cambio
// en "<namespace>:changes:<key>" para que las demás sesiones converjan.
type Redis struct {
	client    *redis.Client
	namespace string
	log       *logger.Logger
}

// NewRedis conecta usando una URL redis:// y verifica con Ping.
func NewRedis(ctx context.Context, redisURL, namespace string, log *logger.Logger) (*Redis, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis: URL requerida")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: URL inválida: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return NewRedisWithClient(client, namespace, log), nil
}

// NewRedisWithClient envuelve un cliente existente (tests con miniredis).
func NewRedisWithClient(client *redis.Client, namespace string, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, namespace: namespace, log: log}
}

func (r *Redis) key(k string) string     { return r.namespace + ":" + k }
func (r *Redis) channel(k string) string { return r.namespace + ":changes:" + k }

// Get devuelve el valor de key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, true, nil
}

// Set guarda value sin expiración y publica el cambio.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	r.publish(ctx, repository.Change{Key: key, Value: value})
	return nil
}

// Delete borra key y publica el cambio si existía.
func (r *Redis) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, r.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis: delete %s: %w", key, err)
	}
	if n > 0 {
		r.publish(ctx, repository.Change{Key: key, Deleted: true})
	}
	return nil
}

// publish no falla la escritura: el valor ya quedó persistido y los observadores
// pueden releerlo.
func (r *Redis) publish(ctx context.Context, ch repository.Change) {
	data, err := json.Marshal(ch)
	if err != nil {
		return
	}
	if err := r.client.Publish(ctx, r.channel(ch.Key), data).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", ch.Key).Msg("no se pudo publicar el cambio")
	}
}

// Watch se suscribe al canal de key.
func (r *Redis) Watch(ctx context.Context, key string) (<-chan repository.Change, func(), error) {
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := r.client.Subscribe(subCtx, r.channel(key))

	// Esperar la confirmación de la suscripción
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("redis: subscribe %s: %w", key, err)
	}

	out := make(chan repository.Change, 8)
	go func() {
		defer func() {
			_ = pubsub.Close()
			close(out)
		}()
		msgs := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ch repository.Change
				if err := json.Unmarshal([]byte(msg.Payload), &ch); err != nil {
					r.log.Warn().Err(err).Str("channel", msg.Channel).Msg("cambio ilegible")
					continue
				}
				select {
				case out <- ch:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()
	return out, cancel, nil
}

// Close cierra la conexión.
func (r *Redis) Close() error {
	return r.client.Close()
}
