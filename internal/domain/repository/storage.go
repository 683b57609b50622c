package repository

import "context"

// Claves fijas del almacenamiento durable del comprador.
const (
	KeyToken                    = "token"
	KeyUser                     = "user"
	KeyPendingVerificationEmail = "pendingVerificationEmail"
)

// Change cambio observado sobre una clave. Deleted=true implica Value vacío.
type Change struct {
	Key     string
	Value   string
	Deleted bool
}

// Storage define el puerto de almacenamiento durable clave/valor (equivalente al
// localStorage del navegador). Get devuelve ok=false si la clave no existe.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Watch entrega los cambios de key hechos por cualquier instancia que comparta
	// el almacenamiento. El canal se cierra al cancelar ctx o llamar a stop.
	Watch(ctx context.Context, key string) (changes <-chan Change, stop func(), err error)
	Close() error
}
