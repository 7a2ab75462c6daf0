// Package ids genera identificadores de correlación (ULID) ordenables por tiempo.
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewRequestID devuelve un ULID nuevo; dentro del mismo milisegundo es estrictamente creciente.
func NewRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsRequestID informa si s es un ULID válido (para aceptar el X-Request-ID entrante).
func IsRequestID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
