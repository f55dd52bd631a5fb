// Package session implementa el almacén de sesiones del dashboard:
// en memoria (ristretto) para una sola instancia o en Redis para varias.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*MemoryStore)(nil)

const minCounters = 1000

// MemoryStore sesiones en un cache ristretto acotado por bytes.
type MemoryStore struct {
	c *ristretto.Cache[string, []byte]
}

// NewMemoryStore maxCostBytes es el tamaño máximo total de las sesiones serializadas.
func NewMemoryStore(maxCostBytes int64) (*MemoryStore, error) {
	if maxCostBytes <= 0 {
		maxCostBytes = 16 << 20
	}
	counters := maxCostBytes / 10
	if counters < minCounters {
		counters = minCounters
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: counters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("session: crear cache: %w", err)
	}
	return &MemoryStore{c: c}, nil
}

// Save guarda la sesión. Espera a que el cache aplique la escritura y
// confirma que la política de admisión la aceptó: un login sólo emite token
// si el Get siguiente va a encontrar la sesión.
func (s *MemoryStore) Save(_ context.Context, sess *entity.Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if !s.c.SetWithTTL(sess.ID, raw, int64(len(raw)), ttl) {
		return fmt.Errorf("session: cache rechazó la sesión %s", sess.ID)
	}
	s.c.Wait()
	if _, ok := s.c.Get(sess.ID); !ok {
		return fmt.Errorf("session: cache lleno, sesión %s no admitida", sess.ID)
	}
	return nil
}

// Get devuelve (nil, nil) si no existe o venció.
func (s *MemoryStore) Get(_ context.Context, id string) (*entity.Session, error) {
	raw, ok := s.c.Get(id)
	if !ok {
		return nil, nil
	}
	return decode(raw)
}

// Delete elimina la sesión.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.c.Del(id)
	return nil
}

// Close libera los recursos del cache.
func (s *MemoryStore) Close() error {
	s.c.Close()
	return nil
}

func decode(raw []byte) (*entity.Session, error) {
	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: deserializar: %w", err)
	}
	return &sess, nil
}
