package inmem

import (
	"context"
	"strings"
	"sync"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"
	"mediflow/internal/pkg/errs"
)

type pharmacistRecord struct {
	name         string
	email        string
	passwordHash string
	active       bool
}

// PharmacistStore is an in-memory PharmacistRepository.
type PharmacistStore struct {
	mu      sync.RWMutex
	records map[kernel.UUID]pharmacistRecord
	byEmail map[string]kernel.UUID
}

// NewPharmacistStore creates an empty in-memory pharmacist store.
func NewPharmacistStore() *PharmacistStore {
	return &PharmacistStore{
		records: make(map[kernel.UUID]pharmacistRecord),
		byEmail: make(map[string]kernel.UUID),
	}
}

// Add persists a new pharmacist aggregate.
func (s *PharmacistStore) Add(_ context.Context, aggregate *pharmacist.Pharmacist) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(aggregate.Email())
	if _, exists := s.byEmail[email]; exists {
		return errs.NewValueIsInvalidError("pharmacist email already registered")
	}

	s.records[aggregate.ID()] = pharmacistRecord{
		name:         aggregate.Name(),
		email:        aggregate.Email(),
		passwordHash: aggregate.PasswordHash(),
		active:       aggregate.Active(),
	}
	s.byEmail[email] = aggregate.ID()
	return nil
}

// Get retrieves a pharmacist by id.
func (s *PharmacistStore) Get(_ context.Context, id kernel.UUID) (*pharmacist.Pharmacist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("pharmacist", id.String())
	}

	return pharmacist.RestorePharmacist(id, record.name, record.email, record.passwordHash, record.active)
}

// GetByEmail retrieves a pharmacist by login email.
func (s *PharmacistStore) GetByEmail(_ context.Context, email string) (*pharmacist.Pharmacist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[normalizeEmail(email)]
	if !exists {
		return nil, errs.NewObjectNotFoundError("pharmacist", email)
	}

	record := s.records[id]
	return pharmacist.RestorePharmacist(id, record.name, record.email, record.passwordHash, record.active)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
