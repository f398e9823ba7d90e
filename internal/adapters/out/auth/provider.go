// Package auth implements credential verification and bearer token issuance.
// Customers are kept in-process; pharmacists live behind the pharmacist
// repository so both storage backends share one account set. Passwords are
// stored as bcrypt hashes, tokens are random and opaque.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/core/domain/model/pharmacist"
	"mediflow/internal/core/ports"
	"mediflow/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmailAlreadyRegistered is returned when a registration reuses an email.
var ErrEmailAlreadyRegistered = errors.New("email is already registered")

type customerAccount struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash []byte
}

// Provider verifies credentials and issues bearer tokens. Implements
// ports.AuthProvider.
type Provider struct {
	mu          sync.RWMutex
	customers   map[string]customerAccount
	tokens      map[string]ports.Principal
	pharmacists ports.PharmacistRepository
}

// NewProvider creates a provider backed by the given pharmacist repository.
func NewProvider(pharmacists ports.PharmacistRepository) *Provider {
	return &Provider{
		customers:   make(map[string]customerAccount),
		tokens:      make(map[string]ports.Principal),
		pharmacists: pharmacists,
	}
}

// RegisterCustomer creates a customer account and logs it in.
func (p *Provider) RegisterCustomer(ctx context.Context, name, email, password string) (ports.Principal, string, error) {
	if name == "" {
		return ports.Principal{}, "", errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return ports.Principal{}, "", errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return ports.Principal{}, "", errs.NewValueIsRequiredError("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ports.Principal{}, "", err
	}

	p.mu.Lock()
	key := normalizeEmail(email)
	if _, exists := p.customers[key]; exists {
		p.mu.Unlock()
		return ports.Principal{}, "", ErrEmailAlreadyRegistered
	}
	account := customerAccount{
		id:           kernel.NewUUID(),
		name:         name,
		email:        email,
		passwordHash: hash,
	}
	p.customers[key] = account
	p.mu.Unlock()

	return p.login(ctx, principalFromCustomer(account))
}

// LoginCustomer verifies customer credentials and issues a token.
func (p *Provider) LoginCustomer(ctx context.Context, email, password string) (ports.Principal, string, error) {
	p.mu.RLock()
	account, exists := p.customers[normalizeEmail(email)]
	p.mu.RUnlock()

	if !exists {
		return ports.Principal{}, "", errs.NewUnauthorizedError("unknown email or wrong password")
	}
	if bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)) != nil {
		return ports.Principal{}, "", errs.NewUnauthorizedError("unknown email or wrong password")
	}

	return p.login(ctx, principalFromCustomer(account))
}

// LoginPharmacist verifies pharmacist credentials against the repository and
// issues a token.
func (p *Provider) LoginPharmacist(ctx context.Context, email, password string) (ports.Principal, string, error) {
	aggregate, err := p.pharmacists.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ports.Principal{}, "", errs.NewUnauthorizedError("unknown email or wrong password")
	}
	if err != nil {
		return ports.Principal{}, "", err
	}
	if !aggregate.Active() {
		return ports.Principal{}, "", errs.NewUnauthorizedError("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(aggregate.PasswordHash()), []byte(password)) != nil {
		return ports.Principal{}, "", errs.NewUnauthorizedError("unknown email or wrong password")
	}

	return p.login(ctx, ports.Principal{
		SubjectID: aggregate.ID(),
		Role:      ports.RolePharmacist,
		Name:      aggregate.Name(),
		Email:     aggregate.Email(),
	})
}

// VerifyToken resolves a bearer token to its principal.
func (p *Provider) VerifyToken(_ context.Context, token string) (ports.Principal, error) {
	p.mu.RLock()
	principal, exists := p.tokens[token]
	p.mu.RUnlock()

	if !exists {
		return ports.Principal{}, errs.NewUnauthorizedError("unknown or expired token")
	}
	return principal, nil
}

// SeedPharmacist registers a pharmacist account with the given password.
// Used at startup to provision staff accounts.
func (p *Provider) SeedPharmacist(ctx context.Context, name, email, password string) (kernel.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := pharmacist.NewPharmacist(kernel.NewUUID(), name, email, string(hash))
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = p.pharmacists.Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	return aggregate.ID(), nil
}

// SeedCustomer registers a customer account without logging it in.
// Used at startup to provision demo accounts.
func (p *Provider) SeedCustomer(name, email, password string) (kernel.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return kernel.UUID{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := normalizeEmail(email)
	if _, exists := p.customers[key]; exists {
		return kernel.UUID{}, ErrEmailAlreadyRegistered
	}

	account := customerAccount{
		id:           kernel.NewUUID(),
		name:         name,
		email:        email,
		passwordHash: hash,
	}
	p.customers[key] = account
	return account.id, nil
}

func (p *Provider) login(_ context.Context, principal ports.Principal) (ports.Principal, string, error) {
	token, err := newToken()
	if err != nil {
		return ports.Principal{}, "", err
	}

	p.mu.Lock()
	p.tokens[token] = principal
	p.mu.Unlock()

	return principal, token, nil
}

func principalFromCustomer(account customerAccount) ports.Principal {
	return ports.Principal{
		SubjectID: account.id,
		Role:      ports.RoleCustomer,
		Name:      account.name,
		Email:     account.email,
	}
}

func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
