package pharmacist

import (
	"errors"

	"mediflow/internal/core/domain/model/kernel"
	"mediflow/internal/pkg/errs"
)

// ErrPharmacistIsNotConstructed is returned when a Pharmacist instance was not
// created through NewPharmacist or RestorePharmacist.
var ErrPharmacistIsNotConstructed = errors.New("Pharmacist must be created via NewPharmacist or RestorePharmacist")

// Pharmacist is the aggregate for a licensed pharmacist who can authenticate,
// pull from the shared order queue, and claim orders for consultation.
//
// The aggregate carries the credential hash opaquely; hashing and comparison
// live in the auth adapter so the domain stays free of crypto concerns.
type Pharmacist struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	active       bool

	isConstructed bool
}

// NewPharmacist creates a validated Pharmacist in the active state.
func NewPharmacist(id kernel.UUID, name, email, passwordHash string) (*Pharmacist, error) {
	p := &Pharmacist{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePharmacist reconstructs a Pharmacist from persistence.
func RestorePharmacist(id kernel.UUID, name, email, passwordHash string, active bool) (*Pharmacist, error) {
	p, err := NewPharmacist(id, name, email, passwordHash)
	if err != nil {
		return nil, err
	}
	p.active = active
	return p, nil
}

// Validate ensures the Pharmacist instance was properly constructed.
func (p *Pharmacist) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPharmacistIsNotConstructed
	}
	return nil
}

// ID returns the pharmacist's unique identifier.
func (p *Pharmacist) ID() kernel.UUID {
	return p.id
}

// Name returns the pharmacist's display name.
func (p *Pharmacist) Name() string {
	return p.name
}

// Email returns the pharmacist's login email.
func (p *Pharmacist) Email() string {
	return p.email
}

// PasswordHash returns the opaque credential hash.
func (p *Pharmacist) PasswordHash() string {
	return p.passwordHash
}

// Active reports whether the pharmacist may authenticate and claim orders.
func (p *Pharmacist) Active() bool {
	return p.active
}

// Deactivate bars the pharmacist from further logins and claims.
func (p *Pharmacist) Deactivate() {
	p.active = false
}

func (p *Pharmacist) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pharmacist) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Pharmacist) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	p.email = email
	return nil
}

func (p *Pharmacist) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	p.passwordHash = passwordHash
	return nil
}
