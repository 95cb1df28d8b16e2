package domain

import "time"

// Role tags which principal store an identity belongs to.
type Role string

const (
	RoleBuyer  Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Image is a stored binary payload with its declared media type.
type Image struct {
	Data []byte
	Type string
}

// Empty reports whether the image carries no payload.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Principal is an account entity for any of the three roles. Role specific
// fields stay empty for the roles that do not use them.
type Principal struct {
	ID           string
	Role         Role
	Name         string
	Username     string
	Email        string
	Phone        string
	PasswordHash string

	// buyer
	ShippingAddress string

	// seller
	Address          string
	CorporateAddress string
	NID              string
	Slug             string

	Photo     Image
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sanitized returns a copy without the password hash.
func (p *Principal) Sanitized() *Principal {
	if p == nil {
		return nil
	}
	cp := *p
	cp.PasswordHash = ""
	return &cp
}
