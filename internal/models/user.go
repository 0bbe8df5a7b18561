package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Role is the closed set of account roles. The zero value is not a valid role,
// so an account loaded without one can never pass a role check.
type Role uint8

const (
	roleUnknown Role = iota
	RoleAdmin
	RoleProfessor
)

var roleNames = map[Role]string{
	RoleAdmin:     "ADMIN",
	RoleProfessor: "PROFESSOR",
}

// ParseRole converts the stored representation back to a Role.
func ParseRole(raw string) (Role, error) {
	for role, name := range roleNames {
		if name == raw {
			return role, nil
		}
	}
	return roleUnknown, fmt.Errorf("unknown role %q", raw)
}

// String returns the stored representation.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// IsAdmin reports whether r grants administrator routes.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return r.String(), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
}

// AccountStatus tells whether an account may authenticate.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is a professor or administrator stored in the users table.
type Account struct {
	ID           int64         `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Name         string        `db:"name" json:"name"`
	Role         Role          `db:"role" json:"role"`
	Status       AccountStatus `db:"status" json:"status"`
	CampusID     int64         `db:"campus_id" json:"campusId"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// Active reports whether the account may authenticate and act.
func (a *Account) Active() bool {
	return a != nil && a.Status == AccountActive
}

// AccountWithCampus is the admin listing row joined with its campus.
type AccountWithCampus struct {
	Account
	CampusName string `db:"campus_name" json:"campusName"`
	CampusCity string `db:"campus_city" json:"campusCity"`
}
