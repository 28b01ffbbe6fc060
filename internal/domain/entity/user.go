package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/fixture-cleanup/internal/domain"
)

// Role rol de un usuario autenticado.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Capability acción protegida que un rol puede o no ejecutar.
type Capability string

// CapabilityPurgeFixtures permite borrar los clientes de prueba.
const CapabilityPurgeFixtures Capability = "fixtures:purge"

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {CapabilityPurgeFixtures},
	RoleUser:  nil,
}

// ParseRole valida el rol recibido (claim del token o columna de la DB).
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleCapabilities[r]; !ok {
		return "", domain.ErrInvalidRole
	}
	return r, nil
}

// Can indica si el rol concede la capacidad. Un rol desconocido no concede ninguna.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del panel.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
