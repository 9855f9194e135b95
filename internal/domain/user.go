package domain

import (
	"errors"
	"time"
)

// Role represents the access tier of a user.
// Роль всегда представлена закрытым перечислением: любые проверки прав
// делаются исчерпывающим switch по всем значениям, без строковых сравнений
// в вызывающем коде.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ErrUnknownRole возвращается при попытке распарсить неизвестную роль
var ErrUnknownRole = errors.New("unknown user role")

// ParseRole validates and converts a string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperadmin:
		return RoleSuperadmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// CanManageInventory reports whether the role gives access to the back office:
// inventory CRUD, booking management, working hours, report export.
func (r Role) CanManageInventory() bool {
	switch r {
	case RoleAdmin, RoleSuperadmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// CanManageRoles reports whether the role gives access to user management.
func (r Role) CanManageRoles() bool {
	switch r {
	case RoleSuperadmin:
		return true
	case RoleAdmin, RoleUser:
		return false
	default:
		return false
	}
}

// User represents a marketplace account
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	IsBlocked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
