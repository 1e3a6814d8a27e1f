// Package access decides whether a caller may act on a resource.
package access

import (
	"errors"
	"strings"

	"github.com/Skotchmaster/bookshop/internal/models"
)

var ErrDenied = errors.New("access denied")

// Caller is the authenticated identity of a request.
type Caller struct {
	Role string
	ID   uint
}

func (c Caller) IsAdmin() bool {
	return strings.EqualFold(c.Role, models.RoleAdmin)
}

// AdminOrSelf allows administrators and the owner of the resource.
func AdminOrSelf(c Caller, ownerID uint) error {
	if c.IsAdmin() || (c.ID != 0 && c.ID == ownerID) {
		return nil
	}
	return ErrDenied
}

func AdminOnly(c Caller) error {
	if c.IsAdmin() {
		return nil
	}
	return ErrDenied
}

// Self allows only the owner, administrators included.
func Self(c Caller, ownerID uint) error {
	if c.ID != 0 && c.ID == ownerID {
		return nil
	}
	return ErrDenied
}
