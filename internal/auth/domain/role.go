package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of platform roles. Transport carries roles as
// strings; ParseRole is the only way in, so an unknown value can never
// reach the domain.
type Role string

const (
	RolePlayer Role = "player"
	RoleScout  Role = "scout"
	RoleAdmin  Role = "admin"
)

// ErrInvalidRole reports a role string outside the closed set.
var ErrInvalidRole = errors.New("domain: invalid role")

// ParseRole validates a transport-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePlayer:
		return RolePlayer, nil
	case RoleScout:
		return RoleScout, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }
