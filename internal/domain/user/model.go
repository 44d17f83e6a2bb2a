package user

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated caller as reported by the session verifier.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(p.Role, RoleAdmin)
}
