package domain

import "time"

// Role is the capability class carried by an identity.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor
}

// User models a login identity. Doctors additionally carry the profile shown
// to patients when booking.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"displayName,omitempty"`
	Speciality   string    `json:"speciality,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity returns the point-in-time snapshot issued on login.
func (u *User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Identifier:  u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
	}
}

// Identity is the authenticated subject attached to a request. The role is
// frozen at issuance and does not follow later changes to the user record.
type Identity struct {
	ID          string `json:"id"`
	Identifier  string `json:"identifier"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
}

// AuthMode selects how identities travel between requests.
type AuthMode string

const (
	AuthModeToken   AuthMode = "token"
	AuthModeSession AuthMode = "session"
)
