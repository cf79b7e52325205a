package session

// Role is one of the closed set of role tags assigned by the auth
// service. Any other value is treated as unauthenticated for routing.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Recognized reports whether the role is one the portal routes on.
func (r Role) Recognized() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is the normalized profile record persisted alongside the tokens.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Payload is the bundle of tokens and profile fields returned by a
// successful authentication call against the gateway.
type Payload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

// User returns the normalized user record carried by the payload.
func (p Payload) User() User {
	return User{
		ID:       p.UserID,
		FullName: p.FullName,
		Email:    p.Email,
		Role:     p.Role,
	}
}
