package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"refreshexp" bson:"refreshexp"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	for _, r := range u.Role {
		if r == "admin" {
			return true
		}
	}
	return false
}

// UserResponse is the shape returned to the admin back-office and profile
// endpoints; it never carries password or refresh-token material.
type UserResponse struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	Role      []string  `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	LastLogin time.Time `json:"last_login" bson:"last_login"`
}
