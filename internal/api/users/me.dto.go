package users

import "time"

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

type UserDTO struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessDTO tells the client which operations the caller may perform.
type AccessDTO struct {
	Read  bool `json:"can_read"`
	Write bool `json:"can_write"`
}
