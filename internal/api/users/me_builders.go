package users

import (
	"blog-api/internal/domain/access"
	"blog-api/internal/domain/users"
)

func BuildMeResponse(user users.User, id access.Identity) MeResponse {
	return MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Role:         user.Role,
			AuthProvider: user.AuthProvider,
			CreatedAt:    user.CreatedAt.UTC(),
		},
		Access: AccessDTO{
			Read:  access.Can(access.OpRead, id),
			Write: access.Can(access.OpWrite, id),
		},
	}
}
