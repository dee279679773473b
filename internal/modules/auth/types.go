package auth

import (
	"time"

	"github.com/cite-space/core/internal/models"
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	IsModerator bool      `json:"is_moderator"`
	Created     time.Time `json:"created"`
}

func toResponse(u *models.UserModel, isModerator bool) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		IsModerator: isModerator,
		Created:     u.CreatedAt,
	}
}
