package middleware

import (
	"errors"

	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IsModerator is the single capability check every moderator-only operation
// goes through: staff flag or membership in the Moderator group.
func IsModerator(db *gorm.DB, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var u models.UserModel
	if err := db.Preload("Groups").First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if u.IsStaff {
		return true, nil
	}
	for _, g := range u.Groups {
		if g.Name == models.ModeratorGroup {
			return true, nil
		}
	}
	return false, nil
}

// RequireModerator returns a middleware that rejects non-moderators. It must
// run after Auth.
func RequireModerator(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := IsModerator(db, CurrentUserID(c))
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if !ok {
			response.ForbiddenMsg(c, "moderator rights required")
			return
		}
		c.Next()
	}
}
