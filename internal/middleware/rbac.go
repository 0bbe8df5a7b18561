package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/response"
)

// RequireRoles lets through accounts holding one of the given roles. It must run after
// AuthenticationRequired.
func RequireRoles(message string, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[account.Role]; !ok {
			response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, message))
			return
		}
		c.Next()
	}
}

// AdminOnly restricts a route to ADMIN accounts.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles("route restricted to administrators", models.RoleAdmin)
}
