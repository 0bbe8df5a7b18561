package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/auth"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/logger"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/response"
)

// ContextAccountKey is the gin context key storing the resolved account.
const ContextAccountKey = "currentAccount"

// PrincipalResolver maps a session token to an active account.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*models.Account, error)
}

// AuthenticationRequired rejects requests without a valid session cookie and attaches the
// account to the context for the handlers behind it.
func AuthenticationRequired(resolver PrincipalResolver, cookie auth.Cookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := cookie.Read(c)
		account, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextAccountKey, account)
		c.Set(logger.AccountKey, account.ID)
		c.Next()
	}
}

// CurrentAccount returns the account attached by AuthenticationRequired.
func CurrentAccount(c *gin.Context) (*models.Account, bool) {
	value, exists := c.Get(ContextAccountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*models.Account)
	return account, ok && account != nil
}
