package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/middleware"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

// currentAccount returns the principal attached by AuthenticationRequired.
func currentAccount(c *gin.Context) (*models.Account, error) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return account, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
