package handler

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/therishabh/chai-backend/internal/account/domain"
	"github.com/therishabh/chai-backend/internal/account/dto"
	"github.com/therishabh/chai-backend/internal/account/service"
	"github.com/therishabh/chai-backend/pkg/constant"
)

// RequireAuth gates protected routes. It takes the access token from the
// cookie, falling back to the Authorization header, verifies it, confirms
// the account still exists and attaches the sanitized user to the request.
// Every failure answers 401; the precise verify error only goes to the log.
func RequireAuth(tokens service.TokenGenerator, repo domain.UserRepository, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(constant.AccessTokenCookie)
		if accessToken == "" {
			accessToken = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), constant.BearerScheme)
		}
		if accessToken == "" {
			return unauthorized(c, "unauthorized request")
		}

		claims, err := tokens.VerifyAccess(accessToken)
		if err != nil {
			log.Info("access token rejected", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, "invalid access token")
		}

		user, err := repo.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error("user lookup failed during auth", zap.Error(err))
			return unauthorized(c, "invalid access token")
		}
		if user == nil {
			// Valid token for an account that no longer exists.
			return unauthorized(c, "invalid access token")
		}

		c.Locals(constant.LocalsUser, dto.NewUserOutput(user))

		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *dto.UserOutput {
	user, _ := c.Locals(constant.LocalsUser).(*dto.UserOutput)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).
		JSON(dto.NewAPIResponse(http.StatusUnauthorized, nil, message))
}
