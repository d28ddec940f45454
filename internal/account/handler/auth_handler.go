package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/therishabh/chai-backend/internal/account/domain"
	"github.com/therishabh/chai-backend/internal/account/dto"
	"github.com/therishabh/chai-backend/internal/account/service"
	"github.com/therishabh/chai-backend/internal/apperror"
	"github.com/therishabh/chai-backend/pkg/constant"
)

var errBadBody = apperror.BadRequest("invalid input")

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	log         *zap.Logger
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		log:         log,
	}
}

// Register handles the multipart registration form: text fields plus a
// required avatar file and an optional cover image.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input := dto.RegisterInput{
		FullName: c.FormValue("fullName"),
		Email:    c.FormValue("email"),
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	avatar, err := openFormFile(c, "avatar")
	if err == nil {
		input.Avatar = avatar
		defer closeAsset(avatar)
	}

	cover, err := openFormFile(c, "coverImage")
	if err == nil {
		input.CoverImage = cover
		defer closeAsset(cover)
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return respond(c, http.StatusCreated, user, "user registered successfully")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, h.log, errBadBody)
	}

	out, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return respond(c, http.StatusOK, out, "successfully login")
}

// Refresh reads the refresh token from the cookie first, falling back to the
// request body.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	incoming := c.Cookies(constant.RefreshTokenCookie)
	if incoming == "" {
		var input dto.RefreshInput
		if err := c.BodyParser(&input); err == nil {
			incoming = input.RefreshToken
		}
	}

	out, err := h.userService.Refresh(c.UserContext(), incoming)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return respond(c, http.StatusOK, out, "access token refreshed")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := currentUser(c)

	if err := h.userService.Logout(c.UserContext(), user.ID); err != nil {
		return respondError(c, h.log, err)
	}

	clearTokenCookies(c)

	return respond(c, http.StatusOK, nil, "user logged out")
}

func (h *AuthHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     constant.AccessTokenCookie,
		Value:    accessToken,
		Expires:  now.Add(h.tokens.AccessTokenTTL()),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    refreshToken,
		Expires:  now.Add(h.tokens.RefreshTokenTTL()),
		HTTPOnly: true,
		Secure:   true,
	})
}

func clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{constant.AccessTokenCookie, constant.RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Secure:   true,
		})
	}
}

func openFormFile(c *fiber.Ctx, name string) (*domain.Asset, error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &domain.Asset{
		Reader:      file,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

func closeAsset(asset *domain.Asset) {
	if closer, ok := asset.Reader.(io.Closer); ok {
		_ = closer.Close()
	}
}

func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(dto.NewAPIResponse(status, data, message))
}

// respondError is the single place service errors become HTTP responses.
// Internal causes go to the log, never to the client.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var apiErr *apperror.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(apiErr))
		}
		return c.Status(apiErr.Status).JSON(dto.NewAPIResponse(apiErr.Status, nil, apiErr.Message))
	}

	log.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))

	return c.Status(http.StatusInternalServerError).
		JSON(dto.NewAPIResponse(http.StatusInternalServerError, nil, "internal server error"))
}
