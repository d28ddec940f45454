package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/therishabh/chai-backend/internal/account/dto"
)

func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	return respond(c, http.StatusOK, currentUser(c), "current user fetched successfully")
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, h.log, errBadBody)
	}

	if err := h.userService.ChangePassword(c.UserContext(), currentUser(c).ID, input); err != nil {
		return respondError(c, h.log, err)
	}

	return respond(c, http.StatusOK, nil, "password changed successfully")
}

func (h *AuthHandler) UpdateAccount(c *fiber.Ctx) error {
	var input dto.UpdateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, h.log, errBadBody)
	}

	user, err := h.userService.UpdateAccount(c.UserContext(), currentUser(c).ID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return respond(c, http.StatusOK, user, "account details updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *fiber.Ctx) error {
	asset, err := openFormFile(c, "avatar")
	if err == nil {
		defer closeAsset(asset)
	}

	user, err := h.userService.UpdateAvatar(c.UserContext(), currentUser(c).ID, asset)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return respond(c, http.StatusOK, user, "avatar image updated successfully")
}

func (h *AuthHandler) UpdateCoverImage(c *fiber.Ctx) error {
	asset, err := openFormFile(c, "coverImage")
	if err == nil {
		defer closeAsset(asset)
	}

	user, err := h.userService.UpdateCoverImage(c.UserContext(), currentUser(c).ID, asset)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return respond(c, http.StatusOK, user, "cover image updated successfully")
}
