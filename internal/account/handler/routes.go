package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, requireAuth fiber.Handler) {
	users := app.Group("/api/v1/users")

	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/refresh-token", h.Refresh)

	users.Post("/logout", requireAuth, h.Logout)
	users.Post("/change-password", requireAuth, h.ChangePassword)
	users.Get("/info", requireAuth, h.CurrentUser)
	users.Patch("/update-account", requireAuth, h.UpdateAccount)
	users.Patch("/update-avatar", requireAuth, h.UpdateAvatar)
	users.Patch("/update-coverImage", requireAuth, h.UpdateCoverImage)
}
