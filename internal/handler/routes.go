package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	outfitterHandler *OutfitterHandler,
	membershipHandler *MembershipHandler,
	huntCodeHandler *HuntCodeHandler,
	notificationHandler *NotificationHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
	requireMember fiber.Handler,
	requireStaff fiber.Handler,
	requireManager fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// API v1
	api := app.Group("/api/v1")

	// Session boundary (public exchange, authenticated logout)
	auth := api.Group("/auth")
	auth.Post("/exchange", authHandler.Exchange)
	auth.Post("/logout", authMiddleware, authHandler.Logout)
	auth.Get("/me", authMiddleware, authHandler.Me)

	// Tenant selection and onboarding: authenticated, but deliberately
	// outside RequireOutfitter — these are the operations a principal
	// performs before (or instead of) having a resolved outfitter.
	outfitters := api.Group("/outfitters", authMiddleware)
	outfitters.Post("/", outfitterHandler.Create)
	outfitters.Get("/mine", outfitterHandler.Mine)
	outfitters.Post("/select", outfitterHandler.Select)

	api.Post("/invitations/accept", authMiddleware, membershipHandler.AcceptInvitation)
	api.Post("/access-codes/redeem", authMiddleware, outfitterHandler.RedeemAccessCode)

	// Everything below is scoped to a resolved outfitter.
	api.Get("/outfitter", authMiddleware, requireMember, outfitterHandler.Current)

	huntCodes := api.Group("/hunt-codes", authMiddleware, requireMember)
	huntCodes.Get("/", huntCodeHandler.List)
	huntCodes.Get("/species", huntCodeHandler.Species)
	huntCodes.Get("/weapons/:digit", huntCodeHandler.WeaponLabel)

	notifications := api.Group("/notifications", authMiddleware, requireMember)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.ReadAll)

	// Member management requires owner/admin; listing also allows guides.
	members := api.Group("/members", authMiddleware)
	members.Get("/", requireStaff, membershipHandler.ListMembers)
	members.Post("/invitations", requireManager, membershipHandler.CreateInvitation)
	members.Get("/invitations", requireManager, membershipHandler.ListInvitations)
	members.Delete("/invitations/:id", requireManager, membershipHandler.RevokeInvitation)
	members.Put("/:id/role", requireManager, membershipHandler.ChangeRole)
	members.Delete("/:id", requireManager, membershipHandler.Deactivate)
}
