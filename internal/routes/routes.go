package routes

import (
	"github.com/gin-gonic/gin"

	"photohub/internal/handlers"
	"photohub/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	confirmHandler *handlers.ConfirmHandler,
	resetHandler *handlers.PasswordResetHandler,
	profileHandler *handlers.ProfileHandler,
	studioHandler *handlers.StudioHandler,
	bookingHandler *handlers.BookingHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)

	auth := r.Group("/auth")
	{
		auth.POST("/confirm-email", confirmHandler.ConfirmEmail)
		auth.POST("/confirm-email/resend", confirmHandler.ResendCode)
		auth.POST("/password-reset", resetHandler.RequestReset)
		auth.POST("/password-reset/confirm", resetHandler.ConfirmReset)
	}

	// каталог студий открыт на чтение
	r.GET("/studios", studioHandler.List)
	r.GET("/studios/:id", studioHandler.GetByID)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.POST("/logout", authHandler.Logout)

	profile := r.Group("/profile")
	{
		profile.GET("/", profileHandler.GetProfile)
		profile.PUT("/", profileHandler.UpdateProfile)
		profile.POST("/theme", profileHandler.ToggleTheme)
	}

	studios := r.Group("/studios")
	{
		studios.POST("/", studioHandler.Create)
		studios.PUT("/:id", studioHandler.Update)
		studios.DELETE("/:id", studioHandler.Delete)
		studios.GET("/:id/bookings", bookingHandler.ListByStudio)
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("/", bookingHandler.Create)
		bookings.GET("/", bookingHandler.ListMine)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
	}

	// ADMIN
	admin := r.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
	}

	return r
}
