package app

import (
	"database/sql"
	"fmt"
	"log"

	"photohub/internal/config"
	"photohub/internal/geocode"
	"photohub/internal/handlers"
	"photohub/internal/middleware"
	"photohub/internal/pdf"
	"photohub/internal/repositories"
	"photohub/internal/routes"
	"photohub/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "photohub/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.JWTKey = []byte(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	studioRepo := repositories.NewStudioRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	resetSessionRepo := repositories.NewResetSessionRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, authService)
	confirmationService := services.NewConfirmationService(userRepo, emailService)
	resetService := services.NewPasswordResetService(userRepo, resetSessionRepo, emailService, authService)

	geocoder := geocode.NewClient(cfg.Geocoder.APIKey, cfg.Geocoder.DryRun)
	studioService := services.NewStudioService(studioRepo, geocoder)

	// PDF-квитанции (нужен TTF с кириллицей, например assets/fonts/DejaVuSans.ttf)
	receipts := pdf.NewReceiptGenerator(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")

	// Telegram-уведомления админа: опциональны, без токена просто выключены
	var notifier services.AdminNotifier
	if cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Printf("Telegram выключен: %v", err)
		} else {
			notifier = tg
		}
	}

	bookingService := services.NewBookingService(bookingRepo, studioRepo, userRepo, receipts, notifier)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, confirmationService)
	confirmHandler := handlers.NewConfirmHandler(userService, confirmationService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	profileHandler := handlers.NewProfileHandler(userService)
	studioHandler := handlers.NewStudioHandler(studioService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(userService, studioService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	routes.SetupRoutes(
		router,
		authHandler,
		confirmHandler,
		resetHandler,
		profileHandler,
		studioHandler,
		bookingHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
