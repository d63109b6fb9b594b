package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ebiblio/storefront/internal/config"
	"github.com/ebiblio/storefront/internal/server/http/handlers"
	"github.com/ebiblio/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	libraryHandler := handlers.NewLibraryHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	credentialLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)

	api := engine.Group("/api")

	books := api.Group("/books")
	books.GET("", catalogHandler.List)
	books.GET("/categories", catalogHandler.Categories)
	books.GET("/:id", catalogHandler.Get)

	user := api.Group("/user")
	user.POST("/register", credentialLimiter.Handler(), authHandler.Register)
	user.POST("/login", credentialLimiter.Handler(), authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", profileHandler.Get)
	userAuth.PATCH("/profile", profileHandler.Update)
	userAuth.POST("/profile/password", profileHandler.ChangePassword)
	userAuth.DELETE("/profile", profileHandler.Delete)

	userAuth.POST("/orders", orderHandler.Checkout)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/summary", orderHandler.Summary)
	userAuth.GET("/orders/:id", orderHandler.Get)

	userAuth.GET("/library", libraryHandler.List)
	userAuth.POST("/library/:id/open", libraryHandler.Open)

	userAuth.GET("/payments", paymentHandler.History)
	userAuth.POST("/payments/intents", paymentHandler.CreateIntent)
	userAuth.GET("/payments/methods", paymentHandler.ListMethods)
	userAuth.POST("/payments/methods", paymentHandler.AddMethod)
	userAuth.POST("/payments/methods/:id/default", paymentHandler.SetDefaultMethod)
	userAuth.DELETE("/payments/methods/:id", paymentHandler.DeleteMethod)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.User)
	admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/orders", adminHandler.Orders)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.POST("/books", adminHandler.CreateBook)
	admin.PUT("/books/:id", adminHandler.UpdateBook)
	admin.DELETE("/books/:id", adminHandler.DeleteBook)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	return engine
}
