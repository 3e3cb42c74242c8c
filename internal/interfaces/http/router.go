package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/marketplace-pro/internal/application/auth"
	"github.com/tu-usuario/marketplace-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	BusinessUC *usecase.BusinessUseCase
	ProductUC  *usecase.ProductUseCase
	ChatUC     *usecase.ChatUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Listado público de productos aprobados (sin token)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/public/products", productHandler.PublicList)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cuenta propia (protegido)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Products (protegido)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/submit-for-approval", productHandler.SubmitForApproval)
	products.Post("/:id/approve", productHandler.Approve)

	// Users (protegido; la administración queda gateada por rol)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", RequireRole("admin"), userHandler.Invite)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", RequireRole("admin"), userHandler.Update)
	users.Delete("/:id", RequireRole("admin"), userHandler.Delete)

	// Businesses (protegido)
	businesses := protected.Group("/businesses")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businesses.Post("/", RequireRole("admin"), businessHandler.Create)
	businesses.Get("/", businessHandler.List)
	businesses.Get("/:id", businessHandler.GetByID)
	businesses.Put("/:id", RequireRole("admin"), businessHandler.Update)

	// Chat (protegido)
	chat := protected.Group("/chat")
	chatHandler := NewChatHandler(deps.ChatUC)
	chat.Post("/query", chatHandler.Query)
	chat.Get("/history", chatHandler.History)
}
