package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Onboarding-api/internal/application/auth"
	"github.com/jhoicas/Onboarding-api/internal/application/clients"
	"github.com/jhoicas/Onboarding-api/internal/application/documents"
	"github.com/jhoicas/Onboarding-api/internal/application/products"
	"github.com/jhoicas/Onboarding-api/internal/application/session"
	"github.com/jhoicas/Onboarding-api/internal/application/sheet"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Sessions    *session.Manager
	ClientsUC   *clients.UseCase
	SheetUC     *sheet.UseCase
	ProductsUC  *products.UseCase
	DocumentsUC *documents.UseCase
	JWTSecret   string

	LoginRatePerSecond float64
	LoginRateBurst     int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con límite de intentos)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", RateLimit(deps.LoginRatePerSecond, deps.LoginRateBurst), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)

	documentHandler := NewDocumentHandler(deps.DocumentsUC)
	protected.Get("/document-types", documentHandler.Types)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientsUC, deps.SheetUC)
	productHandler := NewProductHandler(deps.ProductsUC)
	clientsGroup := protected.Group("/clients")
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:cnpj", clientHandler.Detail)
	clientsGroup.Get("/:cnpj/ficha.pdf", clientHandler.Sheet)
	clientsGroup.Get("/:cnpj/products", productHandler.List)

	// Documentos del cliente
	clientsGroup.Get("/:cnpj/documents", documentHandler.List)
	clientsGroup.Post("/:cnpj/documents", documentHandler.Upload)
	clientsGroup.Delete("/:cnpj/documents", documentHandler.Delete)
	clientsGroup.Get("/:cnpj/documents/download", documentHandler.Download)
	clientsGroup.Get("/:cnpj/documents/history", documentHandler.History)
}
