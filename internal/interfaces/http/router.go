package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultiva/reponedores-api/internal/application/auth"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	LocationUC  *usecase.LocationUseCase
	ContactUC   *usecase.ContactUseCase
	ReponedorUC *usecase.ReponedorUseCase
	TaskUC      *usecase.TaskUseCase
	VisitUC     *usecase.VisitUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	locationHandler := NewLocationHandler(deps.LocationUC)
	contactHandler := NewContactHandler(deps.ContactUC)
	reponedorHandler := NewReponedorHandler(deps.ReponedorUC)
	taskHandler := NewTaskHandler(deps.TaskUC)
	visitHandler := NewVisitHandler(deps.VisitUC)

	// Usuarios: login público, resto solo administrador
	usuarios := api.Group("/usuarios")
	usuarios.Post("/login", authHandler.Login)
	admin := usuarios.Group("", requireAuth, RequirePolicy(policy.AdminOnly))
	admin.Get("/", userHandler.List)
	admin.Post("/", userHandler.Create)
	admin.Get("/:id", userHandler.GetByID)
	admin.Put("/:id", userHandler.Update)
	admin.Delete("/:id", userHandler.Delete)

	supervisor := RequirePolicy(policy.SupervisorOrAdmin)
	authenticated := RequirePolicy(policy.Authenticated)

	// Locales: lectura para cualquier usuario autenticado, escritura supervisor
	locales := api.Group("/locales", requireAuth)
	locales.Get("/", authenticated, locationHandler.List)
	locales.Post("/", supervisor, locationHandler.Create)
	locales.Put("/:id", supervisor, locationHandler.Update)
	locales.Delete("/:id", supervisor, locationHandler.Delete)

	// Contactos: envío público, lectura solo administrador
	contactos := api.Group("/contactos")
	contactos.Post("/", contactHandler.Submit)
	contactos.Get("/", requireAuth, RequirePolicy(policy.AdminOnly), contactHandler.List)

	// Reponedor: perfil y visitas propias
	reponedor := api.Group("/reponedor", requireAuth)
	reponedor.Post("/", supervisor, reponedorHandler.Create)
	reponedor.Get("/profile", authenticated, reponedorHandler.Profile)
	reponedor.Get("/profile/credencial.pdf", authenticated, reponedorHandler.Credential)
	reponedor.Get("/visitas", authenticated, visitHandler.Mine)
	reponedor.Post("/visitas/:id/start", authenticated, visitHandler.Start)
	reponedor.Post("/visitas/:id/end", authenticated, visitHandler.Finish)

	// Supervisor (ADMIN incluido)
	sup := api.Group("/supervisor", requireAuth)
	sup.Post("/tasks", supervisor, taskHandler.Create)
	sup.Get("/tasks", authenticated, taskHandler.List)
	sup.Put("/tasks/:id/resolver", supervisor, taskHandler.Resolve)
	sup.Delete("/tasks/:id", supervisor, taskHandler.Delete)
	sup.Get("/reponedores", supervisor, reponedorHandler.List)
	sup.Get("/locales", supervisor, locationHandler.ListByName)
	sup.Post("/visitas", supervisor, visitHandler.Schedule)
	sup.Get("/visitas", supervisor, visitHandler.List)
	sup.Get("/visitas/resumen", supervisor, visitHandler.WeeklySummary)
	sup.Get("/visitas/export.xlsx", supervisor, visitHandler.Export)
	sup.Put("/visitas/:id", supervisor, visitHandler.Reschedule)
	sup.Delete("/visitas/:id", supervisor, visitHandler.Cancel)
	sup.Put("/visitas/:visitaId/estado", supervisor, visitHandler.SetDayState)
}
