package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/My-name-is-Jamshidbek/kindergarten-crm/config"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/handlers"
	"github.com/My-name-is-Jamshidbek/kindergarten-crm/middlewares"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	room := handlers.NewClassroomHandler()
	trf := handlers.NewTariffHandler()
	chd := handlers.NewChildHandler()
	grd := handlers.NewGuardianHandler()
	pk := handlers.NewPickupHandler()
	att := handlers.NewAttendanceHandler()
	bill := handlers.NewBillingHandler()
	dash := handlers.NewDashboardHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Staff routes (admin + staff) =====
	api := e.Group("", authMW, middlewares.RequireRole("admin", "staff"))

	api.GET("/auth/me", auth.Me)
	api.PUT("/auth/password", auth.ChangePassword)

	api.GET("/classrooms", room.List)
	api.GET("/classrooms/:id", room.Get)
	api.POST("/classrooms", room.Create)
	api.PUT("/classrooms/:id", room.Update)
	api.DELETE("/classrooms/:id", room.Delete)

	api.GET("/tariffs", trf.List)
	api.GET("/tariffs/:id", trf.Get)
	api.POST("/tariffs", trf.Create)
	api.PUT("/tariffs/:id", trf.Update)
	api.DELETE("/tariffs/:id", trf.Delete)

	api.GET("/children", chd.List)
	api.GET("/children/:id", chd.Get)
	api.POST("/children", chd.Create)
	api.PUT("/children/:id", chd.Update)
	api.DELETE("/children/:id", chd.Delete)

	api.GET("/guardians", grd.List)
	api.GET("/guardians/:id", grd.Get)
	api.POST("/guardians", grd.Create)
	api.PUT("/guardians/:id", grd.Update)
	api.DELETE("/guardians/:id", grd.Delete)

	api.GET("/pickups", pk.List)
	api.GET("/pickups/:id", pk.Get)
	api.POST("/pickups", pk.Create)
	api.PUT("/pickups/:id", pk.Update)
	api.DELETE("/pickups/:id", pk.Delete)

	// roster รายวัน
	api.GET("/attendance", att.List)
	api.PUT("/attendance/:id", att.Update)
	api.POST("/attendance/:id/mark/:status", att.QuickMark)
	api.POST("/attendance/:id/time/:field", att.SetTime)
	api.POST("/attendance/bulk/mark-present", att.BulkMarkPresent)

	// บิลรายเดือน
	api.GET("/billing", bill.List)
	api.PUT("/billing/:id", bill.Update)
	api.POST("/billing/:child_id/:month/pay", bill.Pay)
	api.POST("/billing/:child_id/:month/unpay", bill.Unpay)

	api.GET("/dashboard/summary", dash.Summary)

	// ===== Admin only =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))
	users := handlers.NewUserHandler()
	admin.GET("/users", users.List)
	admin.POST("/users", users.Create)
	admin.POST("/users/:id/reset-password", users.ResetPassword)
}
