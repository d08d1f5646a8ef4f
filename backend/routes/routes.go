package routes

import (
	"zomgpow/backend/config"
	"zomgpow/backend/controllers"
	"zomgpow/backend/events"
	"zomgpow/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *events.Hub) {
	requireAuth := middleware.RequireAuth(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/teacher/login", authController.TeacherLogin)
	app.Post("/api/auth/student/login", authController.StudentLogin)
	app.Put("/api/auth/student/login", requireAuth, authController.RenewStudentToken)

	// Goal routes
	goalsController := controllers.NewGoalsController(db, cfg, hub)
	goals := app.Group("/api/goals", requireAuth)
	goals.Get("/:classId", goalsController.GetClassGoals)
	goals.Post("/:classId", goalsController.CreateGoal)
	goals.Patch("/goal/:goalId", goalsController.UpdateGoal)
	goals.Delete("/goal/:goalId", goalsController.DeleteGoal)
	goals.Patch("/student/:studentGoalId", goalsController.UpdateStudentGoal)

	// Report routes
	reportsController := controllers.NewReportsController(db, cfg)
	reports := app.Group("/api/reports", requireAuth)
	reports.Get("/:classId", reportsController.GetClassGoalSummary)
	reports.Get("/:classId/:goalId", reportsController.GetGoalResponseSummary)
	reports.Get("/:classId/:goalId/:studentGoalId", reportsController.GetStudentSubgoals)
}
