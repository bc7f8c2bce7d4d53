package routes

import (
	"github.com/wh19910805/WordTap/backend/config"
	"github.com/wh19910805/WordTap/backend/controllers"
	"github.com/wh19910805/WordTap/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	users := app.Group("/api/users", authMiddleware)
	users.Get("/me", userController.GetMeWithStats)
	users.Get("/me/stats", userController.GetStats)
	users.Put("/me/stats", userController.UpdateStats)
	users.Post("/me/check-in", userController.CheckIn)
	users.Post("/me/stats/recalculate", userController.RecalculateStats)
	users.Get("/me/heatmap", userController.GetHeatmap)
	users.Get("/me/recent-studies", userController.GetRecentStudies)
	users.Get("/me/settings", userController.GetSettings)
	users.Put("/me/settings", userController.UpdateSettings)

	// Course routes
	courseController := controllers.NewCourseController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", courseController.GetCourses)
	courses.Post("/", courseController.CreateCourse)
	courses.Get("/my-courses", courseController.GetMyCourses)
	courses.Post("/my-courses", courseController.AddMyCourse)
	courses.Put("/my-courses/:id", courseController.UpdateMyCourse)
	courses.Delete("/my-courses/:id", courseController.RemoveMyCourse)
	courses.Post("/progress", courseController.UpdateProgress)
	courses.Get("/progress/latest", courseController.GetLatestProgress)
	courses.Get("/:id", courseController.GetCourse)
	courses.Put("/:id", courseController.UpdateCourse)
	courses.Get("/:id/lessons", courseController.GetCourseLessons)
	courses.Post("/:id/lessons", courseController.CreateLesson)
	courses.Get("/:id/lessons/:lesson_id", courseController.GetLesson)
	courses.Put("/:id/lessons/:lesson_id", courseController.UpdateLesson)
	courses.Get("/:id/progress", courseController.GetCourseProgress)

	// Word book routes
	wordBookController := controllers.NewWordBookController(db, cfg)
	wordBooks := app.Group("/api/word-books", authMiddleware)
	wordBooks.Get("/word-book", wordBookController.GetWordBook)
	wordBooks.Post("/word-book", wordBookController.AddWord)
	wordBooks.Get("/word-book/:id", wordBookController.GetWord)
	wordBooks.Put("/word-book/:id", wordBookController.UpdateWord)
	wordBooks.Delete("/word-book/:id", wordBookController.DeleteWord)
	wordBooks.Get("/wrong-words", wordBookController.GetWrongWords)
	wordBooks.Post("/wrong-words", wordBookController.AddWrongWord)
	wordBooks.Get("/wrong-words/:id", wordBookController.GetWrongWord)
	wordBooks.Put("/wrong-words/:id", wordBookController.UpdateWrongWord)
	wordBooks.Delete("/wrong-words/:id", wordBookController.DeleteWrongWord)
	wordBooks.Patch("/wrong-words/:id/review", wordBookController.MarkWrongWordReviewed)
	wordBooks.Get("/word-stats", wordBookController.GetWordStats)
}
