package app

import (
	"staffhub/internal/config"
	"staffhub/internal/db"
	"staffhub/internal/handlers"
	"staffhub/internal/middleware"
	"staffhub/internal/repository"
	"staffhub/internal/routes"
	"staffhub/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	employeeRepo := repository.NewEmployeeRepository(conn)

	// Сервисы
	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	emailService := services.NewEmailService(cfg)
	passwordService := services.NewPasswordService(employeeRepo, emailService, cfg.AppURL, cfg.ResetTokenTTL())

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	passwordHandler := handlers.NewPasswordHandler(passwordService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)

	// Воркеры некритичных писем
	for i := 0; i < 3; i++ {
		go services.StartEmailWorker(emailService)
	}

	// Маршруты
	router := mux.NewRouter()
	authGate := middleware.JWTAuth(employeeRepo, cfg.JWTSecret)
	routes.InitRoutes(router, authHandler, passwordHandler, employeeHandler, authGate)

	return router, nil
}
