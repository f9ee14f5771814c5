package routes

import (
	"staffhub/internal/handlers"
	"staffhub/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	employeeHandler *handlers.EmployeeHandler,
	authGate mux.MiddlewareFunc,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api/v1/employees").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/forgot-password", passwordHandler.Forgot).Methods("POST")
	api.HandleFunc("/reset-password/{token}", passwordHandler.Reset).Methods("PATCH")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authGate)

	protected.HandleFunc("/update-password", passwordHandler.Update).Methods("PATCH")

	protected.HandleFunc("", employeeHandler.List).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}", employeeHandler.Get).Methods("GET")
	protected.HandleFunc("/{id:[0-9]+}", employeeHandler.Update).Methods("PATCH")

	// --- Только для админов и HR ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AnyRole("admin", "hr"))
	admin.HandleFunc("", employeeHandler.Create).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}", employeeHandler.Delete).Methods("DELETE")
}
