package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"staffhub/internal/config"
	"staffhub/internal/logger"
	"staffhub/internal/models"
	"staffhub/internal/services"
	helpers "staffhub/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type signupRequest struct {
	Salutation      string `json:"salutation"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	JobTitle        string `json:"job_title"`
	Department      string `json:"department"`
	Location        string `json:"location"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setTokenCookie дублирует токен в httpOnly-куку jwt (Secure — только в prod).
func setTokenCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.CookieTTL()),
		HttpOnly: true,
		Secure:   cfg.Env == "prod",
	})
}

// Signup godoc
// @Summary Регистрация нового сотрудника
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signupRequest true "Данные регистрации"
// @Success 201 {object} helpers.Response
// @Failure 400 {object} helpers.Response "Ошибка валидации"
// @Router /api/v1/employees/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Signup", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	employee := &models.Employee{
		Salutation: req.Salutation,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Location:   req.Location,
		Phone:      req.Phone,
		Email:      req.Email,
	}

	token, err := h.authService.Signup(r.Context(), employee, req.Password, req.PasswordConfirm, h.cfg.JWTSecret, h.cfg.TokenTTL())
	if err != nil {
		log.Warn("Ошибка регистрации", zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}

	// Приветственное письмо некритично — в очередь
	services.EmailQueue <- services.EmailJob{
		To:      []string{employee.Email},
		Subject: "Добро пожаловать в StaffHub",
		Body:    "Ваша учётная запись создана.",
	}

	setTokenCookie(w, h.cfg, token)
	helpers.Token(w, http.StatusCreated, token, employee)
}

// Login godoc
// @Summary Вход сотрудника
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Почта и пароль"
// @Success 200 {object} helpers.Response
// @Failure 401 {object} helpers.Response "Неверная почта или пароль"
// @Router /api/v1/employees/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, employee, err := h.authService.Login(r.Context(), req.Email, req.Password, h.cfg.JWTSecret, h.cfg.TokenTTL())
	if err != nil {
		log.Warn("Ошибка входа", zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}

	setTokenCookie(w, h.cfg, token)
	helpers.Token(w, http.StatusOK, token, employee)
}
