package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"staffhub/internal/config"
	"staffhub/internal/logger"
	"staffhub/internal/middleware"
	"staffhub/internal/services"
	helpers "staffhub/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PasswordHandler struct {
	svc *services.PasswordService
	cfg *config.Config
}

func NewPasswordHandler(svc *services.PasswordService, cfg *config.Config) *PasswordHandler {
	return &PasswordHandler{svc: svc, cfg: cfg}
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Forgot godoc
// @Summary Запрос восстановления пароля
// @Description Отправляет письмо со ссылкой для сброса. Токен в ответ не попадает.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotRequest true "Почта сотрудника"
// @Success 200 {object} helpers.Response
// @Failure 404 {object} helpers.Response "Почта не найдена"
// @Failure 500 {object} helpers.Response "Письмо не отправлено"
// @Router /api/v1/employees/forgot-password [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		log.Warn("Невалидный payload в Forgot")
		helpers.Error(w, http.StatusBadRequest, "Укажите почту")
		return
	}

	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		log.Warn("Сбой при запросе восстановления пароля", zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}

	helpers.Message(w, http.StatusOK, "Письмо со ссылкой для сброса отправлено")
}

// Reset godoc
// @Summary Сброс пароля по токену из письма
// @Tags password
// @Accept json
// @Produce json
// @Param token path string true "Токен сброса"
// @Param input body resetRequest true "Новый пароль"
// @Success 200 {object} helpers.Response
// @Failure 400 {object} helpers.Response "Токен недействителен или истёк"
// @Router /api/v1/employees/reset-password/{token} [patch]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	plainToken := mux.Vars(r)["token"]

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Reset")
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, employee, err := h.svc.ResetPassword(r.Context(), plainToken, req.Password, req.PasswordConfirm, h.cfg.JWTSecret, h.cfg.TokenTTL())
	if err != nil {
		log.Warn("Не удалось сбросить пароль по токену", zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}

	setTokenCookie(w, h.cfg, token)
	helpers.Token(w, http.StatusOK, token, employee)
}

// Update godoc
// @Summary Смена пароля (авторизованный сотрудник)
// @Description Требует текущий пароль; все ранее выданные токены становятся недействительными.
// @Tags password
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body updatePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} helpers.Response
// @Failure 401 {object} helpers.Response "Текущий пароль неверен"
// @Router /api/v1/employees/update-password [patch]
func (h *PasswordHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	employee, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		log.Warn("Нет сотрудника в контексте в Update")
		helpers.Error(w, http.StatusUnauthorized, "Требуется авторизация")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Update", zap.Int("employee_id", employee.ID))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, err := h.svc.ChangePassword(r.Context(), employee, req.CurrentPassword, req.Password, req.PasswordConfirm, h.cfg.JWTSecret, h.cfg.TokenTTL())
	if err != nil {
		log.Warn("Не удалось сменить пароль", zap.Int("employee_id", employee.ID), zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}

	setTokenCookie(w, h.cfg, token)
	helpers.Token(w, http.StatusOK, token, employee)
}
