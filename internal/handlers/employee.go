package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"staffhub/internal/logger"
	"staffhub/internal/models"
	"staffhub/internal/services"
	helpers "staffhub/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	svc *services.EmployeeService
}

func NewEmployeeHandler(svc *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

type createEmployeeRequest struct {
	signupRequest
	Role string `json:"role"`
}

func employeeID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// List godoc
// @Summary Список сотрудников
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} helpers.Response
// @Router /api/v1/employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.GetAll(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка сотрудников", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Не удалось получить список сотрудников")
		return
	}
	helpers.Documents(w, http.StatusOK, len(employees), employees)
}

// Get godoc
// @Summary Карточка сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 200 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/v1/employees/{id} [get]
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	employee, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Сотрудник не найден", zap.Int("employee_id", id), zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}
	helpers.Document(w, http.StatusOK, employee)
}

// Create godoc
// @Summary Создание сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body createEmployeeRequest true "Данные сотрудника"
// @Success 201 {object} helpers.Response
// @Failure 400 {object} helpers.Response
// @Router /api/v1/employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Create", zap.Error(err))
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
		Role:       req.Role,
	}

	if err := h.svc.Create(r.Context(), employee, req.Password, req.PasswordConfirm); err != nil {
		log.Warn("Ошибка создания сотрудника", zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}
	helpers.Document(w, http.StatusCreated, employee)
}

// Update godoc
// @Summary Частичное обновление сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body models.UpdateEmployeeRequest true "Обновляемые поля"
// @Success 200 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/v1/employees/{id} [patch]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, ok := employeeID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Update", zap.Int("employee_id", id), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	employee, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		log.Warn("Ошибка обновления сотрудника", zap.Int("employee_id", id), zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}
	helpers.Document(w, http.StatusOK, employee)
}

// Delete godoc
// @Summary Удаление сотрудника
// @Tags employees
// @Security ApiKeyAuth
// @Param id path int true "ID сотрудника"
// @Success 204 "Удалено"
// @Failure 404 {object} helpers.Response
// @Router /api/v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		helpers.Error(w, http.StatusBadRequest, "Некорректный ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка удаления сотрудника", zap.Int("employee_id", id), zap.Error(err))
		helpers.ErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
