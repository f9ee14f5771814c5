package repository

import (
	"context"
	"errors"
	"fmt"
	"staffhub/internal/apperrors"
	"staffhub/internal/logger"
	"staffhub/internal/models"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, salutation, first_name, last_name, job_title, department, location,
	phone, office_phone, email, password_hash, role, active,
	reset_token_hash, reset_token_expires_at, password_changed_at,
	hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID,
		&e.Salutation,
		&e.FirstName,
		&e.LastName,
		&e.JobTitle,
		&e.Department,
		&e.Location,
		&e.Phone,
		&e.OfficePhone,
		&e.Email,
		&e.PasswordHash,
		&e.Role,
		&e.Active,
		&e.ResetTokenHash,
		&e.ResetTokenExpiresAt,
		&e.PasswordChangedAt,
		&e.HireDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, e *models.Employee) error {
	logger.Log.Info("Создание сотрудника (repo)", zap.String("email", e.Email))
	query := `
	INSERT INTO employees (salutation, first_name, last_name, job_title, department, location,
		phone, office_phone, email, password_hash, role, active, hire_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		e.Salutation,
		e.FirstName,
		e.LastName,
		e.JobTitle,
		e.Department,
		e.Location,
		e.Phone,
		e.OfficePhone,
		e.Email,
		e.PasswordHash,
		e.Role,
		e.Active,
		e.HireDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		logger.Log.Error("Ошибка создания сотрудника (repo)", zap.Error(err))
	}
	return err
}

func (r *EmployeeRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE lower(email) = lower($1))`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *EmployeeRepository) GetEmployeeByID(ctx context.Context, id int) (*models.Employee, error) {
	logger.Log.Debug("Получение сотрудника по ID (repo)", zap.Int("employee_id", id))
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

// GetEmployeeByEmail возвращает запись вместе с password_hash — только для логина.
func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	logger.Log.Debug("Получение сотрудника по email (repo)", zap.String("email", email))
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`
	return scanEmployee(r.db.QueryRow(ctx, query, email))
}

func (r *EmployeeRepository) GetAllEmployees(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения списка сотрудников (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) UpdateEmployeeFields(ctx context.Context, id int, input *models.UpdateEmployeeRequest) error {
	logger.Log.Info("Обновление полей сотрудника (repo)", zap.Int("employee_id", id))

	set := []string{}
	args := []interface{}{}
	i := 1

	add := func(col string, val interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	if input.Salutation != nil {
		add("salutation", *input.Salutation)
	}
	if input.FirstName != nil {
		add("first_name", *input.FirstName)
	}
	if input.LastName != nil {
		add("last_name", *input.LastName)
	}
	if input.JobTitle != nil {
		add("job_title", *input.JobTitle)
	}
	if input.Department != nil {
		add("department", *input.Department)
	}
	if input.Location != nil {
		add("location", *input.Location)
	}
	if input.Phone != nil {
		add("phone", *input.Phone)
	}
	if input.OfficePhone != nil {
		add("office_phone", *input.OfficePhone)
	}
	if input.Email != nil {
		add("email", strings.ToLower(strings.TrimSpace(*input.Email)))
	}
	if input.Role != nil {
		add("role", *input.Role)
	}
	if input.Active != nil {
		add("active", *input.Active)
	}
	if input.HireDate != nil {
		add("hire_date", *input.HireDate)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = now()")
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d`, strings.Join(set, ", "), i)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка обновления сотрудника (repo)", zap.Error(err), zap.Int("employee_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DeleteEmployeeByID(ctx context.Context, id int) error {
	logger.Log.Info("Удаление сотрудника (repo)", zap.Int("employee_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления сотрудника (repo)", zap.Error(err), zap.Int("employee_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword меняет хеш и двигает password_changed_at —
// все токены, выданные раньше, становятся недействительными.
func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees SET password_hash = $1, password_changed_at = now(), updated_at = now() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля (repo)", zap.Error(err), zap.Int("employee_id", id))
	}
	return err
}

// ResetPassword — один UPDATE: новый хеш, отметка смены и очистка полей сброса.
func (r *EmployeeRepository) ResetPassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees
		 SET password_hash = $1, password_changed_at = now(),
		     reset_token_hash = NULL, reset_token_expires_at = NULL,
		     updated_at = now()
		 WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		logger.Log.Error("Ошибка сброса пароля (repo)", zap.Error(err), zap.Int("employee_id", id))
	}
	return err
}

func (r *EmployeeRepository) SetResetToken(ctx context.Context, id int, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees SET reset_token_hash = $1, reset_token_expires_at = $2 WHERE id = $3`,
		tokenHash, expiresAt, id,
	)
	if err != nil {
		logger.Log.Error("Ошибка сохранения токена сброса (repo)", zap.Error(err), zap.Int("employee_id", id))
	}
	return err
}

func (r *EmployeeRepository) ClearResetToken(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees SET reset_token_hash = NULL, reset_token_expires_at = NULL WHERE id = $1`,
		id,
	)
	if err != nil {
		logger.Log.Error("Ошибка очистки токена сброса (repo)", zap.Error(err), zap.Int("employee_id", id))
	}
	return err
}

// GetEmployeeByResetToken ищет по хешу токена с ещё не истёкшим сроком.
// "Нет совпадения" и "истёк" снаружи неразличимы.
func (r *EmployeeRepository) GetEmployeeByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + `
	FROM employees
	WHERE reset_token_hash = $1 AND reset_token_expires_at > $2`
	return scanEmployee(r.db.QueryRow(ctx, query, tokenHash, now))
}
