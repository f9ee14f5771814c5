package models

import "time"

type Employee struct {
	ID           int    `json:"id"`
	Salutation   string `json:"salutation,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	Department   string `json:"department,omitempty"`
	Location     string `json:"location,omitempty"`
	Phone        string `json:"phone,omitempty"`
	OfficePhone  string `json:"office_phone,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`

	// Поля сброса пароля всегда заполняются и чистятся парой.
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	PasswordChangedAt *time.Time `json:"-"`
	HireDate          *time.Time `json:"hire_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PasswordChangedAfter сообщает, менялся ли пароль после момента issuedAt
// (сравнение по секундам эпохи, как в iat токена).
func (e *Employee) PasswordChangedAfter(issuedAt time.Time) bool {
	if e.PasswordChangedAt == nil {
		return false
	}
	return e.PasswordChangedAt.Unix() > issuedAt.Unix()
}

type UpdateEmployeeRequest struct {
	Salutation  *string    `json:"salutation,omitempty"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	JobTitle    *string    `json:"job_title,omitempty"`
	Department  *string    `json:"department,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	OfficePhone *string    `json:"office_phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Role        *string    `json:"role,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	HireDate    *time.Time `json:"hire_date,omitempty"`
}
