package model

import "time"

// User is a portal account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DepartmentID *string   `json:"department_id"`
	ProgramID    *string   `json:"program_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display name used in listings and notifications.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Department groups programs and users.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Program is an academic program, optionally attached to a department.
type Program struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DepartmentID *string   `json:"department_id"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}
