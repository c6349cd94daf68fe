package employees

import "time"

// Employee represents a branch employee account.
type Employee struct {
	EmployeeID   string
	Name         string
	Email        string
	PasswordHash string
	Permissions  []string
	CreatedAt    time.Time
}

// Summary is the wire representation of an employee. It never carries the
// password hash.
type Summary struct {
	EmployeeID  string   `json:"employeeId"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// Summary strips the credential from an employee record.
func (e *Employee) Summary() Summary {
	return Summary{
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Email:       e.Email,
		Permissions: e.Permissions,
	}
}
