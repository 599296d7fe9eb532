package domain

import "fmt"

// EmployeeRole 员工角色
type EmployeeRole string

const (
	RoleDoctor       EmployeeRole = "Doctor"
	RoleReceptionist EmployeeRole = "Receptionist"
)

// EmployeeStatus 员工状态
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
)

// Employee 员工（医生 / 前台）
type Employee struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Email          string         `json:"email" yaml:"email"`
	PhoneNumber    string         `json:"phoneNumber" yaml:"phoneNumber"`
	Role           EmployeeRole   `json:"role" yaml:"role"`
	Status         EmployeeStatus `json:"status" yaml:"status"`
	Department     string         `json:"department,omitempty" yaml:"department,omitempty"`
	Specialization string         `json:"specialization,omitempty" yaml:"specialization,omitempty"` // doctors only
	HireDate       string         `json:"hireDate" yaml:"hireDate"`
	Avatar         string         `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

func (e Employee) RecordID() string { return e.ID }

// Category 员工列表按角色过滤
func (e Employee) Category() string { return string(e.Role) }

func (e Employee) SearchFields() []string {
	return []string{e.Name, e.ID, e.Email, e.PhoneNumber}
}

func (e Employee) SortName() string { return e.Name }

// DisplayName "name (email)"
func (e Employee) DisplayName() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Email)
}
