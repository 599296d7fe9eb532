package service

import (
	"strings"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
)

// EmployeeFields 员工表单（创建 / 修改共用）
type EmployeeFields struct {
	Name           string                `json:"name" validate:"required"`
	Email          string                `json:"email" validate:"required,email"`
	PhoneNumber    string                `json:"phoneNumber" validate:"required"`
	Role           domain.EmployeeRole   `json:"role" validate:"required,oneof=Doctor Receptionist"`
	Status         domain.EmployeeStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Department     string                `json:"department,omitempty"`
	Specialization string                `json:"specialization,omitempty"`
	HireDate       string                `json:"hireDate,omitempty"`
	Avatar         string                `json:"avatar,omitempty"`
}

func (f EmployeeFields) normalize() EmployeeFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	if f.Status == "" {
		f.Status = domain.EmployeeActive
	}
	return f
}

func (f EmployeeFields) toEmployee(id string) domain.Employee {
	return domain.Employee{
		ID:             id,
		Name:           f.Name,
		Email:          f.Email,
		PhoneNumber:    f.PhoneNumber,
		Role:           f.Role,
		Status:         f.Status,
		Department:     f.Department,
		Specialization: f.Specialization,
		HireDate:       f.HireDate,
		Avatar:         f.Avatar,
	}
}

// PatientFields 患者表单
type PatientFields struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

func (f PatientFields) normalize() PatientFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	return f
}

func (f PatientFields) toPatient(id, createdAt string) domain.Patient {
	return domain.Patient{ID: id, Name: f.Name, Email: f.Email, Phone: f.Phone, CreatedAt: createdAt}
}

// ReservationPatientFields 预约中的患者
type ReservationPatientFields struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
}

// AppointmentFields 就诊时间
type AppointmentFields struct {
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty" validate:"gte=0"`
}

// ReservationFields 预约表单
type ReservationFields struct {
	Patient     ReservationPatientFields `json:"patient"`
	Appointment AppointmentFields        `json:"appointment"`
	Payment     domain.Payment           `json:"payment"`
	Status      string                   `json:"status" validate:"required"`
	Clinic      domain.Clinic            `json:"clinic"`
	Notes       string                   `json:"notes,omitempty"`
}

func (f ReservationFields) normalize() ReservationFields {
	f.Patient.Name = strings.TrimSpace(f.Patient.Name)
	f.Appointment.Date = strings.TrimSpace(f.Appointment.Date)
	f.Status = strings.TrimSpace(f.Status)
	return f
}

func (f ReservationFields) toReservation(id, createdAt string) domain.Reservation {
	return domain.Reservation{
		ReservationID: id,
		Patient: domain.ReservationPatient{
			ID:    f.Patient.ID,
			Name:  f.Patient.Name,
			Phone: f.Patient.Phone,
		},
		Appointment: domain.Appointment{
			Date:            f.Appointment.Date,
			StartTime:       f.Appointment.StartTime,
			EndTime:         f.Appointment.EndTime,
			DurationMinutes: f.Appointment.DurationMinutes,
		},
		Payment:   f.Payment,
		Status:    f.Status,
		Clinic:    f.Clinic,
		CreatedAt: createdAt,
		Notes:     f.Notes,
	}
}
