package domain

// ReservationPatient 预约中的患者快照（不校验与患者集合的引用关系）
type ReservationPatient struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// Appointment 就诊时间
type Appointment struct {
	Date            string `json:"date" yaml:"date"`
	StartTime       string `json:"startTime" yaml:"startTime"`
	EndTime         string `json:"endTime" yaml:"endTime"`
	DurationMinutes int    `json:"durationMinutes" yaml:"durationMinutes"`
}

// Payment 支付信息
type Payment struct {
	Method   string  `json:"method" yaml:"method"`
	Amount   float64 `json:"amount" yaml:"amount"`
	Currency string  `json:"currency" yaml:"currency"`
	Paid     *bool   `json:"paid,omitempty" yaml:"paid,omitempty"`
}

// Clinic 诊所 / 诊室
type Clinic struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Room string `json:"room" yaml:"room"`
}

// Reservation 预约
type Reservation struct {
	ReservationID string             `json:"reservationId" yaml:"reservationId"`
	Patient       ReservationPatient `json:"patient" yaml:"patient"`
	Appointment   Appointment        `json:"appointment" yaml:"appointment"`
	Payment       Payment            `json:"payment" yaml:"payment"`
	Status        string             `json:"status" yaml:"status"`
	Clinic        Clinic             `json:"clinic" yaml:"clinic"`
	CreatedAt     string             `json:"createdAt" yaml:"createdAt"`
	Notes         string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (r Reservation) RecordID() string { return r.ReservationID }

// Category 预约列表按状态过滤
func (r Reservation) Category() string { return r.Status }

func (r Reservation) SearchFields() []string {
	return []string{r.Patient.Name, r.ReservationID, r.Patient.Phone, r.Clinic.Name}
}

func (r Reservation) SortName() string { return r.Patient.Name }
