package records

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Every record carries the owning user's identifier. Ownership is an equality
// match, not a foreign key; orphaned rows are tolerated.

// Appointment maps to the appointments table.
type Appointment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	Date         time.Time `db:"date" json:"date"`
	Time         string    `db:"time" json:"time"`
	Doctor       string    `db:"doctor" json:"doctor"`
	Department   string    `db:"department" json:"department"`
	Location     *string   `db:"location" json:"location,omitempty"`
	IsOnline     bool      `db:"is_online" json:"isOnline"`
	Link         *string   `db:"link" json:"link,omitempty"`
	Diagnosis    *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	Prescription *string   `db:"prescription" json:"prescription,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// LabReport maps to the lab_reports table.
type LabReport struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Test      string    `db:"test" json:"test"`
	Date      time.Time `db:"date" json:"date"`
	Status    string    `db:"status" json:"status"`
	File      string    `db:"file" json:"file"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Medication maps to the medications table.
type Medication struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	Name         string    `db:"name" json:"name"`
	Dosage       string    `db:"dosage" json:"dosage"`
	Frequency    string    `db:"frequency" json:"frequency"`
	StartDate    time.Time `db:"start_date" json:"startDate"`
	RefillDate   time.Time `db:"refill_date" json:"refillDate"`
	Instructions *string   `db:"instructions" json:"instructions,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Insurance maps to the insurance_policies table.
type Insurance struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	Provider     string    `db:"provider" json:"provider"`
	PolicyNumber string    `db:"policy_number" json:"policyNumber"`
	ExpiryDate   time.Time `db:"expiry_date" json:"expiryDate"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// MedicalRecord maps to the medical_records table. The nested condition,
// allergy and surgery lists are stored as JSONB documents.
type MedicalRecord struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	Conditions json.RawMessage `db:"conditions" json:"conditions"`
	Allergies  json.RawMessage `db:"allergies" json:"allergies"`
	Surgeries  json.RawMessage `db:"surgeries" json:"surgeries"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// GlucoseTrend maps to the glucose_trends table: one averaged reading per month.
type GlucoseTrend struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Month     string    `db:"month" json:"month"`
	Value     float64   `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// HealthMonitoringReading maps to the health_monitorings table.
type HealthMonitoringReading struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"userId"`
	Date          time.Time `db:"date" json:"date"`
	HeartRate     int       `db:"heart_rate" json:"heartRate"`
	BloodPressure int       `db:"blood_pressure" json:"bloodPressure"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
