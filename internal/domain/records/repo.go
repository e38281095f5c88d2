package records

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Appointment, error)
}

type LabReportRepository interface {
	Create(ctx context.Context, lr *LabReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*LabReport, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Medication, error)
}

type InsuranceRepository interface {
	Create(ctx context.Context, ins *Insurance) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Insurance, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, mr *MedicalRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*MedicalRecord, error)
}

type GlucoseTrendRepository interface {
	Create(ctx context.Context, gt *GlucoseTrend) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*GlucoseTrend, error)
}

type HealthMonitoringRepository interface {
	Create(ctx context.Context, r *HealthMonitoringReading) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*HealthMonitoringReading, error)
}
