package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/medibridge/medibridge/internal/platform/httpx"
)

// Service validates and stores profile records and lists them per user.
// One service fronts all seven variants; the Kind selects the repository.
type Service struct {
	appointments AppointmentRepository
	labReports   LabReportRepository
	medications  MedicationRepository
	insurance    InsuranceRepository
	medical      MedicalRecordRepository
	glucose      GlucoseTrendRepository
	monitorings  HealthMonitoringRepository
}

func NewService(
	appointments AppointmentRepository,
	labReports LabReportRepository,
	medications MedicationRepository,
	insurance InsuranceRepository,
	medical MedicalRecordRepository,
	glucose GlucoseTrendRepository,
	monitorings HealthMonitoringRepository,
) *Service {
	return &Service{
		appointments: appointments,
		labReports:   labReports,
		medications:  medications,
		insurance:    insurance,
		medical:      medical,
		glucose:      glucose,
		monitorings:  monitorings,
	}
}

func decodeInto(payload json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return httpx.Validation("malformed record payload")
	}
	return nil
}

// Store persists one record of the given kind owned by userID. The payload is
// the caller's record document; ownership always comes from userID, never from
// the payload itself.
func (s *Service) Store(ctx context.Context, kind Kind, userID uuid.UUID, payload json.RawMessage) (interface{}, error) {
	switch kind {
	case KindAppointments:
		var a Appointment
		if err := decodeInto(payload, &a); err != nil {
			return nil, err
		}
		if a.Date.IsZero() || a.Time == "" || a.Doctor == "" || a.Department == "" {
			return nil, httpx.Validation("date, time, doctor and department are required")
		}
		a.UserID = userID
		if err := s.appointments.Create(ctx, &a); err != nil {
			return nil, httpx.Storage(err)
		}
		return &a, nil

	case KindLabReports:
		var lr LabReport
		if err := decodeInto(payload, &lr); err != nil {
			return nil, err
		}
		if lr.Test == "" || lr.Date.IsZero() || lr.Status == "" {
			return nil, httpx.Validation("test, date and status are required")
		}
		lr.UserID = userID
		if err := s.labReports.Create(ctx, &lr); err != nil {
			return nil, httpx.Storage(err)
		}
		return &lr, nil

	case KindMedications:
		var m Medication
		if err := decodeInto(payload, &m); err != nil {
			return nil, err
		}
		if m.Name == "" || m.Dosage == "" || m.Frequency == "" {
			return nil, httpx.Validation("name, dosage and frequency are required")
		}
		m.UserID = userID
		if err := s.medications.Create(ctx, &m); err != nil {
			return nil, httpx.Storage(err)
		}
		return &m, nil

	case KindInsurance:
		var ins Insurance
		if err := decodeInto(payload, &ins); err != nil {
			return nil, err
		}
		if ins.Provider == "" || ins.PolicyNumber == "" || ins.ExpiryDate.IsZero() {
			return nil, httpx.Validation("provider, policyNumber and expiryDate are required")
		}
		ins.UserID = userID
		if err := s.insurance.Create(ctx, &ins); err != nil {
			return nil, httpx.Storage(err)
		}
		return &ins, nil

	case KindMedicalRecords:
		var mr MedicalRecord
		if err := decodeInto(payload, &mr); err != nil {
			return nil, err
		}
		mr.UserID = userID
		if err := s.medical.Create(ctx, &mr); err != nil {
			return nil, httpx.Storage(err)
		}
		return &mr, nil

	case KindGlucoseTrends:
		var gt GlucoseTrend
		if err := decodeInto(payload, &gt); err != nil {
			return nil, err
		}
		if gt.Month == "" {
			return nil, httpx.Validation("month is required")
		}
		gt.UserID = userID
		if err := s.glucose.Create(ctx, &gt); err != nil {
			return nil, httpx.Storage(err)
		}
		return &gt, nil

	case KindHealthMonitorings:
		var hm HealthMonitoringReading
		if err := decodeInto(payload, &hm); err != nil {
			return nil, err
		}
		if hm.Date.IsZero() {
			return nil, httpx.Validation("date is required")
		}
		hm.UserID = userID
		if err := s.monitorings.Create(ctx, &hm); err != nil {
			return nil, httpx.Storage(err)
		}
		return &hm, nil
	}
	return nil, httpx.Validation(fmt.Sprintf("invalid detail type %q", kind))
}

// ListByUser returns every record of the given kind owned by userID. The
// result is always a non-nil slice so an empty collection marshals as [].
func (s *Service) ListByUser(ctx context.Context, kind Kind, userID uuid.UUID) (interface{}, error) {
	switch kind {
	case KindAppointments:
		items, err := s.appointments.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*Appointment{}
		}
		return items, nil

	case KindLabReports:
		items, err := s.labReports.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*LabReport{}
		}
		return items, nil

	case KindMedications:
		items, err := s.medications.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*Medication{}
		}
		return items, nil

	case KindInsurance:
		items, err := s.insurance.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*Insurance{}
		}
		return items, nil

	case KindMedicalRecords:
		items, err := s.medical.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*MedicalRecord{}
		}
		return items, nil

	case KindGlucoseTrends:
		items, err := s.glucose.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*GlucoseTrend{}
		}
		return items, nil

	case KindHealthMonitorings:
		items, err := s.monitorings.ListByUser(ctx, userID)
		if err != nil {
			return nil, httpx.Storage(err)
		}
		if items == nil {
			items = []*HealthMonitoringReading{}
		}
		return items, nil
	}
	return nil, httpx.Validation(fmt.Sprintf("invalid detail type %q", kind))
}
