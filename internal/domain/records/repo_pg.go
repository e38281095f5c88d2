package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `id, user_id, date, time, doctor, department, location,
	is_online, link, diagnosis, prescription, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.Doctor, &a.Department, &a.Location,
		&a.IsOnline, &a.Link, &a.Diagnosis, &a.Prescription, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, date, time, doctor, department, location,
			is_online, link, diagnosis, prescription)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Date, a.Time, a.Doctor, a.Department, a.Location,
		a.IsOnline, a.Link, a.Diagnosis, a.Prescription).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointments WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// =========== LabReport Repository ===========

type labReportRepoPG struct{ pool *pgxpool.Pool }

func NewLabReportRepoPG(pool *pgxpool.Pool) LabReportRepository {
	return &labReportRepoPG{pool: pool}
}

const labCols = `id, user_id, test, date, status, file, created_at`

func scanLabReport(row pgx.Row) (*LabReport, error) {
	var lr LabReport
	err := row.Scan(&lr.ID, &lr.UserID, &lr.Test, &lr.Date, &lr.Status, &lr.File, &lr.CreatedAt)
	return &lr, err
}

func (r *labReportRepoPG) Create(ctx context.Context, lr *LabReport) error {
	lr.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO lab_reports (id, user_id, test, date, status, file)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		lr.ID, lr.UserID, lr.Test, lr.Date, lr.Status, lr.File).
		Scan(&lr.CreatedAt)
}

func (r *labReportRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*LabReport, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+labCols+` FROM lab_reports WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LabReport
	for rows.Next() {
		lr, err := scanLabReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lr)
	}
	return items, rows.Err()
}

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

const medCols = `id, user_id, name, dosage, frequency, start_date, refill_date,
	instructions, created_at, updated_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &m.StartDate, &m.RefillDate,
		&m.Instructions, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO medications (id, user_id, name, dosage, frequency, start_date, refill_date, instructions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		m.ID, m.UserID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.RefillDate, m.Instructions).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *medicationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+medCols+` FROM medications WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// =========== Insurance Repository ===========

type insuranceRepoPG struct{ pool *pgxpool.Pool }

func NewInsuranceRepoPG(pool *pgxpool.Pool) InsuranceRepository {
	return &insuranceRepoPG{pool: pool}
}

const insCols = `id, user_id, provider, policy_number, expiry_date, created_at`

func scanInsurance(row pgx.Row) (*Insurance, error) {
	var ins Insurance
	err := row.Scan(&ins.ID, &ins.UserID, &ins.Provider, &ins.PolicyNumber, &ins.ExpiryDate, &ins.CreatedAt)
	return &ins, err
}

func (r *insuranceRepoPG) Create(ctx context.Context, ins *Insurance) error {
	ins.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO insurance_policies (id, user_id, provider, policy_number, expiry_date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		ins.ID, ins.UserID, ins.Provider, ins.PolicyNumber, ins.ExpiryDate).
		Scan(&ins.CreatedAt)
}

func (r *insuranceRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Insurance, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+insCols+` FROM insurance_policies WHERE user_id = $1 ORDER BY expiry_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Insurance
	for rows.Next() {
		ins, err := scanInsurance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ins)
	}
	return items, rows.Err()
}

// =========== MedicalRecord Repository ===========

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

const mrCols = `id, user_id, conditions, allergies, surgeries, created_at, updated_at`

func scanMedicalRecord(row pgx.Row) (*MedicalRecord, error) {
	var mr MedicalRecord
	err := row.Scan(&mr.ID, &mr.UserID, &mr.Conditions, &mr.Allergies, &mr.Surgeries,
		&mr.CreatedAt, &mr.UpdatedAt)
	return &mr, err
}

func (r *medicalRecordRepoPG) Create(ctx context.Context, mr *MedicalRecord) error {
	mr.ID = uuid.New()
	if mr.Conditions == nil {
		mr.Conditions = []byte("[]")
	}
	if mr.Allergies == nil {
		mr.Allergies = []byte("[]")
	}
	if mr.Surgeries == nil {
		mr.Surgeries = []byte("[]")
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO medical_records (id, user_id, conditions, allergies, surgeries)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		mr.ID, mr.UserID, mr.Conditions, mr.Allergies, mr.Surgeries).
		Scan(&mr.CreatedAt, &mr.UpdatedAt)
}

func (r *medicalRecordRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mrCols+` FROM medical_records WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		mr, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, mr)
	}
	return items, rows.Err()
}

// =========== GlucoseTrend Repository ===========

type glucoseTrendRepoPG struct{ pool *pgxpool.Pool }

func NewGlucoseTrendRepoPG(pool *pgxpool.Pool) GlucoseTrendRepository {
	return &glucoseTrendRepoPG{pool: pool}
}

const gtCols = `id, user_id, month, value, created_at`

func scanGlucoseTrend(row pgx.Row) (*GlucoseTrend, error) {
	var gt GlucoseTrend
	err := row.Scan(&gt.ID, &gt.UserID, &gt.Month, &gt.Value, &gt.CreatedAt)
	return &gt, err
}

func (r *glucoseTrendRepoPG) Create(ctx context.Context, gt *GlucoseTrend) error {
	gt.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO glucose_trends (id, user_id, month, value)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		gt.ID, gt.UserID, gt.Month, gt.Value).
		Scan(&gt.CreatedAt)
}

func (r *glucoseTrendRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*GlucoseTrend, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+gtCols+` FROM glucose_trends WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*GlucoseTrend
	for rows.Next() {
		gt, err := scanGlucoseTrend(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, gt)
	}
	return items, rows.Err()
}

// =========== HealthMonitoring Repository ===========

type healthMonitoringRepoPG struct{ pool *pgxpool.Pool }

func NewHealthMonitoringRepoPG(pool *pgxpool.Pool) HealthMonitoringRepository {
	return &healthMonitoringRepoPG{pool: pool}
}

const hmCols = `id, user_id, date, heart_rate, blood_pressure, created_at`

func scanHealthMonitoring(row pgx.Row) (*HealthMonitoringReading, error) {
	var hm HealthMonitoringReading
	err := row.Scan(&hm.ID, &hm.UserID, &hm.Date, &hm.HeartRate, &hm.BloodPressure, &hm.CreatedAt)
	return &hm, err
}

func (r *healthMonitoringRepoPG) Create(ctx context.Context, hm *HealthMonitoringReading) error {
	hm.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO health_monitorings (id, user_id, date, heart_rate, blood_pressure)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		hm.ID, hm.UserID, hm.Date, hm.HeartRate, hm.BloodPressure).
		Scan(&hm.CreatedAt)
}

func (r *healthMonitoringRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*HealthMonitoringReading, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+hmCols+` FROM health_monitorings WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*HealthMonitoringReading
	for rows.Next() {
		hm, err := scanHealthMonitoring(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, hm)
	}
	return items, rows.Err()
}
