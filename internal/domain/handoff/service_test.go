package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medibridge/medibridge/internal/domain/records"
	"github.com/medibridge/medibridge/internal/domain/user"
	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/notification"
	"github.com/medibridge/medibridge/internal/platform/token"
)

type memUserRepo struct {
	byID  map[uuid.UUID]*user.User
	byErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]*user.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if m.byErr != nil {
		return nil, m.byErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

type memRecordRepo[T any] struct {
	items []*T
	err   error
}

func (m *memRecordRepo[T]) Create(_ context.Context, item *T) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memRecordRepo[T]) ListByUser(_ context.Context, _ uuid.UUID) ([]*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

type spyNotifier struct {
	events []notification.ScanEvent
	err    error
}

func (n *spyNotifier) NotifyScan(_ context.Context, ev notification.ScanEvent) error {
	n.events = append(n.events, ev)
	return n.err
}

type fixture struct {
	svc          *Service
	users        *memUserRepo
	appointments *memRecordRepo[records.Appointment]
	glucose      *memRecordRepo[records.GlucoseTrend]
	notifier     *spyNotifier
}

func newFixture() *fixture {
	userRepo := newMemUserRepo()
	appts := &memRecordRepo[records.Appointment]{}
	glucose := &memRecordRepo[records.GlucoseTrend]{}
	recSvc := records.NewService(appts,
		&memRecordRepo[records.LabReport]{},
		&memRecordRepo[records.Medication]{},
		&memRecordRepo[records.Insurance]{},
		&memRecordRepo[records.MedicalRecord]{},
		glucose,
		&memRecordRepo[records.HealthMonitoringReading]{})
	userSvc := user.NewService(userRepo, token.NewIssuer([]byte("test-secret")))
	notifier := &spyNotifier{}
	svc := NewService(userSvc, recSvc, notifier, zerolog.Nop())
	return &fixture{svc: svc, users: userRepo, appointments: appts, glucose: glucose, notifier: notifier}
}

func seedUser(t *testing.T, f *fixture) *user.User {
	t.Helper()
	u := &user.User{
		Name:    "Ann",
		Contact: "5551234567",
		Email:   "ann@x.com",
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func bundleKeys() []string {
	keys := []string{UserKey}
	for _, k := range records.Kinds() {
		keys = append(keys, k.String())
	}
	return keys
}

func TestAggregate_AllKeysPresent(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)

	bundle, err := f.svc.Aggregate(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(bundle) != 8 {
		t.Errorf("expected 8 bundle keys, got %d", len(bundle))
	}
	for _, key := range bundleKeys() {
		if _, ok := bundle[key]; !ok {
			t.Errorf("bundle missing key %q", key)
		}
	}
}

func TestAggregate_EmptyCollectionsMarshalAsArrays(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)

	bundle, err := f.svc.Aggregate(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range records.Kinds() {
		if string(decoded[k.String()]) != "[]" {
			t.Errorf("key %q marshals as %s, want []", k, decoded[k.String()])
		}
	}
}

func TestAggregate_UserCarriedAsSingletonList(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)

	bundle, err := f.svc.Aggregate(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	owners, ok := bundle[UserKey].([]*user.User)
	if !ok || len(owners) != 1 {
		t.Fatalf("expected one owner entry, got %#v", bundle[UserKey])
	}
	if owners[0].ID != u.ID {
		t.Errorf("owner id = %s, want %s", owners[0].ID, u.ID)
	}
}

func TestAggregate_UnknownUserYieldsEmptyOwner(t *testing.T) {
	f := newFixture()

	bundle, err := f.svc.Aggregate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	owners, ok := bundle[UserKey].([]*user.User)
	if !ok || len(owners) != 0 {
		t.Errorf("expected empty owner list, got %#v", bundle[UserKey])
	}
}

func TestAggregate_StorageFailureAborts(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)
	f.glucose.err = errors.New("connection reset")

	bundle, err := f.svc.Aggregate(context.Background(), u.ID)
	if bundle != nil {
		t.Errorf("expected no partial bundle, got %v", bundle)
	}
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindStorage {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestVerifyScan_CorrectCodeReleasesBundleAndNotifies(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)

	bundle, err := f.svc.VerifyScan(context.Background(), u.ID, "4567")
	if err != nil {
		t.Fatalf("verify scan: %v", err)
	}
	if len(bundle) != 8 {
		t.Errorf("expected full bundle, got %d keys", len(bundle))
	}
	if len(f.notifier.events) != 1 {
		t.Fatalf("expected 1 scan notification, got %d", len(f.notifier.events))
	}
	if f.notifier.events[0].UserID != u.ID.String() {
		t.Errorf("notification for %s, want %s", f.notifier.events[0].UserID, u.ID)
	}
}

func TestVerifyScan_WrongCodeWithholdsBundle(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)

	bundle, err := f.svc.VerifyScan(context.Background(), u.ID, "0000")
	if bundle != nil {
		t.Errorf("expected no bundle on wrong code, got %v", bundle)
	}
	var appErr *httpx.Error
	if !errors.As(err, &appErr) || appErr.Kind != httpx.KindAuthorization {
		t.Errorf("expected authorization error, got %v", err)
	}
	if len(f.notifier.events) != 0 {
		t.Errorf("no notification should fire on a failed scan, got %d", len(f.notifier.events))
	}
}

func TestVerifyScan_NotifierFailureDoesNotBlock(t *testing.T) {
	f := newFixture()
	u := seedUser(t, f)
	f.notifier.err = errors.New("sms gateway down")

	bundle, err := f.svc.VerifyScan(context.Background(), u.ID, "4567")
	if err != nil {
		t.Fatalf("expected handoff to succeed despite notifier failure, got %v", err)
	}
	if len(bundle) != 8 {
		t.Errorf("expected full bundle, got %d keys", len(bundle))
	}
}
