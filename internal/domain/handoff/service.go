// Package handoff implements the cross-portal record handoff: a doctor-portal
// client proves it may read a patient's profile (either with the patient's own
// token or with a scan code) and receives the full aggregated bundle.
package handoff

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medibridge/medibridge/internal/domain/records"
	"github.com/medibridge/medibridge/internal/domain/user"
	"github.com/medibridge/medibridge/internal/platform/notification"
)

// UserKey is the bundle key carrying the record owner's identity.
const UserKey = "user"

// Bundle is the aggregated profile. It always carries one key per record
// variant plus UserKey, each holding a non-nil slice, so consumers can index
// any key without an existence check.
type Bundle map[string]interface{}

type Service struct {
	users    *user.Service
	records  *records.Service
	notifier notification.Notifier
	logger   zerolog.Logger
}

func NewService(users *user.Service, recs *records.Service, notifier notification.Notifier, logger zerolog.Logger) *Service {
	return &Service{users: users, records: recs, notifier: notifier, logger: logger}
}

// Aggregate assembles the complete profile bundle for userID. Collections are
// read sequentially; the first storage failure aborts the whole aggregation
// rather than returning a partial bundle. A missing user yields an empty
// UserKey entry, not an error, so a freshly deleted account still renders.
func (s *Service) Aggregate(ctx context.Context, userID uuid.UUID) (Bundle, error) {
	bundle := Bundle{}

	u, err := s.users.Get(ctx, userID)
	switch {
	case err == nil:
		bundle[UserKey] = []*user.User{u}
	case errors.Is(err, user.ErrNotFound):
		bundle[UserKey] = []*user.User{}
	default:
		return nil, err
	}

	for _, kind := range records.Kinds() {
		items, err := s.records.ListByUser(ctx, kind, userID)
		if err != nil {
			return nil, err
		}
		bundle[kind.String()] = items
	}
	return bundle, nil
}

// VerifyScan is the scan-code path: the doctor portal submits the code read
// from the patient's screen, and a correct code releases the full bundle.
// The scan notification is best effort; delivery failure never blocks the
// handoff.
func (s *Service) VerifyScan(ctx context.Context, userID uuid.UUID, input string) (Bundle, error) {
	if err := s.users.VerifyPIN(ctx, userID, input); err != nil {
		return nil, err
	}

	ev := notification.ScanEvent{UserID: userID.String(), OccurredAt: time.Now().UTC()}
	if err := s.notifier.NotifyScan(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ev.UserID).Msg("scan notification failed")
	}

	return s.Aggregate(ctx, userID)
}
