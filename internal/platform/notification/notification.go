// Package notification abstracts the channel that tells a patient their
// record was looked up from the doctor portal. No working delivery contract
// exists for this system; concrete transports (SMS, email, push) plug in
// behind the Notifier interface.
package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ScanEvent describes a cross-portal lookup of a patient's record.
type ScanEvent struct {
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier delivers a scan notification to the subject of the lookup.
type Notifier interface {
	NotifyScan(ctx context.Context, ev ScanEvent) error
}

// LogNotifier records scan events in the server log. It is the default
// implementation while no real delivery channel is wired.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyScan(_ context.Context, ev ScanEvent) error {
	n.logger.Info().
		Str("user_id", ev.UserID).
		Time("occurred_at", ev.OccurredAt).
		Msg("record scanned from doctor portal")
	return nil
}
