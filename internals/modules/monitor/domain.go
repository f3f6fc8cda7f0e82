package monitor

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Monitor is a registered endpoint and its check cadence.
type Monitor struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	IntervalSec   int32      `json:"check_interval"`
	Active        bool       `json:"is_active"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
}

// Interval is the check cadence as a duration.
func (m Monitor) Interval() time.Duration {
	return time.Duration(m.IntervalSec) * time.Second
}

// Validate checks the constraints a monitor must satisfy once it leaves the store.
func (m Monitor) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.By(notNilUUID)),
		validation.Field(&m.UserID, validation.By(notNilUUID)),
		validation.Field(&m.URL, validation.Required),
		validation.Field(&m.IntervalSec, validation.Required, validation.Min(1)),
		validation.Field(&m.LastCheckedAt, validation.By(wellFormedTime)),
	)
}

func notNilUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("must be a non-nil uuid")
	}
	return nil
}

func wellFormedTime(value any) error {
	t, ok := value.(*time.Time)
	if !ok || t == nil {
		return nil
	}
	if t.IsZero() {
		return errors.New("must be a real timestamp when set")
	}
	return nil
}
