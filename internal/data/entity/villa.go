package entity

import (
	"github.com/google/uuid"
)

type VillaStatus string

const (
	VillaStatusPending  VillaStatus = "pending"
	VillaStatusApproved VillaStatus = "approved"
	VillaStatusRejected VillaStatus = "rejected"
)

// Villa is the read model of a listing. Moderation happens elsewhere; only
// approved villas accept bookings.
type Villa struct {
	Base
	HostID      uuid.UUID   `db:"host_id"`
	Name        string      `db:"name"`
	City        string      `db:"city"`
	NightlyRate int64       `db:"nightly_rate"`
	Status      VillaStatus `db:"status"`
}
