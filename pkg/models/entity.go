package models

import "time"

// Entity is implemented by every record kept by a repository.
type Entity interface {
	GetID() string
	SetID(id string)
	GetName() string
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	// Stamp sets the creation time on first save and the update time always.
	Stamp(now time.Time)
}

func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}

	*updated = now
}
