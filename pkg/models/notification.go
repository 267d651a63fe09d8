package models

import "time"

// Notification is an in-app message for one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) GetID() string           { return n.ID }
func (n *Notification) GetName() string         { return n.Title }
func (n *Notification) GetCreatedAt() time.Time { return n.CreatedAt }
func (n *Notification) GetUpdatedAt() time.Time { return n.UpdatedAt }
func (n *Notification) SetID(id string)         { n.ID = id }
func (n *Notification) Stamp(now time.Time)     { stamp(&n.CreatedAt, &n.UpdatedAt, now) }

// SharedRecord grants a user access to a private record they would not see otherwise.
type SharedRecord struct {
	ID         string    `json:"id"`
	RecordType string    `json:"record_type"`
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	SharedBy   string    `json:"shared_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *SharedRecord) GetID() string           { return s.ID }
func (s *SharedRecord) GetName() string         { return s.RecordType + ":" + s.RecordID }
func (s *SharedRecord) GetCreatedAt() time.Time { return s.CreatedAt }
func (s *SharedRecord) GetUpdatedAt() time.Time { return s.UpdatedAt }
func (s *SharedRecord) SetID(id string)         { s.ID = id }
func (s *SharedRecord) Stamp(now time.Time)     { stamp(&s.CreatedAt, &s.UpdatedAt, now) }
