// Package access decides which users may see confidential records.
package access

import (
	"slices"

	"github.com/dukex/fluxo/pkg/models"
)

// Principal is the caller as described by the identity provider.
type Principal struct {
	UserID      string
	Departments []string
	Roles       []string
}

// Anonymous reports whether the caller did not identify itself.
func (p Principal) Anonymous() bool {
	return p.UserID == ""
}

// Record is implemented by records carrying access rules.
type Record interface {
	GetID() string
	GetOwner() string
	RecordType() string
	Rules() models.AccessControl
}

// CanView reports whether p may see record. Public records (and records
// without a level) are visible to everyone. Private records are visible to
// their owner, to listed users, departments and roles, and to users holding a
// shared-record grant for them.
func CanView(record Record, p Principal, grants ...*models.SharedRecord) bool {
	rules := record.Rules()
	if rules.ConfidentialityLevel != models.ConfidentialityPrivate {
		return true
	}

	if p.Anonymous() {
		return false
	}

	if record.GetOwner() == p.UserID || slices.Contains(rules.AllowedUsers, p.UserID) {
		return true
	}

	if intersects(rules.AllowedDepartments, p.Departments) || intersects(rules.AllowedRoles, p.Roles) {
		return true
	}

	for _, grant := range grants {
		if grant != nil &&
			grant.UserID == p.UserID &&
			grant.RecordType == record.RecordType() &&
			grant.RecordID == record.GetID() {
			return true
		}
	}

	return false
}

// Visible keeps the records p may see, preserving order.
func Visible[T Record](records []T, p Principal, grants ...*models.SharedRecord) []T {
	out := make([]T, 0, len(records))

	for _, record := range records {
		if CanView(record, p, grants...) {
			out = append(out, record)
		}
	}

	return out
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}

	return false
}
