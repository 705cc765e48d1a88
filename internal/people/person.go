// Package people holds the host's Person model and its gorm-backed storage.
package people

import (
	"time"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
)

// Person is the record managed by the people-web host. Display metadata is
// resolved from the field names: ID is hidden, EmailAddress renders as a
// mailto link, BirthDate as a date and Active as Yes/No.
type Person struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	FirstName    string        `gorm:"size:100;not null" validate:"required,max=100" json:"firstName"`
	LastName     string        `gorm:"size:100;not null" validate:"required,max=100" json:"lastName"`
	EmailAddress string        `gorm:"size:255;not null" validate:"required,email" json:"emailAddress"`
	BirthDate    dateonly.Date `json:"birthDate"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// editableColumns are written by Update; ID and CreatedAt never change.
var editableColumns = []string{"FirstName", "LastName", "EmailAddress", "BirthDate", "Active"}

// EditableFields names the fields a person editor exposes.
func EditableFields() []string {
	return append([]string(nil), editableColumns...)
}
