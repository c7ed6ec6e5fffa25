package models

import (
	"errors"
	"strings"
	"time"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null;size:200" json:"name"`
	Description *string   `gorm:"size:500" json:"description"`
	Tasks       []Task    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	TeamMembers []User    `gorm:"many2many:project_members" json:"team_members"`
}

// ProjectPatch holds the fields of a project update. A null value is treated
// the same as an absent one.
type ProjectPatch struct {
	Name          Optional[string] `json:"name"`
	Description   Optional[string] `json:"description"`
	TeamMemberIDs Optional[[]uint] `json:"team_member_ids"`
}

// Apply copies the supplied scalar fields onto p. Membership is resolved by
// the store.
func (patch ProjectPatch) Apply(p *Project) {
	if v, ok := patch.Name.Get(); ok {
		p.Name = v
	}
	if v, ok := patch.Description.Get(); ok {
		p.Description = &v
	}
}

// MemberIDs reports the replacement membership set, if one was supplied.
func (patch ProjectPatch) MemberIDs() ([]uint, bool) {
	ids, ok := patch.TeamMemberIDs.Get()
	if !ok {
		return nil, false
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, true
}

// ValidateProjectName rejects blank and oversized project names.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name must be a non-empty string")
	}
	if len(name) > 200 {
		return errors.New("name must be at most 200 characters")
	}
	return nil
}

// Validate rejects a blank or oversized name and an oversized description.
func (patch ProjectPatch) Validate() error {
	if name, ok := patch.Name.Get(); ok {
		if err := ValidateProjectName(name); err != nil {
			return err
		}
	}
	if desc, ok := patch.Description.Get(); ok && len(desc) > 500 {
		return errors.New("description must be at most 500 characters")
	}
	return nil
}
