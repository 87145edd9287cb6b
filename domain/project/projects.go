package project

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"launchmaster/domain/launch"

	"github.com/fundwit/go-commons/types"
)

var (
	ErrEmptyProjectName = errors.New("project name must not be empty")
	ErrInvalidStatus    = errors.New("invalid project status")
)

// Project is a marketing launch with its phases, as kept in the store snapshot.
type Project struct {
	ID          types.ID      `json:"id"`
	Name        string        `json:"name"`
	Client      string        `json:"client,omitempty"`
	Description string        `json:"description,omitempty"`
	EventDate   time.Time     `json:"eventDate"`
	Status      launch.Status `json:"status"`
	Phases      launch.Phases `json:"phases"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (p Project) clone() Project {
	p.Phases = p.Phases.Clone()
	return p
}

type ProjectCreating struct {
	Name        string        `json:"name" binding:"required,lte=255"`
	Client      string        `json:"client" binding:"lte=255"`
	Description string        `json:"description"`
	EventDate   time.Time     `json:"eventDate" binding:"required"`
	Status      launch.Status `json:"status" binding:"omitempty,oneof=planning active completed"`
	Phases      launch.Phases `json:"phases"`
}

func (c *ProjectCreating) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrEmptyProjectName
	}
	if c.Status == "" {
		c.Status = launch.StatusPlanning
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w '%s'", ErrInvalidStatus, c.Status)
	}
	return c.Phases.Validate()
}

// ProjectUpdating carries a partial change, nil fields are left untouched.
// An empty client or description clears the stored value.
type ProjectUpdating struct {
	Name        *string        `json:"name" binding:"omitempty,lte=255"`
	Client      *string        `json:"client" binding:"omitempty,lte=255"`
	Description *string        `json:"description"`
	EventDate   *time.Time     `json:"eventDate"`
	Status      *launch.Status `json:"status" binding:"omitempty,oneof=planning active completed"`
	Phases      *launch.Phases `json:"phases"`
}

func (u *ProjectUpdating) normalize() error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyProjectName
		}
		u.Name = &name
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("%w '%s'", ErrInvalidStatus, *u.Status)
	}
	if u.Phases != nil {
		return u.Phases.Validate()
	}
	return nil
}

func (u *ProjectUpdating) columns() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Client != nil {
		changes["client"] = nullableColumn(*u.Client)
	}
	if u.Description != nil {
		changes["description"] = nullableColumn(*u.Description)
	}
	if u.EventDate != nil {
		changes["event_date"] = launch.Day(*u.EventDate)
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	return changes
}

// ProjectRecord is a row of the projects table.
type ProjectRecord struct {
	ID          types.ID      `gorm:"primary_key;auto_increment:false"`
	Name        string        `gorm:"type:varchar(255);not null"`
	Client      *string       `gorm:"type:varchar(255)"`
	Description *string       `gorm:"type:text"`
	EventDate   time.Time     `gorm:"type:date;not null"`
	Status      launch.Status `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time     `gorm:"not null"`
}

func (ProjectRecord) TableName() string {
	return "projects"
}

// PhaseRecord is a row of the phases table. Name holds the phase key.
type PhaseRecord struct {
	ID        types.ID  `gorm:"primary_key;auto_increment:false"`
	ProjectID types.ID  `gorm:"index;not null"`
	Name      string    `gorm:"type:varchar(64);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Duration  int       `gorm:"not null"`
}

func (PhaseRecord) TableName() string {
	return "phases"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullableColumn gives an untyped nil for the empty string so that the column is written as NULL.
func nullableColumn(s string) interface{} {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
