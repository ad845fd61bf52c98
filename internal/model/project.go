package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyName = errors.New("model: name is required")

const (
	InboxProjectID          = "inbox"
	InboxProjectName        = "Inbox"
	InboxProjectDescription = "Default project for uncategorized todos"
	InboxProjectColor       = "#6b7280"
	DefaultProjectColor     = "#3b82f6"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// IsInbox reports whether p is the reserved default project.
func (p Project) IsInbox() bool {
	return p.ID == InboxProjectID
}

// InboxProject returns the seed project created for an empty store.
func InboxProject(now time.Time) Project {
	return Project{
		ID:          InboxProjectID,
		Name:        InboxProjectName,
		Description: InboxProjectDescription,
		Color:       InboxProjectColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
