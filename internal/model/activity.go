package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidActivityType = errors.New("model: invalid activity type")

type ActivityType string

const (
	ActivityTodoCreated    ActivityType = "todo_created"
	ActivityTodoCompleted  ActivityType = "todo_completed"
	ActivityTodoIncomplete ActivityType = "todo_incomplete"
	ActivityTodoEdited     ActivityType = "todo_edited"
	ActivityTodoDeleted    ActivityType = "todo_deleted"
	ActivityProjectCreated ActivityType = "project_created"
	ActivityProjectEdited  ActivityType = "project_edited"
	ActivityProjectDeleted ActivityType = "project_deleted"
	ActivityAIGeneration   ActivityType = "ai_generation"
	ActivityBulkOperation  ActivityType = "bulk_operation"
	ActivityLogin          ActivityType = "login"
	ActivityLogout         ActivityType = "logout"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTodoCreated, ActivityTodoCompleted, ActivityTodoIncomplete, ActivityTodoEdited,
		ActivityTodoDeleted, ActivityProjectCreated, ActivityProjectEdited, ActivityProjectDeleted,
		ActivityAIGeneration, ActivityBulkOperation, ActivityLogin, ActivityLogout:
		return true
	default:
		return false
	}
}

type Activity struct {
	ID          string
	UserID      string
	Type        ActivityType
	Description string
	Timestamp   time.Time
	Metadata    map[string]any
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: activity id is required")
	}
	if strings.TrimSpace(a.UserID) == "" {
		return errors.New("model: activity user id is required")
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivityType, a.Type)
	}
	return nil
}

type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
