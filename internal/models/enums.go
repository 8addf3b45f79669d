package models

import (
	"fmt"

	"github.com/Valentin6743/LS/internal/apperr"
)

// Enum is implemented by every closed string enumeration in this package.
type Enum interface {
	~string
	Valid() bool
}

// Check rejects values outside the enumeration.
func Check[T Enum](field string, v T) error {
	if v.Valid() {
		return nil
	}
	return apperr.Invalid(field, fmt.Sprintf("unknown value %q", string(v)))
}

// CheckOptional is Check for nullable columns. A nil pointer is accepted.
func CheckOptional[T Enum](field string, v *T) error {
	if v == nil {
		return nil
	}
	return Check(field, *v)
}

// Parse converts raw input into an enum value, rejecting unknown members.
func Parse[T Enum](field, raw string) (T, error) {
	v := T(raw)
	if err := Check(field, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectPaused, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

func (r TeamRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendBlocked  FriendStatus = "blocked"
)

func (s FriendStatus) Valid() bool {
	switch s {
	case FriendPending, FriendAccepted, FriendBlocked:
		return true
	}
	return false
}

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// SourceType tags a calendar event that mirrors another entity.
type SourceType string

const (
	SourceTask        SourceType = "task"
	SourceHabit       SourceType = "habit"
	SourceTransaction SourceType = "transaction"
	SourceEvent       SourceType = "event"
	SourceMemory      SourceType = "memory"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceTask, SourceHabit, SourceTransaction, SourceEvent, SourceMemory:
		return true
	}
	return false
}

type RelatedType string

const (
	RelatedNote    RelatedType = "note"
	RelatedTask    RelatedType = "task"
	RelatedMessage RelatedType = "message"
)

func (r RelatedType) Valid() bool {
	switch r {
	case RelatedNote, RelatedTask, RelatedMessage:
		return true
	}
	return false
}

type NotificationType string

const (
	NotifyTaskAssigned  NotificationType = "task_assigned"
	NotifyTaskCompleted NotificationType = "task_completed"
	NotifyFriendRequest NotificationType = "friend_request"
	NotifyMessage       NotificationType = "message"
	NotifyProjectUpdate NotificationType = "project_update"
	NotifyTeamInvite    NotificationType = "team_invite"
)

func (n NotificationType) Valid() bool {
	switch n {
	case NotifyTaskAssigned, NotifyTaskCompleted, NotifyFriendRequest,
		NotifyMessage, NotifyProjectUpdate, NotifyTeamInvite:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceCalendar ResourceType = "calendar"
	ResourceProject  ResourceType = "project"
	ResourceTask     ResourceType = "task"
)

func (r ResourceType) Valid() bool {
	switch r {
	case ResourceCalendar, ResourceProject, ResourceTask:
		return true
	}
	return false
}

type Permission string

const (
	PermView  Permission = "view"
	PermEdit  Permission = "edit"
	PermAdmin Permission = "admin"
)

func (p Permission) Valid() bool {
	switch p {
	case PermView, PermEdit, PermAdmin:
		return true
	}
	return false
}

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodNeutral  Mood = "neutral"
	MoodExcited  Mood = "excited"
	MoodStressed Mood = "stressed"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodSad, MoodNeutral, MoodExcited, MoodStressed:
		return true
	}
	return false
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Presence is the online state shown on a contact card.
type Presence string

const (
	Online  Presence = "online"
	Offline Presence = "offline"
	Away    Presence = "away"
)

func (p Presence) Valid() bool {
	switch p {
	case Online, Offline, Away:
		return true
	}
	return false
}

// Visibility selects which calendar an event belongs to.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityFriends Visibility = "friends"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityFriends
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined:
		return true
	}
	return false
}

type RequestAction string

const (
	Accept  RequestAction = "accept"
	Decline RequestAction = "decline"
)

func (a RequestAction) Valid() bool {
	return a == Accept || a == Decline
}
