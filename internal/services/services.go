// Package services is the relational data access layer. Each service wraps
// one entity over a *gorm.DB; reads skip soft-deleted rows, Get reports a
// missing row as nil, nil, and failures are returned in the apperr taxonomy.
package services

import (
	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/storage"
	"gorm.io/gorm"
)

// Set bundles every service over one database handle.
type Set struct {
	Auth          *AuthService
	Users         *UserService
	Teams         *TeamService
	Friends       *FriendService
	Projects      *ProjectService
	Tasks         *TaskService
	Habits        *HabitService
	Transactions  *TransactionService
	Events        *EventService
	Notes         *NoteService
	Memories      *MemoryService
	Files         *FileService
	Messages      *MessageService
	Notifications *NotificationService
	Shares        *ShareService
}

func New(db *gorm.DB, cfg *config.Config, blobs storage.Blobs) *Set {
	users := NewUserService(db)
	return &Set{
		Auth:          NewAuthService(db, cfg, users),
		Users:         users,
		Teams:         NewTeamService(db),
		Friends:       NewFriendService(db, users),
		Projects:      NewProjectService(db),
		Tasks:         NewTaskService(db),
		Habits:        NewHabitService(db),
		Transactions:  NewTransactionService(db),
		Events:        NewEventService(db),
		Notes:         NewNoteService(db),
		Memories:      NewMemoryService(db),
		Files:         NewFileService(db, blobs),
		Messages:      NewMessageService(db),
		Notifications: NewNotificationService(db),
		Shares:        NewShareService(db),
	}
}
