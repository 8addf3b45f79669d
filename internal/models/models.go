// Package models holds the canonical schema shared by the relational services
// and the local store.
package models

// All lists every persisted model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Team{},
		&TeamMember{},
		&Friend{},
		&Project{},
		&Task{},
		&Habit{},
		&HabitLog{},
		&Transaction{},
		&CalendarEvent{},
		&Note{},
		&Memory{},
		&FileRecord{},
		&Message{},
		&Notification{},
		&SharedResource{},
		&SystemLog{},
	}
}
