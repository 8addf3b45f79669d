package models

import "github.com/google/uuid"

// Group is a chat group with its channels. Groups exist only in the local
// store.
type Group struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Icon     string      `json:"icon"`
	Members  []uuid.UUID `json:"members"`
	Channels []Channel   `json:"channels"`
}

type Channel struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
