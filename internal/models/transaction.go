package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction is a money movement. Amount is signed as entered.
type Transaction struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	Type            TransactionType             `gorm:"size:10;not null;index" json:"type"`
	Category        string                      `gorm:"size:100;not null;index" json:"category"`
	Amount          float64                     `gorm:"type:numeric(14,2);not null" json:"amount"`
	Currency        string                      `gorm:"size:3;not null" json:"currency"`
	Description     *string                     `gorm:"type:text" json:"description,omitempty"`
	TransactionDate time.Time                   `gorm:"not null;index" json:"transaction_date"`
	PaymentMethod   *string                     `gorm:"size:50" json:"payment_method,omitempty"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	DeletedAt       gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
