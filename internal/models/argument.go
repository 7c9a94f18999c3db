package models

import "time"

// Argument is a single text contribution to a debate, attributed to a
// user. Arguments are append-only; insertion order is display order.
type Argument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DebateID  uint      `gorm:"not null;index" json:"debate_id"`
	CreatedAt time.Time `json:"created_at"`
}
