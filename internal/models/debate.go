package models

import (
	"time"
)

// Debate is a titled topic with exactly two claimable sides.
type Debate struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:100;not null" json:"title"`
	CreatedByID *uint        `json:"created_by_id,omitempty"`
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Sides       []DebateSide `gorm:"foreignKey:DebateID" json:"sides"`
	Arguments   []Argument   `gorm:"foreignKey:DebateID" json:"arguments,omitempty"`
	Categories  []Category   `gorm:"many2many:debate_category" json:"categories,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Ready reports whether every side of the debate has a claimant.
// It is a pure function over the loaded Sides and is never persisted.
func (d *Debate) Ready() bool {
	if len(d.Sides) == 0 {
		return false
	}
	for _, s := range d.Sides {
		if s.UserID == nil {
			return false
		}
	}
	return true
}

// DebateSide is one of the two positions on a debate. UserID is the
// claimant and stays nil until someone joins the side.
type DebateSide struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:100;not null" json:"label"`
	DebateID  uint      `gorm:"not null;index" json:"debate_id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (DebateSide) TableName() string {
	return "debate_sides"
}

// Category groups debates by topic. The relation is kept for schema
// compatibility; no route currently reads or writes it.
type Category struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"size:50;unique;not null" json:"name"`
	Debates []Debate `gorm:"many2many:debate_category" json:"debates,omitempty"`
}
