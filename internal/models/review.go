package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a member's verdict on a title. The (title_id, user_id) pair is
// unique: a user holds at most one live verdict per title and resubmitting
// replaces the earlier one.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TitleID   uint      `gorm:"not null;uniqueIndex:idx_reviews_title_user" json:"title_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_title_user" json:"user_id"`
	Rating    string    `gorm:"size:20;not null" json:"rating"`
	Body      string    `gorm:"size:1000" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     Title     `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
