package model

import "time"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review reviews table, unique on (hostel_id, user_id)
type Review struct {
	ReviewID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	HostelID  string    `gorm:"type:uuid;not null"                             json:"hostel_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Rating    int       `gorm:"type:smallint;not null"                         json:"rating"`
	Comment   string    `gorm:"type:text;not null"                             json:"comment"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName table name
func (Review) TableName() string { return "reviews" }
