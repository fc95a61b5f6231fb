package model

// User users table
type User struct {
	UserID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash  string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role          Role    `gorm:"type:varchar(20);not null"                      json:"role"`
	ContactNumber *string `gorm:"type:varchar(20)"                               json:"contact_number,omitempty"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }
