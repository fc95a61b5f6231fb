package model

import "time"

// DailyPerformance daily_performances table, unique on (hostel_id, date)
type DailyPerformance struct {
	DailyPerformanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"daily_performance_id"`
	HostelID           string    `gorm:"type:uuid;not null"                             json:"hostel_id"`
	WardenID           string    `gorm:"type:uuid;not null"                             json:"warden_id"`
	Date               time.Time `gorm:"type:date;not null"                             json:"date"`
	StudentCount       int       `gorm:"not null"                                       json:"student_count"`
	BreakfastImage     string    `gorm:"type:text;not null"                             json:"breakfast_image"`
	LunchImage         string    `gorm:"type:text;not null"                             json:"lunch_image"`
	DinnerImage        string    `gorm:"type:text;not null"                             json:"dinner_image"`
	Latitude           float64   `gorm:"not null"                                       json:"latitude"`
	Longitude          float64   `gorm:"not null"                                       json:"longitude"`
	Remarks            string    `gorm:"type:text;not null;default:''"                  json:"remarks"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName table name
func (DailyPerformance) TableName() string { return "daily_performances" }
