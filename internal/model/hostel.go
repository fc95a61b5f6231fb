package model

// Hostel hostels table.
// AverageRating and NumOfReviews are derived from reviews and are only ever
// written by the rating recompute.
type Hostel struct {
	HostelID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hostel_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	District      string  `gorm:"type:varchar(100);not null"                     json:"district"`
	State         string  `gorm:"type:varchar(100);not null"                     json:"state"`
	Address       string  `gorm:"type:text;not null"                             json:"address"`
	WardenID      string  `gorm:"type:uuid;not null"                             json:"warden_id"`
	Latitude      float64 `gorm:"not null"                                       json:"latitude"`
	Longitude     float64 `gorm:"not null"                                       json:"longitude"`
	CoverImage    string  `gorm:"type:text;not null;default:''"                  json:"cover_image"`
	AverageRating float64 `gorm:"not null;default:0;->"                          json:"average_rating"`
	NumOfReviews  int     `gorm:"not null;default:0;->"                          json:"num_of_reviews"`
	BaseModel

	Warden *User `gorm:"foreignKey:WardenID;references:UserID" json:"warden,omitempty"`
}

// TableName table name
func (Hostel) TableName() string { return "hostels" }

// RatingStats aggregate over a hostel's reviews
type RatingStats struct {
	AverageRating float64 `gorm:"column:average_rating"`
	NumOfReviews  int     `gorm:"column:num_of_reviews"`
}
