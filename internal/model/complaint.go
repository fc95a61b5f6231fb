package model

// ComplaintCategory complaint category
type ComplaintCategory string

const (
	CategoryHygiene        ComplaintCategory = "Hygiene"
	CategoryFood           ComplaintCategory = "Food"
	CategoryHarassment     ComplaintCategory = "Harassment"
	CategoryInfrastructure ComplaintCategory = "Infrastructure"
	CategoryOther          ComplaintCategory = "Other"
)

// ComplaintCategories every valid category
var ComplaintCategories = []ComplaintCategory{
	CategoryHygiene, CategoryFood, CategoryHarassment, CategoryInfrastructure, CategoryOther,
}

// Valid reports whether c is one of ComplaintCategories
func (c ComplaintCategory) Valid() bool {
	for _, v := range ComplaintCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ComplaintStatus complaint lifecycle state
type ComplaintStatus string

const (
	StatusOpen      ComplaintStatus = "Open"
	StatusResolved  ComplaintStatus = "Resolved"
	StatusDismissed ComplaintStatus = "Dismissed"
)

// Valid reports whether s is a known status
func (s ComplaintStatus) Valid() bool {
	return s == StatusOpen || s == StatusResolved || s == StatusDismissed
}

// MaxComplaintDescription description length limit
const MaxComplaintDescription = 1000

// CanTransition Open -> Resolved | Dismissed, nothing else
func (s ComplaintStatus) CanTransition(to ComplaintStatus) bool {
	return s == StatusOpen && (to == StatusResolved || to == StatusDismissed)
}

// Complaint complaints table.
// StudentID is always stored, even for anonymous complaints.
type Complaint struct {
	ComplaintID string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"complaint_id"`
	StudentID   string            `gorm:"type:uuid;not null"                             json:"student_id"`
	HostelID    string            `gorm:"type:uuid;not null"                             json:"hostel_id"`
	Category    ComplaintCategory `gorm:"type:varchar(20);not null"                      json:"category"`
	Description string            `gorm:"type:varchar(1000);not null"                    json:"description"`
	IsAnonymous bool              `gorm:"not null;default:false"                         json:"is_anonymous"`
	Status      ComplaintStatus   `gorm:"type:varchar(20);not null;default:'Open'"       json:"status"`
	BaseModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName table name
func (Complaint) TableName() string { return "complaints" }
