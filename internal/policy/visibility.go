package policy

import (
	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
)

// Anonymous sentinel shown in place of the author of an anonymous complaint
const (
	AnonymousName  = "Anonymous Student"
	AnonymousEmail = "Hidden"
)

// AnonymousStudent the sentinel identity, without an id
func AnonymousStudent() dto.UserBrief {
	return dto.UserBrief{Name: AnonymousName, Email: AnonymousEmail}
}

// SanitizeComplaint the only way a complaint leaves the server.
// An anonymous complaint never reveals its author, whatever the caller's role.
func SanitizeComplaint(c *model.Complaint) dto.ComplaintResponse {
	out := dto.ComplaintResponse{
		ID:          c.ComplaintID,
		Hostel:      c.HostelID,
		Category:    string(c.Category),
		Description: c.Description,
		IsAnonymous: c.IsAnonymous,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}

	switch {
	case c.IsAnonymous:
		out.Student = AnonymousStudent()
	case c.Student != nil:
		out.Student = dto.UserBrief{
			ID:    c.Student.UserID,
			Name:  c.Student.Name,
			Email: c.Student.Email,
		}
	default:
		out.Student = dto.UserBrief{ID: c.StudentID}
	}

	return out
}

// SanitizeComplaints applies SanitizeComplaint to each element
func SanitizeComplaints(list []model.Complaint) []dto.ComplaintResponse {
	out := make([]dto.ComplaintResponse, 0, len(list))
	for i := range list {
		out = append(out, SanitizeComplaint(&list[i]))
	}
	return out
}
