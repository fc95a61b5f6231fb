// Package policy holds the access and visibility rules shared by every
// service: who may perform which operation, and what a complaint looks like
// once it leaves the server.
package policy

import (
	"fmt"

	"hostel-drishti/backend/internal/model"
	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// Operation an access-controlled action
type Operation int

const (
	CreateComplaint Operation = iota + 1
	ListComplaints
	UpdateComplaintStatus
	CreateReview
	DeleteReview
	CreateHostel
	UpdateHostel
	DeleteHostel
	ListUnassignedWardens
	UpsertMenu
	DeleteMenu
	CreateDailyPerformance
	ExportHostelReport
)

var operationNames = map[Operation]string{
	CreateComplaint:        "create complaint",
	ListComplaints:         "list complaints",
	UpdateComplaintStatus:  "update complaint status",
	CreateReview:           "create review",
	DeleteReview:           "delete review",
	CreateHostel:           "create hostel",
	UpdateHostel:           "update hostel",
	DeleteHostel:           "delete hostel",
	ListUnassignedWardens:  "list unassigned wardens",
	UpsertMenu:             "update menu",
	DeleteMenu:             "delete menu",
	CreateDailyPerformance: "submit daily performance",
	ExportHostelReport:     "export hostel report",
}

// Operations every operation, for exhaustive iteration
var Operations = []Operation{
	CreateComplaint, ListComplaints, UpdateComplaintStatus,
	CreateReview, DeleteReview,
	CreateHostel, UpdateHostel, DeleteHostel, ListUnassignedWardens,
	UpsertMenu, DeleteMenu,
	CreateDailyPerformance, ExportHostelReport,
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Actor the authenticated requester, as asserted by the verified token
type Actor struct {
	ID   string
	Role model.Role
}

// Target ownership facts about the entity an operation touches.
// Only the fields relevant to the operation need to be set.
type Target struct {
	OwnerID     string // author of the review
	WardenID    string // warden assigned to the hostel
	HasReviewed bool   // the actor already has a review for the hostel
}

// Authorize decides op for actor against target.
// It returns nil, an AuthorizationError, or (for CreateReview when the
// actor already reviewed the hostel) a DuplicateReviewError. Callers must
// resolve the referenced entities before calling it so that a missing
// entity is reported as not found rather than forbidden.
func Authorize(op Operation, actor Actor, target Target) error {
	if !actor.Role.Valid() || actor.ID == "" {
		return pkgerrors.Forbidden("User role %s is not authorized to %s", roleName(actor.Role), op)
	}

	switch op {
	case CreateComplaint:
		return requireRole(op, actor, model.RoleStudent)
	case ListComplaints:
		return nil
	case UpdateComplaintStatus:
		return requireRole(op, actor, model.RoleWarden, model.RoleDWO)
	case CreateReview:
		if err := requireRole(op, actor, model.RoleStudent); err != nil {
			return err
		}
		if target.HasReviewed {
			return pkgerrors.DuplicateReview()
		}
		return nil
	case DeleteReview:
		if target.OwnerID == "" || actor.ID != target.OwnerID {
			return pkgerrors.Forbidden("Not authorized to delete this review")
		}
		return nil
	case CreateHostel, UpdateHostel, DeleteHostel, ListUnassignedWardens:
		return requireRole(op, actor, model.RoleDWO)
	case UpsertMenu, DeleteMenu, CreateDailyPerformance:
		if err := requireRole(op, actor, model.RoleWarden); err != nil {
			return err
		}
		return requireAssignedWarden(op, actor, target)
	case ExportHostelReport:
		if actor.Role == model.RoleDWO {
			return nil
		}
		if err := requireRole(op, actor, model.RoleWarden); err != nil {
			return err
		}
		return requireAssignedWarden(op, actor, target)
	default:
		return pkgerrors.Forbidden("Unknown operation %s", op)
	}
}

// Allowed boolean form of Authorize
func Allowed(op Operation, actor Actor, target Target) bool {
	return Authorize(op, actor, target) == nil
}

func requireRole(op Operation, actor Actor, roles ...model.Role) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return pkgerrors.Forbidden("User role %s is not authorized to %s", roleName(actor.Role), op)
}

func requireAssignedWarden(op Operation, actor Actor, target Target) error {
	if target.WardenID == "" || target.WardenID != actor.ID {
		return pkgerrors.Forbidden("Only the warden assigned to this hostel may %s", op)
	}
	return nil
}

func roleName(r model.Role) string {
	if r == "" {
		return "Unknown"
	}
	return string(r)
}
