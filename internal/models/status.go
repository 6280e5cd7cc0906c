package models

// Role is a user account role.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return true
	}
	return false
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// projectTransitions is the table of legal project status transitions.
// A project is assigned via accept-bid (open -> in-progress), finished by
// its client (in-progress -> completed) or cancelled while still open.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectOpen:       {ProjectInProgress, ProjectCancelled},
	ProjectInProgress: {ProjectCompleted},
	ProjectCompleted:  {},
	ProjectCancelled:  {},
}

// CanTransition reports whether moving a project from s to the given
// status is legal. A same-status write is always allowed.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	if s == to {
		return true
	}
	for _, next := range projectTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// BidStatus is the lifecycle state of a bid.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

func (s BidStatus) Valid() bool {
	switch s {
	case BidPending, BidAccepted, BidRejected:
		return true
	}
	return false
}

// NotificationType classifies a notification for the UI.
type NotificationType string

const (
	NotificationBid     NotificationType = "bid"
	NotificationMessage NotificationType = "message"
	NotificationSystem  NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationBid, NotificationMessage, NotificationSystem:
		return true
	}
	return false
}
