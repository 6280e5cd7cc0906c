package repository

import (
	"context"

	"skillswap/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role models.Role) (int64, error)
}

type FreelancerRepo interface {
	CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error)
	GetProfileByID(ctx context.Context, id int64) (*models.FreelancerProfile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error)
	ListProfiles(ctx context.Context, onlyUnverified bool) ([]models.FreelancerProfile, error)
	UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error
	DeleteProfile(ctx context.Context, id int64) error
	SetVerification(ctx context.Context, id int64, verified bool, level string) error
	UpdateRating(ctx context.Context, id int64, average float64, count int64) error
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (int64, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByClient(ctx context.Context, clientID int64) ([]models.Project, error)
	ListProjectsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int64) error
	CountProjects(ctx context.Context) (int64, error)
	// DueForReminder selects projects whose deadline falls inside
	// [start, end) and whose reminder has not been sent yet.
	DueForReminder(ctx context.Context, start, end int64) ([]models.Project, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

type BidRepo interface {
	CreateBid(ctx context.Context, b *models.Bid) (int64, error)
	GetBidByID(ctx context.Context, id int64) (*models.Bid, error)
	ListBidsByProject(ctx context.Context, projectID int64) ([]models.Bid, error)
	ListBidsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Bid, error)
	ListBids(ctx context.Context) ([]models.Bid, error)
	UpdateBid(ctx context.Context, b *models.Bid) error
	CountBids(ctx context.Context) (int64, error)
	// AcceptBid performs the contract transition in one transaction:
	// assign the freelancer and move the project to in-progress, mark the
	// chosen bid accepted and reject every sibling bid. The project row is
	// guarded on status = open; retrying an already settled accept with the
	// same bid is a no-op, any other late accept fails with ErrConflict.
	AcceptBid(ctx context.Context, projectID, bidID, freelancerID int64) (*models.Project, *models.Bid, error)
}

type ReviewRepo interface {
	CreateReview(ctx context.Context, r *models.Review) (int64, error)
	GetReviewByProjectAndClient(ctx context.Context, projectID, clientID int64) (*models.Review, error)
	ListReviewsByFreelancer(ctx context.Context, freelancerID int64) ([]models.Review, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	GetMessageByID(ctx context.Context, id int64) (*models.Message, error)
	ListConversation(ctx context.Context, userA, userB int64) ([]models.Message, error)
	ListMessagesByUser(ctx context.Context, userID int64) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id int64) error
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}
