package mock

import (
	"context"

	"skillswap/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Users    *mockUserRepo
	Profiles *mockFreelancerRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &mockUserRepo{},
		Profiles: &mockFreelancerRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, Role: u.Role, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.Stored == nil {
		return nil, nil
	}
	return []models.User{*m.Stored}, nil
}

func (m *mockUserRepo) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	if m.Stored != nil && m.Stored.Role == role {
		return 1, nil
	}
	return 0, nil
}

type mockFreelancerRepo struct {
	Stored    *models.FreelancerProfile
	CreateErr error
}

func (m *mockFreelancerRepo) CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *p
	stored.ID = 1
	m.Stored = &stored
	return 1, nil
}

func (m *mockFreelancerRepo) GetProfileByID(ctx context.Context, id int64) (*models.FreelancerProfile, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockFreelancerRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error) {
	if m.Stored != nil && m.Stored.UserID == userID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockFreelancerRepo) ListProfiles(ctx context.Context, onlyUnverified bool) ([]models.FreelancerProfile, error) {
	if m.Stored == nil || (onlyUnverified && m.Stored.Verified) {
		return nil, nil
	}
	return []models.FreelancerProfile{*m.Stored}, nil
}

func (m *mockFreelancerRepo) UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error {
	m.Stored = p
	return nil
}

func (m *mockFreelancerRepo) DeleteProfile(ctx context.Context, id int64) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored = nil
	}
	return nil
}

func (m *mockFreelancerRepo) SetVerification(ctx context.Context, id int64, verified bool, level string) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored.Verified = verified
		m.Stored.VerificationLevel = level
	}
	return nil
}

func (m *mockFreelancerRepo) UpdateRating(ctx context.Context, id int64, average float64, count int64) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored.AverageRating = average
		m.Stored.ReviewCount = count
	}
	return nil
}
