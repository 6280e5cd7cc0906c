package sqlite_test

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

func TestUserRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, &models.User{
		Name:         "Ada",
		Email:        "ada@example.com",
		Role:         models.RoleClient,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	byID, err := repo.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := repo.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("unexpected user by email: %+v", byEmail)
	}
	if byEmail.PasswordHash != "hash" {
		t.Errorf("password hash not persisted")
	}
}

func TestGetUser_MissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u, err := repo.GetUserByID(ctx, 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}

	u, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing email, got %+v", u)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "A", Email: "dup@example.com", Role: models.RoleClient, PasswordHash: "h"}
	if _, err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.CreateUser(ctx, u); err == nil {
		t.Fatal("expected unique constraint violation on duplicate email")
	}
}

func TestCountUsersByRole(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	users := []models.User{
		{Name: "C1", Email: "c1@example.com", Role: models.RoleClient, PasswordHash: "h"},
		{Name: "C2", Email: "c2@example.com", Role: models.RoleClient, PasswordHash: "h"},
		{Name: "F1", Email: "f1@example.com", Role: models.RoleFreelancer, PasswordHash: "h"},
	}
	for i := range users {
		if _, err := repo.CreateUser(ctx, &users[i]); err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
	}

	clients, err := repo.CountUsersByRole(ctx, models.RoleClient)
	if err != nil {
		t.Fatalf("count clients: %v", err)
	}
	if clients != 2 {
		t.Errorf("expected 2 clients got %d", clients)
	}
	freelancers, err := repo.CountUsersByRole(ctx, models.RoleFreelancer)
	if err != nil {
		t.Fatalf("count freelancers: %v", err)
	}
	if freelancers != 1 {
		t.Errorf("expected 1 freelancer got %d", freelancers)
	}
}
