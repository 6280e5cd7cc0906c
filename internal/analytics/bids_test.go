package analytics_test

import (
	"testing"

	"skillswap/internal/analytics"
	"skillswap/internal/models"
)

func TestSummarizeBids_Empty(t *testing.T) {
	s := analytics.SummarizeBids(nil)
	if s.TotalBids != 0 {
		t.Errorf("expected 0 total got %d", s.TotalBids)
	}
	if s.AverageBidPrice != 0 {
		t.Errorf("expected 0 average got %v", s.AverageBidPrice)
	}
	if s.HighestBid != 0 || s.LowestBid != 0 {
		t.Errorf("expected 0 extremes got %v / %v", s.HighestBid, s.LowestBid)
	}
	if len(s.StatusCounts) != 0 {
		t.Errorf("expected empty status counts got %v", s.StatusCounts)
	}
}

func TestSummarizeBids_TwoBids(t *testing.T) {
	bids := []models.Bid{
		{Amount: 10, Status: models.BidPending},
		{Amount: 30, Status: models.BidAccepted},
	}
	s := analytics.SummarizeBids(bids)
	if s.TotalBids != 2 {
		t.Errorf("expected 2 total got %d", s.TotalBids)
	}
	if s.AverageBidPrice != 20.00 {
		t.Errorf("expected average 20.00 got %v", s.AverageBidPrice)
	}
	if s.HighestBid != 30 {
		t.Errorf("expected highest 30 got %v", s.HighestBid)
	}
	if s.LowestBid != 10 {
		t.Errorf("expected lowest 10 got %v", s.LowestBid)
	}
	if s.StatusCounts[models.BidPending] != 1 || s.StatusCounts[models.BidAccepted] != 1 {
		t.Errorf("unexpected status counts: %v", s.StatusCounts)
	}
}

func TestSummarizeBids_AverageRounding(t *testing.T) {
	bids := []models.Bid{
		{Amount: 10, Status: models.BidPending},
		{Amount: 10, Status: models.BidPending},
		{Amount: 11, Status: models.BidRejected},
	}
	s := analytics.SummarizeBids(bids)
	// 31/3 = 10.333...
	if s.AverageBidPrice != 10.33 {
		t.Errorf("expected average 10.33 got %v", s.AverageBidPrice)
	}
	if s.StatusCounts[models.BidPending] != 2 {
		t.Errorf("expected 2 pending got %d", s.StatusCounts[models.BidPending])
	}
}

func TestSummarizeClientProjects(t *testing.T) {
	f1, f2 := int64(1), int64(2)
	projects := []models.Project{
		{Status: models.ProjectInProgress},
		{Status: models.ProjectCompleted, FreelancerID: &f1},
		{Status: models.ProjectCompleted, FreelancerID: &f1},
		{Status: models.ProjectCompleted, FreelancerID: &f2},
		{Status: models.ProjectOpen},
	}
	reviews := analytics.ReviewsByFreelancer{
		f1: {{Rating: 4}, {Rating: 5}},
	}
	names := map[int64]string{f1: "Alice"}

	d := analytics.SummarizeClientProjects(projects, reviews, names)
	if d.ActiveProjects != 1 {
		t.Errorf("expected 1 active got %d", d.ActiveProjects)
	}
	if d.CompletedProjects != 3 {
		t.Errorf("expected 3 completed got %d", d.CompletedProjects)
	}
	if len(d.FreelancerStats) != 2 {
		t.Fatalf("expected 2 freelancer stats got %d", len(d.FreelancerStats))
	}
	if d.FreelancerStats[0].Name != "Alice" || d.FreelancerStats[0].Projects != 2 {
		t.Errorf("unexpected first stat: %+v", d.FreelancerStats[0])
	}
	if d.FreelancerStats[0].AvgRating != 4.5 {
		t.Errorf("expected avg rating 4.5 got %v", d.FreelancerStats[0].AvgRating)
	}
	if d.FreelancerStats[1].Name != "Unknown" || d.FreelancerStats[1].AvgRating != 0 {
		t.Errorf("unexpected second stat: %+v", d.FreelancerStats[1])
	}
}

func TestSummarizePlatform(t *testing.T) {
	users := []models.User{
		{Created: 1704067200000}, // Jan
		{Created: 1706745600000}, // Feb
		{Created: 1706832000000}, // Feb
	}
	profiles := []models.FreelancerProfile{
		{Skills: []string{"go", "sql"}},
		{Skills: []string{"go"}},
		{Skills: []string{"react"}},
	}

	s := analytics.SummarizePlatform(2, 3, 4, 10, users, profiles)
	if s.Users != 5 {
		t.Errorf("expected 5 users got %d", s.Users)
	}
	if s.AverageBidsPerProject != 2.5 {
		t.Errorf("expected 2.5 bids/project got %v", s.AverageBidsPerProject)
	}
	if s.Earnings != 400 {
		t.Errorf("expected earnings 400 got %d", s.Earnings)
	}
	if len(s.Trend) != 2 || s.Trend[0].Month != "Jan" || s.Trend[1].Users != 2 {
		t.Errorf("unexpected trend: %+v", s.Trend)
	}
	if len(s.PopularSkills) != 3 || s.PopularSkills[0].Skill != "go" || s.PopularSkills[0].Count != 2 {
		t.Errorf("unexpected popular skills: %+v", s.PopularSkills)
	}
}

func TestSummarizePlatform_NoProjects(t *testing.T) {
	s := analytics.SummarizePlatform(0, 0, 0, 0, nil, nil)
	if s.AverageBidsPerProject != 0 {
		t.Errorf("expected 0 bids/project got %v", s.AverageBidsPerProject)
	}
	if s.Earnings != 0 {
		t.Errorf("expected 0 earnings got %d", s.Earnings)
	}
}
