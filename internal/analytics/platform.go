package analytics

import (
	"sort"
	"time"

	"skillswap/internal/models"
)

// earningsPerProject is the mock revenue model used by the admin dashboard.
const earningsPerProject = 100

// MonthSignups is one point of the monthly signup trend.
type MonthSignups struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

// SkillCount is one entry of the popular-skills ranking.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// PlatformSummary is the admin rollup over the whole marketplace.
type PlatformSummary struct {
	Users                 int64          `json:"users"`
	Clients               int64          `json:"clients"`
	Freelancers           int64          `json:"freelancers"`
	Projects              int64          `json:"projects"`
	Bids                  int64          `json:"bids"`
	AverageBidsPerProject float64        `json:"averageBidsPerProject"`
	Earnings              int64          `json:"earnings"`
	Trend                 []MonthSignups `json:"trend"`
	PopularSkills         []SkillCount   `json:"popularSkills"`
}

// SummarizePlatform computes the admin dashboard numbers. Counts come from
// the caller (repo COUNT queries); the signup trend and skill ranking are
// folded from the full user and profile sets.
func SummarizePlatform(clients, freelancers, projects, bids int64, users []models.User, profiles []models.FreelancerProfile) PlatformSummary {
	s := PlatformSummary{
		Users:       clients + freelancers,
		Clients:     clients,
		Freelancers: freelancers,
		Projects:    projects,
		Bids:        bids,
		Earnings:    projects * earningsPerProject,
	}
	if projects > 0 {
		s.AverageBidsPerProject = round2(float64(bids) / float64(projects))
	}
	s.Trend = signupTrend(users)
	s.PopularSkills = popularSkills(profiles, 5)

	return s
}

func signupTrend(users []models.User) []MonthSignups {
	counts := make(map[time.Month]int)
	for _, u := range users {
		m := time.UnixMilli(u.Created).UTC().Month()
		counts[m]++
	}

	out := make([]MonthSignups, 0, len(counts))
	for m := time.January; m <= time.December; m++ {
		if c, ok := counts[m]; ok {
			out = append(out, MonthSignups{Month: m.String()[:3], Users: c})
		}
	}
	return out
}

func popularSkills(profiles []models.FreelancerProfile, top int) []SkillCount {
	counts := make(map[string]int)
	for _, p := range profiles {
		for _, skill := range p.Skills {
			counts[skill]++
		}
	}

	out := make([]SkillCount, 0, len(counts))
	for skill, c := range counts {
		out = append(out, SkillCount{Skill: skill, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > top {
		out = out[:top]
	}
	return out
}
