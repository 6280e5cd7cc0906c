package analytics

import "skillswap/internal/models"

// FreelancerStat is one row of the client dashboard: how many of the
// client's completed projects a freelancer delivered and their average
// review rating.
type FreelancerStat struct {
	Name      string  `json:"name"`
	Projects  int     `json:"projects"`
	AvgRating float64 `json:"avgRating"`
}

// ClientDashboard is the per-client rollup.
type ClientDashboard struct {
	ActiveProjects    int              `json:"activeProjects"`
	CompletedProjects int              `json:"completedProjects"`
	FreelancerStats   []FreelancerStat `json:"freelancerStats"`
}

// ReviewsByFreelancer maps a freelancer profile id to their reviews.
type ReviewsByFreelancer map[int64][]models.Review

// SummarizeClientProjects builds the client dashboard from the client's
// projects (optionally pre-filtered by date), the reviews of each involved
// freelancer and a resolver from freelancer profile id to display name.
func SummarizeClientProjects(projects []models.Project, reviews ReviewsByFreelancer, names map[int64]string) ClientDashboard {
	var d ClientDashboard
	perFreelancer := make(map[int64]int)
	var order []int64

	for _, p := range projects {
		switch p.Status {
		case models.ProjectInProgress:
			d.ActiveProjects++
		case models.ProjectCompleted:
			d.CompletedProjects++
			if p.FreelancerID != nil {
				id := *p.FreelancerID
				if _, seen := perFreelancer[id]; !seen {
					order = append(order, id)
				}
				perFreelancer[id]++
			}
		}
	}

	d.FreelancerStats = make([]FreelancerStat, 0, len(order))
	for _, id := range order {
		stat := FreelancerStat{Projects: perFreelancer[id]}
		if name, ok := names[id]; ok {
			stat.Name = name
		} else {
			stat.Name = "Unknown"
		}
		if rs := reviews[id]; len(rs) > 0 {
			var sum float64
			for _, r := range rs {
				sum += float64(r.Rating)
			}
			stat.AvgRating = round1(sum / float64(len(rs)))
		}
		d.FreelancerStats = append(d.FreelancerStats, stat)
	}

	return d
}
