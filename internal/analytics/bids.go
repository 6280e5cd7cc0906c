// Package analytics computes read-only rollups over projects, bids and
// reviews for the dashboards. Everything here is pure: callers fetch the
// rows, these functions only fold them.
package analytics

import (
	"math"

	"skillswap/internal/models"
)

// BidSummary aggregates a set of bids for the admin and freelancer
// dashboards.
type BidSummary struct {
	TotalBids       int                      `json:"totalBids"`
	AverageBidPrice float64                  `json:"averageBidPrice"`
	HighestBid      float64                  `json:"highestBid"`
	LowestBid       float64                  `json:"lowestBid"`
	StatusCounts    map[models.BidStatus]int `json:"statusCounts"`
}

// SummarizeBids computes count, average (rounded to 2 decimals, 0 when the
// set is empty), extremes and a per-status histogram. Deterministic for a
// given bid set.
func SummarizeBids(bids []models.Bid) BidSummary {
	s := BidSummary{StatusCounts: make(map[models.BidStatus]int)}
	s.TotalBids = len(bids)
	if s.TotalBids == 0 {
		return s
	}

	var sum float64
	s.HighestBid = bids[0].Amount
	s.LowestBid = bids[0].Amount
	for _, b := range bids {
		sum += b.Amount
		if b.Amount > s.HighestBid {
			s.HighestBid = b.Amount
		}
		if b.Amount < s.LowestBid {
			s.LowestBid = b.Amount
		}
		s.StatusCounts[b.Status]++
	}
	s.AverageBidPrice = round2(sum / float64(s.TotalBids))

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
