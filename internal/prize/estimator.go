package prize

import "github.com/pfrederiksen/toto-draws/internal/draw"

// Prize structure constants, per the published TOTO prize structure.
const (
	// EntryPrice is the cost of one ordinary entry.
	EntryPrice = 1.00

	// ContributionRate is the share of ticket sales that funds the pool.
	ContributionRate = 0.54

	// NominalEntries is the assumed ticket volume for a typical draw, used
	// only when no group had any winners to reconstruct the pool from.
	NominalEntries = 2_000_000
)

// allocations holds each group's fixed fraction of the total pool,
// groups 1 through 7 at indexes 0 through 6.
var allocations = [draw.NumGroups]float64{
	0.38,  // Group 1
	0.08,  // Group 2
	0.05,  // Group 3
	0.03,  // Group 4
	0.04,  // Group 5
	0.205, // Group 6
	0.205, // Group 7
}

// Estimate holds the derived figures for one draw.
type Estimate struct {
	PrizePool           float64
	ExpectedGroup1Prize float64
	EstimatedSales      float64
	RolloverAmount      float64
}

// Compute estimates the prize pool and derived figures for a record.
//
// For each of groups 2 through 7 with at least one winner, the pool is
// reconstructed as prize*winners/allocation; the estimates are averaged.
// With no winners anywhere, the pool falls back to the nominal ticket
// volume times entry price times contribution rate. The rollover amount is
// the expected group-1 prize when group 1 had no winners, otherwise zero.
func Compute(rec *draw.Record) Estimate {
	var sum float64
	var count int
	for g := 2; g <= draw.NumGroups; g++ {
		stat := rec.Group(g)
		if stat.Winners <= 0 {
			continue
		}
		sum += stat.Prize * float64(stat.Winners) / allocations[g-1]
		count++
	}

	pool := NominalEntries * EntryPrice * ContributionRate
	if count > 0 {
		pool = sum / float64(count)
	}

	est := Estimate{
		PrizePool:           pool,
		ExpectedGroup1Prize: pool * allocations[0],
		EstimatedSales:      pool / ContributionRate,
	}
	if rec.Group(1).Winners == 0 {
		est.RolloverAmount = est.ExpectedGroup1Prize
	}
	return est
}

// Apply computes the estimate for rec and writes the derived fields back
// onto it.
func Apply(rec *draw.Record) {
	est := Compute(rec)
	rec.EstimatedPrizePool = est.PrizePool
	rec.ExpectedGroup1Prize = est.ExpectedGroup1Prize
	rec.EstimatedSales = est.EstimatedSales
	rec.RolloverAmount = est.RolloverAmount
}
