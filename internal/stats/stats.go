// Package stats derives summary analytics from stored draws: collection
// totals, per-ball frequencies, and prize pool trends.
package stats

import (
	"sort"
	"time"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

// Summary aggregates a draw collection.
type Summary struct {
	TotalDraws    int
	EarliestDraw  time.Time
	LatestDraw    time.Time
	RolloverCount int

	// AvgGroup1Prize averages the group 1 prize over draws that had a
	// group 1 winner. Zero when no draw did.
	AvgGroup1Prize float64

	// AvgPrizePool averages the estimated prize pool over draws carrying an
	// estimate.
	AvgPrizePool float64
}

// Summarize computes a Summary over the given draws.
func Summarize(records []draw.Record) Summary {
	var s Summary
	s.TotalDraws = len(records)

	var group1Total float64
	var group1Draws int
	var poolTotal float64
	var poolDraws int

	for i := range records {
		rec := &records[i]

		if s.EarliestDraw.IsZero() || rec.DrawDate.Before(s.EarliestDraw) {
			s.EarliestDraw = rec.DrawDate
		}
		if rec.DrawDate.After(s.LatestDraw) {
			s.LatestDraw = rec.DrawDate
		}

		g1 := rec.Group(1)
		if g1.Winners > 0 {
			group1Total += g1.Prize
			group1Draws++
		} else {
			s.RolloverCount++
		}

		if rec.EstimatedPrizePool > 0 {
			poolTotal += rec.EstimatedPrizePool
			poolDraws++
		}
	}

	if group1Draws > 0 {
		s.AvgGroup1Prize = group1Total / float64(group1Draws)
	}
	if poolDraws > 0 {
		s.AvgPrizePool = poolTotal / float64(poolDraws)
	}
	return s
}

// NumberFrequency counts how often each ball appeared among the winning
// numbers. The returned array is indexed by ball value; index 0 is unused.
func NumberFrequency(records []draw.Record) [draw.MaxNumber + 1]int {
	var freq [draw.MaxNumber + 1]int
	for i := range records {
		for _, n := range records[i].WinningNumbers {
			if n >= draw.MinNumber && n <= draw.MaxNumber {
				freq[n]++
			}
		}
	}
	return freq
}

// AdditionalFrequency counts how often each ball appeared as the additional
// number.
func AdditionalFrequency(records []draw.Record) [draw.MaxNumber + 1]int {
	var freq [draw.MaxNumber + 1]int
	for i := range records {
		if n := records[i].AdditionalNumber; n >= draw.MinNumber && n <= draw.MaxNumber {
			freq[n]++
		}
	}
	return freq
}

// BallCount pairs a ball with its appearance count.
type BallCount struct {
	Ball  int
	Count int
}

// HotNumbers returns the n most frequently drawn balls, most frequent first.
// Ties break toward the lower ball.
func HotNumbers(records []draw.Record, n int) []BallCount {
	return rankedBalls(NumberFrequency(records), n, func(a, b BallCount) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Ball < b.Ball
	})
}

// ColdNumbers returns the n least frequently drawn balls, least frequent
// first. Ties break toward the lower ball.
func ColdNumbers(records []draw.Record, n int) []BallCount {
	return rankedBalls(NumberFrequency(records), n, func(a, b BallCount) bool {
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Ball < b.Ball
	})
}

func rankedBalls(freq [draw.MaxNumber + 1]int, n int, less func(a, b BallCount) bool) []BallCount {
	counts := make([]BallCount, 0, draw.MaxNumber)
	for ball := draw.MinNumber; ball <= draw.MaxNumber; ball++ {
		counts = append(counts, BallCount{Ball: ball, Count: freq[ball]})
	}
	sort.Slice(counts, func(i, j int) bool { return less(counts[i], counts[j]) })
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}

// TrendPoint is one draw's estimated prize pool, for plotting over time.
type TrendPoint struct {
	DrawNumber int
	DrawDate   time.Time
	PrizePool  float64
}

// PrizePoolTrend returns one point per draw carrying a prize pool estimate,
// ordered by draw number ascending.
func PrizePoolTrend(records []draw.Record) []TrendPoint {
	var points []TrendPoint
	for i := range records {
		rec := &records[i]
		if rec.EstimatedPrizePool <= 0 {
			continue
		}
		points = append(points, TrendPoint{
			DrawNumber: rec.DrawNumber,
			DrawDate:   rec.DrawDate,
			PrizePool:  rec.EstimatedPrizePool,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].DrawNumber < points[j].DrawNumber })
	return points
}
