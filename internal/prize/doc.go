// Package prize back-calculates prize-pool estimates for a draw.
//
// Singapore Pools does not publish the total prize pool, so the estimator
// reverses it from the observed per-group payouts: each group's share of the
// pool is a fixed fraction, so prize * winners / fraction reconstructs the
// pool from any group that had winners. Group 1 is excluded from the
// reconstruction because its winner count is frequently zero. All outputs
// are best-effort estimates; the estimator never fails.
package prize
