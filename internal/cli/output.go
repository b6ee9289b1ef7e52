package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pfrederiksen/toto-draws/internal/draw"
	"github.com/pfrederiksen/toto-draws/internal/stats"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// UpdateOutput reports one update run.
type UpdateOutput struct {
	CheckedAt  time.Time `json:"checked_at"`
	Appended   int       `json:"appended"`
	Skipped    int       `json:"skipped"`
	Errors     []string  `json:"errors,omitempty"`
	TotalDraws int       `json:"total_draws"`
}

// ListOutput carries draws for display.
type ListOutput struct {
	Draws []draw.Record `json:"draws"`
	Count int           `json:"count"`
}

// StatsOutput carries collection analytics.
type StatsOutput struct {
	Summary stats.Summary      `json:"summary"`
	Hot     []stats.BallCount  `json:"hot_numbers"`
	Cold    []stats.BallCount  `json:"cold_numbers"`
	Trend   []stats.TrendPoint `json:"prize_pool_trend,omitempty"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// money renders a dollar amount with thousands separators.
func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// WriteUpdate writes an update result in the specified format.
func WriteUpdate(w io.Writer, result *UpdateOutput, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if result.Appended == 0 {
		fmt.Fprintln(w, "No new draws found.")
	} else {
		fmt.Fprintf(w, "Appended %d new draws.\n", result.Appended)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d draws.\n", result.Skipped)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  failed: %s\n", e)
	}
	fmt.Fprintf(w, "Store holds %s draws.\n", humanize.Comma(int64(result.TotalDraws)))
	return nil
}

// WriteList writes stored draws in the specified format.
func WriteList(w io.Writer, result *ListOutput, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if result.Count == 0 {
		fmt.Fprintln(w, "No draws found.")
		return nil
	}

	for i := range result.Draws {
		rec := &result.Draws[i]
		fmt.Fprintf(w, "Draw %d (%s): %s\n",
			rec.DrawNumber, rec.DrawDate.Format("2006-01-02"), rec.FormatNumbers())
		if verbose {
			for g := 1; g <= draw.NumGroups; g++ {
				stat := rec.Group(g)
				if stat.Winners == 0 && stat.Prize == 0 {
					continue
				}
				fmt.Fprintf(w, "    Group %d: %s winners at %s\n",
					g, humanize.Comma(int64(stat.Winners)), money(stat.Prize))
			}
			if rec.EstimatedPrizePool > 0 {
				fmt.Fprintf(w, "    Estimated prize pool: %s\n", money(rec.EstimatedPrizePool))
			}
			if rec.RolloverAmount > 0 {
				fmt.Fprintf(w, "    Rollover: %s\n", money(rec.RolloverAmount))
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d draws\n", result.Count)
	return nil
}

// WriteStats writes collection analytics in the specified format. The prize
// pool trend is included in text output only when verbose.
func WriteStats(w io.Writer, result *StatsOutput, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	s := result.Summary
	if s.TotalDraws == 0 {
		fmt.Fprintln(w, "No draws recorded.")
		return nil
	}

	fmt.Fprintf(w, "Draws recorded: %s (%s to %s)\n",
		humanize.Comma(int64(s.TotalDraws)),
		s.EarliestDraw.Format("2006-01-02"),
		s.LatestDraw.Format("2006-01-02"))
	fmt.Fprintf(w, "Rollovers: %s\n", humanize.Comma(int64(s.RolloverCount)))
	if s.AvgGroup1Prize > 0 {
		fmt.Fprintf(w, "Average Group 1 prize: %s\n", money(s.AvgGroup1Prize))
	}
	if s.AvgPrizePool > 0 {
		fmt.Fprintf(w, "Average prize pool: %s\n", money(s.AvgPrizePool))
	}

	fmt.Fprintf(w, "Hot numbers: %s\n", formatBalls(result.Hot))
	fmt.Fprintf(w, "Cold numbers: %s\n", formatBalls(result.Cold))

	if verbose && len(result.Trend) > 0 {
		fmt.Fprintln(w, "\nPrize pool trend:")
		for _, p := range result.Trend {
			fmt.Fprintf(w, "  Draw %d (%s): %s\n",
				p.DrawNumber, p.DrawDate.Format("2006-01-02"), money(p.PrizePool))
		}
	}
	return nil
}

func formatBalls(balls []stats.BallCount) string {
	if len(balls) == 0 {
		return "n/a"
	}
	out := ""
	for i, b := range balls {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d (x%d)", b.Ball, b.Count)
	}
	return out
}
