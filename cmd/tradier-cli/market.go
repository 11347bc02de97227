package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradier/internal/export"
	"tradier/internal/util"
	"tradier/pkg/tradier"
)

// wallLayout is how --start and --end are read, in exchange time.
const wallLayout = "2006-01-02 15:04"

func newQuotesCmd(a *app) *cobra.Command {
	var greeks bool

	cmd := &cobra.Command{
		Use:   "quotes SYMBOL...",
		Short: "Show quotes for equity or option symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.client.GetQuotes(cmd.Context(), args, greeks)
			if err != nil {
				return err
			}
			if len(q.Unmatched) > 0 {
				a.log.Warn("unknown symbols", "symbols", q.Unmatched)
			}
			return a.print(q)
		},
	}
	cmd.Flags().BoolVar(&greeks, "greeks", false, "Include option greeks")
	return cmd
}

func newTimeSalesCmd(a *app) *cobra.Command {
	var interval, start, end, session string

	cmd := &cobra.Command{
		Use:   "timesales SYMBOL",
		Short: "Show time and sales bars",
		Long: "Show time and sales bars. --start and --end are exchange-local " +
			"(America/New_York) wall times in the form \"YYYY-MM-DD HH:MM\"; " +
			"returned times are UTC.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := tradier.TimeSalesQuery{
				Symbol:        args[0],
				Interval:      tradier.Interval(interval),
				SessionFilter: tradier.SessionFilter(session),
			}
			var err error
			if q.Start, err = parseWall(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if q.End, err = parseWall(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			series, err := a.client.GetTimeAndSales(cmd.Context(), q)
			if err != nil {
				return err
			}
			return a.print(series)
		},
	}
	cmd.Flags().StringVar(&interval, "interval", string(tradier.Interval1Min), "Bar width: tick, 1min, 5min or 15min")
	cmd.Flags().StringVar(&start, "start", "", "Start, exchange-local \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().StringVar(&end, "end", "", "End, exchange-local \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().StringVar(&session, "session", "", "Session filter: all or open")
	return cmd
}

func newBarsCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		date     string
		out      string
		appendTo bool
	)

	cmd := &cobra.Command{
		Use:   "bars SYMBOL",
		Short: "Fetch one regular session of bars, optionally exporting to Parquet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				var err error
				if day, err = util.ParseSessionDay(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}
			if !util.IsWeekday(day) {
				return fmt.Errorf("%s is a weekend day", util.ToExchange(day).Format(tradier.DateLayout))
			}
			open, close := util.RegularSession(day)

			b, err := a.broker()
			if err != nil {
				return err
			}
			bars, err := b.GetBars(cmd.Context(), args[0], interval, open, close)
			if err != nil {
				return err
			}

			if out == "" {
				return a.print(bars)
			}
			write := export.WriteBars
			if appendTo {
				write = export.AppendBars
			}
			if err := write(out, bars); err != nil {
				return err
			}
			a.log.Info("bars exported", "symbol", args[0], "count", len(bars), "path", out)
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Bar width: 1m, 5m or 15m (0 for ticks)")
	cmd.Flags().StringVar(&date, "date", "", "Session date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write bars to this Parquet file instead of stdout")
	cmd.Flags().BoolVar(&appendTo, "append", false, "Merge into an existing Parquet file")
	return cmd
}

// parseWall reads an exchange-local wall time; empty means unset.
func parseWall(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return util.ParseExchange(wallLayout, s)
}
