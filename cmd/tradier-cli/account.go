package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradier/pkg/tradier"
)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the user profile and linked accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetUserProfile(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(p)
		},
	}
}

func newBalancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show account balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.account()
			if err != nil {
				return err
			}
			b, err := a.client.GetBalances(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(b)
		},
	}
}

func newAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show a summary of equity, cash and buying power",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.broker()
			if err != nil {
				return err
			}
			info, err := b.GetAccount(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(info)
		},
	}
}

func newPositionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List open positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.account()
			if err != nil {
				return err
			}
			positions, err := a.client.GetPositions(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(positions)
		},
	}
}

func newOrdersCmd(a *app) *cobra.Command {
	var includeTags bool
	var orderID int64

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, or show one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.account()
			if err != nil {
				return err
			}
			if orderID != 0 {
				o, err := a.client.GetOrder(cmd.Context(), id, orderID, includeTags)
				if err != nil {
					return err
				}
				return a.print(o)
			}
			orders, err := a.client.GetOrders(cmd.Context(), id, includeTags)
			if err != nil {
				return err
			}
			return a.print(orders)
		},
	}
	cmd.Flags().BoolVar(&includeTags, "tags", false, "Include order tags")
	cmd.Flags().Int64Var(&orderID, "id", 0, "Show a single order")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		page, limit  int
		activityType string
		start, end   string
		symbol       string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List account history events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.account()
			if err != nil {
				return err
			}
			q := &tradier.HistoryQuery{
				Page:         page,
				Limit:        limit,
				ActivityType: tradier.EventType(activityType),
				Symbol:       symbol,
			}
			if q.Start, err = parseDate(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if q.End, err = parseDate(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			events, err := a.client.GetHistory(cmd.Context(), id, q)
			if err != nil {
				return err
			}
			return a.print(events)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Events per page")
	cmd.Flags().StringVar(&activityType, "type", "", "Activity type (trade, option, ach, wire, dividend, fee, tax, journal, check, transfer, adjustment, interest)")
	cmd.Flags().StringVar(&start, "start", "", "First date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "Last date, YYYY-MM-DD")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Only events for this symbol")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(tradier.DateLayout, s)
}
