package main

import (
	"github.com/spf13/cobra"

	"tradier/internal/domain"
)

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place or cancel orders",
	}
	cmd.AddCommand(newOrderPlaceCmd(a))
	cmd.AddCommand(newOrderCancelCmd(a))
	return cmd
}

func newOrderPlaceCmd(a *app) *cobra.Command {
	var (
		side, orderType, duration string
		optionSymbol, tag         string
		qty, price, stop          float64
	)

	cmd := &cobra.Command{
		Use:   "place SYMBOL",
		Short: "Place a single-leg equity or option order",
		Long: "Place a single-leg equity or option order. Opening orders are " +
			"checked against trading.max_position_pct and trading.max_daily_loss_pct first.",
		Example: "  tradier-cli order place AAPL --side buy --qty 10 --type limit --price 150.25\n" +
			"  tradier-cli order place SPY --option SPY190605C00282000 --side buy --qty 1",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			order := &domain.Order{
				Symbol:       args[0],
				OptionSymbol: optionSymbol,
				Class:        domain.AssetClassEquity,
				Side:         domain.OrderSide(side),
				Type:         domain.OrderType(orderType),
				TimeInForce:  domain.TimeInForce(duration),
				Qty:          qty,
				LimitPrice:   price,
				StopPrice:    stop,
				Tag:          tag,
			}
			if optionSymbol != "" {
				order.Class = domain.AssetClassOption
			}

			placed, err := e.SubmitOrder(cmd.Context(), order)
			if err != nil {
				return err
			}
			return a.print(placed)
		},
	}
	cmd.Flags().StringVar(&side, "side", string(domain.OrderSideBuy), "buy, sell, sell_short or buy_to_cover")
	cmd.Flags().StringVar(&orderType, "type", string(domain.OrderTypeMarket), "market, limit, stop or stop_limit")
	cmd.Flags().StringVar(&duration, "duration", string(domain.TimeInForceDay), "day, gtc, pre or post")
	cmd.Flags().Float64Var(&qty, "qty", 0, "Quantity in shares or contracts")
	cmd.Flags().Float64Var(&price, "price", 0, "Limit price")
	cmd.Flags().Float64Var(&stop, "stop", 0, "Stop price")
	cmd.Flags().StringVar(&optionSymbol, "option", "", "OCC option symbol; makes this an option order")
	cmd.Flags().StringVar(&tag, "tag", "", "Order tag (letters, digits and dashes); generated when empty")
	_ = cmd.MarkFlagRequired("qty")
	return cmd
}

func newOrderCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel an open order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			if err := e.CancelOrder(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.log.Info("order canceled", "order_id", args[0])
			return a.print(map[string]string{"id": args[0], "status": "canceled"})
		},
	}
}
