package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tradier/internal/broker"
	"tradier/internal/config"
	"tradier/internal/engine"
	"tradier/internal/util"
	"tradier/pkg/tradier"
)

const version = "0.1.0"

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	configPath string
	accountID  string
	debug      bool

	cfg    *config.Config
	log    *slog.Logger
	client *tradier.Client
	out    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tradier-cli",
		Short:         "Query and trade a Tradier brokerage account",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	defaultConfig := os.Getenv("TRADIER_CONFIG")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfig, "Path to YAML config file (env TRADIER_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&a.accountID, "account", "a", "", "Account ID, overriding tradier.account_id")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Log HTTP requests and responses")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newBalancesCmd(a))
	rootCmd.AddCommand(newAccountCmd(a))
	rootCmd.AddCommand(newPositionsCmd(a))
	rootCmd.AddCommand(newOrdersCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newQuotesCmd(a))
	rootCmd.AddCommand(newTimeSalesCmd(a))
	rootCmd.AddCommand(newBarsCmd(a))
	rootCmd.AddCommand(newOrderCmd(a))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradier-cli %s\n", version)
		},
	}
}

// setup loads configuration and builds the logger and API client. Logs go to
// errOut.
func (a *app) setup(out, errOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.accountID != "" {
		cfg.Tradier.AccountID = a.accountID
	}
	if a.debug {
		cfg.Tradier.Debug = true
	}
	// HTTP dumps are logged at debug level.
	if cfg.Tradier.Debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.out = out
	a.log = util.NewLoggerTo(errOut, cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(a.log)

	a.client = tradier.NewClient(cfg.Tradier.ClientConfig(),
		tradier.WithTimeout(cfg.Tradier.Timeout),
		tradier.WithLogger(a.log.With("component", "tradier")),
		tradier.WithDebug(cfg.Tradier.Debug),
	)
	a.log.Debug("client ready", "endpoint", a.client.Endpoint(), "account", cfg.Tradier.AccountID)
	return nil
}

// account returns the configured account ID or an error naming how to set it.
func (a *app) account() (string, error) {
	if a.cfg.Tradier.AccountID == "" {
		return "", errors.New("no account: pass --account or set tradier.account_id / TRADIER_ACCOUNT_ID")
	}
	return a.cfg.Tradier.AccountID, nil
}

func (a *app) broker() (*broker.TradierBroker, error) {
	id, err := a.account()
	if err != nil {
		return nil, err
	}
	return broker.NewTradierBroker(a.client, id, a.log), nil
}

// engine wraps the account's broker with the configured risk limits.
func (a *app) engine() (*engine.Engine, error) {
	b, err := a.broker()
	if err != nil {
		return nil, err
	}
	risk := engine.NewRiskManager(a.cfg.Trading.MaxPositionPct, a.cfg.Trading.MaxDailyLossPct)
	return engine.NewEngine(b, b, risk, a.log), nil
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
