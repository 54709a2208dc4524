package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"StrategyLab/config"
	"StrategyLab/internal/handlers"
	"StrategyLab/internal/models"
	binanceops "StrategyLab/internal/operations/binance"
	"StrategyLab/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	root := &cobra.Command{
		Use:   "strategylab",
		Short: "Simulate declarative trading strategies against daily price history",
	}
	root.AddCommand(newFetchCmd(), newValidateCmd(), newSimulateCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func newSimulateCmd() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a strategy spec end to end and print metrics and trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyLogLevel(cfg.LogLevel)

			specData, err := os.ReadFile(specPath)
			if err != nil {
				return fmt.Errorf("failed to read spec file: %w", err)
			}

			priceHandler, err := buildPriceHandler(cfg.Exchange, cfg.Database)
			if err != nil {
				return err
			}

			handler := handlers.NewSimulationHandler(priceHandler)
			result, err := handler.Run(context.Background(), specData)
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to strategy spec JSON")
	cmd.MarkFlagRequired("spec")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a strategy spec for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			specData, err := os.ReadFile(specPath)
			if err != nil {
				return fmt.Errorf("failed to read spec file: %w", err)
			}

			handler := handlers.NewSimulationHandler(nil)
			spec, result, err := handler.Validate(specData)
			if err != nil {
				return err
			}

			fmt.Printf("Spec: %s %s to %s\n", spec.Ticker,
				spec.StartDate.Format("2006-01-02"), spec.EndDate.Format("2006-01-02"))
			for _, e := range result.Errors {
				fmt.Printf("ERROR: %s\n", e)
			}
			for _, w := range result.Warnings {
				fmt.Printf("WARNING: %s\n", w)
			}
			if result.OK {
				fmt.Println("Spec is structurally valid.")
				return nil
			}
			return fmt.Errorf("spec has %d error(s)", len(result.Errors))
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to strategy spec JSON")
	cmd.MarkFlagRequired("spec")
	return cmd
}

func newFetchCmd() *cobra.Command {
	var ticker, startStr, endStr string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and store daily price history for a ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyLogLevel(cfg.LogLevel)

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start date: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end date: %w", err)
			}

			priceHandler, err := buildPriceHandler(cfg.Exchange, cfg.Database)
			if err != nil {
				return err
			}

			bars, err := priceHandler.EnsureHistory(context.Background(), ticker, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("Stored %d daily bars for %s\n", len(bars), ticker)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker symbol")
	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "end date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("ticker")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func buildPriceHandler(exchange config.ExchangeConfig, database config.DatabaseConfig) (*handlers.PriceHandler, error) {
	db, err := setupDatabase(database)
	if err != nil {
		return nil, err
	}

	priceRepo := repositories.NewPriceRepository(db)
	client := binanceops.NewClient(exchange.APIKey, exchange.SecretKey)
	return handlers.NewPriceHandler(client, priceRepo), nil
}

func setupDatabase(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Price{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func printResult(result *handlers.SimulationResult) {
	fmt.Println("\n=== Simulation Results ===")
	fmt.Printf("Ticker: %s\n", result.Spec.Ticker)
	fmt.Printf("CAGR: %.2f%%\n", result.Metrics["cagr"]*100)
	fmt.Printf("Max Drawdown: %.2f%%\n", result.Metrics["max_drawdown"]*100)
	fmt.Printf("Sharpe Ratio: %.2f\n", result.Metrics["sharpe"])
	fmt.Printf("Trades: %.0f\n", result.Metrics["num_trades"])

	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if len(result.Trades) > 0 {
		fmt.Println("\nTrade Ledger:")
		for i, t := range result.Trades {
			fmt.Printf("%d. %s @ %.2f -> %s @ %.2f (%+.2f%%)\n",
				i+1,
				t.EntryDate.Format("2006-01-02"), t.EntryPrice,
				t.ExitDate.Format("2006-01-02"), t.ExitPrice,
				t.PnLPct)
			fmt.Printf("   entry: %s\n", t.EntryReason)
			fmt.Printf("   exit:  %s\n", t.ExitReason)
		}
	}
}

func applyLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
