package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fincore/bankd/internal/application/interfaces"
	"github.com/fincore/bankd/internal/application/services"
	"github.com/fincore/bankd/internal/config"
	"github.com/fincore/bankd/internal/domain/entities"
	"github.com/fincore/bankd/internal/interface/cli"
	"github.com/fincore/bankd/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "bankd",
	Short:        "In-memory banking ledger with an interactive menu",
	RunE:         run,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bankd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bankd %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/local.yml", "path to the config file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load application configurations.
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Create root logger tagged with the version.
	logger := logger.New(cfg).With(ctx, "version", Version)
	defer func() { _ = logger.Sync() }()

	bank, err := services.NewBankService(logger)
	if err != nil {
		return fmt.Errorf("failed to init bank service: %w", err)
	}

	if cfg.Bank.DemoSeed {
		if err := seed(ctx, bank); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	menu, err := cli.NewMenu(bank, os.Stdin, os.Stdout, logger)
	if err != nil {
		return fmt.Errorf("failed to init menu: %w", err)
	}

	return menu.Run(ctx)
}

// seed preloads a pair of clients with one account each so the menu is
// explorable right away.
func seed(ctx context.Context, bank interfaces.BankService) error {
	alice := entities.NewIndividual("Alice Souza", "alice@example.com", "111.222.333-44", "+55 11 99999-0000")
	if err := bank.AddClient(ctx, alice); err != nil {
		return err
	}
	acme := entities.NewOrganization("Acme", "finance@acme.example", "12.345.678/0001-90", "Acme Ltda")
	if err := bank.AddClient(ctx, acme); err != nil {
		return err
	}

	checking := entities.NewCheckingAccount(decimal.NewFromInt(1000), decimal.NewFromInt(500))
	if _, err := bank.AddAccount(ctx, alice.Document, checking); err != nil {
		return err
	}
	savings := entities.NewSavingsAccount(decimal.NewFromInt(5000), decimal.NewFromFloat(0.05), 10)
	if _, err := bank.AddAccount(ctx, acme.Document, savings); err != nil {
		return err
	}

	return nil
}
