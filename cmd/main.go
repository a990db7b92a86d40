package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/config"
	"github.com/veioenza/seqr/internal/logging"
	"github.com/veioenza/seqr/pkg/database"
)

type app struct {
	cfg *config.Config
	log *zap.Logger
}

func (a *app) openDB() (*gorm.DB, error) {
	return database.Connect(database.Config{
		Driver:   a.cfg.DB.Driver,
		Host:     a.cfg.DB.Host,
		Port:     a.cfg.DB.Port,
		User:     a.cfg.DB.User,
		Password: a.cfg.DB.Password,
		DBName:   a.cfg.DB.DBName,
		SSLMode:  a.cfg.DB.SSLMode,
		Debug:    a.cfg.App.Debug,
	}, a.log)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "seqr",
		Short: "seqr curation backend",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			a.cfg = config.Load()
			a.cfg.App.Debug = a.cfg.App.Debug || debug

			logger, err := logging.New(a.cfg.App.Debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and gin debug mode")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newMigrateCmd(a))

	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
