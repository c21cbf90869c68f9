package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bprime/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	workers    int

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bprime",
	Short: "Generate B' ablation tables from an equilibrium solver",
	Long: `bprime runs the equilibrium solver once per blowing branch (Bg >= 0 and
Bg <= 0), joins both sweeps into one curve per pressure and temperature,
and resamples it onto a uniform grid written as a B' table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cmd.Flags().Changed("config") {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadOptional(configPath)
		}
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.Calculator.Workers = workers
		}
		return setupLog(cfg.Log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 4, "goroutines used to assemble the table")

	rootCmd.AddCommand(generateCmd, assembleCmd, serveCmd)
}

func setupLog(c config.LogConfig) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.WithError(err).Error("运行失败")
		os.Exit(1)
	}
}
