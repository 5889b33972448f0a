package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	roitrack "github.com/swdee/go-roitrack"
)

// Version is the application version
const Version = "0.1.0"

var (
	// cfg is the configuration shared by subcommands, loaded before any
	// subcommand runs
	cfg roitrack.Config

	configPath  string
	logLevel    string
	trackerName string
	cpuCores    string
)

var rootCmd = &cobra.Command{
	Use:     "roitrack",
	Short:   "Interactive region of interest tracking for video",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

		var err error
		cfg, err = loadConfig(cmd)

		if err != nil {
			return err
		}

		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logrus.SetLevel(level)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		if cfg.CPUCores != "" {
			cores, _ := roitrack.ParseCoreList(cfg.CPUCores)

			if err := roitrack.SetCPUAffinity(roitrack.CPUCoreMask(cores)); err != nil {
				logrus.WithError(err).Warn("failed to set CPU affinity")
			}

			if mask, err := roitrack.GetCPUAffinity(); err == nil {
				logrus.WithFields(logrus.Fields{
					"cores": cfg.CPUCores,
					"mask":  fmt.Sprintf("%#x", mask),
				}).Info("CPU affinity")
			}
		}

		return nil
	},
}

// loadConfig reads the config file if given then applies flags that were
// set on the command line
func loadConfig(cmd *cobra.Command) (roitrack.Config, error) {

	c := roitrack.DefaultConfig()

	if configPath != "" {
		var err error
		c, err = roitrack.LoadConfig(configPath)

		if err != nil {
			return c, errors.Wrapf(err, "config %s", configPath)
		}
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}

	if flags.Changed("tracker") {
		c.Tracker = trackerName
	}

	if flags.Changed("cpu-cores") {
		c.CPUCores = cpuCores
	}

	return c, c.Validate()
}

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM
func Execute() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&trackerName, "tracker", "t", "csrt", "Tracking algorithm: csrt, kcf, mil")
	rootCmd.PersistentFlags().StringVar(&cpuCores, "cpu-cores", "", "CPU cores to pin the process to, eg: 4-7")
}
