/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee DAT Converter.
Provides the convert and diagnose commands with configuration management
and structured logging for turning legacy .dat exports into CSV or XLSX.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-datconv/cmd/datconv/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logFormat  string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datconv",
		Short: "Akaylee DAT Converter - legacy .dat to CSV/XLSX conversion",
		Long: `Akaylee DAT Converter inspects legacy .dat exports (delimited text,
fixed-width text, or self-describing binary tables), infers their encoding and
structure from a byte sample, and converts them to CSV or XLSX output. A
companion diagnose command prints the inference signals for human inspection
without writing any file.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
