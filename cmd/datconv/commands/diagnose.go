/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: diagnose.go
Description: Diagnose command implementation for the Akaylee DAT Converter.
Prints the format and encoding inference signals for a .dat file so a human
can verify or override the sniffer's verdict. Writes no output file.
*/

package commands

import (
	"os"

	"github.com/kleascm/akaylee-datconv/pkg/diagnose"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose <input.dat>",
		Short: "Print a diagnostic report for a .dat file",
		Long: `Diagnose inspects a byte sample of the input file and prints every
signal the sniffer uses: hex view, byte order marks, encoding trials, delimiter
counts, binary-table schema, and the final format guess. Read-only; no file is
written.`,
		Args: cobra.ExactArgs(1),
		RunE: RunDiagnose,
	}

	cmd.Flags().Int("sample-size", 0, "Sniffing sample size in bytes")
	viper.BindPFlag("diagnose_sample_size", cmd.Flags().Lookup("sample-size"))

	return cmd
}

// RunDiagnose prints the diagnostic report for one input file
func RunDiagnose(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}
	if _, err := SetupLogging(); err != nil {
		return err
	}

	reporter := diagnose.NewReporter()
	if size := viper.GetInt("diagnose_sample_size"); size > 0 {
		reporter.SetSampleSize(size)
	}
	return reporter.Report(args[0], os.Stdout)
}
