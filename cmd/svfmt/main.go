package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"svfmt/internal/config"
	"svfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "svfmt",
	Short: "SystemVerilog source formatter",
	Long:  `svfmt reformats SystemVerilog and Verilog sources with stable, configurable rules`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to the configuration file (default: ./"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of parallel workers (0 = all CPUs)")

	cobra.OnInitialize(applyColorMode)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.LoadOrDefault(path)
}
