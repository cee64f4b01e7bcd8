package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maximkravchenko/fintui/financery"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// Global variables for configuration.
var (
	cfgFile  string
	debug    bool
	baseURL  string
	currency string
	client   *financery.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fintui",
	Short: "A terminal UI and CLI for Financery",
	Long:  `A terminal-based interface and CLI for managing accounts, transactions, and tags on a Financery backend.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Setup logging
		log.SetLevel(log.InfoLevel)
		if debug {
			log.SetLevel(log.DebugLevel)
		}

		// Validate backend address
		if baseURL == "" {
			return errors.New("backend address is required (set via --base-url flag, " +
				"FINTUI_BASE_URL environment variable, or config file)")
		}

		var err error
		client, err = financery.NewClient(baseURL, financery.WithCurrency(currency))
		if err != nil {
			return fmt.Errorf("failed to create Financery client: %w", err)
		}

		loggingTransport := newLoggingTransport(client.HTTP.Transport, log.Default())
		client.HTTP.Transport = loggingTransport

		return nil
	},
	RunE: func(c *cobra.Command, _ []string) error {
		// Start TUI when no subcommands are provided
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Debug = debug
		cfg.BaseURL = baseURL
		cfg.Currency = currency

		return rootAction(c.Context(), *cfg, client)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	// a .env file in the working directory can carry FINTUI_* variables
	_ = godotenv.Load()

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fintui.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "the Financery backend address")
	rootCmd.PersistentFlags().StringVar(&currency, "currency", financery.DefaultCurrency, "display currency code")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency"))

	// Bind environment variables
	_ = viper.BindEnv("base_url", "FINTUI_BASE_URL")
	_ = viper.BindEnv("currency", "FINTUI_CURRENCY")

	// Add subcommands
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(statsCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("Error finding home directory", "error", err)
			os.Exit(1)
		}

		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		viper.AddConfigPath(".")
		viper.SetConfigName("fintui")
		viper.SetConfigType("toml")

		// User config directory
		if configDir, configErr := os.UserConfigDir(); configErr == nil {
			viper.AddConfigPath(filepath.Join(configDir, "fintui"))
		}

		// User home directory
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "fintui"))

		// System-wide config directory (lowest precedence)
		viper.AddConfigPath("/etc/fintui")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
	} else {
		log.Debug("Using config file", "file", viper.ConfigFileUsed())
	}

	// Update global variables from viper
	if !rootCmd.PersistentFlags().Changed("debug") {
		debug = viper.GetBool("debug")
	}
	if !rootCmd.PersistentFlags().Changed("base-url") {
		baseURL = viper.GetString("base_url")
	}
	if !rootCmd.PersistentFlags().Changed("currency") && viper.GetString("currency") != "" {
		currency = viper.GetString("currency")
	}
}

func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", fmt.Errorf("failed to read output flag: %w", err)
	}

	if outputFormat != jsonOutputFormat && outputFormat != tableOutputFormat {
		return "", fmt.Errorf("unsupported output format %q, expected %q or %q",
			outputFormat, tableOutputFormat, jsonOutputFormat)
	}

	return outputFormat, nil
}

// Utility functions for output formatting.
func outputJSON(cmd *cobra.Command, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func createStyledTable(headers ...string) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
