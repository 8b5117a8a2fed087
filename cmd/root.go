package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stress-advisor/config"
	"stress-advisor/observability"
	"stress-advisor/service"
)

var (
	flagConfig    string
	flagInputFile string
)

var rootCmd = &cobra.Command{
	Use:           "stress-advisor",
	Short:         "Household financial stress scoring",
	Long:          "Score monthly income and expenses, compare what-if scenarios and explain the results.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a TOML config file")
}

// app bundles the services every command works with.
type app struct {
	cfg      config.Config
	log      *logrus.Logger
	metrics  *observability.Metrics
	stress   *service.StressService
	scenario *service.ScenarioService
	explain  *service.ExplainService
}

func newApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := observability.NewLogger(cfg.Server.LogLevel, logOut)
	metrics := observability.NewMetrics()

	generator, err := service.NewTextGenerator(cfg.LLM)
	if err != nil {
		return nil, err
	}
	if generator == nil {
		log.Info("no text-generation API key configured, explanations use the fallback")
	}

	stress := service.NewStressService(cfg.Scoring)
	return &app{
		cfg:      cfg,
		log:      log,
		metrics:  metrics,
		stress:   stress,
		scenario: service.NewScenarioService(stress),
		explain:  service.NewExplainService(generator, cfg.LLM.Timeout, cfg.CurrencyPrefix, log, metrics),
	}, nil
}

// readInput decodes JSON from path, or from stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
