// Package main implements the kindra CLI, which runs the analytics engine
// over a JSON snapshot of connections, moments and cycles.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/infrastructure/persistence/memory"
	"kindra-backend/pkg/utils"
)

var (
	snapshotFile string
	userFlag     string
	nowFlag      string
	connFlag     string
	phaseFlag    string
	jsonOutput   bool
	verbose      bool

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kindra",
	Short: "Cycle-phase relationship analytics over a snapshot file",
	Long: `kindra loads a JSON snapshot of connections, moments and cycles and runs
the analytics engine over it.

Examples:
  # Aggregate insights across all connections
  kindra insights --file data.json

  # Pin the clock for reproducible output
  kindra predict --phase ovulation --now 2024-03-10 --file data.json`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotFile, "file", "f", "kindra.json", "snapshot file")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "local", "user id owning records without one")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "reference time (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log skipped records")

	variabilityCmd.Flags().StringVar(&connFlag, "connection", "", "restrict to one connection's cycles")
	predictCmd.Flags().StringVar(&connFlag, "connection", "", "restrict to one connection's cycles")
	predictCmd.Flags().StringVar(&phaseFlag, "phase", "ovulation", "phase to project")

	rootCmd.AddCommand(insightsCmd, connectionCmd, variabilityCmd, predictCmd)
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Aggregate insights across every connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		insights, err := env.service.AnalyticsInsights(cmd.Context(), env.user)
		if err != nil {
			return err
		}
		return output(cmd, insights, func() { renderInsights(cmd.OutOrStdout(), "Insights", insights) })
	},
}

var connectionCmd = &cobra.Command{
	Use:   "connection <id>",
	Short: "Cycle-aware insights for one connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		id, err := valueobjects.ParseConnectionID(args[0])
		if err != nil {
			return err
		}
		insights, err := env.service.ConnectionInsights(cmd.Context(), env.user, id)
		if err != nil {
			return err
		}
		return output(cmd, insights, func() { renderInsights(cmd.OutOrStdout(), "Connection "+id.String(), insights) })
	},
}

var variabilityCmd = &cobra.Command{
	Use:   "variability",
	Short: "Cycle length statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		connID, err := optionalConnection()
		if err != nil {
			return err
		}
		v, err := env.service.CycleVariability(cmd.Context(), env.user, connID)
		if err != nil {
			return err
		}
		return output(cmd, v, func() { renderVariability(cmd.OutOrStdout(), v) })
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Project the next occurrence of a phase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		connID, err := optionalConnection()
		if err != nil {
			return err
		}
		phase, err := valueobjects.ParsePhase(phaseFlag)
		if err != nil {
			return err
		}
		p, err := env.service.PredictOptimalTiming(cmd.Context(), env.user, connID, phase)
		if err != nil {
			return err
		}
		return output(cmd, p, func() { renderPrediction(cmd.OutOrStdout(), phase, p) })
	},
}

type environment struct {
	service *services.InsightService
	user    valueobjects.UserID
}

func setup() (*environment, error) {
	user, err := valueobjects.NewUserID(userFlag)
	if err != nil {
		return nil, err
	}
	clock, err := clockFor(nowFlag)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(snapshotFile)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	store := memory.NewStore()
	store.Load(snap, user)

	engine := analytics.NewEngine(analytics.WithClock(clock), analytics.WithLogger(logger))
	svc := services.NewInsightService(store.Connections(), store.Moments(), store.Cycles(), engine, nil, nil, nil, logger)
	return &environment{service: svc, user: user}, nil
}

func clockFor(now string) (analytics.Clock, error) {
	if now == "" {
		return analytics.SystemClock{}, nil
	}
	t, err := utils.ParseDate(now)
	if err != nil {
		return nil, fmt.Errorf("invalid --now: %w", err)
	}
	return analytics.FixedClock{T: t}, nil
}

func optionalConnection() (*valueobjects.ConnectionID, error) {
	if connFlag == "" {
		return nil, nil
	}
	id, err := valueobjects.ParseConnectionID(connFlag)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func loadSnapshot(path string) (memory.Snapshot, error) {
	var snap memory.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

func output(cmd *cobra.Command, v interface{}, text func()) error {
	if !jsonOutput {
		text()
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
