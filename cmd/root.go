package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/dinesim/dinesim/sim"
	"github.com/dinesim/dinesim/sim/trace"
)

var (
	// CLI flags for a single experiment run
	philosophers int    // Number of philosophers (and forks) on the ring
	meals        int    // Meals each philosopher must complete
	strategy     string // Acquisition strategy name
	seats        int    // Conductor seat capacity (0 = philosophers-1)
	seed         int64  // Master seed for think-time jitter
	thinkMax     int    // Max think duration in time units
	eatUnits     int    // Eat duration in time units
	timeoutUnits int    // Naive-timeout window in time units
	logLevel     string // Log verbosity level
	traceOut     string // Path to write the JSONL event trace (optional)
	configPath   string // YAML experiment file (overrides single-run flags)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dinesim",
	Short: "Contention simulator for dining-philosophers deadlock-avoidance strategies",
}

// runCmd executes one experiment from flags, or a batch from a YAML file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run dining experiments and report per-philosopher meal counts",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		configs := []sim.Config{{
			Philosophers: philosophers,
			Meals:        meals,
			Strategy:     sim.Strategy(strategy),
			Seats:        seats,
			Seed:         seed,
			Timing: sim.TimingConfig{
				ThinkMax:     thinkMax,
				EatUnits:     eatUnits,
				TimeoutUnits: timeoutUnits,
			},
		}}
		if configPath != "" {
			file, err := LoadExperimentFile(configPath)
			if err != nil {
				logrus.Fatalf("unable to read experiment config: %v", err)
			}
			configs = file.Configs()
		}

		var out *os.File
		if traceOut != "" {
			out, err = os.Create(traceOut)
			if err != nil {
				logrus.Fatalf("unable to create trace file: %v", err)
			}
			defer out.Close()
		}

		for _, cfg := range configs {
			res, err := sim.RunExperiment(cfg)
			if err != nil {
				logrus.Fatalf("experiment failed: %v", err)
			}
			sim.NewMetrics(res).Print()
			if out != nil {
				if err := trace.WriteEvents(out, res.Events); err != nil {
					logrus.Fatalf("unable to write trace: %v", err)
				}
			}
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&philosophers, "philosophers", 5, "Number of philosophers (and forks) on the ring")
	runCmd.Flags().IntVar(&meals, "meals", 10, "Meals each philosopher must complete")
	runCmd.Flags().StringVar(&strategy, "strategy", "asymmetric", "Acquisition strategy (naive, asymmetric, conductor, atomic, naive-timeout)")
	runCmd.Flags().IntVar(&seats, "seats", 0, "Conductor seat capacity (0 = philosophers-1)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for think-time jitter")
	runCmd.Flags().IntVar(&thinkMax, "think-max", 0, "Max think duration in time units (0 = default)")
	runCmd.Flags().IntVar(&eatUnits, "eat", 0, "Eat duration in time units (0 = default)")
	runCmd.Flags().IntVar(&timeoutUnits, "timeout", 0, "Naive-timeout window in time units (0 = default)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the JSONL event trace to this file")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML experiment file (overrides single-run flags)")

	rootCmd.AddCommand(runCmd)
}
