package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/broadcast-sim/broadcast-sim/sim"
)

var (
	// CLI flags for catalog generation
	catalogItems int     // Number of data items in the catalog
	theta        float64 // Zipf skew parameter for popularity weights
	minSizeKiB   int64   // Smallest item size in KiB
	maxSizeKiB   int64   // Largest item size in KiB
	catalogSeed  int64   // Explicit catalog RNG seed (0 = derive from master seed)

	// CLI flags for the client workload
	clientCount    int   // Number of simulated clients
	minItems       int   // Fewest items per request
	maxItems       int   // Most items per request
	maxJitterSlots int64 // Arrival jitter bound in timeslots
	clientSeed     int64 // Explicit client RNG seed (0 = derive from master seed)

	// CLI flags for the broadcast server
	bandwidthKiB   int64 // Channel bandwidth in KiB/s
	timeslotMillis int64 // Timeslot length in milliseconds
	deltaSlots     int64 // Hard per-round slot budget

	seed         int64  // Master seed for all RNG subsystems
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file overriding the flags above
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "broadcast-sim",
	Short: "Simulator for push-based broadcast data dissemination scheduling",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the broadcast scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := scenarioFromFlags()
		if scenarioPath != "" {
			scenario, err = LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to load scenario %s: %v", scenarioPath, err)
			}
		}
		if err := scenario.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation with %d catalog items, %d clients, delta=%d slots, bandwidth=%dKiB/s",
			scenario.Catalog.Items, scenario.Workload.Clients, scenario.Server.DeltaSlots, scenario.Server.BandwidthKiB)

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(scenario.Seed))
		if scenario.Catalog.Seed != 0 {
			rng.Override(sim.SubsystemCatalog, scenario.Catalog.Seed)
		}
		if scenario.Workload.Seed != 0 {
			rng.Override(sim.SubsystemClients, scenario.Workload.Seed)
		}

		catalog := sim.GenerateCatalog(scenario.Catalog, rng.ForSubsystem(sim.SubsystemCatalog))
		clients := sim.GenerateClients(catalog, scenario.Workload,
			scenario.Server.SlotDuration(), rng.ForSubsystem(sim.SubsystemClients))
		server := sim.NewServer(catalog, clients, scenario.Server, sim.NewRealClock())

		startTime := time.Now() // Get current time (start)
		if err := server.Run(); err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		server.Metrics.Print(time.Since(startTime))

		logrus.Info("Simulation complete.")
	},
}

// scenarioFromFlags assembles a Scenario from the individual CLI flags.
func scenarioFromFlags() *Scenario {
	return &Scenario{
		Seed: seed,
		Catalog: sim.CatalogConfig{
			Items:      catalogItems,
			Theta:      theta,
			MinSizeKiB: minSizeKiB,
			MaxSizeKiB: maxSizeKiB,
			Seed:       catalogSeed,
		},
		Workload: sim.WorkloadConfig{
			Clients:        clientCount,
			MinItems:       minItems,
			MaxItems:       maxItems,
			MaxJitterSlots: maxJitterSlots,
			Seed:           clientSeed,
		},
		Server: sim.ServerConfig{
			BandwidthKiB:   bandwidthKiB,
			TimeslotMillis: timeslotMillis,
			DeltaSlots:     deltaSlots,
		},
	}
}

func init() {
	runCmd.Flags().IntVar(&catalogItems, "catalog-items", 10, "number of data items in the catalog")
	runCmd.Flags().Float64Var(&theta, "theta", 0.8, "Zipf skew parameter for popularity weights")
	runCmd.Flags().Int64Var(&minSizeKiB, "min-size-kib", 10, "smallest item size in KiB")
	runCmd.Flags().Int64Var(&maxSizeKiB, "max-size-kib", 30, "largest item size in KiB")
	runCmd.Flags().Int64Var(&catalogSeed, "catalog-seed", 0, "explicit catalog RNG seed (0 = derive from --seed)")

	runCmd.Flags().IntVar(&clientCount, "clients", 100, "number of simulated clients")
	runCmd.Flags().IntVar(&minItems, "min-items", 1, "fewest items per request")
	runCmd.Flags().IntVar(&maxItems, "max-items", 4, "most items per request")
	runCmd.Flags().Int64Var(&maxJitterSlots, "max-jitter-slots", 2, "arrival jitter bound in timeslots")
	runCmd.Flags().Int64Var(&clientSeed, "client-seed", 0, "explicit client RNG seed (0 = derive from --seed)")

	runCmd.Flags().Int64Var(&bandwidthKiB, "bandwidth-kib", 1024, "channel bandwidth in KiB/s")
	runCmd.Flags().Int64Var(&timeslotMillis, "timeslot-ms", 1000, "timeslot length in milliseconds")
	runCmd.Flags().Int64Var(&deltaSlots, "delta", 4, "hard per-round slot budget in timeslots")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "master seed for all RNG subsystems")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file overriding all other flags")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
