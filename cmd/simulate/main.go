package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/langkah/internal/simulate"
)

// Default configuration constants.
const (
	defaultNumTeams         = 10
	defaultWorkers          = 2 // multiplier for runtime.NumCPU()
	defaultTimeout          = 30 * time.Second
	defaultSimulationWindow = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numTeams   = flag.Int("teams", defaultNumTeams, "Number of teams to create per category")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		adminName  = flag.String("admin", "admin", "Administrator login name")
		adminPass  = flag.String("password", "Cipeng55", "Administrator password")
		outputFile = flag.String("output", "", "Output file for submissions (default: submissions_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for simulation output (default: simulation_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationWindow)
	defer cancel()

	config := &simulate.Config{
		BaseURL:       *baseURL,
		NumTeams:      *numTeams,
		Workers:       *workers,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		LogFile:       *logFile,
		AdminName:     *adminName,
		AdminPassword: *adminPass,
		Verbose:       *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
