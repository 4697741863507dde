package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wudi/edgeconfig"
	"github.com/wudi/edgeconfig/internal/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "edgeconfig.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	validateOnly := flag.Bool("validate", false, "Validate configuration and exit")
	importManifest := flag.Bool("import", false, "Treat the input as a manifest and convert it back to a configuration")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("edgeconfig %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *importManifest {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read manifest: %v\n", err)
			os.Exit(1)
		}
		cfg, err := edgeconfig.ConvertJSONConfigToObject(data, edgeconfig.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to import manifest: %v\n", err)
			os.Exit(1)
		}
		emit(cfg)
		return
	}

	loader := edgeconfig.NewLoader()
	cfg, err := loader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *validateOnly {
		if err := edgeconfig.ValidateConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration is invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}

	m, err := edgeconfig.ProcessConfig(cfg, edgeconfig.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process configuration: %v\n", err)
		os.Exit(1)
	}
	emit(m)
}

// emit writes the document as indented JSON to stdout.
func emit(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
