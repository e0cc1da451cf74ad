package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/chrissnell/assemblykernel/internal/input"
	"github.com/chrissnell/assemblykernel/internal/log"
	"github.com/chrissnell/assemblykernel/internal/pipeline"
	"github.com/chrissnell/assemblykernel/pkg/responseformat"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	inputFile := flag.String("input", "assessment.yaml", "Path to the YAML assessment input, or - for stdin")
	formatName := flag.String("format", "json", "Output format: json, msgpack or table")
	partial := flag.Bool("partial", false, "Force partial assembly, ignoring sections without a result")
	workers := flag.Int("workers", 0, "Number of failure mechanisms assembled concurrently (0 = number of CPUs)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("assembly %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	format, err := responseformat.ParseFormat(*formatName)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}

	data, err := loadInput(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load assessment input: %v", err)
	}
	if *partial {
		data.PartialAssembly = true
	}
	log.Debugf("Loaded assessment %q with %d failure mechanisms", data.Name, len(data.Mechanisms))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.New(log.GetSugaredLogger(), pipeline.WithWorkers(*workers)).Run(ctx, data)
	if err != nil {
		log.Errorf("Assembly failed: %v", err)
		log.Sync()
		os.Exit(1)
	}

	if err := responseformat.NewFormatter().Write(os.Stdout, format, report); err != nil {
		log.Errorf("Failed to write report: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadInput(inputFile string) (*input.AssessmentData, error) {
	filename := inputFile
	if filename != "-" {
		filename, _ = filepath.Abs(inputFile)
	}

	var provider input.Provider = input.NewYAMLProvider(filename)
	data, err := provider.LoadAssessment()
	if err != nil {
		return nil, fmt.Errorf("error reading input file. Did you pass the -input flag? Run with -h for help: %w", err)
	}
	return data, nil
}
