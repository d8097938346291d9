package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/systemstart/testflow/pkg/api"
	"github.com/systemstart/testflow/pkg/logging"
	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/plugins"
	"github.com/systemstart/testflow/pkg/runner"
	"github.com/systemstart/testflow/pkg/vars"
)

var version = "dev"

const (
	_ = iota
	exitDotenvError
	exitLoadCallsFailed
	exitLoadDataFailed
	exitStepFailures
)

var (
	callsFile   string
	dataFile    string
	projectDir  string
	envFile     string
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.StringVar(
		&callsFile,
		"calls",
		"calls.yaml",
		"test definition YAML file")
	flag.StringVar(
		&dataFile,
		"data",
		"",
		"initial variable YAML file")
	flag.StringVar(
		&projectDir,
		"project",
		"",
		"project directory for relative paths (default: directory of the calls file)")
	flag.StringVar(
		&envFile,
		"env-file",
		"",
		"env file to load (default: .env if present)")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel)

	includeEnv()

	if projectDir == "" {
		projectDir = filepath.Dir(callsFile)
	}

	steps := loadSteps()
	vc := seedVariables()

	registry := plugin.NewRegistry()
	plugins.RegisterBuiltin(registry)

	summary := runner.New(registry, vc, projectDir).Run(context.Background(), steps)
	report(summary)

	if !summary.OK() {
		os.Exit(exitStepFailures)
	}
	slog.Info("done")
}

func loadSteps() []api.Step {
	steps, err := api.LoadCalls(callsFile)
	if err != nil {
		slog.Error("failed to load calls file", "filename", callsFile, "error", err)
		os.Exit(exitLoadCallsFailed)
	}
	return steps
}

func seedVariables() *vars.Context {
	data, err := api.LoadData(dataFile)
	if err != nil {
		slog.Error("failed to load data file", "filename", dataFile, "error", err)
		os.Exit(exitLoadDataFailed)
	}
	return vars.NewSeeded(os.Environ(), data)
}

func report(summary runner.Summary) {
	for _, failure := range summary.Failures {
		slog.Error("step failed", "step", failure.Index+1, "error", failure.Err)
	}

	if summary.OK() {
		slog.Info("all steps passed", "total", summary.Total)
		return
	}
	slog.Error("run finished with failures",
		"total", summary.Total,
		"passed", summary.Passed,
		"failed", summary.Failed)
}

func includeEnv() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Error("failed to load env file", "filename", envFile, "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("using env file", "filename", envFile)
		return
	}

	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
