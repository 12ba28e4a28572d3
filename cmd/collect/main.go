// Command collect runs one historical weather collection in the foreground
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"weatherhistory.app/internal/adapters/infrastructure"
	"weatherhistory.app/internal/app"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/core/collection"
	"weatherhistory.app/internal/core/report"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("collect", flag.ContinueOnError)
	location := flags.String("location", "", "city or address to collect, e.g. \"Cascavel, PR\"")
	start := flags.String("start", "", "window start as dd/mm")
	end := flags.String("end", "", "window end as dd/mm")
	years := flags.Int("years", 5, "number of past years to collect (1-20)")
	preset := flags.String("preset", report.PresetNone, "report preset: "+strings.Join(report.PresetNames(), ", "))
	if err := flags.Parse(args); err != nil {
		return 2
	}

	req, err := buildRequest(*location, *start, *end, *years, *preset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flags.Usage()
		return 2
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found or error loading it")
	}
	logger.Setup(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	container, err := app.NewDependencyContainer(cfg, app.DependencyOptions{})
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		return 1
	}
	defer container.Cleanup()

	useCase, err := container.NewCollectionUseCase()
	if err != nil {
		slog.Error("Failed to create collection use case", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := infrastructure.NewLoggingProgressSink(container.ApplicationPorts().Logger)
	result, err := collect(ctx, useCase, req, sink)
	if err != nil {
		slog.Error("Collection failed", "error", err)
		return 1
	}
	if !result.Success {
		fmt.Println(result.Message)
		return 1
	}

	fmt.Println(result.Message)
	fmt.Printf("CSV: %s\n", result.CSVPath)
	if result.ReportPath != "" {
		fmt.Printf("Report: %s\n", result.ReportPath)
	}
	return 0
}

// collect runs the collection, reporting a panic as an error
func collect(ctx context.Context, collector collection.Collector, req collection.CollectRequest, sink ports.ProgressSink) (result *collection.CollectResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Collection panicked", "panic", r, "stack", string(debug.Stack()))
			result, err = nil, fmt.Errorf("collection failed: %v", r)
		}
	}()
	return collector.Collect(ctx, req, sink)
}

func buildRequest(location, start, end string, years int, preset string) (collection.CollectRequest, error) {
	dayStart, monthStart, err := parseDayMonth(start)
	if err != nil {
		return collection.CollectRequest{}, fmt.Errorf("-start: %w", err)
	}
	dayEnd, monthEnd, err := parseDayMonth(end)
	if err != nil {
		return collection.CollectRequest{}, fmt.Errorf("-end: %w", err)
	}

	req := collection.CollectRequest{
		Location:   location,
		DayStart:   dayStart,
		MonthStart: monthStart,
		DayEnd:     dayEnd,
		MonthEnd:   monthEnd,
		Years:      years,
		Preset:     preset,
	}
	if err := req.Validate(); err != nil {
		return collection.CollectRequest{}, err
	}
	return req, nil
}

// parseDayMonth reads "dd/mm"; range checks are left to request validation
func parseDayMonth(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected dd/mm, got %q", value)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day in %q", value)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in %q", value)
	}
	return day, month, nil
}
