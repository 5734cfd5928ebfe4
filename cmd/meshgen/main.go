// SPDX-License-Identifier: MIT

// Command meshgen builds a soft body from a YAML recipe, optionally schedules
// its links, prints a summary and writes a snapshot and build metrics.
//
//	meshgen -config recipe.yaml [-out body.snap] [-metrics-out build.prom] [-log-level info] [-log-format json]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/softbody/bfs"
	"github.com/katalvlaran/softbody/builder"
	"github.com/katalvlaran/softbody/export"
	"github.com/katalvlaran/softbody/metrics"
	"github.com/katalvlaran/softbody/schedule"
)

func main() {
	configPath := flag.String("config", "", "Recipe file (YAML)")
	outPath := flag.String("out", "", "Snapshot output file (optional)")
	metricsPath := flag.String("metrics-out", "", "Prometheus text-format metrics file (optional)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *configPath == "" {
		logger.Error("-config is required")
		os.Exit(2)
	}

	if err := run(*configPath, outputs{snapshot: *outPath, metrics: *metricsPath}, logger, os.Stdout); err != nil {
		logger.Error("meshgen failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad -log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("bad -log-format %q: want text or json", format)
	}
}

// outputs names the optional files run writes; empty paths are skipped.
type outputs struct {
	snapshot string // body snapshot, see export.WriteSnapshot
	metrics  string // recorder registry in Prometheus text format
}

// run builds the body described by the recipe at configPath and writes the
// summary to stdout, then the files named in out.
func run(configPath string, out outputs, logger *slog.Logger, stdout io.Writer) error {
	recipe, err := loadRecipe(configPath)
	if err != nil {
		return err
	}
	logger.Info("recipe loaded", "path", configPath, "kind", recipe.Kind)

	cons, err := recipe.constructor()
	if err != nil {
		return fmt.Errorf("%s: %w", recipe.Kind, err)
	}
	rec := metrics.NewRecorder()
	opts := append(recipe.options(), builder.WithLogger(logger), builder.WithRecorder(rec))
	body, err := builder.BuildBody(opts, cons)
	if err != nil {
		return err
	}

	rep := schedule.Report{
		Links:           body.LinkCount(),
		ConflictsBefore: schedule.AdjacentConflicts(body.Links()),
		Batches:         len(schedule.Batches(body.Links())),
	}
	rep.ConflictsAfter = rep.ConflictsBefore
	if recipe.Schedule {
		if rep, err = schedule.Apply(body); err != nil {
			return err
		}
		rec.ObserveSchedule(rep.Links, rep.ConflictsBefore, rep.ConflictsAfter)
	}

	s := body.Stats()
	fmt.Fprintf(stdout, "body      %s\n", body.ID)
	fmt.Fprintf(stdout, "kind      %s\n", recipe.Kind)
	fmt.Fprintf(stdout, "nodes     %d (%d fixed)\n", s.Nodes, s.FixedNodes)
	fmt.Fprintf(stdout, "links     %d\n", s.Links)
	fmt.Fprintf(stdout, "faces     %d\n", s.Faces)
	fmt.Fprintf(stdout, "tetras    %d\n", s.Tetras)
	fmt.Fprintf(stdout, "conflicts %d -> %d\n", rep.ConflictsBefore, rep.ConflictsAfter)
	fmt.Fprintf(stdout, "batches   %d\n", rep.Batches)
	fmt.Fprintf(stdout, "islands   %d (%d floating)\n", len(bfs.Components(body)), len(bfs.Floating(body)))

	if out.metrics != "" {
		if err = prometheus.WriteToTextfile(out.metrics, rec.Registry()); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", "path", out.metrics)
	}

	if out.snapshot == "" {
		return nil
	}
	f, err := os.Create(out.snapshot)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err = export.WriteSnapshot(f, body); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", out.snapshot, "body", body.ID.String())

	return nil
}
