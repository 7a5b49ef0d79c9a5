package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshuapare/heapbox/box"
	"github.com/joshuapare/heapbox/heap"
)

var stressMetrics bool

func init() {
	cmd := newStressCmd()
	cmd.Flags().String("backend", heap.BackendGo, "Allocator backend: go, pages, malloc")
	cmd.Flags().Int("boxes", 1000, "Boxes per scenario")
	cmd.Flags().Int("elems", 100, "Elements per nested sequence and array")
	cmd.Flags().Bool("instrument", false, "Wrap the backend with prometheus metrics")
	cmd.Flags().BoolVar(&stressMetrics, "metrics", false, "Print collected metrics in text exposition format")

	for _, key := range []string{"backend", "boxes", "elems", "instrument"} {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(key))
	}
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run box lifecycles against a backend and check for leaks",
		Long: `The stress command runs every box lifecycle against one allocator
backend: new/unbox, raw round trips, nested drops and arrays. It then
reports the allocator's statistics and fails if anything is still live.

Settings come from flags, the config file, or BOXCTL_* variables.

Example:
  boxctl stress --backend pages --boxes 5000
  BOXCTL_BACKEND=malloc boxctl stress --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadStressConfig()
			if err != nil {
				return err
			}
			return runStress(cfg)
		},
	}
}

// stressConfig is the resolved configuration of one stress run.
type stressConfig struct {
	Heap  heap.Config `mapstructure:",squash"`
	Boxes int         `mapstructure:"boxes"`
	Elems int         `mapstructure:"elems"`
}

func loadStressConfig() (stressConfig, error) {
	var cfg stressConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return stressConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// scenarioResult is the outcome of one scenario.
type scenarioResult struct {
	Name     string        `json:"name"`
	Boxes    int           `json:"boxes"`
	Duration time.Duration `json:"duration_ns"`
	Skipped  string        `json:"skipped,omitempty"`
}

// StressReport is printed at the end of a run.
type StressReport struct {
	Backend   string           `json:"backend"`
	Scenarios []scenarioResult `json:"scenarios"`
	Stats     *heap.Stats      `json:"stats,omitempty"`
	Leaked    bool             `json:"leaked"`
}

type record struct {
	ID    int64
	Score float64
	Tags  [4]uint16
}

func runStress(cfg stressConfig) error {
	if cfg.Boxes <= 0 || cfg.Elems < 0 {
		return fmt.Errorf("boxes must be positive and elems non-negative (got %d, %d)", cfg.Boxes, cfg.Elems)
	}

	var reg *prometheus.Registry
	if cfg.Heap.Instrument {
		reg = prometheus.NewRegistry()
		cfg.Heap.Registerer = reg
	}
	a, err := heap.Open(cfg.Heap)
	if err != nil {
		return err
	}

	report := StressReport{Backend: a.Name()}
	for _, sc := range scenarios {
		res := scenarioResult{Name: sc.name, Boxes: cfg.Boxes}
		if sc.needsGoHeap && a.Name() != heap.BackendGo {
			res.Skipped = "needs Go pointers"
			report.Scenarios = append(report.Scenarios, res)
			continue
		}
		start := time.Now()
		sc.run(a, cfg)
		res.Duration = time.Since(start)
		report.Scenarios = append(report.Scenarios, res)
	}

	if s, ok := heap.StatsOf(a); ok {
		report.Stats = &s
		report.Leaked = s.Leaked()
	}

	if err := printReport(report); err != nil {
		return err
	}
	if stressMetrics && reg != nil {
		if err := writeMetrics(reg); err != nil {
			return err
		}
	}
	if report.Leaked {
		return fmt.Errorf("%d blocks still live after stress run", report.Stats.LiveObjects)
	}
	return nil
}

type scenario struct {
	name        string
	needsGoHeap bool
	run         func(a heap.Allocator, cfg stressConfig)
}

var scenarios = []scenario{
	{name: "new-unbox", run: func(a heap.Allocator, cfg stressConfig) {
		for i := range cfg.Boxes {
			if v := box.NewIn(a, int64(i)).Unbox(); v != int64(i) {
				panic(fmt.Sprintf("unbox returned %d, want %d", v, i))
			}
		}
	}},
	{name: "raw-round-trip", run: func(a heap.Allocator, cfg stressConfig) {
		for i := range cfg.Boxes {
			p := box.NewIn(a, record{ID: int64(i)}).IntoRaw()
			b := box.FromRawIn(a, p)
			b.BorrowMut().Score = float64(i) / 2
			b.Drop()
		}
	}},
	{name: "array-push-drop", run: func(a heap.Allocator, cfg stressConfig) {
		for i := range cfg.Boxes {
			r := box.NewArrayIn[record](a, cfg.Elems)
			for j := range cfg.Elems / 2 {
				r.Push(record{ID: int64(i*cfg.Elems + j)})
			}
			r.Drop()
		}
	}},
	{name: "nested-drop", needsGoHeap: true, run: func(a heap.Allocator, cfg stressConfig) {
		for range cfg.Boxes {
			outer := make([][]int, cfg.Elems)
			for j := range outer {
				outer[j] = make([]int, cfg.Elems)
			}
			box.NewIn(a, outer).Drop()
		}
	}},
	{name: "nested-boxes", needsGoHeap: true, run: func(a heap.Allocator, cfg stressConfig) {
		for range cfg.Boxes {
			children := make([]*box.Box[record], cfg.Elems)
			for j := range children {
				children[j] = box.NewIn(a, record{ID: int64(j)})
			}
			box.NewIn(a, children).Drop()
		}
	}},
}

func printReport(r StressReport) error {
	if jsonOut {
		return printJSON(r)
	}
	printInfo("Backend: %s\n", r.Backend)
	for _, sc := range r.Scenarios {
		if sc.Skipped != "" {
			printInfo("  %-16s skipped (%s)\n", sc.Name, sc.Skipped)
			continue
		}
		printInfo("  %-16s %6d boxes  %v\n", sc.Name, sc.Boxes, sc.Duration)
	}
	if r.Stats == nil {
		printInfo("Stats: not tracked by this backend\n")
		return nil
	}
	printInfo("Allocations: %d\n", r.Stats.Allocations)
	printInfo("Frees:       %d\n", r.Stats.Frees)
	printInfo("Live:        %d objects, %d bytes\n", r.Stats.LiveObjects, r.Stats.LiveBytes)
	printInfo("Peak:        %d bytes\n", r.Stats.PeakBytes)
	return nil
}

func writeMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
