package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/volckit/mogisim/internal/analysis"
	"github.com/volckit/mogisim/internal/assim"
	"github.com/volckit/mogisim/internal/engine"
	"github.com/volckit/mogisim/internal/export"
	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/invert"
	"github.com/volckit/mogisim/internal/logging"
	"github.com/volckit/mogisim/internal/metrics"
	"github.com/volckit/mogisim/internal/mogi"
	"github.com/volckit/mogisim/internal/render"
	"github.com/volckit/mogisim/internal/report"
	"github.com/volckit/mogisim/internal/scenario"
	"github.com/volckit/mogisim/internal/store"
	"github.com/volckit/mogisim/internal/tui"
)

var (
	dataDir string
	verbose bool

	// scenario flags
	name       string
	nu         float64
	extent     float64
	nx         int
	ny         int
	gridZ      float64
	srcX       float64
	srcY       float64
	depth      float64
	strength   float64
	workers    int
	configFile string
	preset     string

	// profile flags
	profileBins int

	// export / plot / report flags
	format      string
	component   string
	exportOut   string
	plotOut     string
	quiverOut   string
	profileOut  string
	reportOut   string
	plotStride  int

	// inversion and assimilation flags
	obsFile     string
	method      string
	sigma       float64
	noise       float64
	seed        uint64
	truthDemo   bool
	gridSteps   int
	particles   int
	filterSteps int

	logger *zap.Logger
)

// version is stamped at build time via -ldflags.
var version = "dev"

// demo truth used by --truth-demo so inversion output can be checked
// against known parameters.
const (
	demoX        = 600.0
	demoY        = -400.0
	demoZ        = -1500.0
	demoStrength = 9.0
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mogisim",
		Short: "volcanic surface deformation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := scenario.ParseEnv()
			if err != nil {
				return err
			}
			if envCfg.DataDir != "" && !cmd.Flags().Changed("data") {
				dataDir = envCfg.DataDir
			}
			if envCfg.Verbose && !cmd.Flags().Changed("verbose") {
				verbose = true
			}
			if envCfg.NoColor {
				os.Setenv("NO_COLOR", "1")
			}
			logger, err = logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mogisim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "compute a deformation field and save the run",
		RunE:  runCompute,
	}
	addScenarioFlags(computeCmd)

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "radial displacement profile in the terminal",
		RunE:  runProfile,
	}
	addScenarioFlags(profileCmd)
	profileCmd.Flags().IntVar(&profileBins, "bins", 32, "distance bins")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json, xyz)")
	exportCmd.Flags().StringVar(&component, "component", "uz", "component for xyz format (ux, uy, uz, mag)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render run plots to image files",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&component, "component", "uz", "heatmap component (ux, uy, uz, mag)")
	plotCmd.Flags().StringVar(&plotOut, "out", "field.png", "heatmap output path")
	plotCmd.Flags().StringVar(&quiverOut, "quiver", "", "also render a horizontal quiver map")
	plotCmd.Flags().StringVar(&profileOut, "profile", "", "also render a radial profile chart")
	plotCmd.Flags().IntVar(&plotStride, "stride", 0, "quiver downsampling (0 = auto)")

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "render an HTML report for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}
	reportCmd.Flags().StringVar(&reportOut, "out", "report.html", "report output path")

	invertCmd := &cobra.Command{
		Use:   "invert",
		Short: "fit a point source to observations",
		RunE:  runInvert,
	}
	invertCmd.Flags().StringVar(&obsFile, "obs", "", "observations CSV (x,y,z,ux,uy,uz)")
	invertCmd.Flags().StringVar(&method, "method", "auto", "fit method (grid, nm, auto)")
	invertCmd.Flags().Float64Var(&sigma, "sigma", invert.DefaultSigma, "observation std dev (m)")
	invertCmd.Flags().Float64Var(&nu, "nu", mogi.DefaultNu, "poisson ratio")
	invertCmd.Flags().IntVar(&gridSteps, "steps", 12, "grid search steps per axis")
	invertCmd.Flags().BoolVar(&truthDemo, "truth-demo", false, "fit synthetic observations of a known source")
	invertCmd.Flags().Float64Var(&noise, "noise", 0.005, "synthetic noise std dev (m)")
	invertCmd.Flags().Uint64Var(&seed, "seed", 1, "synthetic noise seed")

	assimCmd := &cobra.Command{
		Use:   "assim",
		Short: "particle filter posterior over source parameters",
		RunE:  runAssim,
	}
	assimCmd.Flags().StringVar(&obsFile, "obs", "", "observations CSV (x,y,z,ux,uy,uz)")
	assimCmd.Flags().IntVar(&particles, "particles", 2000, "ensemble size")
	assimCmd.Flags().IntVar(&filterSteps, "steps", 10, "assimilation steps")
	assimCmd.Flags().Float64Var(&sigma, "sigma", invert.DefaultSigma, "observation std dev (m)")
	assimCmd.Flags().Float64Var(&nu, "nu", mogi.DefaultNu, "poisson ratio")
	assimCmd.Flags().Uint64Var(&seed, "seed", 1, "filter seed")
	assimCmd.Flags().BoolVar(&truthDemo, "truth-demo", false, "assimilate synthetic observations of a known source")
	assimCmd.Flags().Float64Var(&noise, "noise", 0.005, "synthetic noise std dev (m)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive deformation explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("available presets:")
			for _, p := range scenario.ListPresets() {
				sc := scenario.GetPreset(p)
				fmt.Printf("  %-10s %dx%d grid, %d source(s)\n", p, sc.Grid.Nx, sc.Grid.Ny, len(sc.Sources))
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark field evaluation",
		RunE:  benchFields,
	}
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mogisim %s (%s)\n", version, runtime.Version())
		},
	}

	rootCmd.AddCommand(computeCmd, profileCmd, listCmd, showCmd, deleteCmd, exportCmd, plotCmd, reportCmd, invertCmd, assimCmd, liveCmd, presetsCmd, benchCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addScenarioFlags registers the flags shared by compute and profile.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&name, "name", "custom", "scenario name")
	cmd.Flags().Float64Var(&nu, "nu", mogi.DefaultNu, "poisson ratio")
	cmd.Flags().Float64Var(&extent, "extent", scenario.DefaultExtent, "half-width of the grid (m)")
	cmd.Flags().IntVar(&nx, "nx", scenario.DefaultNx, "grid points in x")
	cmd.Flags().IntVar(&ny, "ny", scenario.DefaultNy, "grid points in y")
	cmd.Flags().Float64Var(&gridZ, "z", 0, "observation elevation (m)")
	cmd.Flags().Float64Var(&srcX, "source-x", 0, "source x (m)")
	cmd.Flags().Float64Var(&srcY, "source-y", 0, "source y (m)")
	cmd.Flags().Float64Var(&depth, "depth", 1000, "source depth below surface (m)")
	cmd.Flags().Float64Var(&strength, "strength", 10, "source strength (volume change, 1e6 m3)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

// resolveScenario applies preset, then config file, then changed flags.
func resolveScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	sc := scenario.Default()

	if preset != "" {
		p := scenario.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, scenario.ListPresets())
		}
		sc = p
	}

	if configFile != "" {
		loaded, err := scenario.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		sc.Name = name
	}
	if flags.Changed("nu") {
		sc.Nu = nu
	}
	if flags.Changed("extent") {
		sc.Grid.X0, sc.Grid.X1 = -extent, extent
		sc.Grid.Y0, sc.Grid.Y1 = -extent, extent
	}
	if flags.Changed("nx") {
		sc.Grid.Nx = nx
	}
	if flags.Changed("ny") {
		sc.Grid.Ny = ny
	}
	if flags.Changed("z") {
		sc.Grid.Z = gridZ
	}
	// source flags describe a single source and replace the scenario's list
	if flags.Changed("source-x") || flags.Changed("source-y") || flags.Changed("depth") || flags.Changed("strength") {
		sc.Sources = []scenario.SourceSpec{{X: srcX, Y: srcY, Z: -depth, Strength: strength}}
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func openStore() (*store.Store, error) {
	return store.Open(dataDir, logger)
}

func newEngine(sc *scenario.Scenario) *engine.Engine {
	return engine.New(engine.Config{Workers: workers, Nu: sc.BuildNu()}, logger)
}

func runCompute(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	grid, set, err := sc.Build()
	if err != nil {
		return err
	}

	eng := newEngine(sc)
	for _, m := range metrics.Default() {
		eng.AddMetric(m)
	}

	fmt.Printf("computing %s (%d points, %d sources)...\n", sc.Name, grid.Len(), set.Len())

	res, err := eng.Run(context.Background(), grid, set)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.SaveRun(sc, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	if !res.Field.IsFinite() {
		fmt.Println("warning: field contains singular samples (observation point on a source)")
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Stats))
	for n := range res.Stats {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, res.Stats[n])
	}

	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	grid, set, err := sc.Build()
	if err != nil {
		return err
	}

	res, err := newEngine(sc).Run(context.Background(), grid, set)
	if err != nil {
		return err
	}

	cx, cy := 0.0, 0.0
	if set.Len() > 0 {
		cx, cy = set.Sources[0].X, set.Sources[0].Y
	}
	prof := analysis.RadialProfile(grid, res.Field, cx, cy, profileBins)
	if len(prof.Dist) == 0 {
		return fmt.Errorf("no profile data")
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("center: (%.0f, %.0f)\n\n", cx, cy)

	graph := asciigraph.Plot(prof.Uz,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("uz (m) vs distance"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(prof.Ur,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("ur (m) vs distance"),
	)
	fmt.Println(graph)
	fmt.Println()

	if k := analysis.DecayExponent(prof.Dist, prof.Ur); !math.IsNaN(k) {
		fmt.Printf("radial decay exponent: %.2f\n", k)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tPOINTS\tSOURCES\tNU\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3g\t%dms\n",
			run.ID,
			run.Name,
			run.Created().Format("2006-01-02 15:04:05"),
			run.Points,
			run.Sources,
			run.Nu,
			run.ElapsedMS,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(args[0])
	if err != nil {
		return err
	}

	out := struct {
		store.RunMeta
		Created string             `json:"created"`
		Stats   map[string]float64 `json:"stats"`
	}{meta, meta.Created().Format(time.RFC3339), meta.Stats()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(args[0])
	if err != nil {
		return err
	}
	grid, field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	var w = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, grid, field)
	case "json":
		return export.WriteJSON(w, meta.Name, meta.Nu, meta.Stats(), grid, field)
	case "xyz":
		return export.WriteXYZ(w, grid, field, component)
	default:
		return fmt.Errorf("unknown format: %s (csv, json, xyz)", format)
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(args[0])
	if err != nil {
		return err
	}
	_, field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	sc, err := st.LoadScenario(args[0])
	if err != nil {
		return err
	}

	// The CSV artifact stores no plane layout; rebuild the grid from
	// the stored scenario.
	grid, set, err := sc.Build()
	if err != nil {
		return err
	}
	if grid.Len() != field.Len() {
		return fmt.Errorf("run %s: scenario grid has %d points, field has %d", args[0], grid.Len(), field.Len())
	}

	if !field.IsFinite() {
		fmt.Println("warning: field contains singular samples; plots may be distorted")
	}

	if err := render.Heatmap(plotOut, grid, field, component, set, meta.Name); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", plotOut)

	if quiverOut != "" {
		if err := render.Quiver(quiverOut, grid, field, plotStride, set, meta.Name); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", quiverOut)
	}

	if profileOut != "" {
		cx, cy := 0.0, 0.0
		if set.Len() > 0 {
			cx, cy = set.Sources[0].X, set.Sources[0].Y
		}
		prof := analysis.RadialProfile(grid, field, cx, cy, 32)
		if err := render.Profile(profileOut, prof, meta.Name); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", profileOut)
	}

	return nil
}

func reportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(args[0])
	if err != nil {
		return err
	}
	grid, field, err := st.LoadField(args[0])
	if err != nil {
		return err
	}
	sc, err := st.LoadScenario(args[0])
	if err != nil {
		return err
	}
	_, set, err := sc.Build()
	if err != nil {
		return err
	}

	cx, cy := 0.0, 0.0
	if set.Len() > 0 {
		cx, cy = set.Sources[0].X, set.Sources[0].Y
	}
	prof := analysis.RadialProfile(grid, field, cx, cy, 32)

	info := report.Info{
		Name:    meta.Name,
		Nu:      meta.Nu,
		Points:  meta.Points,
		Sources: meta.Sources,
		Elapsed: time.Duration(meta.ElapsedMS) * time.Millisecond,
		Stats:   meta.Stats(),
	}

	if err := report.WriteFile(reportOut, info, grid, field, set, prof); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", reportOut)
	return nil
}

// loadObservations reads the observation file, or synthesizes noisy
// observations of the demo truth when --truth-demo is set.
func loadObservations() (*invert.Observations, *geo.Source, error) {
	if truthDemo {
		grid := geo.NewPlane(-5000, 5000, 41, -5000, 5000, 41, 0)
		truth := geo.Source{X: demoX, Y: demoY, Z: demoZ}
		obs := invert.Synthetic(grid, truth, demoStrength, nu, noise, seed)
		return obs, &truth, nil
	}

	if obsFile == "" {
		return nil, nil, fmt.Errorf("--obs file required (or --truth-demo)")
	}
	f, err := os.Open(obsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open observations: %w", err)
	}
	defer f.Close()

	grid, field, err := export.ReadCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read observations: %w", err)
	}
	return invert.FromField(grid, field, sigma), nil, nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	obs, truth, err := loadObservations()
	if err != nil {
		return err
	}

	if truth != nil {
		fmt.Printf("synthetic truth: x=%.0f y=%.0f z=%.0f strength=%.1f (noise %.4f m)\n\n",
			truth.X, truth.Y, truth.Z, demoStrength, noise)
	}

	fmt.Printf("fitting %d observations (method %s)...\n", obs.Len(), method)
	start := time.Now()

	est, err := invert.Fit(context.Background(), obs, invert.Options{
		Steps:  gridSteps,
		Nu:     nu,
		Method: method,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Println("best fit:")
	fmt.Printf("  x: %.1f m\n", est.Source.X)
	fmt.Printf("  y: %.1f m\n", est.Source.Y)
	fmt.Printf("  z: %.1f m\n", est.Source.Z)
	fmt.Printf("  strength: %.3f\n", est.Strength)
	fmt.Printf("  misfit: %.4f\n", est.Misfit)
	fmt.Printf("  evaluations: %d\n", est.Evals)

	return nil
}

func runAssim(cmd *cobra.Command, args []string) error {
	obs, truth, err := loadObservations()
	if err != nil {
		return err
	}

	if truth != nil {
		fmt.Printf("synthetic truth: x=%.0f y=%.0f z=%.0f strength=%.1f (noise %.4f m)\n\n",
			truth.X, truth.Y, truth.Z, demoStrength, noise)
	}

	cfg := assim.DefaultConfig()
	cfg.Particles = particles
	cfg.Seed = seed
	cfg.Nu = nu

	f := assim.New(cfg, logger)
	f.Init(invert.DefaultBounds(obs))

	fmt.Printf("assimilating %d observations into %d particles...\n", obs.Len(), particles)
	start := time.Now()

	for i := 0; i < filterSteps; i++ {
		if err := f.Step(context.Background(), obs); err != nil {
			return err
		}
	}

	post := f.Estimate()

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("posterior after %d steps:\n", post.Steps)
	fmt.Printf("  x: %.1f +/- %.1f m\n", post.X, post.StdX)
	fmt.Printf("  y: %.1f +/- %.1f m\n", post.Y, post.StdY)
	fmt.Printf("  z: %.1f +/- %.1f m\n", post.Z, post.StdZ)
	fmt.Printf("  strength: %.3f +/- %.3f\n", post.Strength, post.StdStrength)
	fmt.Printf("  effective sample size: %.0f\n", post.ESS)

	return nil
}

func benchFields(cmd *cobra.Command, args []string) error {
	sizes := []int{41, 81, 161}
	counts := []int{1, 4, 16}

	eng := engine.New(engine.Config{Workers: workers}, logger)

	fmt.Println("benchmarking field evaluation")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSOURCES\tPOINTS\tTIME\tPOINTS/SEC")

	for _, n := range sizes {
		grid := geo.NewPlane(-5000, 5000, n, -5000, 5000, n, 0)
		for _, k := range counts {
			var set geo.SourceSet
			for i := 0; i < k; i++ {
				angle := 2 * math.Pi * float64(i) / float64(k)
				set.Add(geo.Source{
					X: 2000 * math.Cos(angle),
					Y: 2000 * math.Sin(angle),
					Z: -1000 - 100*float64(i),
				}, 5)
			}

			res, err := eng.Run(context.Background(), grid, set)
			if err != nil {
				return err
			}

			pointsPerSec := float64(res.Points) / res.Elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n", n, n, k, res.Points, res.Elapsed, pointsPerSec)
		}
	}

	return w.Flush()
}
