package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/shgcav/internal/cavity"
	"github.com/san-kum/shgcav/internal/chart"
	"github.com/san-kum/shgcav/internal/config"
	"github.com/san-kum/shgcav/internal/storage"
	"github.com/san-kum/shgcav/internal/tui"
)

func runSolve(cmd *cobra.Command, args []string) error {
	_, p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	mode, err := cavity.Solve(p)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(mode)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s cut\ttangential\tsagittal\t\n", p.Cut)
	focusRows(w, "crystal", mode.Crystal)
	focusRows(w, "collimated", mode.Collimated)
	fmt.Fprintf(w, "m = (A+D)/2\t%.4f\t%.4f\t\n", mode.StabilityT, mode.StabilityS)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nFSR          %.3f MHz\n", mode.FSR/1e6)
	fmt.Printf("B parameter  %.4f\n", mode.B)
	return nil
}

func focusRows(w *tabwriter.Writer, name string, f cavity.Focus) {
	fmt.Fprintf(w, "%s waist (µm)\t%.2f\t%.2f\t\n", name, f.WaistT*1e6, f.WaistS*1e6)
	fmt.Fprintf(w, "%s confocal (mm)\t%.3f\t%.3f\t\n", name, f.ConfocalT*1e3, f.ConfocalS*1e3)
	fmt.Fprintf(w, "%s ξ = l/b\t%.4f\t%.4f\t\n", name, f.XiT, f.XiS)
	fmt.Fprintf(w, "%s ellipticity\t%.4f\t\t\n", name, f.Ellipticity)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	q, err := chart.ParseQuantity(quantity)
	if err != nil {
		return err
	}

	f, values, err := cfg.Sweep.Values(p)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	points := cavity.SweepParallel(ctx, p, f, values, workers)
	logger.Debug("sweep finished", "field", f, "points", len(points), "workers", workers, "elapsed", time.Since(start))

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, pt := range points {
		switch {
		case errors.Is(pt.Err, cavity.ErrCavityUnstable):
			logger.Warn("unstable point", f.String(), pt.Value, "err", pt.Err)
		case pt.Err != nil:
			logger.Warn("infeasible point", f.String(), pt.Value, "err", pt.Err)
		}
	}

	if err := printSweep(f, points); err != nil {
		return err
	}

	if plot {
		fmt.Println()
		fmt.Print(chart.ASCII(points, q, 80, 15))
	}

	if htmlPath != "" {
		if err := writeHTML(htmlPath, points, f); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", htmlPath)
	}

	if imgPath != "" {
		if err := chart.SavePlot(imgPath, points, f, q); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		fmt.Printf("image written to %s\n", imgPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, f, points)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("saved: %s\n", runID)
	}

	return nil
}

func writeHTML(path string, points []cavity.Point, f cavity.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return chart.RenderHTML(file, points, f, "shgcav sweep over "+f.Label())
}

func printSweep(f cavity.Field, points []cavity.Point) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s (mm)\tw_t (µm)\tw_s (µm)\tξ_t\tξ_s\tellipticity\tw2_t (µm)\tw2_s (µm)\tFSR (MHz)\n", f)
	for _, pt := range points {
		if !pt.OK() {
			fmt.Fprintf(w, "%.3f\t-\t-\t-\t-\t-\t-\t-\t-\n", pt.Value*1e3)
			continue
		}
		m := pt.Mode
		fmt.Fprintf(w, "%.3f\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%.2f\t%.2f\t%.3f\n",
			pt.Value*1e3,
			m.Crystal.WaistT*1e6, m.Crystal.WaistS*1e6,
			m.Crystal.XiT, m.Crystal.XiS, m.Crystal.Ellipticity,
			m.Collimated.WaistT*1e6, m.Collimated.WaistS*1e6,
			m.FSR/1e6,
		)
	}
	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	f, values, err := cfg.Sweep.Values(p)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pt, err := cavity.FindXi(ctx, p, f, values, targetXi, workers)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	m := pt.Mode
	fmt.Printf("%s = %.4f mm gives ξ = %.4f (target %.4f)\n", f, pt.Value*1e3, m.MeanXi(), targetXi)
	fmt.Printf("  ξ_t %.4f  ξ_s %.4f  w_t %.2f µm  w_s %.2f µm  ellipticity %.4f\n",
		m.Crystal.XiT, m.Crystal.XiS, m.Crystal.WaistT*1e6, m.Crystal.WaistS*1e6, m.Crystal.Ellipticity)
	if math.Abs(m.MeanXi()-targetXi) > 0.01*targetXi {
		logger.Warn("target focusing parameter not reached in the searched range", "closest", m.MeanXi())
	}
	return nil
}

func runBounds(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadParameters(cmd)
	if err != nil {
		return err
	}

	lo, hi, err := cavity.StabilityRange(p)
	if err != nil {
		return fmt.Errorf("bounds: %w", err)
	}

	fmt.Printf("%s cut, stable crystal distance: %.3f mm to %.3f mm (width %.3f mm)\n",
		p.Cut, lo*1e3, hi*1e3, (hi-lo)*1e3)

	status := "inside"
	if p.CrystalDistance <= lo || p.CrystalDistance >= hi {
		status = "outside"
	}
	fmt.Printf("s = %.3f mm is %s the stable range\n", cfg.CrystalDistanceMM, status)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tλ (nm)\tR (mm)\tANGLE\tl (mm)\tINDEX\ts (mm)\tv (mm)")
	for _, name := range presetNames() {
		cfg, err := lookupPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.1f°\t%.1f\t%.4f\t%.1f\t%.1f\n",
			name, cfg.WavelengthNM, cfg.RadiusMM, cfg.AngleDeg, cfg.CrystalLengthMM,
			cfg.Index, cfg.CrystalDistanceMM, cfg.FocusDistanceMM)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := lookupPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCRYSTAL\tFIELD\tPOINTS\tSTABLE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Crystal,
			run.Field,
			run.Points,
			run.Stable,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	points, err := st.LoadSweep(runID)
	if err != nil {
		return err
	}

	q, err := chart.ParseQuantity(quantity)
	if err != nil {
		return err
	}

	f, err := cavity.ParseField(meta.Field)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("crystal: %s\n", meta.Config.Crystal)
	fmt.Printf("field: %s (%s)\n", f, f.Label())
	fmt.Printf("points: %d, stable: %d\n\n", meta.Points, meta.Stable)

	if err := printSweep(f, points); err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(chart.ASCII(points, q, 80, 12))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], outPath)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg, configFile)
}
