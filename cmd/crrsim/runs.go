package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/sim"
	"github.com/san-kum/crrsim/internal/storage"
	"github.com/san-kum/crrsim/internal/viz"
	"github.com/spf13/cobra"
)

func openStore(cmd *cobra.Command) (*storage.Store, func() error, error) {
	cfg, _, err := settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := setupLogger(cfg, logFile)
	if err != nil {
		return nil, nil, err
	}
	return storage.New(cfg.DataDir, logger), closeLog, nil
}

func saveRun(cmd *cobra.Command, args []string) error {
	cfg, r, err := evaluate(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(cfg, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	id, err := st.Save(name, r)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, closeLog, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tWIDTH\tA\tP@p0\tMIN LOSS")
	for _, run := range runs {
		best := "-"
		if run.Optimum != nil {
			best = fmt.Sprintf("%.1f W @ %.2f bar", run.Optimum.Watts, run.Optimum.Pressure)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f mm\t%.6f (%s)\t%.1f W\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Params.TireWidthMm,
			run.Params.A,
			run.ASource,
			run.RefWatts,
			best,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := settings(cmd)
	if err != nil {
		return err
	}
	st, closeLog, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	runID := args[0]
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}
	cmpRows, err := st.LoadComparison(runID)
	if err != nil {
		return err
	}

	r := sim.Result{
		Params:     meta.Params,
		Components: meta.Components,
		Curve:      rows,
		Comparison: curve.Comparison{Rows: cmpRows, Variants: meta.Variants},
		RefCrr:     meta.RefCrr,
		RefWatts:   meta.RefWatts,
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.Name != "" {
		fmt.Printf("name: %s\n", meta.Name)
	}
	fmt.Printf("saved: %s\n\n", meta.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Print(viz.Summary(r))
	fmt.Println()
	fmt.Println(viz.RenderCurve(r, chartOptions(cfg)))
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, closeLog, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
