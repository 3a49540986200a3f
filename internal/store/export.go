package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/sirconv/internal/experiment"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteReportCSV writes one row per step size.
func WriteReportCSV(w io.Writer, report *experiment.Report) error {
	cw := csv.NewWriter(w)

	header := []string{"dt", "points", "max_error", "observed_order", "peak_prevalence", "population_drift"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for k, run := range report.Runs {
		order := ""
		if k > 0 && k-1 < len(report.Orders) {
			order = formatFloat(report.Orders[k-1])
		}
		row := []string{
			formatFloat(run.Dt),
			strconv.Itoa(run.Points),
			formatFloat(run.MaxError),
			order,
			formatFloat(run.Peak),
			formatFloat(run.Drift),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes the paired solution for one step size.
func WriteTrajectoryCSV(w io.Writer, traj *experiment.Trajectory) error {
	n := len(traj.Times)
	if len(traj.S) != n || len(traj.INumerical) != n || len(traj.IAnalytical) != n {
		return fmt.Errorf("trajectory columns differ in length")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "s", "i_numerical", "i_analytical", "abs_error"}); err != nil {
		return err
	}

	for k := 0; k < n; k++ {
		diff := traj.IAnalytical[k] - traj.INumerical[k]
		if diff < 0 {
			diff = -diff
		}
		row := []string{
			formatFloat(traj.Times[k]),
			formatFloat(traj.S[k]),
			formatFloat(traj.INumerical[k]),
			formatFloat(traj.IAnalytical[k]),
			formatFloat(diff),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteReportJSON(w io.Writer, report *experiment.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
