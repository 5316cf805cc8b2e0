package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rtde-tools/trajgen/trajectory"
)

// PreviewAction prints every Nth sample of a trajectory followed by a summary.
func PreviewAction(c *cli.Context) error {
	every := c.Int(everyFlag)
	if every < 1 {
		return errors.Errorf("--%s must be at least 1", everyFlag)
	}
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}

	printf(c, "%s\n\n", samplesTable(plan, every))
	printf(c, "%s\n", summaryTable(plan.Summarize()))
	return nil
}

// samplesTable renders every Nth sample and always the last one.
func samplesTable(plan *trajectory.Plan, every int) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Time (s)", "Position", "Velocity", "Acceleration"})
	last := plan.Sampler.Len() - 1
	for k, sample := range plan.Sampler.All() {
		if k%every != 0 && k != last {
			continue
		}
		at := plan.Sampler.TimeAt(k)
		t.AppendRow(table.Row{
			k,
			fmt.Sprintf("%.2f", at),
			fmt.Sprintf("%.6f", sample.Positions[0]),
			fmt.Sprintf("%.6f", sample.Velocities[0]),
			fmt.Sprintf("%.6f", plan.Solution.Coefficients.Acceleration(at)),
		})
	}
	return t.Render()
}

func summaryTable(summary trajectory.Summary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Summary", "Value"})
	t.AppendRows([]table.Row{
		{"Points", summary.Points},
		{"Duration (s)", fmt.Sprintf("%.2f", summary.Duration)},
		{"Start position", fmt.Sprintf("%.6f", summary.StartPos)},
		{"End position", fmt.Sprintf("%.6f", summary.EndPos)},
		{"Peak |velocity|", fmt.Sprintf("%.6f", summary.PeakVelocity)},
		{"Peak |acceleration|", fmt.Sprintf("%.6f", summary.PeakAccel)},
		{"Start error", fmt.Sprintf("%.3g", summary.StartError)},
		{"End error", fmt.Sprintf("%.3g", summary.EndError)},
		{"Residual", fmt.Sprintf("%.3g", summary.Residual)},
	})
	return t.Render()
}
