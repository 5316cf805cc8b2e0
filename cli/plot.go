package cli

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rtde-tools/trajgen/trajectory"
)

// PlotAction writes a png of joint 0 position and velocity over time.
func PlotAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	p, err := profilePlot(plan)
	if err != nil {
		return err
	}
	width := vg.Length(c.Float64(widthFlag)) * vg.Inch
	height := vg.Length(c.Float64(heightFlag)) * vg.Inch
	if err := p.Save(width, height, c.String(outFlag)); err != nil {
		return errors.Wrap(err, "failed to save plot")
	}
	loggerNamed(c, "trajgen").Infow("plot written", "path", c.String(outFlag), "points", plan.Sampler.Len())
	return nil
}

func profilePlot(plan *trajectory.Plan) (*plot.Plot, error) {
	n := plan.Sampler.Len()
	positions := make(plotter.XYs, 0, n)
	velocities := make(plotter.XYs, 0, n)
	for k, sample := range plan.Sampler.All() {
		at := plan.Sampler.TimeAt(k)
		positions = append(positions, plotter.XY{X: at, Y: sample.Positions[0]})
		velocities = append(velocities, plotter.XY{X: at, Y: sample.Velocities[0]})
	}

	p := plot.New()
	p.Title.Text = "Joint 0 trajectory"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "rad, rad/s"
	p.Add(plotter.NewGrid())

	posLine, err := plotter.NewLine(positions)
	if err != nil {
		return nil, err
	}
	posLine.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	posLine.Width = vg.Points(1.5)
	p.Add(posLine)
	p.Legend.Add("position", posLine)

	velLine, err := plotter.NewLine(velocities)
	if err != nil {
		return nil, err
	}
	velLine.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	velLine.Width = vg.Points(1.5)
	velLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(velLine)
	p.Legend.Add("velocity", velLine)
	p.Legend.Top = true
	return p, nil
}
