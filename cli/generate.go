package cli

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"github.com/rtde-tools/trajgen/control"
	"github.com/rtde-tools/trajgen/ros"
)

// GenerateAction fits a trajectory and writes the resulting command as a json line.
func GenerateAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	cfg := appConfig(c)
	jt := ros.NewJointTrajectory(plan.Samples(), cfg.Node.JointNames)
	if err := jt.Validate(cfg.Node.JointLimit); err != nil {
		return err
	}

	out, closeOut, err := outputWriter(c)
	if err != nil {
		return err
	}
	defer closeOut()
	return control.NewJSONPublisher(out).Publish(c.Context, jt)
}

// outputWriter opens --out, or returns the app writer when it is unset.
func outputWriter(c *cli.Context) (io.Writer, func(), error) {
	path := c.String(outFlag)
	if path == "" {
		return c.App.Writer, func() {}, nil
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { utils.UncheckedError(f.Close()) }, nil
}
