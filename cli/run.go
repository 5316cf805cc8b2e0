package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/rtde-tools/trajgen/control"
	"github.com/rtde-tools/trajgen/ros"
)

// RunAction feeds joint states to a trajectory node. Commands are written as json lines and
// logged under the configured topic.
func RunAction(c *cli.Context) error {
	cfg := appConfig(c)
	logger := loggerNamed(c, "trajgen.node")

	out, closeOut, err := outputWriter(c)
	if err != nil {
		return err
	}
	defer closeOut()

	publisher := control.MultiPublisher{
		control.NewJSONPublisher(out),
		control.NewLogPublisher(logger, cfg.Topic),
	}
	node, err := control.NewTrajectoryNode(cfg.Node, cfg.Trajectory, publisher, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var errs error
	handle := func(js *ros.JointState) {
		if err := node.HandleJointState(ctx, js); err != nil {
			logger.Errorw("failed to handle joint state", "error", err)
			errs = multierr.Append(errs, err)
		}
	}

	if c.IsSet(bagFlag) {
		states, err := jointStatesFromBag(c)
		if err != nil {
			return err
		}
		for _, js := range states {
			if ctx.Err() != nil {
				break
			}
			handle(js)
		}
	} else if err := decodeJointStates(ctx, c.App.Reader, handle); err != nil {
		return err
	}

	if c.Bool(waitFlag) {
		node.Wait(ctx)
	}
	logger.Infow("run finished", "published", node.Published(), "dropped", node.Dropped())
	return errs
}

// decodeJointStates decodes a stream of json joint states, one value after another, until EOF.
func decodeJointStates(ctx context.Context, r io.Reader, handle func(*ros.JointState)) error {
	decoder := json.NewDecoder(r)
	for ctx.Err() == nil {
		var js ros.JointState
		if err := decoder.Decode(&js); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "failed to decode joint state")
		}
		handle(&js)
	}
	return nil
}
