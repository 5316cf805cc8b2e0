// Package cli contains the trajgen command line application.
package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rtde-tools/trajgen/config"
	"github.com/rtde-tools/trajgen/logging"
	"github.com/rtde-tools/trajgen/ros"
)

const (
	// Global flags.
	configFlag = "config"
	debugFlag  = "debug"

	// Input flags.
	startFlag = "start"
	restFlag  = "rest"
	stateFlag = "state"
	bagFlag   = "bag"
	topicFlag = "topic"

	// Trajectory flags.
	targetFlag    = "target"
	finalTimeFlag = "final-time"
	stepFlag      = "step"
	offsetFlag    = "offset"

	// Output flags.
	outFlag    = "out"
	everyFlag  = "every"
	widthFlag  = "width"
	heightFlag = "height"
	waitFlag   = "wait"

	metadataLogger   = "logger"
	metadataConfig   = "config"
	metadataRegistry = "registry"
)

var inputFlags = []cli.Flag{
	&cli.Float64Flag{
		Name:  startFlag,
		Usage: "measured position of joint 0 in radians",
	},
	&cli.Float64SliceFlag{
		Name:  restFlag,
		Usage: "measured positions of joints 1 to 5, held for the whole trajectory",
	},
	&cli.StringFlag{
		Name:  stateFlag,
		Usage: "read a sensor_msgs/JointState from json `FILE`, - for stdin",
	},
	&cli.StringFlag{
		Name:  bagFlag,
		Usage: "read the first joint state from rosbag `FILE`",
	},
	&cli.StringFlag{
		Name:  topicFlag,
		Usage: "joint state topic inside the rosbag",
		Value: ros.JointStatesTopic,
	},
}

var trajectoryFlags = []cli.Flag{
	&cli.Float64Flag{
		Name:  targetFlag,
		Usage: "target position of joint 0 before the offset is applied, defaults to the measured position",
	},
	&cli.Float64Flag{
		Name:  finalTimeFlag,
		Usage: "trajectory duration in seconds",
	},
	&cli.Float64Flag{
		Name:  stepFlag,
		Usage: "sampling step in seconds",
	},
	&cli.Float64Flag{
		Name:  offsetFlag,
		Usage: "offset added to the target position",
	},
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, group := range groups {
		flags = append(flags, group...)
	}
	return flags
}

// NewApp returns the trajgen application writing to out and errOut. Logs go to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "trajgen",
		Usage:           "fit and sample single joint trajectories",
		HideHelpCommand: true,
		Reader:          os.Stdin,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			if logger, ok := c.App.Metadata[metadataLogger].(logging.Logger); ok {
				//nolint:errcheck
				logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "write a trajectory command as json",
				UsageText: "trajgen generate [--start RAD | --state FILE | --bag FILE] [--out FILE]",
				Flags: withFlags(inputFlags, trajectoryFlags, []cli.Flag{
					&cli.StringFlag{
						Name:  outFlag,
						Usage: "write to `FILE` instead of stdout",
					},
				}),
				Action: GenerateAction,
			},
			{
				Name:  "preview",
				Usage: "print a table of trajectory samples and a summary",
				Flags: withFlags(inputFlags, trajectoryFlags, []cli.Flag{
					&cli.IntFlag{
						Name:  everyFlag,
						Usage: "print every Nth sample",
						Value: 50,
					},
				}),
				Action: PreviewAction,
			},
			{
				Name:  "plot",
				Usage: "plot joint 0 position and velocity to a png",
				Flags: withFlags(inputFlags, trajectoryFlags, []cli.Flag{
					&cli.StringFlag{
						Name:     outFlag,
						Usage:    "png `FILE` to write",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  widthFlag,
						Usage: "width in inches",
						Value: 8,
					},
					&cli.Float64Flag{
						Name:  heightFlag,
						Usage: "height in inches",
						Value: 4,
					},
				}),
				Action: PlotAction,
			},
			{
				Name:  "run",
				Usage: "run the trajectory node over json joint states from stdin or a rosbag",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  bagFlag,
						Usage: "replay every joint state in rosbag `FILE`",
					},
					&cli.StringFlag{
						Name:  topicFlag,
						Usage: "joint state topic inside the rosbag",
						Value: ros.JointStatesTopic,
					},
					&cli.StringFlag{
						Name:  outFlag,
						Usage: "write trajectory commands to `FILE` instead of stdout",
					},
					&cli.BoolFlag{
						Name:  waitFlag,
						Usage: "keep running until interrupted once the input is exhausted",
					},
				},
				Action: RunAction,
			},
		},
	}
}

// setup loads the config and builds the loggers every command uses.
func setup(c *cli.Context) error {
	logger := logging.NewBlankLogger("trajgen")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)

	cfg := config.Default()
	if path := c.String(configFlag); path != "" {
		var err error
		cfg, err = config.Read(path, logger)
		if err != nil {
			return errors.Wrapf(err, "cannot load config %q", path)
		}
	}

	registry := logging.NewRegistry()
	registry.GetOrRegister(logger.Name(), logger)
	for _, name := range []string{"node", "trajectory"} {
		registry.GetOrRegister(logger.Name()+"."+name, logger.Sublogger(name))
	}
	if err := registry.Update(cfg.Log, logger); err != nil {
		return err
	}
	if c.Bool(debugFlag) || cfg.Debug {
		for _, name := range registry.Names() {
			if l, ok := registry.LoggerNamed(name); ok {
				l.SetLevel(logging.DEBUG)
			}
		}
		c.Context = logging.EnableDebugMode(c.Context, "")
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataLogger] = logger
	c.App.Metadata[metadataConfig] = cfg
	c.App.Metadata[metadataRegistry] = registry
	return nil
}

func loggerNamed(c *cli.Context, name string) logging.Logger {
	if registry, ok := c.App.Metadata[metadataRegistry].(*logging.Registry); ok {
		if logger, ok := registry.LoggerNamed(name); ok {
			return logger
		}
	}
	return logging.Global()
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metadataConfig].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
