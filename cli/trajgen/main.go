// Package main is the trajgen command itself.
package main

import (
	"os"

	"github.com/rtde-tools/trajgen/cli"
	"github.com/rtde-tools/trajgen/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("trajgen").Fatal(err)
	}
}
