package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// printf prints a message to the app writer. Write errors are ignored.
func printf(c *cli.Context, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(c.App.Writer, format, a...)
}
