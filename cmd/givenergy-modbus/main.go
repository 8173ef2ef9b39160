// Command givenergy-modbus is a thin CLI wrapper around the coordinator:
// run a live refresh loop, issue a single control command, or replay a
// captured frame log through the framer for debugging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "givenergy-modbus",
		Short: "GivEnergy inverter Modbus/TCP client",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newRefreshCmd(), newSetCmd(), newDumpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
