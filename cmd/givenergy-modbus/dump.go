package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Moonlight-Companies/givenergy-modbus/framer"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <frame-log-file>",
		Short: "Replay a captured raw byte stream through the framer and print each decoded PDU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			f := framer.New(pdu.Warner(func(format string, a ...interface{}) {
				fmt.Fprintf(os.Stderr, "warn: "+format+"\n", a...)
			}))

			count := 0
			f.Feed(data, func(p pdu.PDU, err error) {
				count++
				if err != nil {
					fmt.Printf("#%d: rejected: %v\n", count, err)
					return
				}
				fmt.Printf("#%d: %T %+v\n", count, p, p)
			})

			if count == 0 {
				fmt.Println("no frames decoded")
			}
			return nil
		},
	}
}
