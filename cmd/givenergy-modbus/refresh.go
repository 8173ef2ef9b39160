package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moonlight-Companies/givenergy-modbus/client"
	"github.com/Moonlight-Companies/givenergy-modbus/config"
	"github.com/Moonlight-Companies/givenergy-modbus/logging"
)

func newRefreshCmd() *cobra.Command {
	var printEvery time.Duration

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Connect and continuously poll the inverter, printing plant snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := logging.NewLogger(logging.WithLevel(cfg.LogLevelValue()))
			coord := client.New(cfg.Host,
				client.WithPort(cfg.Port),
				client.WithLogger(logger),
				client.WithConnectTimeout(cfg.ConnectTimeout),
				client.WithRequestTimeout(cfg.RequestTimeout),
				client.WithReadRetries(cfg.ReadRetries),
				client.WithWriteRetries(cfg.WriteRetries),
				client.WithPacing(cfg.PacingMin, cfg.PacingMax),
				client.WithRefreshPeriod(cfg.RefreshPeriod),
				client.WithFullRefreshTick(cfg.FullRefreshTick),
				client.WithHeartbeatDeadline(cfg.HeartbeatDeadline),
				client.WithNumBatteries(cfg.NumBatteries),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runErr := make(chan error, 1)
			go func() { runErr <- coord.Run(ctx) }()

			ticker := time.NewTicker(printEvery)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-runErr:
					return err
				case <-ticker.C:
					printSnapshot(coord)
				}
			}
		},
	}

	cmd.Flags().DurationVar(&printEvery, "print-every", 5*time.Second, "how often to print the current plant snapshot")
	return cmd
}

func printSnapshot(coord *client.Coordinator) {
	inv, err := coord.Plant().Inverter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "inverter snapshot: %v\n", err)
		return
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal inverter: %v\n", err)
		return
	}
	fmt.Println(string(data))

	for i, b := range coord.Plant().Batteries() {
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal battery %d: %v\n", i, err)
			continue
		}
		fmt.Println(string(data))
	}
}
