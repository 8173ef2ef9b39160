package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Moonlight-Companies/givenergy-modbus/client"
	"github.com/Moonlight-Companies/givenergy-modbus/config"
	"github.com/Moonlight-Companies/givenergy-modbus/logging"
	"github.com/Moonlight-Companies/givenergy-modbus/pdu"
)

// setCommand resolves a named control command and its positional args into
// one or more requests to execute in sequence.
type setCommand struct {
	name string
	want int
	build func(args []string) ([]pdu.Request, error)
}

func intArg(args []string, i int) (int, error) {
	return strconv.Atoi(args[i])
}

var setCommands = []setCommand{
	{"enable-charge", 0, func(args []string) ([]pdu.Request, error) {
		return []pdu.Request{client.EnableCharge()}, nil
	}},
	{"disable-charge", 0, func(args []string) ([]pdu.Request, error) {
		return []pdu.Request{client.DisableCharge()}, nil
	}},
	{"enable-discharge", 0, func(args []string) ([]pdu.Request, error) {
		return []pdu.Request{client.EnableDischarge()}, nil
	}},
	{"disable-discharge", 0, func(args []string) ([]pdu.Request, error) {
		return []pdu.Request{client.DisableDischarge()}, nil
	}},
	{"charge-target-soc", 1, func(args []string) ([]pdu.Request, error) {
		v, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		req, err := client.SetChargeTargetSOC(v)
		if err != nil {
			return nil, err
		}
		return []pdu.Request{req}, nil
	}},
	{"battery-soc-reserve", 1, func(args []string) ([]pdu.Request, error) {
		v, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		req, err := client.SetBatterySOCReserve(v)
		if err != nil {
			return nil, err
		}
		return []pdu.Request{req}, nil
	}},
	{"charge-limit", 1, func(args []string) ([]pdu.Request, error) {
		v, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		req, err := client.SetChargeLimit(v)
		if err != nil {
			return nil, err
		}
		return []pdu.Request{req}, nil
	}},
	{"discharge-limit", 1, func(args []string) ([]pdu.Request, error) {
		v, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		req, err := client.SetDischargeLimit(v)
		if err != nil {
			return nil, err
		}
		return []pdu.Request{req}, nil
	}},
	{"charge-slot1", 2, func(args []string) ([]pdu.Request, error) {
		slot, err := parseSlot(args)
		if err != nil {
			return nil, err
		}
		reqs := client.SetChargeSlot1(slot)
		return reqs[:], nil
	}},
	{"charge-slot2", 2, func(args []string) ([]pdu.Request, error) {
		slot, err := parseSlot(args)
		if err != nil {
			return nil, err
		}
		reqs := client.SetChargeSlot2(slot)
		return reqs[:], nil
	}},
	{"discharge-slot1", 2, func(args []string) ([]pdu.Request, error) {
		slot, err := parseSlot(args)
		if err != nil {
			return nil, err
		}
		reqs := client.SetDischargeSlot1(slot)
		return reqs[:], nil
	}},
	{"discharge-slot2", 2, func(args []string) ([]pdu.Request, error) {
		slot, err := parseSlot(args)
		if err != nil {
			return nil, err
		}
		reqs := client.SetDischargeSlot2(slot)
		return reqs[:], nil
	}},
	{"system-clock-now", 0, func(args []string) ([]pdu.Request, error) {
		reqs := client.SetSystemClock(time.Now())
		return reqs[:], nil
	}},
	{"reboot", 0, func(args []string) ([]pdu.Request, error) {
		return []pdu.Request{client.Reboot()}, nil
	}},
}

func parseSlot(args []string) (client.TimeSlot, error) {
	start, err := intArg(args, 0)
	if err != nil {
		return client.TimeSlot{}, err
	}
	end, err := intArg(args, 1)
	if err != nil {
		return client.TimeSlot{}, err
	}
	return client.TimeSlot{Start: start, End: end}, nil
}

func findSetCommand(name string) (setCommand, bool) {
	for _, c := range setCommands {
		if c.name == name {
			return c, true
		}
	}
	return setCommand{}, false
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <command> [args...]",
		Short: "Issue a single control command against the inverter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, ok := findSetCommand(args[0])
			if !ok {
				return fmt.Errorf("unknown set command %q", args[0])
			}
			rest := args[1:]
			if len(rest) != sc.want {
				return fmt.Errorf("%s expects %d argument(s), got %d", sc.name, sc.want, len(rest))
			}

			reqs, err := sc.build(rest)
			if err != nil {
				return err
			}

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
			)

			ctx := cmd.Context()
			if err := coord.Connect(ctx); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer coord.Disconnect(context.Background())

			for _, req := range reqs {
				resp, err := coord.Execute(ctx, req)
				if err != nil {
					return fmt.Errorf("%s: %w", sc.name, err)
				}
				if resp.IsError() {
					return fmt.Errorf("%s: device returned an error response", sc.name)
				}
			}

			fmt.Printf("%s: ok\n", sc.name)
			return nil
		},
	}
	return cmd
}
