package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/brnsen/rigwatch"
	"github.com/brnsen/rigwatch/adapter/j1708serial"
	"github.com/brnsen/rigwatch/adapter/j1939can"
)

const (
	flagCANInterface = "can-if"
	flagJ1708Port    = "j1708-port"
)

func init() {
	runCmd.Flags().String(flagCANInterface, "can0", "SocketCAN interface carrying the J1939 bus")
	runCmd.Flags().String(flagJ1708Port, "", "serial device carrying the J1708 bus (empty = J1708 disabled)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dashboard core against a live J1939/J1708 bus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := newDashboard(cmd, time.Now())
		if err != nil {
			return err
		}

		canIf, _ := cmd.Flags().GetString(flagCANInterface)
		canAdapter := j1939can.NewAdapter(canIf)
		if err := canAdapter.Initialize(); err != nil {
			return err
		}
		defer canAdapter.Close()

		d.ReceiveCAN = func(ctx context.Context, fn rigwatch.RawFrameFunc) error {
			return canAdapter.Run(ctx, j1939can.RawFrameFunc(fn))
		}

		if port, _ := cmd.Flags().GetString(flagJ1708Port); port != "" {
			j1708Adapter := j1708serial.NewAdapter(port)
			if err := j1708Adapter.Initialize(); err != nil {
				return err
			}
			defer j1708Adapter.Close()

			d.ReceiveJ1587 = func(ctx context.Context, fn rigwatch.RawJ1587Func) error {
				return j1708Adapter.Run(ctx, j1708serial.RawMessageFunc(fn))
			}
		}

		return d.Run(ctx)
	},
}
