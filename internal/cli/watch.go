package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <network/device/signal>...",
	Short: "Stream I/O signal change events",
	Long: `Subscribes to the given signals and prints every change event the
controller pushes over its subscription WebSocket. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r, err := connect(cmd)
		if err != nil {
			return err
		}
		defer r.Close(cmd.Context())

		sub, err := r.SubscribeSignals(ctx, args...)
		if err != nil {
			return err
		}
		defer sub.Close(cmd.Context())

		fmt.Printf("watching %d signal(s), Ctrl-C to stop\n", len(args))
		events, errs := sub.Events(ctx)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				fmt.Printf("%s = %s\n", ev.Resource, ev.Value)
			case err, ok := <-errs:
				if ok && err != nil && ctx.Err() == nil {
					return err
				}
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
