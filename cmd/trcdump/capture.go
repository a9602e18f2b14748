package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"swotrace/common"
	"swotrace/formatter"
	"swotrace/itm"
)

func newCaptureCommand() *cobra.Command {
	var baud int
	var sourceID uint8

	cmd := &cobra.Command{
		Use:   "capture <port>",
		Short: "Capture TPIU-framed trace from a probe's serial/SWO port until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := common.NewLogrusLogger(cmd.ErrOrStderr(), common.SeverityInfo)

			// Never configure the probe beyond the baud rate: discovery
			// and clock negotiation are the probe vendor's job, not
			// this client's.
			mode := &serial.Mode{BaudRate: baud}
			port, err := serial.Open(args[0], mode)
			if err != nil {
				return err
			}
			log.Logf(common.SeverityInfo, "opened %s at %d baud", args[0], baud)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := bridgeFormatter(port, formatter.SourceID(sourceID), log)
			parser := itm.NewParser(r)

			var packets []itm.Packet
			done := make(chan struct{})
			go func() {
				defer close(done)
				for pkt := range parser.All() {
					packets = append(packets, pkt)
				}
			}()

			select {
			case <-ctx.Done():
				log.Info("capture interrupted, closing port")
			case <-done:
			}
			port.Close()
			<-done

			if err := parser.Err(); err != nil {
				log.Error(err)
			}
			renderPackets(packets)
			return nil
		},
	}

	cmd.Flags().IntVar(&baud, "baud", 115200, "serial/SWO baud rate")
	cmd.Flags().Uint8Var(&sourceID, "source", 1, "Formatter source ID carrying the Instrumentation stream")
	return cmd
}
