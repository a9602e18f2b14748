package main

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"swotrace/common"
	"swotrace/formatter"
	"swotrace/itm"
	"swotrace/resync"
)

func newDecodeCommand() *cobra.Command {
	var tpiu bool
	var sourceID uint8

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a captured trace file and print its packets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := common.NewLogrusLogger(cmd.ErrOrStderr(), common.SeverityInfo)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var r io.Reader
			if tpiu {
				offset := resync.FindFormatterOffset(data)
				log.Logf(common.SeverityInfo, "formatter resync offset %d", offset)
				r = bridgeFormatter(bytes.NewReader(data[offset:]), formatter.SourceID(sourceID), log)
			} else {
				offset := resync.FindITMOffset(data)
				log.Logf(common.SeverityInfo, "instrumentation resync offset %d", offset)
				r = bytes.NewReader(data[offset:])
			}

			parser := itm.NewParser(r)
			var packets []itm.Packet
			for pkt := range parser.All() {
				packets = append(packets, pkt)
			}
			if err := parser.Err(); err != nil {
				log.Error(err)
			}

			renderPackets(packets)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tpiu, "tpiu", false, "file holds TPIU-framed trace rather than a raw Instrumentation stream")
	cmd.Flags().Uint8Var(&sourceID, "source", 1, "Formatter source ID carrying the Instrumentation stream (with --tpiu)")
	return cmd
}
