package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"swotrace/itm"
)

const maxColWidth = 80

// renderPackets prints decoded packets as an aligned table, with
// Invalid and Reserved rows highlighted so a reviewer's eye catches
// them first.
func renderPackets(packets []itm.Packet) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetColWidth(maxColWidth)
	table.SetHeader([]string{"#", "Kind", "Detail"})

	warn := color.New(color.FgRed).SprintFunc()
	for i, pkt := range packets {
		row := []string{fmt.Sprintf("%d", i), pkt.Kind.String(), pkt.String()}
		if pkt.Kind == itm.Invalid || pkt.Kind == itm.Reserved {
			for j := range row {
				row[j] = warn(row[j])
			}
		}
		table.Append(row)
	}
	table.Render()
}
