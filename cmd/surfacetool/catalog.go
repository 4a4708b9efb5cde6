package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go-surface/protocol"
)

func printCatalog(w io.Writer, args []string) error {
	infos := protocol.All()
	if len(args) > 0 {
		info, ok := protocol.ByName(args[0])
		if !ok {
			return fmt.Errorf("no message named %q", args[0])
		}
		infos = []protocol.Info{info}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPROFILE\tDIRECTION\tMIN\tMAX")
	for _, info := range infos {
		fmt.Fprintf(tw, "0x%02x\t%s\t%s\t%s\t%d\t%d\n",
			uint8(info.ID), info.Name, info.Profile, info.Direction, info.MinSize, info.MaxSize)
	}
	return tw.Flush()
}
