package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vortex-fintech/people/person"
	"github.com/vortex-fintech/people/timeutil"
)

func (a *app) print(cmd *cobra.Command, list []person.Person) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		if list == nil {
			list = []person.Person{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "Nenhum registro.")
		return nil
	}

	today := timeutil.Today(a.clock)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tNASCIMENTO\tIDADE\tCPF")
	for _, p := range list {
		age := "-"
		if n, err := p.Age(today); err == nil {
			age = strconv.Itoa(n)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.BirthDate, age, p.FormattedCPF())
	}
	return tw.Flush()
}
