/*
 * elements.go, part of govsepr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newElementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the elements in the loaded periodic table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := GetEnv(cmd)
			if err != nil {
				return err
			}
			elements := env.Table.Elements()
			if env.Config.Output.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, e := range elements {
					if err := enc.Encode(e); err != nil {
						return err
					}
				}
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Z\tSymbol\tName\tValence\tPeriod\tEN\tVdW (Å)\tCovalent (Å)")
			for _, e := range elements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f %.2f %.2f\n",
					e.AtomicNumber, e.Symbol, e.Name, e.Valence, e.Period, e.Electronegativity,
					e.VdwRadius, e.Covalent[0], e.Covalent[1], e.Covalent[2])
			}
			return w.Flush()
		},
	}
}
