package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/hugr-lab/duckcat/catalog"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

func printNames(w io.Writer, header string, names []string) {
	table := newTable(w, header)
	for _, name := range names {
		table.Append([]string{name})
	}
	table.Render()
}

func printTables(w io.Writer, tables []catalog.Table) {
	table := newTable(w, "Table", "Kind")
	for _, t := range tables {
		table.Append([]string{t.Name, t.Kind})
	}
	table.Render()
}

func printColumns(w io.Writer, cols []catalog.Column) {
	table := newTable(w, "Column", "Type", "Arrow")
	for _, c := range cols {
		table.Append([]string{c.Name, c.Type, c.DeclaredType().ArrowType().String()})
	}
	table.Render()
}

func printTree(w io.Writer, tree catalog.Tree) {
	for _, db := range tree {
		fmt.Fprintf(w, "%s\n", db.Name)
		for _, schema := range db.Schemas {
			fmt.Fprintf(w, "  %s\n", schema.Name)
			for _, t := range schema.Tables {
				fmt.Fprintf(w, "    %s (%s)\n", t.Name, t.Kind)
				for _, c := range t.Columns {
					fmt.Fprintf(w, "      %s %s\n", c.Name, c.Type)
				}
			}
		}
	}
}
