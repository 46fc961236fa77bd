package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
)

func (cli *commandLine) stats() error {
	stats, err := cli.studentSvc.Stats(context.Background())
	if err != nil {
		if errors.Cause(err) == core.ErrNoData {
			fmt.Fprintln(cli.stdout, "No data available.")
			return nil
		}
		return err
	}

	w := tabwriter.NewWriter(cli.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total Students:\t%d\n", stats.Total)
	fmt.Fprintf(w, "Class Average:\t%.2f\n", stats.ClassAvg)
	fmt.Fprintf(w, "Highest Average:\t%.2f\n", stats.MaxAvg)
	fmt.Fprintf(w, "Lowest Average:\t%.2f\n", stats.MinAvg)
	fmt.Fprintln(w)
	for _, c := range stats.Categories {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", c.Label, c.Count, c.Percentage)
	}
	return w.Flush()
}
