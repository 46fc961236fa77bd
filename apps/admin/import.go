package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/services/spreadsheet"
)

// importStudents creates the students of an .xlsx workbook; rows that fail are reported and skipped.
func (cli *commandLine) importStudents(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	nss, err := spreadsheet.ReadStudents(f)
	if err != nil {
		return err
	}

	count, errs := cli.studentSvc.Import(context.Background(), nss)
	for _, err := range errs {
		fmt.Fprintf(cli.stdout, "skipped: %v\n", err)
	}
	fmt.Fprintf(cli.stdout, "%d students imported, %d skipped\n", count, len(errs))
	return nil
}
