package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/tally/core"
	"github.com/trezcool/tally/services/spreadsheet"
)

var errBinaryToTerminal = errors.New("refusing to write an xlsx workbook to a terminal, use -o FILE")

// export writes the student report to path, or to stdout when path is empty.
func (cli *commandLine) export(format, path string) error {
	ctx := context.Background()

	var w io.Writer = cli.stdout
	if path == "" && format == "xlsx" && isTerminalFunc(cli.stdoutFd) {
		return errBinaryToTerminal
	}

	write := func(w io.Writer) error {
		if format == "xlsx" {
			students, err := cli.studentSvc.QueryAll(ctx)
			if err != nil {
				return err
			}
			if len(students) == 0 {
				return core.ErrNoData
			}
			return spreadsheet.WriteStudents(w, students)
		}
		report, err := cli.studentSvc.Report(ctx)
		if err != nil {
			return err
		}
		_, err = w.Write(report.Body)
		return err
	}

	if path == "" {
		return write(w)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return errors.Wrap(f.Close(), "closing output file")
}
