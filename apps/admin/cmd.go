package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/tally/core/student"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	studentSvc student.ServiceInterface
	stdout     io.Writer
	stdoutFd   int
}

func newCommandLine(svc student.ServiceInterface) *commandLine {
	return &commandLine{studentSvc: svc, stdout: os.Stdout, stdoutFd: int(os.Stdout.Fd())}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stdout, "Usage:")
	fmt.Fprintln(cli.stdout, "  stats - print the grade book statistics")
	fmt.Fprintln(cli.stdout, "  export -format txt|xlsx [-o FILE] - write the student report (stdout by default)")
	fmt.Fprintln(cli.stdout, "  import -file FILE.xlsx - import students from a workbook (ID, Name, Grades)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.stdout)
	exportFormat := exportCmd.String("format", "txt", "The report format: txt or xlsx.")
	exportOut := exportCmd.String("o", "", "The output file. Defaults to stdout.")

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importCmd.SetOutput(cli.stdout)
	importFile := importCmd.String("file", "", "The .xlsx workbook to import.")

	switch args[1] {
	case "stats":
		return cli.stats()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *exportFormat != "txt" && *exportFormat != "xlsx" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(*exportFormat, *exportOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importStudents(*importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
