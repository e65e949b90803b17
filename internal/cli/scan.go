package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/postomat/internal/folders"
)

type ScanCommand struct {
	Directory string
	FirstOnly bool

	Out io.Writer
}

func NewScanCommand() *ScanCommand {
	return &ScanCommand{Out: os.Stdout}
}

func (cmd *ScanCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)

	fs.StringVar(&cmd.Directory, "dir", "", "Directory to walk (required)")
	fs.BoolVar(&cmd.FirstOnly, "first", false, "List only the first file of each directory")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s scan -dir D [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List file names under a directory, top-down.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Directory == "" {
		fs.Usage()
		return fmt.Errorf("directory is required")
	}
	return nil
}

func (cmd *ScanCommand) Run() error {
	mode := folders.ScanAll
	if cmd.FirstOnly {
		mode = folders.ScanFirstPerDir
	}

	files, err := folders.ScanFolder(cmd.Directory, mode)
	if err != nil {
		return err
	}
	for _, name := range files {
		fmt.Fprintln(cmd.Out, name)
	}
	return nil
}
