package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/entrypoint"
)

type OpenCommand struct {
	CellID int

	cfg *config.Config
	Out io.Writer
}

func NewOpenCommand(cfg *config.Config) *OpenCommand {
	return &OpenCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *OpenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)

	fs.IntVar(&cmd.CellID, "cell", -1, "Physical slot number of the cell to open (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s open -cell N\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Unlock one locker cell.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CellID < 0 {
		fs.Usage()
		return fmt.Errorf("cell is required")
	}
	return nil
}

func (cmd *OpenCommand) Run() error {
	client := entrypoint.NewLockerClient(cmd.cfg)

	if err := client.OpenCell(context.Background(), cmd.CellID); err != nil {
		return fmt.Errorf("failed to open cell %d: %w", cmd.CellID, err)
	}

	fmt.Fprintf(cmd.Out, "Cell %d opened\n", cmd.CellID)
	return nil
}
