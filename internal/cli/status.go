package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/entities"
	"github.com/mrlokans/postomat/internal/entrypoint"
)

type StatusCommand struct {
	JSON   bool
	Camel  bool
	Active int

	cfg *config.Config
	Out io.Writer
}

func NewStatusCommand(cfg *config.Config) *StatusCommand {
	return &StatusCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *StatusCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)

	fs.BoolVar(&cmd.JSON, "json", false, "Print cells as JSON instead of a table")
	fs.BoolVar(&cmd.Camel, "camel", false, "Use camelCase keys in JSON output")
	fs.IntVar(&cmd.Active, "active", -1, "Only show cells with this active flag (0 or 1)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s status [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the status of every locker cell.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s status\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s status -json -camel\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s status -active 0\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Active < -1 || cmd.Active > 1 {
		fs.Usage()
		return fmt.Errorf("active must be 0 or 1")
	}
	if cmd.Camel && !cmd.JSON {
		return fmt.Errorf("-camel requires -json")
	}
	return nil
}

func (cmd *StatusCommand) Run() error {
	client := entrypoint.NewLockerClient(cmd.cfg)

	cells, err := client.GetStatus(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch status from %s: %w", client.BaseURL(), err)
	}
	if cmd.Active >= 0 {
		cells = entities.FilterActive(cells, cmd.Active)
	}

	if cmd.JSON {
		return cmd.printJSON(cells)
	}
	return cmd.printTable(cells)
}

func (cmd *StatusCommand) printJSON(cells []entities.Cell) error {
	data, err := converter.Default().Dump(cells, cmd.Camel)
	if err != nil {
		return fmt.Errorf("failed to dump cells: %w", err)
	}
	if data == nil {
		data = []any{}
	}
	enc := json.NewEncoder(cmd.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (cmd *StatusCommand) printTable(cells []entities.Cell) error {
	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CELL\tNAME\tACTIVE\tSESSION\tUPDATED")
	for _, c := range cells {
		session := "-"
		if c.HasSession() {
			session = *c.SessionID
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", c.CellID, c.Name, c.Active, session, converter.FormatTimestamp(c.UpdatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Out, "\n%d cell(s), %d active\n", len(cells), len(entities.FilterActive(cells, 1)))
	return nil
}
