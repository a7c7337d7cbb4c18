package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/mmynk/tipout/internal/calculator"
	"github.com/mmynk/tipout/internal/i18n"
)

func historyCommand(g *globals) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear past calculations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the last calculations, newest first",
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := g.open(ctx)
					if err != nil {
						return err
					}
					defer a.close()

					w := c.Root().Writer
					tr := a.translator()
					entries := a.session.ListHistory()
					if len(entries) == 0 {
						fmt.Fprintln(w, tr.T(i18n.KeyHistoryEmpty, nil))
						return nil
					}

					fmt.Fprintln(w, tr.T(i18n.KeyHistory, nil))
					for _, e := range entries {
						fmt.Fprintf(w, "%d\t%s\t$%.2f • %s • %d %s\n",
							e.ID,
							e.CreatedAt().Local().Format("2006-01-02 15:04:05"),
							e.TotalAmount,
							e.Method,
							len(e.Results),
							tr.T(i18n.KeyEmployees, nil),
						)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show the results of a past calculation",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one history id")
					}
					id, err := strconv.ParseInt(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid history id %q: %w", c.Args().First(), err)
					}

					a, err := g.open(ctx)
					if err != nil {
						return err
					}
					defer a.close()

					entry, err := a.session.SelectEntry(id)
					if err != nil {
						return err
					}

					w := c.Root().Writer
					fmt.Fprintf(w, "%s  $%.2f  %s\n",
						entry.CreatedAt().Local().Format("2006-01-02 15:04:05"),
						entry.TotalAmount,
						entry.Method,
					)
					printResults(w, a.translator(), entry.Results, calculator.TotalDistributed(entry.Results))
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Delete all past calculations",
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := g.open(ctx)
					if err != nil {
						return err
					}
					defer a.close()

					if err := a.session.ClearHistory(ctx); err != nil {
						return err
					}
					fmt.Fprintln(c.Root().Writer, a.translator().T(i18n.KeyHistoryCleared, nil))
					return nil
				},
			},
		},
	}
}
