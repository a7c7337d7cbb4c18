package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/mmynk/tipout/internal/calculator"
	"github.com/mmynk/tipout/internal/i18n"
	"github.com/mmynk/tipout/internal/models"
	"github.com/mmynk/tipout/internal/service"
)

func calcCommand(g *globals) *cli.Command {
	var (
		total     string
		method    string
		employees []string
	)

	return &cli.Command{
		Name:  "calc",
		Usage: "Calculate a tip-out and save it to history",

		// Each --employee is one participant; commas belong to names and
		// decimal-comma values.
		DisableSliceFlagSeparator: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "total",
				Aliases:     []string{"t"},
				Usage:       "Total tips amount",
				Destination: &total,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "method",
				Aliases:     []string{"m"},
				Usage:       "equal, hours or percentage",
				Value:       string(models.MethodEqual),
				Destination: &method,
			},
			&cli.StringSliceFlag{
				Name:        "employee",
				Aliases:     []string{"e"},
				Usage:       `Employee as "Name" or "Name:value" (value is hours or percentage); repeatable`,
				Destination: &employees,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			m, err := models.ParseMethod(method)
			if err != nil {
				return err
			}

			a, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			participants := make([]models.Participant, len(employees))
			for i, e := range employees {
				participants[i] = parseEmployee(e, m)
			}
			out, err := a.session.Calculate(ctx, service.CalculateInput{
				TotalTips:    total,
				Method:       m,
				Participants: participants,
				Language:     a.lang,
			})
			if err != nil {
				return err
			}

			w := c.Root().Writer
			tr := a.translator()
			printResults(w, tr, out.Results, out.TotalDistributed)
			if out.Warning != nil {
				fmt.Fprintln(c.Root().ErrWriter, out.Warning.Message)
			}
			if out.PersistErr != nil {
				fmt.Fprintf(c.Root().ErrWriter, "history not saved: %v\n", out.PersistErr)
			}
			return nil
		},
	}
}

// parseEmployee splits "Name:value" on the last colon. The value goes to the
// field the method reads.
func parseEmployee(raw string, method models.Method) models.Participant {
	name, value := raw, ""
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		name, value = raw[:i], raw[i+1:]
	}
	p := models.Participant{Name: strings.TrimSpace(name)}
	switch method {
	case models.MethodHours:
		p.Hours = value
	case models.MethodPercentage:
		p.Percentage = value
	}
	return p
}

func printResults(w io.Writer, tr *i18n.Translator, results []models.AllocationResult, total float64) {
	fmt.Fprintln(w, tr.T(i18n.KeyResults, nil))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t$%.2f\t%s\n", r.Name, calculator.Round2(r.Amount), r.Explanation)
	}
	tw.Flush()
	fmt.Fprintf(w, "%s $%.2f\n", tr.T(i18n.KeyTotalDistributed, nil), total)
}
