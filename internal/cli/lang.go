package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mmynk/tipout/internal/i18n"
)

func langCommand(g *globals) *cli.Command {
	return &cli.Command{
		Name:      "lang",
		Usage:     "Show or set the display language",
		ArgsUsage: "[en|es]",
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			w := c.Root().Writer
			if c.Args().Len() == 0 {
				fmt.Fprintln(w, a.session.Language())
				return nil
			}

			lang, err := i18n.ParseLanguage(c.Args().First())
			if err != nil {
				return err
			}
			if err := a.session.SetLanguage(ctx, lang); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %s\n", i18n.NewTranslator(lang).T(i18n.KeyLanguage, nil), lang)
			return nil
		},
	}
}
