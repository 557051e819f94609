package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kindling-dev/kindling/pkg/coerce"
	"github.com/kindling-dev/kindling/pkg/hint"
	"github.com/kindling-dev/kindling/pkg/literal"
	"github.com/kindling-dev/kindling/pkg/render"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "kindling",
		Usage: "Typed conversion of command-line literal tokens",
		Commands: []*cli.Command{
			{
				Name:  "eval",
				Usage: "Parse a token as literal syntax and print its shape",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one token as argument")
					}

					v := literal.Parse(c.Args().First())
					fmt.Println(v.String())
					return nil
				},
			},
			{
				Name:  "convert",
				Usage: "Parse a token and coerce it against a declared type",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Usage:    "target type, e.g. 'List[int]' or 'Optional[datetime]'",
						Required: true,
					},
					&cli.BoolFlag{
						Name: "json",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Aliases: []string{"d"},
					},
					&cli.IntFlag{
						Name:  "max-depth",
						Usage: "maximum literal nesting depth",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one token as argument")
					}

					logger := slog.Default()
					if c.Bool("debug") {
						logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
							Level: slog.LevelDebug,
						}))
					}

					h, err := hint.Parse(c.String("type"))
					if err != nil {
						return fmt.Errorf("invalid type: %w", err)
					}

					config := coerce.Config{MaxDepth: int(c.Int("max-depth"))}

					engine, err := coerce.New(logger, config)
					if err != nil {
						return fmt.Errorf("failed to initialize engine: %w", err)
					}
					registerBuiltins(engine)

					out, err := engine.Convert(c.Args().First(), h)
					if err != nil {
						return err
					}

					if c.Bool("json") {
						data, err := render.JSON(out)
						if err != nil {
							return err
						}
						fmt.Println(string(data))
						return nil
					}

					fmt.Println(render.Text(out))
					return nil
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}

// registerBuiltins wires a few common single-argument-constructible targets.
func registerBuiltins(engine *coerce.Engine) {
	engine.Register("duration", func(v literal.Value) (any, error) {
		text, ok := leafText(v)
		if !ok {
			return nil, fmt.Errorf("duration requires a textual argument, got %s", v)
		}
		return time.ParseDuration(text)
	})
}

func leafText(v literal.Value) (string, bool) {
	switch v := v.(type) {
	case literal.Str:
		return string(v), true
	case literal.Raw:
		return string(v), true
	default:
		return "", false
	}
}
