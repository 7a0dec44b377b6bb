package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/internal/logger"
	"github.com/rxtech-lab/argo-charting/internal/ohlcv"
	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/chart"
	"github.com/rxtech-lab/argo-charting/pkg/frame"
	"github.com/urfave/cli/v3"
)

// renderAction loads an OHLCV file, renders it into a figure and writes
// the figure JSON to the output path.
func renderAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	outputPath := cmd.String("output")
	plotTypeFlag := cmd.String("type")
	volumeFlag := cmd.String("volume")
	settingsPath := cmd.String("settings")
	timeColumn := cmd.String("time-column")
	title := cmd.String("title")

	zapLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()

	currentSettings := settings.Snapshot()

	if settingsPath != "" {
		currentSettings, err = settings.Load(settingsPath)
		if err != nil {
			return err
		}
	}

	loader, err := frame.NewLoader(zapLogger)
	if err != nil {
		return err
	}
	defer loader.Close()

	loadOpts := frame.LoadOptions{TimeColumn: timeColumn}

	var f *frame.Frame

	if strings.EqualFold(filepath.Ext(dataPath), ".parquet") {
		f, err = loader.LoadParquet(dataPath, loadOpts)
	} else {
		f, err = loader.LoadCSV(dataPath, loadOpts)
	}

	if err != nil {
		return err
	}

	plotOpts := ohlcv.PlotOptions{}

	if plotTypeFlag != "" {
		plotOpts.PlotType = optional.Some(plotTypeFlag)
	}

	if volumeFlag != "auto" {
		displayVolume, err := strconv.ParseBool(volumeFlag)
		if err != nil {
			return fmt.Errorf("invalid --volume value %q, expected auto, true or false", volumeFlag)
		}

		plotOpts.DisplayVolume = optional.Some(displayVolume)
	}

	if title != "" {
		plotOpts.LayoutBag = chart.Bag{"title": chart.Bag{"text": title}}
	}

	accessor := ohlcv.New(f, ohlcv.WithSettings(currentSettings), ohlcv.WithLogger(zapLogger))

	fig, err := accessor.Plot(plotOpts)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}

	if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}

	log.Printf("Wrote figure with %d trace(s) to %s", len(fig.Traces()), outputPath)

	return nil
}

// schemaAction prints the JSON schema of the settings file format.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	raw, err := json.MarshalIndent(settings.Default().GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}

	fmt.Println(string(raw))

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "chart",
		Usage: "Render OHLCV market data into plotly figure JSON",
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Render a CSV or Parquet OHLCV file into a figure",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the input CSV or Parquet file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the figure JSON to write",
						Value:   "figure.json",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Plot type, OHLC or Candlestick. Defaults to the settings default.",
					},
					&cli.StringFlag{
						Name:  "volume",
						Usage: "Show the volume panel: auto, true or false",
						Value: "auto",
					},
					&cli.StringFlag{
						Name:  "time-column",
						Usage: "Label of the column used as the time index",
						Value: "time",
					},
					&cli.StringFlag{
						Name:    "settings",
						Aliases: []string{"s"},
						Usage:   "Path to a YAML settings file overriding the defaults",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Figure title",
					},
				},
				Action: renderAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the settings file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
