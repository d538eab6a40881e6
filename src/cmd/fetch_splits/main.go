package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
	"github.com/jiaming2012/options-cleaner/src/eventservices"
	"github.com/jiaming2012/options-cleaner/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/fetch_splits/main.go --symbols TSLA,NVDA --out config/splits.yaml",
	Short: "Download split history from polygon and write it as a split registry yaml",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := utils.InitEnvironmentVariables(os.Getenv("PROJECTS_DIR"), goEnv); err != nil {
			log.Warnf("error loading environment variables: %v", err)
		}

		utils.SetLogLevel()

		symbols, err := cmd.Flags().GetStringSlice("symbols")
		if err != nil {
			log.Fatalf("error getting symbols: %v", err)
		}

		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		apiKey, err := utils.GetEnv("POLYGON_API_KEY")
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		fetcher := eventservices.NewPolygonSplitsFetcher(apiKey)
		ctx := context.Background()

		var config eventmodels.SplitRegistryConfig
		for _, symbol := range symbols {
			symbol = strings.ToUpper(strings.TrimSpace(symbol))
			if symbol == "" {
				continue
			}

			splits, err := fetcher.FetchSplits(ctx, symbol)
			if err != nil {
				log.Fatalf("error fetching splits for %s: %v", symbol, err)
			}

			log.Infof("%s: %d splits", symbol, len(splits))
			config.Symbols = append(config.Symbols, symbol)
			config.Splits = append(config.Splits, splits...)
		}

		if err := utils.SaveSplitsConfig(outPath, config); err != nil {
			log.Fatalf("error saving %s: %v", outPath, err)
		}

		fmt.Printf("Wrote %d splits for %d symbols to %s\n", len(config.Splits), len(config.Symbols), outPath)
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().StringSlice("symbols", nil, "Underlyings to fetch, e.g. TSLA,NVDA.")
	runCmd.PersistentFlags().String("out", "", "Where to write the split registry yaml.")

	runCmd.MarkPersistentFlagRequired("symbols")
	runCmd.MarkPersistentFlagRequired("out")

	runCmd.Execute()
}
