package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-cleaner/src/eventservices"
	"github.com/jiaming2012/options-cleaner/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/summarize_options/main.go --in data/TSLA/2022_options_clean.csv",
	Short: "Print per-year ITM rate and premium yield statistics of a normalized option dataset",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := utils.InitEnvironmentVariables(os.Getenv("PROJECTS_DIR"), goEnv); err != nil {
			log.Warnf("error loading environment variables: %v", err)
		}

		utils.SetLogLevel()

		inPath, err := cmd.Flags().GetString("in")
		if err != nil {
			log.Fatalf("error getting in: %v", err)
		}

		records, failures, err := utils.LoadOptionRecordsCSV(inPath)
		if err != nil {
			log.Fatalf("error loading %s: %v", inPath, err)
		}

		if len(failures) > 0 {
			log.Warnf("skipped %d unreadable rows", len(failures))
		}

		summaries, err := eventservices.SummarizeDataset(records)
		if err != nil {
			log.Fatalf("error summarizing: %v", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Year", "Records", "ITM", "ITM %", "Mean Yield %", "Median Yield %", "Mean OTM %"})

		for _, s := range summaries {
			table.Append([]string{
				fmt.Sprintf("%d", s.Year),
				fmt.Sprintf("%d", s.Count),
				fmt.Sprintf("%d", s.ItmCount),
				fmt.Sprintf("%.2f", s.ItmRatePct),
				fmt.Sprintf("%.4f", s.MeanPremiumYieldPct),
				fmt.Sprintf("%.4f", s.MedianPremiumYieldPct),
				fmt.Sprintf("%.2f", s.MeanOtmPct),
			})
		}

		table.Render()
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("in", "", "The normalized option records csv.")

	runCmd.MarkPersistentFlagRequired("in")

	runCmd.Execute()
}
