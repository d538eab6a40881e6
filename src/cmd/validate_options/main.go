package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
	"github.com/jiaming2012/options-cleaner/src/eventservices"
	"github.com/jiaming2012/options-cleaner/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/validate_options/main.go --in data/TSLA/2022_options_clean.csv",
	Short: "Check that a normalized option dataset is ordered and its derived fields are consistent",
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

		itmBasis, err := cmd.Flags().GetString("itm-basis")
		if err != nil {
			log.Fatalf("error getting itm-basis: %v", err)
		}

		basis := eventmodels.ItmBasis(itmBasis)
		if err := basis.Validate(); err != nil {
			log.Fatalf("error: %v", err)
		}

		records, failures, err := utils.LoadOptionRecordsCSV(inPath)
		if err != nil {
			log.Fatalf("error loading %s: %v", inPath, err)
		}

		for _, f := range failures {
			log.Errorf("unreadable row: %v", f)
		}

		violations := eventservices.ValidateDataset(records, basis)

		if len(violations) > 0 {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Index", "Ticker", "Field", "Expected", "Actual"})
			table.SetAutoWrapText(false)

			for _, v := range violations {
				table.Append([]string{fmt.Sprintf("%d", v.Index), string(v.Ticker), v.Field, v.Expected, v.Actual})
			}

			table.Render()
		}

		fmt.Printf("Checked %d records: %d violations, %d unreadable rows\n", len(records), len(violations), len(failures))

		if len(violations) > 0 || len(failures) > 0 {
			os.Exit(1)
		}
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("in", "", "The normalized option records csv.")
	runCmd.PersistentFlags().String("itm-basis", string(eventmodels.ItmBasisTradeDate), "Spot used for the ITM flag: trade_date or expiration.")

	runCmd.MarkPersistentFlagRequired("in")

	runCmd.Execute()
}
