package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-cleaner/src/cmd/normalize_options/run"
	"github.com/jiaming2012/options-cleaner/src/eventmodels"
	"github.com/jiaming2012/options-cleaner/src/telemetry"
	"github.com/jiaming2012/options-cleaner/src/utils"
)

func parseOptionalDate(cmd *cobra.Command, name string) time.Time {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}

	if value == "" {
		return time.Time{}
	}

	date, err := eventmodels.ParseDate(value)
	if err != nil {
		log.Fatalf("error parsing %s: %v", name, err)
	}

	return date
}

func printFailures(result run.RunResult) {
	if result.FailureCount() == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stage", "Index", "Ticker", "Trade Date", "Error"})
	table.SetAutoWrapText(false)

	appendRows := func(stage string, failures []*eventmodels.RecordFailure) {
		for _, f := range failures {
			date := ""
			if !f.TradeDate.IsZero() {
				date = f.TradeDate.Format(eventmodels.DateLayout)
			}

			log.Warnf("%s failure: %v", stage, f)
			table.Append([]string{stage, fmt.Sprintf("%d", f.Index), string(f.Ticker), date, f.Err.Error()})
		}
	}

	appendRows("load", result.LoadFailures)
	appendRows("normalize", result.NormalizeFailures)

	table.Render()
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/normalize_options/main.go --in data/TSLA/2022_options.csv --out data/TSLA/2022_options_clean.csv --splits config/splits.yaml",
	Short: "Split-adjust option quotes and recompute their derived fields",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		if err := utils.InitEnvironmentVariables(os.Getenv("PROJECTS_DIR"), goEnv); err != nil {
			log.Warnf("error loading environment variables: %v", err)
		}

		utils.SetLogLevel()

		ctx := context.Background()

		otelShutdown, err := telemetry.SetupOTelSDK(ctx, "normalize_options")
		if err != nil {
			log.Fatalf("failed to setup otel sdk: %v", err)
		}

		defer func() {
			if err := otelShutdown(ctx); err != nil {
				log.Errorf("failed to shutdown otel sdk: %v", err)
			}
		}()

		inPath, err := cmd.Flags().GetString("in")
		if err != nil {
			log.Fatalf("error getting in: %v", err)
		}

		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		splitsPath, err := cmd.Flags().GetString("splits")
		if err != nil {
			log.Fatalf("error getting splits: %v", err)
		}

		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			log.Fatalf("error getting workers: %v", err)
		}

		itmBasis, err := cmd.Flags().GetString("itm-basis")
		if err != nil {
			log.Fatalf("error getting itm-basis: %v", err)
		}

		requireSplits, err := cmd.Flags().GetBool("require-splits")
		if err != nil {
			log.Fatalf("error getting require-splits: %v", err)
		}

		callsOnly, err := cmd.Flags().GetBool("calls-only")
		if err != nil {
			log.Fatalf("error getting calls-only: %v", err)
		}

		result, err := run.Run(ctx, run.RunArgs{
			InPath:        inPath,
			OutPath:       outPath,
			SplitsPath:    splitsPath,
			Workers:       workers,
			ItmBasis:      eventmodels.ItmBasis(itmBasis),
			RequireSplits: requireSplits,
			CallsOnly:     callsOnly,
			From:          parseOptionalDate(cmd, "from"),
			To:            parseOptionalDate(cmd, "to"),
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		printFailures(result)

		fmt.Printf("Run %s: wrote %d records to %s (%d failed, %d dropped)\n", result.RunID, result.Normalized, result.OutPath, result.FailureCount(), result.Dropped)
	},
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("in", "", "The raw option records csv.")
	runCmd.PersistentFlags().String("out", "", "Where to write the normalized csv.")
	runCmd.PersistentFlags().String("splits", "", "The split registry yaml. Without it no record is adjusted.")
	runCmd.PersistentFlags().Int("workers", 0, "Records normalized in parallel. Defaults to the number of CPUs.")
	runCmd.PersistentFlags().String("itm-basis", string(eventmodels.ItmBasisTradeDate), "Spot used for the ITM flag: trade_date or expiration.")
	runCmd.PersistentFlags().Bool("require-splits", false, "Fail records whose underlying is missing from the split registry.")
	runCmd.PersistentFlags().Bool("calls-only", false, "Drop put contracts.")
	runCmd.PersistentFlags().String("from", "", "First trade date to keep (YYYY-MM-DD).")
	runCmd.PersistentFlags().String("to", "", "Last trade date to keep (YYYY-MM-DD).")

	runCmd.MarkPersistentFlagRequired("in")
	runCmd.MarkPersistentFlagRequired("out")

	runCmd.Execute()
}
