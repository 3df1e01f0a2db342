package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"waradvisor/adapters/refdata"
	"waradvisor/app"
	"waradvisor/domain/core"
	"waradvisor/domain/tactics"
	"waradvisor/internal/batch"
	"waradvisor/internal/config"
	"waradvisor/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "advisor-cli",
		Short: "War Advisor CLI for scoring armies against the strategy book",
	}

	rootCmd.AddCommand(
		newOptionsCmd(),
		newAdviseCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the environment, the configuration and the reference data
// store, the same way the web launcher does.
func bootstrap() (*app.AdvisorService, *config.Config, error) {
	_ = godotenv.Load() // .env is optional for the CLI

	appConfig, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	var store *refdata.Store
	if appConfig.Data.Dir != "" {
		store, err = refdata.Load(appConfig.Data.Dir)
	} else {
		store, err = refdata.DefaultStore()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load reference data: %w", err)
	}

	var data ports.ReferenceData = store
	if appConfig.Data.HasMaxAdjustment() {
		data = refdata.WithMaxAdjustment(store, appConfig.Data.MaxAdjustment)
	}
	return app.NewAdvisorService(data), appConfig, nil
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the units, terrains, weather and troop statuses a scenario can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := bootstrap()
			if err != nil {
				return err
			}
			opts := service.Options()
			header := color.New(color.FgCyan, color.Bold)

			header.Println("\nUNITS")
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"ID", "Name", "Description"}),
			)
			for _, unit := range opts.Units {
				table.Append([]string{unit.ID, unit.Name, unit.Description})
			}
			table.Render()

			printContextTable(header, "TERRAIN", opts.Terrains)
			printContextTable(header, "WEATHER", opts.Weather)
			printContextTable(header, "TROOP STATUS", opts.TroopStatus)
			return nil
		},
	}
}

func printContextTable(header *color.Color, title string, options []app.ContextOption) {
	header.Printf("\n%s\n", title)
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Name"}),
	)
	for _, option := range options {
		table.Append([]string{option.ID, option.Name})
	}
	table.Render()
}

func newAdviseCmd() *cobra.Command {
	var unitArgs []string
	var terrain string
	var weather string
	var status string
	var reportPath string
	var excelPath string

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Score one army against the strategy book",
		Long: `Score one scenario and print the briefing.

Duplicate unit IDs are allowed and weigh the army toward that unit.

Example: advisor-cli advise --units assassins,assassins,archers --terrain forest --weather night --status fresh --report campaign.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := tactics.CalculationRequest{
				Terrain:     core.TerrainID(terrain),
				Weather:     core.WeatherID(weather),
				TroopStatus: core.TroopStatusID(status),
			}
			for _, id := range unitArgs {
				id = strings.TrimSpace(id)
				if id == "" {
					continue
				}
				request.Units = append(request.Units, core.UnitID(id))
			}
			if len(request.Units) == 0 {
				return fmt.Errorf("--units is required (comma separated unit IDs)")
			}
			if terrain == "" || weather == "" || status == "" {
				return fmt.Errorf("--terrain, --weather and --status are required")
			}

			service, _, err := bootstrap()
			if err != nil {
				return err
			}

			result, err := service.Calculate(request)
			if err != nil {
				return renderCalculationError(err)
			}

			if err := service.WriteTextBriefing(os.Stdout, result); err != nil {
				return err
			}
			if result.Top != nil {
				color.New(color.FgGreen, color.Bold).
					Printf("Recommended: %s (%.1f%% compatible)\n", result.Top.Name, result.Top.Compatibility)
			}

			if reportPath != "" {
				if err := service.AppendTextBriefing(reportPath, result); err != nil {
					return err
				}
				fmt.Printf("Briefing appended to %s\n", reportPath)
			}
			if excelPath != "" {
				if err := service.WriteExcelBriefing(excelPath, result); err != nil {
					return err
				}
				fmt.Printf("Workbook written to %s\n", excelPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&unitArgs, "units", nil, "Unit IDs, comma separated; repeats allowed")
	cmd.Flags().StringVar(&terrain, "terrain", "", "Terrain ID")
	cmd.Flags().StringVar(&weather, "weather", "", "Weather ID")
	cmd.Flags().StringVar(&status, "status", "", "Troop status ID")
	cmd.Flags().StringVar(&reportPath, "report", "", "Append the text briefing to this file")
	cmd.Flags().StringVar(&excelPath, "excel", "", "Write the XLSX briefing to this file")

	return cmd
}

// renderCalculationError keeps selection mistakes friendly: name what was
// wrong and point at the options command.
func renderCalculationError(err error) error {
	if unknown, ok := core.AsUnknownIdentifier(err); ok {
		color.Red("Unknown %s %q", unknown.Category, unknown.ID)
		return fmt.Errorf("run 'advisor-cli options' to list valid identifiers")
	}
	if core.IsEmptySelectionError(err) {
		return fmt.Errorf("select at least one unit with --units")
	}
	return err
}

func newBatchCmd() *cobra.Command {
	var count int
	var minUnits int
	var maxUnits int
	var seed int64
	var reportPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run randomized scenarios and tally which strategies win",
		Long: `Draft random armies and conditions, score them concurrently and print a
histogram of the winning strategies.

The seed makes a batch reproducible; BATCH_WORKERS bounds concurrency.

Example: advisor-cli batch --count 200 --min-units 2 --max-units 6 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, appConfig, err := bootstrap()
			if err != nil {
				return err
			}

			generator, err := batch.NewGenerator(service.Options(), seed)
			if err != nil {
				return err
			}
			requests, err := generator.Requests(count, minUnits, maxUnits)
			if err != nil {
				return err
			}

			runner := batch.NewRunner(service, appConfig.Batch.Workers)
			started := time.Now()
			outcomes, err := runner.Run(cmd.Context(), requests)
			if err != nil {
				return err
			}
			elapsed := time.Since(started).Round(time.Millisecond)

			for _, outcome := range outcomes {
				printOutcomeLine(outcome)
			}

			summary := batch.Summarize(outcomes)
			color.New(color.FgCyan, color.Bold).
				Printf("\n%d scenarios in %s (seed %d, %d workers)\n", summary.Scenarios, elapsed, seed, appConfig.Batch.Workers)
			if err := summary.WriteText(os.Stdout); err != nil {
				return err
			}

			if reportPath != "" {
				if err := writeBatchReport(service, reportPath, outcomes, summary); err != nil {
					return err
				}
				fmt.Printf("\nBatch report appended to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 20, "Number of scenarios to run")
	cmd.Flags().IntVar(&minUnits, "min-units", 1, "Smallest army size")
	cmd.Flags().IntVar(&maxUnits, "max-units", 5, "Largest army size")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for reproducible batches")
	cmd.Flags().StringVar(&reportPath, "report", "", "Append per-scenario briefings and the summary to this file")

	return cmd
}

func printOutcomeLine(outcome batch.Outcome) {
	ids := make([]string, len(outcome.Request.Units))
	for i, id := range outcome.Request.Units {
		ids[i] = id.String()
	}

	fmt.Printf("%3d. [%s | %s | %s] %s\n",
		outcome.Seq, outcome.Request.Terrain, outcome.Request.Weather,
		outcome.Request.TroopStatus, strings.Join(ids, ", "))
	if top := outcome.Result.Top; top != nil {
		fmt.Printf("     -> %s (%.1f%%)\n", top.Name, top.Compatibility)
	}
}

// writeBatchReport appends every scenario briefing and the summary to one
// report file.
func writeBatchReport(service *app.AdvisorService, path string, outcomes []batch.Outcome, summary batch.Summary) error {
	for _, outcome := range outcomes {
		if err := service.AppendTextBriefing(path, outcome.Result); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	if err := summary.WriteText(f); err != nil {
		return err
	}
	_, err = fmt.Fprintln(f)
	return err
}
