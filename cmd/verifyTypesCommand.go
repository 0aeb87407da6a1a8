/*
Copyright (c) DBPorter, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/datafile"
	"github.com/dbporter/dbporter/src/importer"
	"github.com/dbporter/dbporter/src/srcdb"
	"github.com/dbporter/dbporter/src/utils"
)

var (
	source        srcdb.Source
	fileFormat    string
	scenarioNames []string
)

var verifyTypesCmd = &cobra.Command{
	Use:   "verify-types",
	Short: "Verify SQL type compatibility of the source database.",
	Long: `Run the type scenario catalog against the source database. Each scenario creates a
one-column table, inserts one value, and checks the value read back directly and the value
round-tripped through the import pipeline against the backend adapter's predictions.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		validateExportDirFlag()
		validateFileFormatFlag()
	},

	Run: func(cmd *cobra.Command, args []string) {
		verifyTypesCommandFn()
	},
}

func verifyTypesCommandFn() {
	ctx := context.Background()

	sdb := srcdb.NewSourceDB(&source)
	if err := sdb.Connect(); err != nil {
		utils.ErrExit("Failed to connect to the source db: %s", err)
	}
	defer sdb.Disconnect()
	utils.PrintAndLog("%s version: %s", source.DBType, sdb.GetVersion())

	adapter := sdb.CompatAdapter()
	scenarios := compat.Catalog(adapter)
	if len(scenarioNames) > 0 {
		scenarios = compat.FilterScenarios(scenarios, scenarioNames)
		if len(scenarios) == 0 {
			utils.ErrExit("No scenario in the catalog matches %v", scenarioNames)
		}
	}

	engine := &compat.Engine{
		Adapter:  adapter,
		Tables:   sdb,
		Importer: importer.NewFileImporter(sdb, exportDir, fileFormat),
	}
	outcomes := engine.Run(ctx, scenarios)

	displayOutcomes(outcomes)
	passed, failed, skipped := compat.Summarize(outcomes)
	utils.PrintAndLog("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if failed > 0 {
		atexit.Exit(1)
	}
}

func displayOutcomes(outcomes []compat.Outcome) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	addHeader(table, "SCENARIO", "COLUMN TYPE", "STATUS", "DETAILS")
	for _, o := range outcomes {
		table.AddRow(o.Scenario.Name, o.Scenario.ColumnType, colorizeStatus(o.Status), o.Detail())
	}
	fmt.Print("\n")
	fmt.Println(table)
	fmt.Print("\n")
}

func colorizeStatus(status compat.Status) string {
	switch status {
	case compat.StatusPassed:
		return color.GreenString(string(status))
	case compat.StatusFailed:
		return color.RedString(string(status))
	default:
		return color.YellowString(string(status))
	}
}

func validateFileFormatFlag() {
	if fileFormat != datafile.CSV && fileFormat != datafile.TEXT {
		utils.ErrExit("Invalid file-format %q. Supported formats are %q and %q.",
			fileFormat, datafile.CSV, datafile.TEXT)
	}
	log.Infof("verifying with file format %q", fileFormat)
}

func init() {
	rootCmd.AddCommand(verifyTypesCmd)
	registerExportDirFlag(verifyTypesCmd)

	verifyTypesCmd.Flags().StringVar(&source.DBType, "source-db-type", "",
		"source database type: (sqlite, postgresql, mysql)")
	verifyTypesCmd.MarkFlagRequired("source-db-type")

	verifyTypesCmd.Flags().StringVar(&source.DSN, "source-db-dsn", "",
		"connection string of the source database")
	verifyTypesCmd.MarkFlagRequired("source-db-dsn")

	verifyTypesCmd.Flags().StringVar(&source.Schema, "source-db-schema", "",
		"schema to create the scenario tables in (default is the connection's default schema)")

	verifyTypesCmd.Flags().StringVar(&source.TablePrefix, "table-prefix", "",
		"name prefix for the scenario tables (default \"compat_\")")

	verifyTypesCmd.Flags().StringVar(&fileFormat, "file-format", datafile.CSV,
		"format of the imported data files: (csv, text)")

	verifyTypesCmd.Flags().StringSliceVar(&scenarioNames, "scenarios", nil,
		"comma separated scenario names to run (default is the full catalog)")
}
