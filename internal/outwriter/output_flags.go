package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/internal/parquet"
	"github.com/cosmodesk/taskpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRedFlags outputs the red flag report, dispatching based on the output format configured.
func PrintRedFlags(flags []schema.RedFlag, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONMode:
		if err := writeFlagJSONResults(flags, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVMode:
		if err := writeFlagCSVResults(flags, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetMode:
		if err := parquet.WriteRedFlagsParquet(parquet.ConvertRedFlagRecords(flags), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlagTable(flags, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFlagJSONResults handles opening the file and calling the JSON writer.
func writeFlagJSONResults(flags []schema.RedFlag, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForFlags(w, flags)
	}, "Wrote JSON")
}

// writeFlagCSVResults handles opening the file and calling the CSV writer.
func writeFlagCSVResults(flags []schema.RedFlag, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"type",
		"severity",
		"title",
		"description",
		"project",
		"assigned_to",
		"logged_hours",
		"created_at",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, f := range flags {
				var logged string
				if f.Metrics != nil {
					logged = fmtFloat(f.Metrics.LoggedHours)
				}
				rec := []string{
					strconv.Itoa(i + 1),
					f.ID,
					string(f.Type),
					string(f.Severity),
					f.Title,
					f.Description,
					f.ProjectName,
					f.AssignedTo,
					logged,
					f.CreatedAt.Format(contract.DateTimeFormat),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeFlagTable generates and writes the human-readable table.
func writeFlagTable(flags []schema.RedFlag, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Severity", "Type", "Title", "Project", "Assignee"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, f := range flags {
		label := contract.GetPlainSeverityLabel(f.Severity)
		if cfg.UseColors {
			label = contract.GetColorSeverityLabel(f.Severity)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			label,
			string(f.Type),
			contract.TruncateText(f.Title, maxWidth),
			f.ProjectName,
			formatOptionalString(f.AssignedTo),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	var critical, high, medium int
	for _, f := range flags {
		switch f.Severity {
		case schema.SeverityCritical:
			critical++
		case schema.SeverityHigh:
			high++
		case schema.SeverityMedium:
			medium++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d red flags (critical: %d, high: %d, medium: %d)\n",
		len(flags), critical, high, medium); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Backend: %s\n", duration, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForFlags writes the red flag report in JSON format.
func writeJSONResultsForFlags(w io.Writer, flags []schema.RedFlag) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONFlagResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RedFlag
	}

	output := make([]JSONFlagResult, len(flags))
	for i, f := range flags {
		output[i] = JSONFlagResult{
			Rank:    i + 1,
			Label:   contract.GetPlainSeverityLabel(f.Severity),
			RedFlag: f,
		}
	}

	return writeJSON(w, output)
}
