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

// PrintFocusQueue outputs the focus queue, dispatching based on the output format configured.
func PrintFocusQueue(tasks []schema.FocusTask, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONMode:
		if err := writeFocusJSONResults(tasks, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVMode:
		if err := writeFocusCSVResults(tasks, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetMode:
		if err := parquet.WriteFocusQueueParquet(parquet.ConvertFocusTaskRecords(tasks), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFocusTable(tasks, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFocusJSONResults handles opening the file and calling the JSON writer.
func writeFocusJSONResults(tasks []schema.FocusTask, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForFocus(w, tasks)
	}, "Wrote JSON")
}

// writeFocusCSVResults handles opening the file and calling the CSV writer.
func writeFocusCSVResults(tasks []schema.FocusTask, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"name",
		"project",
		"status",
		"urgency_score",
		"category",
		"reason",
		"risk_level",
		"hours_logged",
		"due_date",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, task := range tasks {
				var due string
				if task.Item.DueDate != nil {
					due = task.Item.DueDate.Format(contract.DateTimeFormat)
				}
				rec := []string{
					strconv.Itoa(i + 1),
					task.Item.ID,
					task.Item.Name,
					task.Item.Project,
					string(task.Item.Status),
					fmtFloat(task.UrgencyScore),
					string(task.Category),
					task.UrgencyReason,
					string(task.DeadlineRisk.Level),
					fmtFloat(task.HoursLogged),
					due,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeFocusTable generates and writes the human-readable table.
func writeFocusTable(tasks []schema.FocusTask, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Task", "Score", "Category", "Reason", "Risk", "Logged"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, task := range tasks {
		risk := contract.GetPlainRiskLabel(task.DeadlineRisk.Level)
		if cfg.UseColors {
			risk = contract.GetColorRiskLabel(task.DeadlineRisk.Level)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(task.Item.Name, maxWidth),
			fmtFloat(task.UrgencyScore),
			string(task.Category),
			task.UrgencyReason,
			risk,
			fmtFloat(task.HoursLogged),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	var totalLogged float64
	for _, task := range tasks {
		totalLogged += task.HoursLogged
	}
	if _, err := fmt.Fprintf(writer, "Showing %d focus tasks (total logged: %sh)\n",
		len(tasks), fmtFloat(totalLogged)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v. Backend: %s\n", duration, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForFocus writes the focus queue in JSON format.
func writeJSONResultsForFocus(w io.Writer, tasks []schema.FocusTask) error {
	type JSONFocusResult struct {
		Rank int `json:"rank"`
		schema.FocusTask
	}

	output := make([]JSONFocusResult, len(tasks))
	for i, task := range tasks {
		output[i] = JSONFocusResult{
			Rank:      i + 1,
			FocusTask: task,
		}
	}

	return writeJSON(w, output)
}
