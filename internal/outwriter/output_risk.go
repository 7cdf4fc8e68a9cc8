package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintItemRisk outputs one item's full risk assessment, dispatching
// based on the output format configured. Parquet is not meaningful for
// a single row and is rejected.
func PrintItemRisk(item schema.WorkItem, risk schema.DeadlineRisk, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultForRisk(w, item, risk)
		}, "Wrote JSON")
	case schema.CSVMode:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultForRisk(w, item, risk, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetMode:
		return errors.New("parquet output is not supported for single-item risk details")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskTable(item, risk, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeRiskTable renders the assessment as a field/value table.
func writeRiskTable(item schema.WorkItem, risk schema.DeadlineRisk, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Field", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	level := contract.GetPlainRiskLabel(risk.Level)
	if cfg.UseColors {
		level = contract.GetColorRiskLabel(risk.Level)
	}

	var due string
	if item.DueDate != nil {
		due = item.DueDate.Format(contract.DateTimeFormat)
	}

	data := [][]string{
		{"Item", fmt.Sprintf("%s (%s)", item.Name, item.ID)},
		{"Project", item.Project},
		{"Status", string(item.Status)},
		{"Assignee", formatOptionalString(item.AssignedTo)},
		{"Due date", formatOptionalString(due)},
		{"Risk level", level},
		{"Reason", formatOptionalString(risk.Reason)},
		{"Days left", formatOptionalFloat(risk.DaysLeft, fmtFloat)},
		{"Estimated hours", formatOptionalFloat(risk.EstimatedHours, fmtFloat)},
		{"Logged hours", fmtFloat(risk.HoursLogged)},
		{"Remaining hours", formatOptionalFloat(risk.HoursRemaining, fmtFloat)},
		{"Effort percent", fmtFloat(risk.EffortPercent)},
		{"Completion percent", fmtFloat(risk.TaskCompletionPercent)},
		{"Overrun", fmt.Sprintf("%t", risk.IsOverrun)},
	}
	if risk.ProjectedTotal != nil {
		data = append(data, []string{"Projected total", fmtFloat(*risk.ProjectedTotal)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultForRisk writes the assessment as a single CSV row.
func writeCSVResultForRisk(w io.Writer, item schema.WorkItem, risk schema.DeadlineRisk, fmtFloat func(float64) string) error {
	header := []string{
		"id",
		"name",
		"project",
		"status",
		"level",
		"reason",
		"days_left",
		"estimated_hours",
		"hours_logged",
		"hours_remaining",
		"effort_percent",
		"completion_percent",
		"is_overrun",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		optional := func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmtFloat(*v)
		}
		return csvWriter.Write([]string{
			item.ID,
			item.Name,
			item.Project,
			string(item.Status),
			string(risk.Level),
			risk.Reason,
			optional(risk.DaysLeft),
			optional(risk.EstimatedHours),
			fmtFloat(risk.HoursLogged),
			optional(risk.HoursRemaining),
			fmtFloat(risk.EffortPercent),
			fmtFloat(risk.TaskCompletionPercent),
			fmt.Sprintf("%t", risk.IsOverrun),
		})
	})
}

// writeJSONResultForRisk writes the assessment in JSON format.
func writeJSONResultForRisk(w io.Writer, item schema.WorkItem, risk schema.DeadlineRisk) error {
	type JSONRiskResult struct {
		Item schema.WorkItem     `json:"item"`
		Risk schema.DeadlineRisk `json:"risk"`
	}
	return writeJSON(w, JSONRiskResult{Item: item, Risk: risk})
}
