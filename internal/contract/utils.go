package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cosmodesk/taskpulse/schema"
	"github.com/fatih/color"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	MediumValue   = "Medium"   // Medium value
	LowValue      = "Low"      // Low value
	NoneValue     = "None"     // None value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // mediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainSeverityLabel returns a plain text label for a flag severity.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainSeverityLabel(severity schema.FlagSeverity) string {
	switch severity {
	case schema.SeverityCritical:
		return CriticalValue
	case schema.SeverityHigh:
		return HighValue
	case schema.SeverityMedium:
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorSeverityLabel returns a colored text label for console output (table).
// It uses GetPlainSeverityLabel to determine the string, and then applies the appropriate color.
func GetColorSeverityLabel(severity schema.FlagSeverity) string {
	text := GetPlainSeverityLabel(severity)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// GetPlainRiskLabel returns a plain text label for a deadline risk level.
func GetPlainRiskLabel(level schema.RiskLevel) string {
	switch level {
	case schema.RiskCritical:
		return CriticalValue
	case schema.RiskHigh:
		return HighValue
	case schema.RiskMedium:
		return MediumValue
	case schema.RiskLow:
		return LowValue
	default:
		return NoneValue
	}
}

// GetColorRiskLabel returns a colored text label for a deadline risk level.
func GetColorRiskLabel(level schema.RiskLevel) string {
	text := GetPlainRiskLabel(level)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout on empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the default SQLite DB file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".taskpulse.db"
	}
	return filepath.Join(homeDir, ".taskpulse.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." and at
// least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
