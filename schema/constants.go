package schema

// ItemStatus is the lifecycle state of a work item.
type ItemStatus string

// Work item statuses.
const (
	StatusTodo       ItemStatus = "todo"
	StatusInProgress ItemStatus = "in_progress"
	StatusDone       ItemStatus = "done"
	StatusBlocked    ItemStatus = "blocked"
)

// ValidItemStatuses contains all recognized work item statuses.
var ValidItemStatuses = map[ItemStatus]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusBlocked:    true,
}

// RiskLevel classifies how endangered a deadline is.
type RiskLevel string

// Deadline risk levels, from calm to alarming.
const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskOrdinals orders risk levels for comparisons; higher is worse.
var riskOrdinals = map[RiskLevel]int{
	RiskNone:     0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// Ordinal returns the numeric position of a risk level; higher is worse.
// Unknown levels map to 0.
func (r RiskLevel) Ordinal() int {
	return riskOrdinals[r]
}

// FlagSeverity classifies how urgent a red flag is.
type FlagSeverity string

// Red flag severities.
const (
	SeverityCritical FlagSeverity = "critical"
	SeverityHigh     FlagSeverity = "high"
	SeverityMedium   FlagSeverity = "medium"
)

// severityRanks orders severities for report sorting; lower sorts first.
var severityRanks = map[FlagSeverity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
}

// Rank returns the sort rank of a severity; critical sorts first.
// Unknown severities sort last.
func (s FlagSeverity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return len(severityRanks)
}

// FlagType identifies which detector produced a red flag.
type FlagType string

// Red flag types.
const (
	FlagDeadlineRisk    FlagType = "deadline"
	FlagOverrunAnomaly  FlagType = "anomaly"
	FlagBlockedItem     FlagType = "blocked"
	FlagStaleItem       FlagType = "stale"
	FlagUnassignedItem  FlagType = "unassigned"
	FlagPendingApproval FlagType = "pending_approval"
)

// FocusCategory labels a ranked focus task by its score band.
type FocusCategory string

// Focus queue categories.
const (
	CategoryOverdue      FocusCategory = "overdue"
	CategoryDueToday     FocusCategory = "due_today"
	CategoryDueThisWeek  FocusCategory = "due_this_week"
	CategoryInProgress   FocusCategory = "in_progress"
	CategoryHighPriority FocusCategory = "high_priority"
	CategoryNormal       FocusCategory = "normal"
)

// OutputMode selects the report rendering format.
type OutputMode string

// Output modes.
const (
	TextMode    OutputMode = "text"
	CSVMode     OutputMode = "csv"
	JSONMode    OutputMode = "json"
	ParquetMode OutputMode = "parquet"
)

// ValidOutputModes contains all recognized output modes.
var ValidOutputModes = map[OutputMode]bool{
	TextMode:    true,
	CSVMode:     true,
	JSONMode:    true,
	ParquetMode: true,
}

// DatabaseBackend selects which database the store reads from.
type DatabaseBackend string

// Database backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// ValidDatabaseBackends contains all recognized database backends.
var ValidDatabaseBackends = map[DatabaseBackend]bool{
	SQLiteBackend:     true,
	MySQLBackend:      true,
	PostgreSQLBackend: true,
}

// ApprovalPending is the task request status that qualifies for review flags.
const ApprovalPending = "pending"
