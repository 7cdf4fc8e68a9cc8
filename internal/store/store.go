// Package store reads work items, logs, dependencies and task requests
// from the project-management database and maps rows into schema values.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/schema"
	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver
)

// ItemStoreImpl handles durable read operations using various database backends.
type ItemStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ItemStore = &ItemStoreImpl{} // Compile-time check

// openStatuses are the work item states included in report-wide reads.
var openStatuses = []schema.ItemStatus{
	schema.StatusTodo,
	schema.StatusInProgress,
	schema.StatusBlocked,
}

// NewItemStore initializes and returns a new ItemStore based on the backend type.
func NewItemStore(backend schema.DatabaseBackend, connStr string) (contract.ItemStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w. Check connection format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	return &ItemStoreImpl{
		db:      db,
		backend: backend,
		connStr: connStr,
	}, nil
}

// rebind rewrites '?' placeholders into the backend's dialect.
// SQLite and MySQL keep '?'; PostgreSQL needs '$1'..'$n'.
func (s *ItemStoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const itemColumns = `id, name, project, status, estimated_hours, due_date, priority_stars, assigned_to, updated_at`

// itemRow mirrors the subtasks table for explicit row mapping.
type itemRow struct {
	id             string
	name           string
	project        string
	status         string
	estimatedHours sql.NullFloat64
	dueDate        sql.NullTime
	priorityStars  sql.NullFloat64
	assignedTo     sql.NullString
	updatedAt      sql.NullTime
}

// toWorkItem converts a scanned row into the typed schema value.
// Null columns become nil pointers or zero values here, at the
// boundary, so core code never sees database nulls.
func (r *itemRow) toWorkItem() schema.WorkItem {
	item := schema.WorkItem{
		ID:      r.id,
		Name:    r.name,
		Project: r.project,
		Status:  schema.ItemStatus(r.status),
	}
	if r.estimatedHours.Valid {
		v := r.estimatedHours.Float64
		item.EstimatedHours = &v
	}
	if r.dueDate.Valid {
		t := r.dueDate.Time
		item.DueDate = &t
	}
	if r.priorityStars.Valid {
		item.PriorityStars = r.priorityStars.Float64
	}
	if r.assignedTo.Valid {
		item.AssignedTo = r.assignedTo.String
	}
	if r.updatedAt.Valid {
		item.UpdatedAt = r.updatedAt.Time
	}
	return item
}

func scanWorkItems(rows *sql.Rows) ([]schema.WorkItem, error) {
	var items []schema.WorkItem
	for rows.Next() {
		var r itemRow
		if err := rows.Scan(&r.id, &r.name, &r.project, &r.status, &r.estimatedHours,
			&r.dueDate, &r.priorityStars, &r.assignedTo, &r.updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work item row: %w", err)
		}
		items = append(items, r.toWorkItem())
	}
	return items, rows.Err()
}

// ListOpenWorkItems returns all not-done items, optionally scoped to one project.
func (s *ItemStoreImpl) ListOpenWorkItems(ctx context.Context, project string) ([]schema.WorkItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM subtasks WHERE status IN (?, ?, ?)`, itemColumns)
	args := []any{string(openStatuses[0]), string(openStatuses[1]), string(openStatuses[2])}
	if project != "" {
		query += ` AND project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query open work items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanWorkItems(rows)
}

// ListWorkItemsByAssignee returns all not-done items owned by one user.
func (s *ItemStoreImpl) ListWorkItemsByAssignee(ctx context.Context, assignee string) ([]schema.WorkItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM subtasks WHERE status IN (?, ?, ?) AND assigned_to = ? ORDER BY id`, itemColumns)
	args := []any{string(openStatuses[0]), string(openStatuses[1]), string(openStatuses[2]), assignee}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work items for %s: %w", assignee, err)
	}
	defer func() { _ = rows.Close() }()

	return scanWorkItems(rows)
}

// GetWorkItem returns a single item by ID.
func (s *ItemStoreImpl) GetWorkItem(ctx context.Context, id string) (schema.WorkItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM subtasks WHERE id = ?`, itemColumns)

	var r itemRow
	err := s.db.QueryRowContext(ctx, s.rebind(query), id).Scan(&r.id, &r.name, &r.project,
		&r.status, &r.estimatedHours, &r.dueDate, &r.priorityStars, &r.assignedTo, &r.updatedAt)
	if err == sql.ErrNoRows {
		return schema.WorkItem{}, fmt.Errorf("work item %s not found", id)
	}
	if err != nil {
		return schema.WorkItem{}, fmt.Errorf("failed to get work item %s: %w", id, err)
	}
	return r.toWorkItem(), nil
}

// ListWorkLogs returns all logged effort entries for an item.
func (s *ItemStoreImpl) ListWorkLogs(ctx context.Context, itemID string) ([]schema.WorkLog, error) {
	query := `SELECT subtask_id, hours_spent, work_date FROM work_logs WHERE subtask_id = ? ORDER BY work_date`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs for %s: %w", itemID, err)
	}
	defer func() { _ = rows.Close() }()

	var logs []schema.WorkLog
	for rows.Next() {
		var (
			id       string
			hours    sql.NullFloat64
			workDate sql.NullTime
		)
		if err := rows.Scan(&id, &hours, &workDate); err != nil {
			return nil, fmt.Errorf("failed to scan work log row: %w", err)
		}
		log := schema.WorkLog{ItemID: id}
		if hours.Valid {
			log.HoursSpent = hours.Float64
		}
		if workDate.Valid {
			t := workDate.Time
			log.WorkDate = &t
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// ListSiblingStatuses returns the statuses of items sharing the given
// item's parent, excluding the item itself. Items without a parent have
// no siblings.
func (s *ItemStoreImpl) ListSiblingStatuses(ctx context.Context, itemID string) ([]schema.SiblingStatus, error) {
	query := `
		SELECT sib.status FROM subtasks sib
		JOIN subtasks self ON sib.minitask_id = self.minitask_id
		WHERE self.id = ? AND sib.id != self.id AND self.minitask_id IS NOT NULL
		ORDER BY sib.id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query siblings for %s: %w", itemID, err)
	}
	defer func() { _ = rows.Close() }()

	var siblings []schema.SiblingStatus
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to scan sibling row: %w", err)
		}
		siblings = append(siblings, schema.SiblingStatus{Status: schema.ItemStatus(status)})
	}
	return siblings, rows.Err()
}

// ListBlockers returns the upstream dependencies of an item.
func (s *ItemStoreImpl) ListBlockers(ctx context.Context, itemID string) ([]schema.BlockerRef, error) {
	query := `
		SELECT b.id, b.name, b.status FROM subtask_dependencies d
		JOIN subtasks b ON b.id = d.depends_on_subtask_id
		WHERE d.dependent_subtask_id = ?
		ORDER BY b.id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blockers for %s: %w", itemID, err)
	}
	defer func() { _ = rows.Close() }()

	var blockers []schema.BlockerRef
	for rows.Next() {
		var (
			id     string
			name   sql.NullString
			status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, fmt.Errorf("failed to scan blocker row: %w", err)
		}
		blockers = append(blockers, schema.BlockerRef{
			ID:     id,
			Name:   name.String,
			Status: schema.ItemStatus(status),
		})
	}
	return blockers, rows.Err()
}

// ListPendingApprovals returns task requests awaiting review, optionally
// scoped to one project.
func (s *ItemStoreImpl) ListPendingApprovals(ctx context.Context, project string) ([]schema.ApprovalRequest, error) {
	query := `SELECT id, name, project, requested_by, status, created_at FROM task_requests WHERE status = ?`
	args := []any{schema.ApprovalPending}
	if project != "" {
		query += ` AND project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var requests []schema.ApprovalRequest
	for rows.Next() {
		var (
			req         schema.ApprovalRequest
			requestedBy sql.NullString
			createdAt   sql.NullTime
		)
		if err := rows.Scan(&req.ID, &req.Name, &req.Project, &requestedBy, &req.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan task request row: %w", err)
		}
		if requestedBy.Valid {
			req.RequestedBy = requestedBy.String
		}
		if createdAt.Valid {
			req.CreatedAt = createdAt.Time
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// GetStatus returns status information about the store.
func (s *ItemStoreImpl) GetStatus() (contract.StoreStatus, error) {
	status := contract.StoreStatus{
		Backend:  s.backend,
		Location: s.connStr,
	}
	if s.backend == schema.SQLiteBackend && s.connStr == "" {
		status.Location = contract.GetDBFilePath()
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subtasks`).Scan(&status.ItemCount); err != nil {
		return status, fmt.Errorf("failed to count work items: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM work_logs`).Scan(&status.LogCount); err != nil {
		return status, fmt.Errorf("failed to count work logs: %w", err)
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (s *ItemStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
