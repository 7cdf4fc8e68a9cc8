// Package main provides a performance benchmarking tool for the Taskpulse CLI.
// It seeds SQLite databases of increasing size, measures report execution times
// across command types, treating the first run as cold and averaging the rest as warm,
// and generates CSV output for performance analysis and documentation.
//
// Prerequisites:
// - taskpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where benchmark databases are created
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Runs         int
	DatasetSizes map[string]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 5 * time.Minute,
		Runs:    4,
		DatasetSizes: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  10000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the taskpulse binary and work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("taskpulse"); err != nil {
		return fmt.Errorf("taskpulse binary not found in PATH")
	}
	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured dataset sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs each\n",
		len(config.DatasetSizes), config.Timeout, config.Runs)

	for _, dataset := range []string{"small", "medium", "large"} {
		itemCount := config.DatasetSizes[dataset]
		fmt.Printf("Benchmarking %s dataset (%d items)\n", dataset, itemCount)

		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("taskpulse_bench_%s.db", dataset))
		_ = os.Remove(dbPath)

		if err := prepareDatabase(dbPath, itemCount); err != nil {
			fmt.Printf("  Failed to prepare database: %v\n", err)
			continue
		}

		results = append(results, runBenchmarkSuite(config, dataset, dbPath, "flags"))
		results = append(results, runBenchmarkSuite(config, dataset, dbPath, "focus", "user-1"))
	}

	return results
}

// prepareDatabase migrates a fresh SQLite database and seeds it with itemCount work items.
func prepareDatabase(dbPath string, itemCount int) error {
	migrateCmd := exec.Command("taskpulse", "migrate", "--db-connect", dbPath)
	if output, err := migrateCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("migrate failed: %v\nOutput: %s", err, string(output))
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rng := rand.New(rand.NewSource(42))
	statuses := []string{"todo", "in_progress", "blocked"}
	now := time.Now().UTC()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for i := range itemCount {
		id := fmt.Sprintf("s%d", i)
		status := statuses[rng.Intn(len(statuses))]
		est := 4.0 + rng.Float64()*36.0
		due := now.Add(time.Duration(rng.Intn(30)-5) * 24 * time.Hour)
		assignee := fmt.Sprintf("user-%d", rng.Intn(10))
		minitask := fmt.Sprintf("m%d", i/5)

		if _, err := tx.Exec(`INSERT INTO subtasks
			(id, minitask_id, name, project, status, estimated_hours, due_date, priority_stars, assigned_to, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, minitask, fmt.Sprintf("Task %d", i), "bench", status, est, due,
			float64(rng.Intn(4)), assignee, now.Add(-time.Duration(rng.Intn(240))*time.Hour)); err != nil {
			_ = tx.Rollback()
			return err
		}

		// A couple of work logs per item
		for j := range 2 {
			logDate := now.Add(-time.Duration(rng.Intn(14)) * 24 * time.Hour)
			if _, err := tx.Exec(`INSERT INTO work_logs (id, subtask_id, hours_spent, work_date) VALUES (?, ?, ?, ?)`,
				fmt.Sprintf("l%d-%d", i, j), id, rng.Float64()*8.0, logDate); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}
	return tx.Commit()
}

// runBenchmarkSuite runs cold and warm benchmarks for one command.
func runBenchmarkSuite(config BenchmarkConfig, dataset, dbPath, command string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("Running %s on %s dataset\n", command, dataset)

	coldTime, warmTimes := runBenchmark(config, dbPath, command, extraArgs)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a taskpulse command multiple times and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, dbPath, command string, extraArgs []string) (coldTime float64, warmTimes []float64) {
	args := []string{command}
	args = append(args, extraArgs...)
	args = append(args, "--db-connect", dbPath, "--color", "no")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("taskpulse", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Report completed in")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/taskpulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "flags", "Red Flag Scans:")
	printCommandSummary(results, "focus", "Focus Queues:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
		}
	}
}
