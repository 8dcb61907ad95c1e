package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/moldplan/pkg/application/dto"
	"github.com/vsinha/moldplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string // text, json, csv or svg
	OutputDir string
	Verbose   bool
	Writer    io.Writer // defaults to stdout
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate renders a planning result in the configured format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return writeJSON(result, "plan_result.json", config)
	case "csv":
		return generateCSVOutput(result, config)
	case "svg":
		return generateSVGOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanResult, config Config) error {
	w := config.writer()

	fmt.Fprintf(w, "📊 Production Plan Summary\n")
	fmt.Fprintf(w, "==========================\n\n")

	if result.MachineID != "" {
		fmt.Fprintf(w, "Machine: %s\n", result.MachineID)
	}
	fmt.Fprintf(w, "Run: %s\n", result.RunID)
	fmt.Fprintf(w, "Window: %s + %d days\n", entities.DateKey(result.StartDate), result.HorizonDays)
	fmt.Fprintf(w, "Status: %s %s\n", statusIcon(result.Status), result.Status)
	if result.Message != "" {
		fmt.Fprintf(w, "  %s\n", result.Message)
	}
	fmt.Fprintf(w, "Shifts Needed: %d lot(s)\n", result.Summary.TotalJobs)
	fmt.Fprintf(w, "Parts Scheduled: %d item(s)\n", result.Summary.DistinctParts)
	fmt.Fprintf(w, "Machine Occupancy: %.1f%%\n", result.Summary.UtilizationPercent)
	if result.SolverStatus != "" {
		fmt.Fprintf(w, "Solver: %s in %v\n", result.SolverStatus, result.SolveTime)
	}
	fmt.Fprintln(w)

	if len(result.Schedule) > 0 {
		fmt.Fprintf(w, "📅 Schedule Board:\n")
		writeBoardText(w, BuildBoard(result))
		fmt.Fprintln(w)
	}

	if config.Verbose && len(result.Schedule) > 0 {
		fmt.Fprintf(w, "📋 Assignments:\n")
		fmt.Fprintf(w, "%-12s %-8s %-15s %-25s %-25s\n", "Date", "Shift", "Part Number", "Part Name", "Job")
		fmt.Fprintf(w, "%-12s %-8s %-15s %-25s %-25s\n",
			"------------", "--------", "---------------", "-------------------------", "-------------------------")
		for _, row := range result.Schedule {
			fmt.Fprintf(w, "%-12s %-8s %-15s %-25s %-25s\n",
				entities.DateKey(row.Date), row.ShiftLabel, row.PartNumber, row.PartName, row.JobID)
		}
		fmt.Fprintln(w)
	}

	if len(result.Unscheduled) > 0 {
		fmt.Fprintf(w, "⚠️  Unscheduled Jobs:\n")
		fmt.Fprintf(w, "%-25s %-15s %-12s\n", "Job", "Part Number", "Earliest")
		fmt.Fprintf(w, "%-25s %-15s %-12s\n", "-------------------------", "---------------", "------------")
		for _, job := range result.Unscheduled {
			fmt.Fprintf(w, "%-25s %-15s %-12s\n", job.ID, job.PartNumber, entities.DateKey(job.EarliestStart))
		}
		fmt.Fprintln(w)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "🚫 Skipped Parts:\n")
		for _, skipped := range result.Skipped {
			fmt.Fprintf(w, "  %-15s %s\n", skipped.PartNumber, skipped.Reason)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func statusIcon(status entities.PlanStatus) string {
	switch status {
	case entities.StatusOptimal:
		return "✅"
	case entities.StatusNoJobsNeeded:
		return "☕"
	case entities.StatusOverload, entities.StatusInfeasible:
		return "⚠️"
	default:
		return "⛔"
	}
}

// writeJSON prints v to the writer, or saves it under OutputDir when one is set
func writeJSON(v interface{}, filename string, config Config) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", path)
	}
	return nil
}

// generateCSVOutput writes schedule, jobs and unscheduled tables
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	scheduleFile := filepath.Join(config.OutputDir, "schedule.csv")
	if err := writeScheduleCSV(result.Schedule, scheduleFile); err != nil {
		return fmt.Errorf("failed to write schedule CSV: %w", err)
	}

	jobsFile := filepath.Join(config.OutputDir, "jobs.csv")
	if err := writeJobsCSV(result.Jobs, jobsFile); err != nil {
		return fmt.Errorf("failed to write jobs CSV: %w", err)
	}

	unscheduledFile := filepath.Join(config.OutputDir, "unscheduled.csv")
	if err := writeJobsCSV(result.Unscheduled, unscheduledFile); err != nil {
		return fmt.Errorf("failed to write unscheduled CSV: %w", err)
	}

	if config.Verbose {
		w := config.writer()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Schedule: %s\n", scheduleFile)
		fmt.Fprintf(w, "  Jobs: %s\n", jobsFile)
		fmt.Fprintf(w, "  Unscheduled: %s\n", unscheduledFile)
	}

	return nil
}

func writeScheduleCSV(rows []entities.ScheduleRow, filename string) error {
	records := [][]string{{"date", "shift", "part_no", "part_name", "job_id", "slot_id"}}
	for _, row := range rows {
		records = append(records, []string{
			entities.DateKey(row.Date),
			row.ShiftLabel,
			string(row.PartNumber),
			row.PartName,
			row.JobID,
			row.SlotID,
		})
	}
	return writeCSVFile(filename, records)
}

func writeJobsCSV(jobs []entities.JobTicket, filename string) error {
	records := [][]string{{"id", "part_no", "part_name", "earliest_start_date", "duration_shifts"}}
	for _, job := range jobs {
		records = append(records, []string{
			job.ID,
			string(job.PartNumber),
			job.PartName,
			entities.DateKey(job.EarliestStart),
			strconv.Itoa(job.DurationShifts),
		})
	}
	return writeCSVFile(filename, records)
}

func writeCSVFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

// GenerateSlots renders the slot list of a calendar window
func GenerateSlots(slots []entities.Slot, config Config) error {
	switch config.Format {
	case "json":
		return writeJSON(slots, "slots.json", config)
	case "text":
		w := config.writer()
		fmt.Fprintf(w, "🗓️  Production Slots: %d\n", len(slots))
		fmt.Fprintf(w, "%-8s %-22s %-12s %-6s %-8s\n", "Ordinal", "Slot", "Date", "Day", "Shift")
		fmt.Fprintf(w, "%-8s %-22s %-12s %-6s %-8s\n", "--------", "----------------------", "------------", "------", "--------")
		for _, slot := range slots {
			fmt.Fprintf(w, "%-8d %-22s %-12s %-6s %-8s\n",
				slot.Ordinal, slot.ID, entities.DateKey(slot.Date), slot.Date.Format("Mon"), slot.ShiftLabel)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format for slots: %s", config.Format)
	}
}

// GenerateCapacity renders a monthly capacity report
func GenerateCapacity(report *dto.CapacityReport, config Config) error {
	if config.Format == "json" {
		return writeJSON(report, "capacity_report.json", config)
	}
	if config.Format != "text" {
		return fmt.Errorf("unsupported output format for capacity: %s", config.Format)
	}

	w := config.writer()
	fmt.Fprintf(w, "🏭 Capacity Report %s\n", report.Month)
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Working Days: %d\n", report.WorkingDays)
	fmt.Fprintf(w, "Effective Hours/Day: %.1f\n\n", report.EffectiveHoursPerDay)

	if len(report.Classes) > 0 {
		fmt.Fprintf(w, "%-8s %-6s %-10s %-10s %-10s %-10s %-10s %-8s %-16s\n",
			"Class", "Parts", "Prod h", "Change h", "Total h", "Load d", "Cap d", "Util %", "Status")
		fmt.Fprintf(w, "%-8s %-6s %-10s %-10s %-10s %-10s %-10s %-8s %-16s\n",
			"--------", "------", "----------", "----------", "----------", "----------", "----------", "--------", "----------------")
		for _, class := range report.Classes {
			fmt.Fprintf(w, "%-8s %-6d %-10.1f %-10.1f %-10.1f %-10.1f %-10.1f %-8.1f %-16s\n",
				class.Tonnage, class.Parts, class.ProductionHours, class.ChangeoverHours, class.TotalHours,
				class.LoadDays, class.CapacityDays, class.UtilizationPercent, class.Status)
			for _, allocation := range report.Allocations[class.Tonnage] {
				fmt.Fprintf(w, "    %-12s %.1f h\n", allocation.MachineID, allocation.AssignedHours)
			}
		}
		fmt.Fprintln(w)
	}

	if len(report.Unmatched) > 0 {
		fmt.Fprintf(w, "⚠️  Forecast parts missing from master: %d\n", len(report.Unmatched))
		for _, part := range report.Unmatched {
			fmt.Fprintf(w, "  %s\n", part)
		}
	}

	return nil
}
