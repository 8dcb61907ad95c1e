package dto

import (
	"testing"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

func TestNewSummary_DistinctPartsCountsScheduledOnly(t *testing.T) {
	jobs := []entities.JobTicket{
		{ID: "A_2025-03-03_0", PartNumber: "A"},
		{ID: "A_2025-03-03_1", PartNumber: "A"},
		{ID: "B_2025-03-03_0", PartNumber: "B"},
	}
	slots := []entities.Slot{{ID: "2025-03-03_Shift1"}, {ID: "2025-03-03_Shift2"}, {ID: "2025-03-04_Shift1"}, {ID: "2025-03-04_Shift2"}}
	schedule := []entities.ScheduleRow{
		{PartNumber: "A", JobID: "A_2025-03-03_0", SlotID: "2025-03-03_Shift1"},
		{PartNumber: "A", JobID: "A_2025-03-03_1", SlotID: "2025-03-03_Shift2"},
	}

	summary := NewSummary(jobs, slots, schedule, nil)

	if summary.DistinctParts != 1 {
		t.Errorf("Expected 1 distinct scheduled part, got %d", summary.DistinctParts)
	}
	if summary.PartsWithJobs != 2 {
		t.Errorf("Expected 2 parts with jobs, got %d", summary.PartsWithJobs)
	}
	if summary.Scheduled != 2 || summary.Unscheduled != 1 {
		t.Errorf("Expected 2 scheduled and 1 unscheduled, got %d and %d", summary.Scheduled, summary.Unscheduled)
	}
	if summary.UtilizationPercent != 50 {
		t.Errorf("Expected utilization 50, got %v", summary.UtilizationPercent)
	}
	if summary.SkippedByReason != nil {
		t.Errorf("Expected no skipped counters, got %v", summary.SkippedByReason)
	}
}
