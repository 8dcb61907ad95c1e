package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/vsinha/moldplan/pkg/domain/entities"
)

func benchmarkSolve(b *testing.B, jobCount, days int) {
	ctx := context.Background()
	slots := buildSlots(days)
	jobs := buildJobs(jobCount, weekStart)
	solver := NewSolver(Options{TimeLimit: 30 * time.Second})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := solver.Solve(ctx, jobs, slots)
		if len(result.Assignments)+len(result.Unscheduled) != jobCount {
			b.Fatalf("Expected %d jobs accounted for, got %d", jobCount, len(result.Assignments)+len(result.Unscheduled))
		}
	}
}

func BenchmarkSolver_TwoWeeks(b *testing.B) {
	benchmarkSolve(b, 20, 14)
}

func BenchmarkSolver_FullHorizon(b *testing.B) {
	benchmarkSolve(b, 60, 37)
}

func BenchmarkSolver_Overload(b *testing.B) {
	benchmarkSolve(b, 200, 37)
}

func BenchmarkSolver_StaggeredReleases(b *testing.B) {
	ctx := context.Background()
	slots := buildSlots(37)
	var jobs []entities.JobTicket
	for d := 0; d < 30; d += 3 {
		jobs = append(jobs, buildJobs(4, entities.AddDays(weekStart, d))...)
	}
	solver := NewSolver(Options{TimeLimit: 30 * time.Second})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		solver.Solve(ctx, jobs, slots)
	}
}
