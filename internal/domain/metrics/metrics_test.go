package metrics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/domain/metrics"
)

func mustTask(t *testing.T, points int, status domain.TaskStatus) *domain.Task {
	t.Helper()

	task, err := domain.NewTask("task", uuid.New(), domain.TaskPriorityMedium, 4, points)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	if status != domain.TaskStatusTodo {
		if err := task.SetStatus(status); err != nil {
			t.Fatalf("failed to set status: %v", err)
		}
	}
	return task
}

func TestCalculateSprintMetrics(t *testing.T) {
	t.Parallel()

	tasks := []*domain.Task{
		mustTask(t, 5, domain.TaskStatusDone),
		mustTask(t, 3, domain.TaskStatusDone),
		mustTask(t, 2, domain.TaskStatusInProgress),
	}

	m := metrics.CalculateSprintMetrics(tasks)

	if m.Velocity != 8 {
		t.Errorf("Expected velocity 8, got %d", m.Velocity)
	}
	if m.StoryPointsCommitted != 10 {
		t.Errorf("Expected 10 committed points, got %d", m.StoryPointsCommitted)
	}
	if m.TotalTasks != 3 || m.CompletedTasks != 2 {
		t.Errorf("Expected 2/3 tasks completed, got %d/%d", m.CompletedTasks, m.TotalTasks)
	}
	if m.CompletionRate != 66.67 {
		t.Errorf("Expected completion rate 66.67, got %f", m.CompletionRate)
	}
}

func TestCalculateSprintMetricsEmpty(t *testing.T) {
	t.Parallel()

	m := metrics.CalculateSprintMetrics(nil)
	if m.Velocity != 0 || m.CompletionRate != 0 || m.AvgCycleTimeDays != 0 {
		t.Errorf("Expected zero-valued metrics for no tasks, got %+v", m)
	}
}

func TestSprintCycleTimeSkipsInvertedTimestamps(t *testing.T) {
	t.Parallel()

	good := mustTask(t, 1, domain.TaskStatusDone)
	completed := good.CreatedAt.Add(48 * time.Hour)
	good.CompletedAt = &completed

	// Completion before creation is dirty data, excluded from the average.
	bad := mustTask(t, 1, domain.TaskStatusDone)
	before := bad.CreatedAt.Add(-time.Hour)
	bad.CompletedAt = &before

	m := metrics.CalculateSprintMetrics([]*domain.Task{good, bad})
	if m.AvgCycleTimeDays != 2 {
		t.Errorf("Expected 2 day cycle time, got %f", m.AvgCycleTimeDays)
	}
}

func mustProject(t *testing.T, budget, spent float64) *domain.Project {
	t.Helper()

	amount, err := domain.NewAmountFromFloat(budget)
	if err != nil {
		t.Fatalf("failed to build budget: %v", err)
	}
	project, err := domain.NewProject("p", amount, domain.CurrencyUSD, 100)
	if err != nil {
		t.Fatalf("failed to build project: %v", err)
	}
	if spent > 0 {
		if err := project.AddSpent(decimal.NewFromFloat(spent)); err != nil {
			t.Fatalf("failed to record spend: %v", err)
		}
	}
	return project
}

func TestCalculateProjectMetrics(t *testing.T) {
	t.Parallel()

	project := mustProject(t, 10000, 2500)

	done := mustTask(t, 5, domain.TaskStatusDone)
	if err := done.SetActualHours(6); err != nil {
		t.Fatalf("failed to set hours: %v", err)
	}
	open := mustTask(t, 3, domain.TaskStatusTodo)

	m := metrics.CalculateProjectMetrics(project, []*domain.Task{done, open})

	if m.Progress != 50 {
		t.Errorf("Expected 50 percent progress, got %f", m.Progress)
	}
	if m.BudgetUtilization != 25 {
		t.Errorf("Expected 25 percent utilization, got %f", m.BudgetUtilization)
	}
	// 6 actual over 8 estimated.
	if m.Efficiency != 75 {
		t.Errorf("Expected 75 percent efficiency, got %f", m.Efficiency)
	}
}

func TestCalculateProjectMetricsZeroDenominators(t *testing.T) {
	t.Parallel()

	project := mustProject(t, 0, 0)
	m := metrics.CalculateProjectMetrics(project, nil)

	if m.Progress != 0 || m.BudgetUtilization != 0 || m.Efficiency != 0 {
		t.Errorf("Expected zero ratios, got %+v", m)
	}
}

func TestDashboardOrderInvariance(t *testing.T) {
	t.Parallel()

	a := metrics.CalculateProjectMetrics(mustProject(t, 1000, 200), []*domain.Task{
		mustTask(t, 1, domain.TaskStatusDone),
		mustTask(t, 1, domain.TaskStatusTodo),
	})
	b := metrics.CalculateProjectMetrics(mustProject(t, 3000, 900), []*domain.Task{
		mustTask(t, 2, domain.TaskStatusDone),
	})
	c := metrics.CalculateProjectMetrics(mustProject(t, 500, 0), nil)

	forward := metrics.AggregateDashboard([]metrics.ProjectMetrics{a, b, c})
	reversed := metrics.AggregateDashboard([]metrics.ProjectMetrics{c, b, a})

	if forward.ActiveProjects != reversed.ActiveProjects ||
		!forward.TotalBudget.Equal(reversed.TotalBudget) ||
		!forward.TotalSpent.Equal(reversed.TotalSpent) ||
		forward.TotalTasks != reversed.TotalTasks ||
		forward.OverallProgress != reversed.OverallProgress {
		t.Errorf("Expected order-independent rollup, got %+v vs %+v", forward, reversed)
	}

	if forward.TotalBudget.String() != "4500" {
		t.Errorf("Expected total budget 4500, got %s", forward.TotalBudget)
	}
	// Mean of 50, 100 and 0 percent.
	if forward.OverallProgress != 50 {
		t.Errorf("Expected 50 percent overall progress, got %f", forward.OverallProgress)
	}
}

func TestDashboardMergeMatchesSinglePass(t *testing.T) {
	t.Parallel()

	a := metrics.CalculateProjectMetrics(mustProject(t, 1000, 100), nil)
	b := metrics.CalculateProjectMetrics(mustProject(t, 2000, 400), nil)
	c := metrics.CalculateProjectMetrics(mustProject(t, 4000, 800), nil)

	single := metrics.AggregateDashboard([]metrics.ProjectMetrics{a, b, c})

	left := metrics.NewDashboardAccumulator()
	left.Add(a)
	right := metrics.NewDashboardAccumulator()
	right.Add(b)
	right.Add(c)
	left.Merge(right)
	merged := left.Metrics()

	if !single.TotalBudget.Equal(merged.TotalBudget) ||
		!single.TotalSpent.Equal(merged.TotalSpent) ||
		single.ActiveProjects != merged.ActiveProjects ||
		single.OverallProgress != merged.OverallProgress {
		t.Errorf("Expected partitioned merge to match single pass, got %+v vs %+v", merged, single)
	}
}

func TestIdealHourlyRate(t *testing.T) {
	t.Parallel()

	rate := metrics.IdealHourlyRate(decimal.NewFromInt(10000), 160)
	if rate.String() != "62.5" {
		t.Errorf("Expected 62.5, got %s", rate)
	}

	if !metrics.IdealHourlyRate(decimal.NewFromInt(10000), 0).IsZero() {
		t.Error("Expected zero rate for a zero-hours plan")
	}
}

func TestIndividualSalaryIsLinear(t *testing.T) {
	t.Parallel()

	rate := decimal.NewFromFloat(62.5)

	full := metrics.IndividualSalary(40, rate)
	if full.String() != "2500" {
		t.Errorf("Expected 2500, got %s", full)
	}

	// Splitting the hours and summing must give the same total.
	split := metrics.IndividualSalary(25, rate).Add(metrics.IndividualSalary(15, rate))
	if !split.Equal(full) {
		t.Errorf("Expected split salary %s to equal %s", split, full)
	}

	if !metrics.IndividualSalary(0, rate).IsZero() {
		t.Error("Expected zero salary for zero hours")
	}
}
