package metrics

import (
	"github.com/shopspring/decimal"
)

// DashboardMetrics is the company-wide rollup over active projects.
type DashboardMetrics struct {
	ActiveProjects  int             `json:"active_projects"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalTasks      int             `json:"total_tasks"`
	CompletedTasks  int             `json:"completed_tasks"`
	OverallProgress float64         `json:"overall_progress"` // mean of per-project progress, percent
}

// DashboardAccumulator folds per-project metrics into the dashboard rollup.
// Only sums and a count are carried, so Add is commutative and Merge is
// associative: any ordering or partitioning of the projects produces the same
// final metrics.
type DashboardAccumulator struct {
	projects       int
	totalBudget    decimal.Decimal
	totalSpent     decimal.Decimal
	totalTasks     int
	completedTasks int
	progressSum    float64
}

// NewDashboardAccumulator returns an empty accumulator.
func NewDashboardAccumulator() *DashboardAccumulator {
	return &DashboardAccumulator{
		totalBudget: decimal.Zero,
		totalSpent:  decimal.Zero,
	}
}

// Add folds one project's metrics into the accumulator.
func (a *DashboardAccumulator) Add(m ProjectMetrics) {
	a.projects++
	a.totalBudget = a.totalBudget.Add(m.Budget)
	a.totalSpent = a.totalSpent.Add(m.Spent)
	a.totalTasks += m.TotalTasks
	a.completedTasks += m.CompletedTasks
	a.progressSum += m.Progress
}

// Merge folds another accumulator into this one.
func (a *DashboardAccumulator) Merge(other *DashboardAccumulator) {
	a.projects += other.projects
	a.totalBudget = a.totalBudget.Add(other.totalBudget)
	a.totalSpent = a.totalSpent.Add(other.totalSpent)
	a.totalTasks += other.totalTasks
	a.completedTasks += other.completedTasks
	a.progressSum += other.progressSum
}

// Metrics finalizes the rollup. Overall progress is the mean of per-project
// progress, zero when no projects were added.
func (a *DashboardAccumulator) Metrics() DashboardMetrics {
	m := DashboardMetrics{
		ActiveProjects: a.projects,
		TotalBudget:    a.totalBudget,
		TotalSpent:     a.totalSpent,
		TotalTasks:     a.totalTasks,
		CompletedTasks: a.completedTasks,
	}

	if a.projects > 0 {
		m.OverallProgress = round2(a.progressSum / float64(a.projects))
	}

	return m
}

// AggregateDashboard rolls a slice of per-project metrics into the dashboard
// view. Result is independent of the slice order.
func AggregateDashboard(projects []ProjectMetrics) DashboardMetrics {
	acc := NewDashboardAccumulator()
	for _, m := range projects {
		acc.Add(m)
	}
	return acc.Metrics()
}
