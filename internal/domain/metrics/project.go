package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
)

// ProjectMetrics summarizes delivery and budget health for one project.
type ProjectMetrics struct {
	ProjectID         string          `json:"project_id"`
	TotalTasks        int             `json:"total_tasks"`
	CompletedTasks    int             `json:"completed_tasks"`
	Progress          float64         `json:"progress"`           // completed/total tasks, percent
	BudgetUtilization float64         `json:"budget_utilization"` // spent/budget, percent
	Efficiency        float64         `json:"efficiency"`         // actual/estimated hours, percent
	Budget            decimal.Decimal `json:"budget"`
	Spent             decimal.Decimal `json:"spent"`
	EstimatedHours    float64         `json:"estimated_hours"`
	ActualHours       float64         `json:"actual_hours"`
}

// CalculateProjectMetrics derives the project aggregate from the project and
// its tasks. Every ratio guards its zero denominator: no tasks means zero
// progress, a zero budget means zero utilization, zero estimated hours means
// zero efficiency.
func CalculateProjectMetrics(project *domain.Project, tasks []*domain.Task) ProjectMetrics {
	m := ProjectMetrics{
		ProjectID: project.ID.String(),
		Budget:    project.Budget.Decimal(),
		Spent:     project.Spent.Decimal(),
	}

	for _, task := range tasks {
		m.TotalTasks++
		m.EstimatedHours += task.EstimatedHours
		m.ActualHours += task.ActualHours

		if task.Status == domain.TaskStatusDone {
			m.CompletedTasks++
		}
	}

	if m.TotalTasks > 0 {
		m.Progress = round2(float64(m.CompletedTasks) / float64(m.TotalTasks) * 100)
	}

	if m.Budget.IsPositive() {
		utilization, _ := m.Spent.Div(m.Budget).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		m.BudgetUtilization = utilization
	}

	if m.EstimatedHours > 0 {
		m.Efficiency = round2(m.ActualHours / m.EstimatedHours * 100)
	}

	return m
}
