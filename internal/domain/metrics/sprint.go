package metrics

import (
	"math"

	"github.com/pvaldez/cadence-api/internal/domain"
)

// SprintMetrics summarizes the outcome of one sprint's tasks.
type SprintMetrics struct {
	Velocity             int     `json:"velocity"`               // story points of done tasks
	StoryPointsCommitted int     `json:"story_points_committed"` // story points across all tasks
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	CompletionRate       float64 `json:"completion_rate"`     // completed/total tasks, percent
	AvgCycleTimeDays     float64 `json:"avg_cycle_time_days"` // mean created→completed, days
}

// CalculateSprintMetrics derives the sprint aggregate from its tasks.
// Velocity counts story points of done tasks; committed counts story points
// of every task handed in, done or not. Cycle time averages only tasks whose
// completion timestamp is not before creation. An empty task list yields a
// zero-valued result, never a division error.
func CalculateSprintMetrics(tasks []*domain.Task) SprintMetrics {
	m := SprintMetrics{}

	var cycleDaysTotal float64
	var cycleSamples int

	for _, task := range tasks {
		m.TotalTasks++
		m.StoryPointsCommitted += task.StoryPoints

		if task.Status != domain.TaskStatusDone {
			continue
		}

		m.CompletedTasks++
		m.Velocity += task.StoryPoints

		if task.CompletedAt != nil && !task.CompletedAt.Before(task.CreatedAt) {
			cycleDaysTotal += task.CompletedAt.Sub(task.CreatedAt).Hours() / 24
			cycleSamples++
		}
	}

	if m.TotalTasks > 0 {
		m.CompletionRate = round2(float64(m.CompletedTasks) / float64(m.TotalTasks) * 100)
	}

	if cycleSamples > 0 {
		m.AvgCycleTimeDays = round2(cycleDaysTotal / float64(cycleSamples))
	}

	return m
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
