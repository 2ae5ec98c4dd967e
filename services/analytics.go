package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"teamhub/model"
	"teamhub/store"
)

const (
	analyticsWeeks  = 6
	pendingItemsCap = 5
	week            = 7 * 24 * time.Hour
)

type StatusCount struct {
	Status model.TaskStatus `json:"status"`
	Count  int              `json:"count"`
}

type MemberProgress struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Progress  int    `json:"progress"`
}

type PhaseProgress struct {
	Phase     string `json:"phase"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Progress  int    `json:"progress"`
}

type WeeklyCompletions struct {
	Week      string    `json:"week"`
	Start     time.Time `json:"start"`
	Completed int       `json:"completed"`
}

type MemberMessages struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

// Summary is the dashboard view of the project, computed from one snapshot.
type Summary struct {
	TotalItems      int                 `json:"totalItems"`
	CompletedItems  int                 `json:"completedItems"`
	OverallProgress int                 `json:"overallProgress"`
	StatusCounts    []StatusCount       `json:"statusCounts"`
	Members         []MemberProgress    `json:"members"`
	Phases          []PhaseProgress     `json:"phases"`
	Weekly          []WeeklyCompletions `json:"weekly"`
	Communication   []MemberMessages    `json:"communication"`
	Pending         []model.Task        `json:"pending"`
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// BuildSummary counts work items: the subtasks of containers and leaf tasks
// themselves. Weekly completions are bucketed by UpdatedAt into six
// consecutive weeks, each open at its start and closed at its end, the last
// one ending at now.
func BuildSummary(state store.State, currentUserID string, now time.Time) Summary {
	var items []model.Task
	for _, t := range state.Tasks {
		items = append(items, t.WorkItems()...)
	}

	sum := Summary{TotalItems: len(items)}
	byStatus := make(map[model.TaskStatus]int)
	for _, it := range items {
		byStatus[it.Status]++
		if it.Status == model.StatusCompleted {
			sum.CompletedItems++
		}
	}
	sum.OverallProgress = percent(sum.CompletedItems, sum.TotalItems)
	for _, st := range model.Statuses {
		if n := byStatus[st]; n > 0 {
			sum.StatusCounts = append(sum.StatusCounts, StatusCount{Status: st, Count: n})
		}
	}

	for _, u := range state.Users {
		mp := MemberProgress{UserID: u.ID, Name: firstName(u.Name)}
		for _, it := range items {
			if it.AssignedTo != u.ID {
				continue
			}
			mp.Total++
			if it.Status == model.StatusCompleted {
				mp.Completed++
			}
		}
		mp.Progress = percent(mp.Completed, mp.Total)
		sum.Members = append(sum.Members, mp)

		mm := MemberMessages{UserID: u.ID, Name: mp.Name}
		for _, m := range state.ChatMessages {
			if m.UserID == u.ID {
				mm.Messages++
			}
		}
		sum.Communication = append(sum.Communication, mm)
	}

	for _, t := range state.Tasks {
		pp := PhaseProgress{Phase: t.Phase, Title: t.Title}
		for _, it := range items {
			if it.Phase != t.Phase {
				continue
			}
			pp.Total++
			if it.Status == model.StatusCompleted {
				pp.Completed++
			}
		}
		pp.Progress = percent(pp.Completed, pp.Total)
		sum.Phases = append(sum.Phases, pp)
	}

	for i := analyticsWeeks - 1; i >= 0; i-- {
		end := now.Add(-time.Duration(i) * week)
		start := end.Add(-week)
		wc := WeeklyCompletions{Week: fmt.Sprintf("Week %d", analyticsWeeks-i), Start: start}
		for _, it := range items {
			if it.Status != model.StatusCompleted {
				continue
			}
			if it.UpdatedAt.After(start) && !it.UpdatedAt.After(end) {
				wc.Completed++
			}
		}
		sum.Weekly = append(sum.Weekly, wc)
	}

	if currentUserID != "" {
		for _, it := range items {
			if it.AssignedTo == currentUserID && it.Status != model.StatusCompleted {
				sum.Pending = append(sum.Pending, it)
				if len(sum.Pending) == pendingItemsCap {
					break
				}
			}
		}
	}
	return sum
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}
