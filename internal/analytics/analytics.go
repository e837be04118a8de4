package analytics

import (
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/models"
)

// Dashboard list caps, matching the dashboard layout.
const (
	recentLimit   = 4
	hearingLimit  = 3
	perClientTop  = 5
	taskLimit     = 5
	hearingWindow = 7 * 24 * time.Hour
)

// CategoryCount is one slice of a fixed-schema histogram: categories absent
// from the data still appear with a zero count.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ClientCaseCount ranks a client by how many of the caller's cases reference it.
type ClientCaseCount struct {
	ClientID primitive.ObjectID `json:"clientId"`
	Name     string             `json:"name"`
	Count    int                `json:"count"`
}

// TaskItem is a checklist entry flattened out of its case.
type TaskItem struct {
	CaseID    primitive.ObjectID `json:"caseId"`
	CaseTitle string             `json:"caseTitle"`
	Task      string             `json:"task"`
	Completed bool               `json:"completed"`
}

// Notification flags a hearing inside the next seven days.
type Notification struct {
	ID      primitive.ObjectID `json:"id"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	Type    string             `json:"type"`
}

// Stats is the full dashboard payload, recomputed from a fresh scan of the
// caller's collections on every fetch.
type Stats struct {
	TotalCases       int               `json:"totalCases"`
	ActiveCases      int               `json:"activeCases"`
	HighPriority     int               `json:"highPriority"`
	TotalClients     int               `json:"totalClients"`
	WinRate          int               `json:"winRate"`
	AvgCompletion    int               `json:"avgCompletion"`
	CaseByType       []CategoryCount   `json:"caseByType"`
	ResolutionData   []CategoryCount   `json:"resolutionData"`
	RecentCases      []models.Case     `json:"recentCases"`
	UpcomingHearings []models.Case     `json:"upcomingHearings"`
	CasesPerClient   []ClientCaseCount `json:"casesPerClient"`
	Tasks            []TaskItem        `json:"tasks"`
}

func isResolved(c *models.Case) bool {
	return c.Status == models.StatusClosed && c.Resolution != ""
}

// round matches JS Math.round for the non-negative values involved here
// (half rounds up: 1/2 -> 50%, 1/3 -> 33%).
func round(f float64) int {
	return int(math.Round(f))
}

// Compute derives the dashboard statistics from the caller's full case and
// client collections. Pure function; now anchors the hearing comparisons.
func Compute(cs []models.Case, clients []models.Client, now time.Time) Stats {
	st := Stats{
		TotalCases:       len(cs),
		TotalClients:     len(clients),
		RecentCases:      []models.Case{},
		UpcomingHearings: []models.Case{},
		CasesPerClient:   []ClientCaseCount{},
		Tasks:            []TaskItem{},
	}

	resolved, won := 0, 0
	var durations []float64
	resCounts := map[string]int{}
	typeCounts := map[string]int{}

	for i := range cs {
		c := &cs[i]
		switch c.Status {
		case models.StatusOpen, models.StatusInProgress:
			st.ActiveCases++
		}
		switch c.Priority {
		case models.PriorityHigh, models.PriorityUrgent:
			st.HighPriority++
		}
		typeCounts[c.Type]++
		if isResolved(c) {
			resolved++
			resCounts[c.Resolution]++
			if c.Resolution == models.ResolutionWon {
				won++
			}
			if c.FilingDate != nil && c.ClosingDate != nil {
				durations = append(durations, c.ClosingDate.Sub(*c.FilingDate).Hours()/24)
			}
		}
	}

	if resolved > 0 {
		st.WinRate = round(100 * float64(won) / float64(resolved))
	}
	if len(durations) > 0 {
		sum := 0.0
		for _, d := range durations {
			sum += d
		}
		st.AvgCompletion = round(sum / float64(len(durations)))
	}

	st.CaseByType = make([]CategoryCount, 0, len(models.CaseTypes))
	for _, name := range models.CaseTypes {
		st.CaseByType = append(st.CaseByType, CategoryCount{Name: name, Value: typeCounts[name]})
	}
	st.ResolutionData = []CategoryCount{
		{Name: "Won", Value: resCounts[models.ResolutionWon]},
		{Name: "Lost", Value: resCounts[models.ResolutionLost]},
		{Name: "Settled", Value: resCounts[models.ResolutionSettled]},
		// "Dropped" survives from legacy data; no validator produces it
		{Name: "Other", Value: resCounts[models.ResolutionDismissed] + resCounts["Dropped"]},
	}

	// first N in store order, not date-sorted
	for i := 0; i < len(cs) && i < recentLimit; i++ {
		st.RecentCases = append(st.RecentCases, cs[i])
	}

	for _, c := range cs {
		if c.HearingDate != nil && c.HearingDate.After(now) {
			st.UpcomingHearings = append(st.UpcomingHearings, c)
		}
	}
	sort.SliceStable(st.UpcomingHearings, func(i, j int) bool {
		return st.UpcomingHearings[i].HearingDate.Before(*st.UpcomingHearings[j].HearingDate)
	})
	if len(st.UpcomingHearings) > hearingLimit {
		st.UpcomingHearings = st.UpcomingHearings[:hearingLimit]
	}

	counts := map[primitive.ObjectID]int{}
	for _, c := range cs {
		if !c.Client.IsZero() {
			counts[c.Client]++
		}
	}
	for _, cl := range clients {
		st.CasesPerClient = append(st.CasesPerClient, ClientCaseCount{ClientID: cl.ID, Name: cl.Name, Count: counts[cl.ID]})
	}
	sort.SliceStable(st.CasesPerClient, func(i, j int) bool {
		return st.CasesPerClient[i].Count > st.CasesPerClient[j].Count
	})
	if len(st.CasesPerClient) > perClientTop {
		st.CasesPerClient = st.CasesPerClient[:perClientTop]
	}

	for _, c := range cs {
		for _, item := range c.Checklists {
			st.Tasks = append(st.Tasks, TaskItem{CaseID: c.ID, CaseTitle: c.Title, Task: item.Task, Completed: item.Completed})
		}
	}
	sort.SliceStable(st.Tasks, func(i, j int) bool {
		return !st.Tasks[i].Completed && st.Tasks[j].Completed
	})
	if len(st.Tasks) > taskLimit {
		st.Tasks = st.Tasks[:taskLimit]
	}

	return st
}

// Notifications returns hearing alerts for the (0, 7d) window ahead of now.
func Notifications(cs []models.Case, now time.Time) []Notification {
	out := []Notification{}
	for _, c := range cs {
		if c.HearingDate == nil {
			continue
		}
		diff := c.HearingDate.Sub(now)
		if diff > 0 && diff < hearingWindow {
			out = append(out, Notification{
				ID:      c.ID,
				Title:   "Upcoming Hearing",
				Message: c.Title + " on " + c.HearingDate.Format("Jan 2, 2006"),
				Type:    "hearing",
			})
		}
	}
	return out
}
