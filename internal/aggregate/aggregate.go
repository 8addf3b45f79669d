// Package aggregate holds pure helpers that derive views from already loaded
// rows. Nothing here touches a database or mutates its input.
package aggregate

import (
	"sort"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

// CategorySummary totals one category. Transfers are kept apart and count
// toward neither income nor expense.
type CategorySummary struct {
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Transfer float64 `json:"transfer"`
}

// SummarizeByCategory sums signed amounts per category and type.
func SummarizeByCategory(txs []models.Transaction) map[string]CategorySummary {
	out := make(map[string]CategorySummary)
	for _, tx := range txs {
		s := out[tx.Category]
		switch tx.Type {
		case models.Income:
			s.Income += tx.Amount
		case models.Expense:
			s.Expense += tx.Amount
		case models.Transfer:
			s.Transfer += tx.Amount
		default:
			continue
		}
		out[tx.Category] = s
	}
	return out
}

// RecentConversations returns the newest message of every conversation
// userID takes part in, newest first.
func RecentConversations(userID uuid.UUID, msgs []models.Message) []models.Message {
	sorted := append([]models.Message(nil), msgs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	seen := make(map[uuid.UUID]bool)
	out := make([]models.Message, 0)
	for _, m := range sorted {
		key := m.Counterpart(userID)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Conversation returns the messages of one conversation, oldest first.
func Conversation(userID, counterpart uuid.UUID, msgs []models.Message) []models.Message {
	out := make([]models.Message, 0)
	for _, m := range msgs {
		if m.Counterpart(userID) == counterpart {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// UnreadCount counts the unread messages of one conversation.
func UnreadCount(userID, counterpart uuid.UUID, msgs []models.Message) int {
	n := 0
	for _, m := range msgs {
		if !m.Read() && m.Counterpart(userID) == counterpart {
			n++
		}
	}
	return n
}

// ConversationSummary is one entry of a chat sidebar: the conversation's
// counterpart (contact or channel), its newest message and how many of its
// messages are unread.
type ConversationSummary struct {
	ID     uuid.UUID      `json:"id"`
	Last   models.Message `json:"last_message"`
	Unread int            `json:"unread"`
}

// Conversations summarizes every conversation userID takes part in, the
// most recently active first.
func Conversations(userID uuid.UUID, msgs []models.Message) []ConversationSummary {
	recent := RecentConversations(userID, msgs)
	out := make([]ConversationSummary, 0, len(recent))
	for _, m := range recent {
		id := m.Counterpart(userID)
		out = append(out, ConversationSummary{ID: id, Last: m, Unread: UnreadCount(userID, id, msgs)})
	}
	return out
}

// TaskFilter selects tasks by completion.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
)

func (f TaskFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// FilterTasks keeps the tasks matching f. An empty filter behaves like all.
func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed() {
				continue
			}
		case FilterCompleted:
			if !t.Completed() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// SortTasks orders a copy of tasks: incomplete first, then latest due date
// first. Tasks without a due date sort last within their group.
func SortTasks(tasks []models.Task) []models.Task {
	out := append([]models.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed() != b.Completed() {
			return !a.Completed()
		}
		return dueUnix(a) > dueUnix(b)
	})
	return out
}

func dueUnix(t models.Task) int64 {
	if t.DueDate == nil {
		return 0
	}
	return t.DueDate.Unix()
}

// DashboardOpenTasks caps the open task list on the dashboard.
const DashboardOpenTasks = 5

type DashboardView struct {
	OpenTaskCount   int                    `json:"open_task_count"`
	OpenTasks       []models.Task          `json:"open_tasks"`
	TodayEventCount int                    `json:"today_event_count"`
	TodayEvents     []models.CalendarEvent `json:"today_events"`
	OnlineFriends   []models.User          `json:"online_friends"`
}

// Dashboard builds the start page: open tasks, events starting today (in
// now's location) and friends that are online.
func Dashboard(tasks []models.Task, events []models.CalendarEvent, friends []models.User, now time.Time) DashboardView {
	v := DashboardView{
		OpenTasks:     make([]models.Task, 0),
		TodayEvents:   make([]models.CalendarEvent, 0),
		OnlineFriends: make([]models.User, 0),
	}

	for _, t := range tasks {
		if t.Completed() {
			continue
		}
		v.OpenTaskCount++
		if len(v.OpenTasks) < DashboardOpenTasks {
			v.OpenTasks = append(v.OpenTasks, t)
		}
	}

	y, m, d := now.Date()
	for _, e := range events {
		ey, em, ed := e.StartTime.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			v.TodayEvents = append(v.TodayEvents, e)
		}
	}
	v.TodayEventCount = len(v.TodayEvents)

	for _, f := range friends {
		if f.Presence == models.Online {
			v.OnlineFriends = append(v.OnlineFriends, f)
		}
	}
	return v
}

// Uncategorized groups files without a category.
const Uncategorized = "uncategorized"

// FilesByCategory groups files by category, keeping their order.
func FilesByCategory(files []models.FileRecord) map[string][]models.FileRecord {
	out := make(map[string][]models.FileRecord)
	for _, f := range files {
		key := Uncategorized
		if f.Category != nil && *f.Category != "" {
			key = *f.Category
		}
		out[key] = append(out[key], f)
	}
	return out
}
