package aggregate

import (
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carol = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	room  = uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
)

func at(h int) time.Time {
	return time.Date(2024, 5, 1, h, 0, 0, 0, time.UTC)
}

func dm(from, to uuid.UUID, hour int) models.Message {
	return models.Message{ID: uuid.New(), SenderID: from, RecipientID: &to, CreatedAt: at(hour)}
}

func TestSummarizeByCategory(t *testing.T) {
	got := SummarizeByCategory([]models.Transaction{
		{Type: models.Expense, Category: "Food", Amount: 10},
		{Type: models.Expense, Category: "Food", Amount: 5},
		{Type: models.Income, Category: "Food", Amount: 100},
		{Type: models.Transfer, Category: "Savings", Amount: 50},
		{Type: "refund", Category: "Food", Amount: 999},
	})

	assert.Equal(t, CategorySummary{Income: 100, Expense: 15}, got["Food"])
	assert.Equal(t, CategorySummary{Transfer: 50}, got["Savings"])
	assert.Len(t, got, 2)
}

func TestSummarizeByCategoryEmpty(t *testing.T) {
	assert.Empty(t, SummarizeByCategory(nil))
}

func TestRecentConversations(t *testing.T) {
	msgs := []models.Message{dm(alice, bob, 1), dm(bob, alice, 2), dm(alice, carol, 3)}

	got := RecentConversations(alice, msgs)
	require.Len(t, got, 2)
	assert.Equal(t, msgs[2].ID, got[0].ID)
	assert.Equal(t, msgs[1].ID, got[1].ID)

	// input order is untouched
	assert.Equal(t, at(1), msgs[0].CreatedAt)
}

func TestRecentConversationsChannel(t *testing.T) {
	post := models.Message{ID: uuid.New(), SenderID: bob, ChannelID: &room, CreatedAt: at(5)}
	older := models.Message{ID: uuid.New(), SenderID: carol, ChannelID: &room, CreatedAt: at(4)}

	got := RecentConversations(alice, []models.Message{older, post, dm(alice, bob, 1)})
	require.Len(t, got, 2)
	assert.Equal(t, post.ID, got[0].ID)
}

func TestConversationAndUnread(t *testing.T) {
	read := at(9)
	m1 := dm(bob, alice, 3)
	m2 := dm(alice, bob, 1)
	m3 := dm(bob, alice, 2)
	m3.ReadAt = &read
	other := dm(carol, alice, 4)
	msgs := []models.Message{m1, m2, m3, other}

	conv := Conversation(alice, bob, msgs)
	require.Len(t, conv, 3)
	assert.Equal(t, []uuid.UUID{m2.ID, m3.ID, m1.ID}, []uuid.UUID{conv[0].ID, conv[1].ID, conv[2].ID})

	assert.Equal(t, 2, UnreadCount(alice, bob, msgs))
	assert.Equal(t, 1, UnreadCount(alice, carol, msgs))
}

func TestConversations(t *testing.T) {
	read := at(9)
	m1 := dm(bob, alice, 3)
	m2 := dm(alice, bob, 1)
	m2.ReadAt = &read
	post := models.Message{ID: uuid.New(), SenderID: carol, ChannelID: &room, CreatedAt: at(5)}
	msgs := []models.Message{m1, m2, post, dm(carol, alice, 2)}

	got := Conversations(alice, msgs)
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{room, bob, carol}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, post.ID, got[0].Last.ID)
	assert.Equal(t, m1.ID, got[1].Last.ID)
	assert.Equal(t, 1, got[1].Unread)
	assert.Equal(t, 1, got[2].Unread)

	assert.Empty(t, Conversations(alice, nil))
}

func TestFilterAndSortTasks(t *testing.T) {
	d1 := at(1)
	d2 := at(2)
	tasks := []models.Task{
		{Title: "done", Status: models.TaskCompleted, DueDate: &d2},
		{Title: "early", Status: models.TaskTodo, DueDate: &d1},
		{Title: "late", Status: models.TaskInProgress, DueDate: &d2},
		{Title: "undated", Status: models.TaskTodo},
	}

	assert.Len(t, FilterTasks(tasks, FilterAll), 4)
	assert.Len(t, FilterTasks(tasks, ""), 4)
	assert.Len(t, FilterTasks(tasks, FilterActive), 3)
	completed := FilterTasks(tasks, FilterCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].Title)

	sorted := SortTasks(tasks)
	var titles []string
	for _, s := range sorted {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"late", "early", "undated", "done"}, titles)
	assert.Equal(t, "done", tasks[0].Title)

	assert.True(t, FilterActive.Valid())
	assert.False(t, TaskFilter("open").Valid())
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var tasks []models.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, models.Task{Status: models.TaskTodo})
	}
	tasks = append(tasks, models.Task{Status: models.TaskCompleted})

	events := []models.CalendarEvent{
		{Title: "today", StartTime: now.Add(2 * time.Hour)},
		{Title: "tomorrow", StartTime: now.Add(24 * time.Hour)},
	}
	friends := []models.User{
		{FullName: "Anna", Presence: models.Online},
		{FullName: "Ben", Presence: models.Away},
	}

	v := Dashboard(tasks, events, friends, now)
	assert.Equal(t, 7, v.OpenTaskCount)
	assert.Len(t, v.OpenTasks, DashboardOpenTasks)
	assert.Equal(t, 1, v.TodayEventCount)
	assert.Equal(t, "today", v.TodayEvents[0].Title)
	require.Len(t, v.OnlineFriends, 1)
	assert.Equal(t, "Anna", v.OnlineFriends[0].FullName)
}

func TestFilesByCategory(t *testing.T) {
	docs := "Docs"
	empty := ""
	got := FilesByCategory([]models.FileRecord{
		{Name: "a.pdf", Category: &docs},
		{Name: "b.png"},
		{Name: "c.pdf", Category: &docs},
		{Name: "d.zip", Category: &empty},
	})

	require.Len(t, got["Docs"], 2)
	assert.Equal(t, "c.pdf", got["Docs"][1].Name)
	assert.Len(t, got[Uncategorized], 2)
}
