package services

import (
	"context"
	"testing"
	"time"

	"github.com/Valentin6743/LS/internal/aggregate"
	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionSummary(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner := uuid.New()

	add := func(typ models.TransactionType, category string, amount float64, on time.Time) {
		t.Helper()
		_, err := s.Transactions.Create(ctx, CreateTransactionRequest{
			OwnerID: owner, Type: typ, Category: category, Amount: amount, TransactionDate: &on,
		})
		require.NoError(t, err)
	}
	add(models.Income, "Salary", 2000, day(2024, time.January, 31))
	add(models.Expense, "Food", 40, day(2024, time.February, 2))
	add(models.Expense, "Food", 10, day(2024, time.February, 3))
	add(models.Transfer, "Savings", 300, day(2024, time.February, 4))
	add(models.Expense, "Food", 99, day(2024, time.March, 1))

	summary, err := s.Transactions.SummaryByCategory(ctx, day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)
	assert.Equal(t, map[string]aggregate.CategorySummary{
		"Food":    {Expense: 50},
		"Savings": {Transfer: 300},
	}, summary)

	expenses, err := s.Transactions.ByType(ctx, models.Expense, Range{})
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, 99.0, expenses[0].Amount, "newest first")

	from := day(2024, time.February, 3)
	food, err := s.Transactions.ByCategory(ctx, "Food", Range{From: &from})
	require.NoError(t, err)
	assert.Len(t, food, 2)
}

func TestTransactionValidation(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := s.Transactions.Create(ctx, CreateTransactionRequest{OwnerID: owner, Type: "refund", Category: "Food"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = s.Transactions.Create(ctx, CreateTransactionRequest{OwnerID: owner, Type: models.Expense, Category: "Food", Currency: "euro"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	tx, err := s.Transactions.Create(ctx, CreateTransactionRequest{OwnerID: owner, Type: models.Expense, Category: "Food", Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, defaultCurrency, tx.Currency)

	tx, err = s.Transactions.Update(ctx, tx.ID, UpdateTransactionRequest{Currency: ptr("usd"), Amount: ptr(7.5)})
	require.NoError(t, err)
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, 7.5, tx.Amount)

	_, err = s.Transactions.ByType(ctx, "gift", Range{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestEventCreateAndQuery(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner, task := uuid.New(), uuid.New()

	start := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	e, err := s.Events.Create(ctx, CreateEventRequest{
		OwnerID: owner, Title: "Dentist", StartTime: start, EndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceEvent, e.SourceType)
	assert.Equal(t, models.VisibilityPrivate, e.Visibility)
	assert.Equal(t, models.EventColors[0], e.Color)

	_, err = s.Events.Create(ctx, CreateEventRequest{
		OwnerID: owner, Title: "Task due", StartTime: start.AddDate(0, 0, 5),
		SourceType: ptr(models.SourceTask), SourceID: &task,
	})
	require.NoError(t, err)

	bySource, err := s.Events.BySource(ctx, models.SourceTask, task)
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, "Task due", bySource[0].Title)

	to := start.AddDate(0, 0, 1)
	window, err := s.Events.List(ctx, EventFilter{OwnerID: &owner, Start: Range{From: &start, To: &to}})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, e.ID, window[0].ID)

	before := start.Add(-time.Minute)
	_, err = s.Events.Update(ctx, e.ID, UpdateEventRequest{EndTime: &before})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = s.Events.Create(ctx, CreateEventRequest{OwnerID: owner, Title: "x", StartTime: start, Visibility: ptr(models.Visibility("public"))})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNoteAndMemorySearch(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := s.Notes.Create(ctx, CreateNoteRequest{OwnerID: owner, Title: ptr("Groceries"), Content: "milk, eggs"})
	require.NoError(t, err)
	fav, err := s.Notes.Create(ctx, CreateNoteRequest{OwnerID: owner, Content: "100% done", IsFavorite: true})
	require.NoError(t, err)

	found, err := s.Notes.Search(ctx, "EGGS")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Groceries", *found[0].Title)

	found, err = s.Notes.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fav.ID, found[0].ID)

	favs, err := s.Notes.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	_, err = s.Notes.Create(ctx, CreateNoteRequest{OwnerID: owner})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	when := day(2023, time.August, 14)
	_, err = s.Memories.Create(ctx, CreateMemoryRequest{
		OwnerID: owner, Title: "Lake trip", Content: "Swam at dawn", Date: &when, Mood: ptr(models.MoodHappy),
	})
	require.NoError(t, err)
	_, err = s.Memories.Create(ctx, CreateMemoryRequest{OwnerID: owner, Title: "Exam", Mood: ptr(models.MoodStressed)})
	require.NoError(t, err)

	mems, err := s.Memories.Search(ctx, "dawn")
	require.NoError(t, err)
	require.Len(t, mems, 1)
	assert.Equal(t, "Lake trip", mems[0].Title)

	happy, err := s.Memories.ByMood(ctx, models.MoodHappy)
	require.NoError(t, err)
	assert.Len(t, happy, 1)

	_, err = s.Memories.Create(ctx, CreateMemoryRequest{OwnerID: owner, Title: "x", Mood: ptr(models.Mood("bored"))})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
