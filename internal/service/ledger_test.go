package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chucky-1/uangjajan/internal/model"
	"github.com/chucky-1/uangjajan/internal/producer"
	"github.com/chucky-1/uangjajan/internal/repository"
	"github.com/chucky-1/uangjajan/internal/repository/mocks"
)

type recordingPublisher struct {
	events []producer.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event producer.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestLedger_CreateIncomplete(t *testing.T) {
	testTable := []struct {
		name  string
		input *model.EntryInput
		field string
	}{
		{
			name:  "Nil input",
			input: nil,
		},
		{
			name:  "Missing name",
			input: &model.EntryInput{Date: "2024-01-01", Amount: 50000, Kind: model.Income},
			field: "name",
		},
		{
			name:  "Missing date",
			input: &model.EntryInput{Name: "Allowance", Amount: 50000, Kind: model.Income},
			field: "date",
		},
		{
			name:  "Zero amount",
			input: &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Kind: model.Income},
			field: "amount",
		},
		{
			name:  "Missing kind",
			input: &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Amount: 50000},
			field: "kind",
		},
		{
			name:  "Unknown kind",
			input: &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: "gift"},
			field: "kind",
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewEntries(t)
			events := &recordingPublisher{}
			ledger := NewLedger(repo, NewValidator(), events)

			_, err := ledger.Create(context.Background(), testCase.input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, testCase.field, validationErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			require.Empty(t, events.events)
		})
	}
}

func TestLedger_Create(t *testing.T) {
	repo := mocks.NewEntries(t)
	events := &recordingPublisher{}
	ledger := NewLedger(repo, NewValidator(), events)

	input := &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: model.Income}
	entry := &model.Entry{ID: 1, Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: model.Income}
	repo.On("Create", mock.Anything, input).Return(entry, nil).Once()

	created, err := ledger.Create(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, entry, created)
	require.Equal(t, 1, len(events.events))
	require.Equal(t, producer.EntryCreated, events.events[0].Type)
	require.Equal(t, entry.ID, events.events[0].EntryID)
}

func TestLedger_CreateNegativeAmount(t *testing.T) {
	repo := mocks.NewEntries(t)
	ledger := NewLedger(repo, NewValidator(), producer.Discard{})

	input := &model.EntryInput{Name: "Refund", Date: "2024-01-01", Amount: -100, Kind: model.Expense}
	repo.On("Create", mock.Anything, input).Return(&model.Entry{ID: 1, Name: "Refund", Date: "2024-01-01", Amount: -100, Kind: model.Expense}, nil).Once()

	_, err := ledger.Create(context.Background(), input)
	require.NoError(t, err)
}

func TestLedger_CreateStorageError(t *testing.T) {
	repo := mocks.NewEntries(t)
	events := &recordingPublisher{}
	ledger := NewLedger(repo, NewValidator(), events)

	input := &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: model.Income}
	repo.On("Create", mock.Anything, input).Return(nil, repository.ErrUnavailable).Once()

	_, err := ledger.Create(context.Background(), input)
	require.ErrorIs(t, err, repository.ErrUnavailable)
	require.Empty(t, events.events)
}

func TestLedger_PublishErrorDoesNotFailCreate(t *testing.T) {
	repo := mocks.NewEntries(t)
	events := &recordingPublisher{err: errors.New("broker is down")}
	ledger := NewLedger(repo, NewValidator(), events)

	input := &model.EntryInput{Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: model.Income}
	repo.On("Create", mock.Anything, input).Return(&model.Entry{ID: 1, Name: "Allowance", Date: "2024-01-01", Amount: 50000, Kind: model.Income}, nil).Once()

	_, err := ledger.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, len(events.events))
}

func TestLedger_Delete(t *testing.T) {
	repo := mocks.NewEntries(t)
	events := &recordingPublisher{}
	ledger := NewLedger(repo, NewValidator(), events)

	repo.On("DeleteByID", mock.Anything, int64(1)).Return(nil).Once()

	require.NoError(t, ledger.Delete(context.Background(), "1"))
	require.Equal(t, 1, len(events.events))
	require.Equal(t, producer.EntryDeleted, events.events[0].Type)
	require.Equal(t, int64(1), events.events[0].EntryID)
}

func TestLedger_DeleteNonNumericID(t *testing.T) {
	repo := mocks.NewEntries(t)
	events := &recordingPublisher{}
	ledger := NewLedger(repo, NewValidator(), events)

	require.NoError(t, ledger.Delete(context.Background(), "abc"))
	repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	require.Empty(t, events.events)
}

func TestLedger_GetNonNumericID(t *testing.T) {
	repo := mocks.NewEntries(t)
	ledger := NewLedger(repo, NewValidator(), producer.Discard{})

	_, err := ledger.Get(context.Background(), "abc")
	require.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLedger_ListAndSummary(t *testing.T) {
	repo := mocks.NewEntries(t)
	ledger := NewLedger(repo, NewValidator(), producer.Discard{})

	entries := []model.Entry{{ID: 2, Name: "Snacks", Date: "2024-01-02", Amount: 10000, Kind: model.Expense}}
	summary := &model.Summary{Expense: 10000, Balance: -10000, Count: 1}
	repo.On("List", mock.Anything).Return(entries, nil).Once()
	repo.On("Summary", mock.Anything).Return(summary, nil).Once()

	list, err := ledger.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, entries, list)

	s, err := ledger.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, summary, s)
}
