package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
	"github.com/chucky-1/uangjajan/internal/producer"
	"github.com/chucky-1/uangjajan/internal/repository"
)

// ValidationError is returned when a create request is incomplete or malformed
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidator returns a validator that reports fields by their json names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

type Ledger struct {
	repo      repository.Entries
	validator *validator.Validate
	events    producer.Publisher
}

func NewLedger(repo repository.Entries, validator *validator.Validate, events producer.Publisher) *Ledger {
	return &Ledger{
		repo:      repo,
		validator: validator,
		events:    events,
	}
}

func (l *Ledger) List(ctx context.Context) ([]model.Entry, error) {
	return l.repo.List(ctx)
}

// Get looks an entry up by its textual id. An id that isn't a number matches nothing.
func (l *Ledger) Get(ctx context.Context, id string) (*model.Entry, error) {
	entryID, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("service.Ledger, get entry %q error: %w", id, repository.ErrNotFound)
	}
	return l.repo.Get(ctx, entryID)
}

// Create validates input before storage is touched and records one entry
func (l *Ledger) Create(ctx context.Context, input *model.EntryInput) (*model.Entry, error) {
	if err := l.validate(input); err != nil {
		return nil, err
	}
	entry, err := l.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	logrus.Infof("entry %d added: %s %d (%s)", entry.ID, entry.Name, entry.Amount, entry.Kind)
	l.publish(ctx, producer.NewEvent(producer.EntryCreated, entry.ID, entry))
	return entry, nil
}

// Delete removes the entry with the textual id. Missing and non-numeric ids are a no-op.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	entryID, ok := parseID(id)
	if !ok {
		logrus.Debugf("delete ignored, id %q is not a number", id)
		return nil
	}
	if err := l.repo.DeleteByID(ctx, entryID); err != nil {
		return err
	}
	logrus.Infof("entry %d deleted", entryID)
	l.publish(ctx, producer.NewEvent(producer.EntryDeleted, entryID, nil))
	return nil
}

func (l *Ledger) Summary(ctx context.Context) (*model.Summary, error) {
	return l.repo.Summary(ctx)
}

func (l *Ledger) validate(input *model.EntryInput) error {
	if input == nil {
		return &ValidationError{Reason: "incomplete data"}
	}
	err := l.validator.Struct(input)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("service.Ledger, validate entry error: %w", err)
	}
	first := validationErrs[0]
	switch first.Tag() {
	case "required":
		return &ValidationError{Field: first.Field(), Reason: "incomplete data, field is required"}
	case "oneof":
		return &ValidationError{Field: first.Field(), Reason: fmt.Sprintf("must be one of: %s", first.Param())}
	}
	return &ValidationError{Field: first.Field(), Reason: fmt.Sprintf("failed on %s", first.Tag())}
}

// publish never fails the request, storage is the source of truth
func (l *Ledger) publish(ctx context.Context, event producer.Event) {
	if err := l.events.Publish(ctx, event); err != nil {
		logrus.Errorf("service.Ledger couldn't publish %s for entry %d: %v", event.Type, event.EntryID, err)
	}
}

func parseID(id string) (int64, bool) {
	entryID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return entryID, true
}
