package i18n

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

func TestNew_Locale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "", want: "ru"},
		{locale: "ru", want: "ru"},
		{locale: "ru-RU", want: "ru"},
		{locale: "en", want: "en"},
		{locale: "en-GB", want: "en"},
		{locale: "de", want: "ru"},
		{locale: "not a tag", want: "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := New(tt.locale).Lang(); got != tt.want {
				t.Errorf("New(%q).Lang() = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestT(t *testing.T) {
	ru, en := New("ru"), New("en")

	if got := ru.T(AddEvent); got != "Добавить событие" {
		t.Errorf("ru AddEvent = %q", got)
	}
	if got := en.T(AddEvent); got != "Add event" {
		t.Errorf("en AddEvent = %q", got)
	}
	if got := ru.T(CardMore); got != "Подробнее" {
		t.Errorf("ru CardMore = %q", got)
	}
	if got := en.T(EventCount, 3); got != "3 events" {
		t.Errorf("en EventCount = %q", got)
	}
	if got := ru.T(EventCount, 3); got != "Событий: 3" {
		t.Errorf("ru EventCount = %q", got)
	}
}

func TestCatalogComplete(t *testing.T) {
	en := New("en")
	for key := range russian {
		if strings.Contains(key, "%") {
			continue
		}
		if got := en.T(key); got != key {
			t.Errorf("en %q = %q, want the key itself", key, got)
		}
	}
}

func TestError(t *testing.T) {
	ru := New("ru")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "conflict", err: fmt.Errorf("%w: details", schedule.ErrConflict), want: "Интервал пересекается с другим событием!"},
		{name: "empty title", err: schedule.ErrEmptyTitle, want: "Введите название"},
		{name: "wrapped time", err: fmt.Errorf("start time: %w", schedule.ErrInvalidTime), want: "Время должно быть в формате ЧЧ:ММ"},
		{name: "unaligned", err: timeline.ErrUnaligned, want: "Время должно быть кратно 15 минутам"},
		{name: "unknown", err: errors.New("disk on fire"), want: "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ru.Error(tt.err); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	en := New("en")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "insert failure",
			err:  &schedule.StoreError{Op: "insert", Err: errors.New("disk full")},
			want: "Add failed: disk full",
		},
		{
			name: "list failure",
			err:  &schedule.StoreError{Op: "list", Err: errors.New("locked")},
			want: "Load failed: locked",
		},
		{
			name: "conflict in store",
			err:  &schedule.StoreError{Op: "insert", Err: fmt.Errorf("%w: x", schedule.ErrConflict)},
			want: "The interval overlaps another event!",
		},
		{
			name: "not a store error",
			err:  schedule.ErrEndBeforeStart,
			want: "End must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := en.StoreError(tt.err); got != tt.want {
				t.Errorf("StoreError() = %q, want %q", got, tt.want)
			}
		})
	}
}
