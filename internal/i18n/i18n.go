// Package i18n holds the user-facing strings of daytimeline in Russian and English.
// Russian is the default and the fallback.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/scheduler"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// Message keys. The key is the English text.
const (
	PickDate       = "Pick a date"
	AddEvent       = "Add event"
	EditEvent      = "Edit event"
	DeleteEvent    = "Delete event?"
	Title          = "Title"
	Start          = "Start"
	End            = "End"
	Description    = "Description"
	Save           = "Save"
	Cancel         = "Cancel"
	NoEvents       = "No events"
	FreeTime       = "Free time"
	Copied         = "Agenda copied to clipboard"
	LoadFailed     = "Load failed: %v"
	AddFailed      = "Add failed: %v"
	UpdateFailed   = "Update failed: %v"
	DeleteFailed   = "Delete failed: %v"
	Conflict       = "The interval overlaps another event!"
	EmptyTitle     = "Title is required"
	MissingTime    = "Start and end are required"
	EndBeforeStart = "End must be after start"
	InvalidTime    = "Time must be HH:MM"
	InvalidDate    = "Date must be YYYY-MM-DD"
	NotFound       = "Event not found"
	Unaligned      = "Time must be on a 15-minute mark"
	NoRoom         = "No free slot in working hours"
	EventCount     = "%d events"
	CardTitle      = "Welcome to the demo card!"
	CardBody       = "This is an example of a reusable component with types and theme. You can easily change the content and styles."
	CardTag        = "Demo"
	CardMore       = "Learn more"

	// Timeline view
	AddDone        = "Added \"%s\""
	UpdateDone     = "Updated \"%s\""
	DeleteDone     = "Event deleted"
	Drafting       = "Drafting..."
	DraftTitle     = "LLM draft"
	DraftsSaved    = "Saved %d events"
	DraftInvalid   = "Some drafts are still invalid"
	UnknownCommand = "Unknown command: %s"
	NoEventHere    = "No event here"
	Keys           = "Keys"
	HelpLine       = "a add · e edit · d delete · c calendar · / prompt · ? help · q quit"
)

var russian = map[string]string{
	PickDate:       "Выберите дату",
	AddEvent:       "Добавить событие",
	EditEvent:      "Редактировать событие",
	DeleteEvent:    "Удалить событие?",
	Title:          "Название",
	Start:          "Начало",
	End:            "Конец",
	Description:    "Описание",
	Save:           "Сохранить",
	Cancel:         "Отмена",
	NoEvents:       "Нет событий",
	FreeTime:       "Свободное время",
	Copied:         "План дня скопирован",
	LoadFailed:     "Ошибка загрузки: %v",
	AddFailed:      "Ошибка добавления: %v",
	UpdateFailed:   "Ошибка обновления: %v",
	DeleteFailed:   "Ошибка удаления: %v",
	Conflict:       "Интервал пересекается с другим событием!",
	EmptyTitle:     "Введите название",
	MissingTime:    "Укажите начало и конец",
	EndBeforeStart: "Конец должен быть позже начала",
	InvalidTime:    "Время должно быть в формате ЧЧ:ММ",
	InvalidDate:    "Дата должна быть в формате ГГГГ-ММ-ДД",
	NotFound:       "Событие не найдено",
	Unaligned:      "Время должно быть кратно 15 минутам",
	NoRoom:         "Нет свободного времени в рабочие часы",
	EventCount:     "Событий: %d",
	CardTitle:      "Добро пожаловать в демо-карточку!",
	CardBody:       "Это пример переиспользуемого компонента с типами и темой. Вы можете легко менять содержимое и стили.",
	CardTag:        "Демо",
	CardMore:       "Подробнее",

	AddDone:        "Добавлено: «%s»",
	UpdateDone:     "Обновлено: «%s»",
	DeleteDone:     "Событие удалено",
	Drafting:       "Составляю план...",
	DraftTitle:     "Черновик LLM",
	DraftsSaved:    "Сохранено событий: %d",
	DraftInvalid:   "Некоторые события всё ещё некорректны",
	UnknownCommand: "Неизвестная команда: %s",
	NoEventHere:    "Здесь нет события",
	Keys:           "Клавиши",
	HelpLine:       "a добавить · e изменить · d удалить · c календарь · / команда · ? помощь · q выход",
}

var english = map[string]string{
	EventCount: "%d events",
}

var (
	matcher = language.NewMatcher([]language.Tag{language.Russian, language.English})
	cat     = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	for key, msg := range russian {
		_ = b.SetString(language.Russian, key, msg)
		if en, ok := english[key]; ok {
			_ = b.SetString(language.English, key, en)
		} else {
			_ = b.SetString(language.English, key, key)
		}
	}
	return b
}

// Printer formats localized messages.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for locale ("ru", "en", "en-US", ...).
// Unknown or empty locales get Russian.
func New(locale string) *Printer {
	tag := language.Russian
	if locale = strings.TrimSpace(locale); locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No && idx == 1 {
				tag = language.English
			}
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Lang returns the base language of the printer, "ru" or "en".
func (p *Printer) Lang() string {
	base, _ := p.tag.Base()
	return base.String()
}

// T returns the localized message for key, formatted with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Error returns a localized message for err. Errors without a translation
// are returned as their Go error text.
func (p *Printer) Error(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range errorKeys {
		if errors.Is(err, m.err) {
			return p.T(m.key)
		}
	}
	return err.Error()
}

var errorKeys = []struct {
	err error
	key string
}{
	{schedule.ErrConflict, Conflict},
	{schedule.ErrEmptyTitle, EmptyTitle},
	{schedule.ErrMissingTime, MissingTime},
	{schedule.ErrEndBeforeStart, EndBeforeStart},
	{schedule.ErrInvalidTime, InvalidTime},
	{dateutil.ErrInvalidDateFormat, InvalidDate},
	{schedule.ErrNotFound, NotFound},
	{timeline.ErrUnaligned, Unaligned},
	{timeline.ErrEmptySpan, EndBeforeStart},
	{scheduler.ErrNoRoom, NoRoom},
}

// StoreError wraps a failed store operation with its localized prefix.
func (p *Printer) StoreError(err error) string {
	var se *schedule.StoreError
	if !errors.As(err, &se) {
		return p.Error(err)
	}
	// Conflicts and missing rows read better without the operation prefix.
	if errors.Is(err, schedule.ErrConflict) || errors.Is(err, schedule.ErrNotFound) {
		return p.Error(err)
	}
	key := LoadFailed
	switch se.Op {
	case "insert":
		key = AddFailed
	case "update":
		key = UpdateFailed
	case "delete":
		key = DeleteFailed
	}
	return p.T(key, se.Err)
}
