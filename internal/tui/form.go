package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// Form fields, in tab order.
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldDesc
	fieldCount
)

// stepMinutes is how far +/- move a time field.
const stepMinutes = timeline.SlotMinutes

// defaultMinutes is the length of a new event.
const defaultMinutes = 60

// eventForm edits one interval. id is 0 for a new event.
type eventForm struct {
	id     int64
	date   time.Time
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newEventForm(styles *Styles, placeholders [fieldCount]string) eventForm {
	var f eventForm
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		in.TextStyle = styles.ModalInputTextStyle
		in.PlaceholderStyle = styles.ModalPlaceholderStyle
		in.Cursor.Style = styles.ModalInputCursorStyle
		in.Cursor.TextStyle = styles.ModalInputTextStyle
		switch i {
		case fieldStart, fieldEnd:
			in.CharLimit = 5
			in.Width = 5
		case fieldTitle:
			in.CharLimit = 120
			in.Width = 36
		default:
			in.CharLimit = 256
			in.Width = 36
		}
		f.inputs[i] = in
	}
	return f
}

// openNew prepares the form for a new event starting at start.
func (f *eventForm) openNew(date time.Time, start schedule.TimeOfDay) tea.Cmd {
	f.id = 0
	f.date = date
	f.set("", start.String(), start.Add(defaultMinutes).String(), "")
	return f.focusField(fieldTitle)
}

// openEdit loads iv into the form.
func (f *eventForm) openEdit(iv *schedule.Interval) tea.Cmd {
	f.id = iv.ID
	f.date = iv.Date
	f.set(iv.Title, iv.Start.String(), iv.End.String(), iv.Description)
	return f.focusField(fieldTitle)
}

func (f *eventForm) set(title, start, end, desc string) {
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldStart].SetValue(start)
	f.inputs[fieldEnd].SetValue(end)
	f.inputs[fieldDesc].SetValue(desc)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.err = ""
}

func (f *eventForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *eventForm) next() tea.Cmd { return f.focusField(f.focus + 1) }
func (f *eventForm) prev() tea.Cmd { return f.focusField(f.focus - 1) }

// onTimeField reports whether a time field has focus.
func (f *eventForm) onTimeField() bool {
	return f.focus == fieldStart || f.focus == fieldEnd
}

// step moves the focused time field by delta minutes on the 15-minute grid.
// An unparsable value restarts from the other field or midnight.
func (f *eventForm) step(delta int) {
	if !f.onTimeField() {
		return
	}
	in := &f.inputs[f.focus]
	t, err := schedule.ParseTime(in.Value())
	if err != nil {
		other := fieldEnd
		if f.focus == fieldEnd {
			other = fieldStart
		}
		t, _ = schedule.ParseTime(f.inputs[other].Value())
	}

	grid := timeline.BuildGrid()
	if !grid.Aligned(t) {
		t = grid.Snap(t)
	}
	t = t.Add(delta)
	if t > timeline.LastSlot {
		t = timeline.LastSlot
	}
	in.SetValue(t.String())
	in.CursorEnd()

	// Keep end after start while stepping start forward.
	if f.focus == fieldStart {
		end, err := schedule.ParseTime(f.inputs[fieldEnd].Value())
		if err == nil && end <= t && t < timeline.LastSlot {
			f.inputs[fieldEnd].SetValue(t.Add(stepMinutes).String())
		}
	}
	f.err = ""
}

// update forwards a message to the focused input.
func (f *eventForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// draft returns the form content as a planner draft.
func (f *eventForm) draft() schedule.Draft {
	return schedule.Draft{
		ID:          f.id,
		Date:        dateutil.Key(f.date),
		Start:       f.inputs[fieldStart].Value(),
		End:         f.inputs[fieldEnd].Value(),
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDesc].Value(),
	}
}

func (f *eventForm) value(i int) string {
	return f.inputs[i].Value()
}
