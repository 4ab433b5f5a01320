package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// DefaultMaxRetries is how many times a rejected reply is sent back for correction.
const DefaultMaxRetries = 2

// ErrNoEvents is returned when the model produced nothing to schedule.
var ErrNoEvents = errors.New("no events in model response")

const draftPrompt = `You turn a short note into calendar events for a day planner.

Context:
- Now: %s, %s %s
- Selected day: %s (%s)
- Tomorrow: %s (%s)

%s

%s

Rules:
1. Resolve every date to YYYY-MM-DD. Without a date, use the selected day %s.
2. Times are 24-hour HH:MM on a 15-minute grid (minutes 00, 15, 30 or 45).
3. end must be after start on the same day. Nothing crosses midnight.
4. Never overlap with the existing events above or with each other.
5. Without a time, pick a free slot that matches the history above when possible.
6. Keep the title short. Put extra detail in description.
7. Add a warning for anything you had to guess.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "events": [
    {
      "date": "YYYY-MM-DD",
      "start": "HH:MM",
      "end": "HH:MM",
      "title": "string",
      "description": "string"
    }
  ],
  "warnings": ["string"]
}`

const draftPromptCompact = `Turn the note into calendar events. Return JSON only.

Selected day: %s (%s)
Now: %s

%s

Rules:
- date YYYY-MM-DD, default %s.
- start/end HH:MM, 24-hour, minutes 00/15/30/45, end after start.
- No overlap with existing events or each other.
- "warnings" is an array of strings.

{"events":[{"date":"YYYY-MM-DD","start":"HH:MM","end":"HH:MM","title":"string","description":"string"}],"warnings":[]}`

// DraftRequest is the input for drafting intervals from free text.
type DraftRequest struct {
	Input         string
	Date          time.Time            // selected day
	Now           time.Time            // wall clock
	Existing      []*schedule.Interval // intervals on the selected day
	Recent        []*schedule.Interval // history used to suggest times
	CompactPrompt bool
}

// DraftResponse is the model's reply.
type DraftResponse struct {
	Events   []DraftedEvent `json:"events"`
	Warnings []string       `json:"warnings"`
}

// DraftedEvent is one event proposed by the model.
type DraftedEvent struct {
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DraftResult holds validated drafts ready for the planner.
type DraftResult struct {
	Drafts   []schedule.Draft
	Warnings []string
	// Problems is set when retries ran out and some drafts are still invalid.
	Problems []Problem
}

// Drafter asks a model to turn text into interval drafts and validates the answer.
type Drafter struct {
	client     Client
	maxRetries int
}

// NewDrafter creates a Drafter on top of client.
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client, maxRetries: DefaultMaxRetries}
}

// WithMaxRetries overrides the number of correction rounds.
func (d *Drafter) WithMaxRetries(n int) *Drafter {
	if n >= 0 {
		d.maxRetries = n
	}
	return d
}

// Draft sends req to the model, validates the events and asks for fixes until
// they pass or retries run out.
func (d *Drafter) Draft(ctx context.Context, req DraftRequest) (*DraftResult, error) {
	messages := BuildMessages(req)

	var (
		resp     DraftResponse
		problems []Problem
	)
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		resp = DraftResponse{}
		if err := d.client.ChatJSON(ctx, messages, &resp); err != nil {
			return nil, fmt.Errorf("drafting (attempt %d): %w", attempt+1, err)
		}
		if len(resp.Events) == 0 {
			return nil, ErrNoEvents
		}

		problems = Validate(resp.Events, req.Date, req.Existing)
		if len(problems) == 0 {
			break
		}
		if attempt < d.maxRetries {
			raw, _ := json.Marshal(resp)
			messages = append(messages,
				Message{Role: RoleAssistant, Content: string(raw)},
				Message{Role: RoleUser, Content: FormatProblems(problems)},
			)
		}
	}

	return &DraftResult{
		Drafts:   resp.Drafts(req.Date),
		Warnings: resp.Warnings,
		Problems: problems,
	}, nil
}

// Drafts converts the events to schedule drafts. Relative or missing dates
// resolve against selected.
func (r *DraftResponse) Drafts(selected time.Time) []schedule.Draft {
	drafts := make([]schedule.Draft, 0, len(r.Events))
	for _, ev := range r.Events {
		drafts = append(drafts, schedule.Draft{
			Date:        resolveDate(ev.Date, selected),
			Start:       strings.TrimSpace(ev.Start),
			End:         strings.TrimSpace(ev.End),
			Title:       strings.TrimSpace(ev.Title),
			Description: strings.TrimSpace(ev.Description),
		})
	}
	return drafts
}

func resolveDate(s string, selected time.Time) string {
	day, err := dateutil.ParseRelativeDate(s, selected)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return day.Format(dateutil.DateLayout)
}

// BuildMessages renders the prompt for req followed by the user's note.
func BuildMessages(req DraftRequest) []Message {
	selected := req.Date
	if selected.IsZero() {
		selected = req.Now
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	day := selected.Format(dateutil.DateLayout)
	existing := formatIntervals("Existing events on the selected day (do not overlap):", req.Existing)

	var prompt string
	if req.CompactPrompt {
		prompt = fmt.Sprintf(draftPromptCompact,
			day, selected.Format("Monday"),
			now.Format("2006-01-02 15:04"),
			existing,
			day,
		)
	} else {
		tomorrow := selected.AddDate(0, 0, 1)
		prompt = fmt.Sprintf(draftPrompt,
			now.Format("Monday"), now.Format(dateutil.DateLayout), now.Format("15:04"),
			day, selected.Format("Monday"),
			tomorrow.Format(dateutil.DateLayout), tomorrow.Format("Monday"),
			existing,
			formatSuggestions(req.Recent),
			day,
		)
	}

	return []Message{
		{Role: RoleSystem, Content: prompt},
		{Role: RoleUser, Content: req.Input},
	}
}

func formatIntervals(header string, ivs []*schedule.Interval) string {
	if len(ivs) == 0 {
		return header + " none"
	}
	sorted := append([]*schedule.Interval(nil), ivs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, iv := range sorted {
		fmt.Fprintf(&sb, "- %s %s-%s: %s\n", iv.Date.Format(dateutil.DateLayout), iv.Start, iv.End, iv.Title)
	}
	return sb.String()
}

func formatSuggestions(recent []*schedule.Interval) string {
	windows := suggestedWindows(recent)
	if len(windows) == 0 {
		return "Usual times from recent history: none"
	}
	var sb strings.Builder
	sb.WriteString("Usual times from recent history (median):\n")
	for _, w := range windows {
		fmt.Fprintf(&sb, "- %s\n", w)
	}
	return sb.String()
}

// suggestedWindows returns "title: ~HH:MM-HH:MM (n=N)" per recurring title,
// using the median start and end snapped to the quarter hour.
func suggestedWindows(recent []*schedule.Interval) []string {
	type samples struct{ starts, ends []int }
	byTitle := make(map[string]*samples)
	for _, iv := range recent {
		key := strings.ToLower(strings.TrimSpace(iv.Title))
		if key == "" {
			continue
		}
		s := byTitle[key]
		if s == nil {
			s = &samples{}
			byTitle[key] = s
		}
		s.starts = append(s.starts, iv.Start.Minutes())
		s.ends = append(s.ends, iv.End.Minutes())
	}

	keys := make([]string, 0, len(byTitle))
	for k := range byTitle {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		s := byTitle[k]
		start := schedule.TimeOfDay(quarter(median(s.starts)))
		end := schedule.TimeOfDay(quarter(median(s.ends)))
		out = append(out, fmt.Sprintf("%s: ~%s-%s (n=%d)", k, start, end, len(s.starts)))
	}
	return out
}

func median(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func quarter(minutes int) int {
	q := ((minutes + 7) / 15) * 15
	if q >= schedule.MinutesPerDay {
		q = schedule.MinutesPerDay - 15
	}
	return q
}
