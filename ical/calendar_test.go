package ical_test

import (
	"strings"
	"testing"
	"time"

	"github.com/samiserrag/denver-songwriters-collective-sub013/ical"
)

func TestCalendarToIcal(t *testing.T) {
	calendar := ical.NewCalendar()
	calendar.SetName("Denver Songwriters Collective")
	calendar.SetDescription("Open mics, showcases, song circles")

	eventEntry := ical.NewEvent()
	eventEntry.SetID("open-mic")
	eventEntry.SetSummary("Thursday Open Mic")
	eventEntry.SetLocation("The Walnut Room")
	eventEntry.SetStartDate(time.Date(2026, 1, 8, 19, 0, 0, 0, time.UTC))
	eventEntry.SetEndDate(time.Date(2026, 1, 8, 22, 0, 0, 0, time.UTC))
	eventEntry.SetRRule("FREQ=WEEKLY;BYDAY=TH")
	eventEntry.AddExDate(time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC))
	calendar.AddEvent(eventEntry)

	out := calendar.ToIcal()

	for _, expected := range []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"X-WR-CALNAME:Denver Songwriters Collective\r\n",
		"X-WR-CALDESC:Open mics\\, showcases\\, song circles\r\n",
		"BEGIN:VEVENT\r\n",
		"UID:open-mic\r\n",
		"DTSTART:20260108T190000Z\r\n",
		"DTEND:20260108T220000Z\r\n",
		"SUMMARY:Thursday Open Mic\r\n",
		"LOCATION:The Walnut Room\r\n",
		"RRULE:FREQ=WEEKLY;BYDAY=TH\r\n",
		"EXDATE:20260115T190000Z\r\n",
		"END:VEVENT\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("output missing %q:\n%s", expected, out)
		}
	}

	// deterministic for the same content
	if out != calendar.ToIcal() {
		t.Error("repeated serialization differed")
	}
}

func TestCalendarEscaping(t *testing.T) {
	calendar := ical.NewCalendar()

	eventEntry := ical.NewEvent()
	eventEntry.SetID("escaping")
	eventEntry.SetSummary(`Songs; stories, and\more`)
	eventEntry.SetDescription("line one\nline two")
	calendar.AddEvent(eventEntry)

	out := calendar.ToIcal()
	if !strings.Contains(out, `SUMMARY:Songs\; stories\, and\\more`) {
		t.Errorf("special characters not escaped:\n%s", out)
	}
	if !strings.Contains(out, `DESCRIPTION:line one\nline two`) {
		t.Errorf("newline not escaped:\n%s", out)
	}
}

func TestCalendarRDates(t *testing.T) {
	calendar := ical.NewCalendar()

	eventEntry := ical.NewEvent()
	eventEntry.SetID("custom-dates")
	eventEntry.SetSummary("Songwriter Retreat")
	eventEntry.SetStartDate(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC))
	eventEntry.AddRDate(time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC))
	eventEntry.AddRDate(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	calendar.AddEvent(eventEntry)

	out := calendar.ToIcal()
	first := strings.Index(out, "RDATE:20260214T100000Z")
	second := strings.Index(out, "RDATE:20260305T100000Z")
	if first == -1 || second == -1 || second < first {
		t.Errorf("rdates missing or out of order:\n%s", out)
	}
}
