package ical

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	id          string
	summary     string
	description string
	location    string
	url         string

	startDate time.Time
	endDate   time.Time

	rrule   string
	rdates  []time.Time
	exdates []time.Time
}

func NewEvent() Event {
	return Event{
		id: uuid.NewString(),
	}
}

// #region Setters

func (e *Event) SetID(id string) {
	e.id = id
}

func (e *Event) SetSummary(summary string) {
	e.summary = summary
}

func (e *Event) SetDescription(description string) {
	e.description = description
}

func (e *Event) SetLocation(location string) {
	e.location = location
}

func (e *Event) SetURL(url string) {
	e.url = url
}

func (e *Event) SetStartDate(startDate time.Time) {
	e.startDate = startDate
}

func (e *Event) SetEndDate(endDate time.Time) {
	e.endDate = endDate
}

// SetRRule takes a serialized recurrence rule value ("FREQ=WEEKLY;BYDAY=MO").
func (e *Event) SetRRule(rrule string) {
	e.rrule = rrule
}

func (e *Event) AddRDate(date time.Time) {
	e.rdates = append(e.rdates, date)
}

func (e *Event) AddExDate(date time.Time) {
	e.exdates = append(e.exdates, date)
}

// #endregion

func (e *Event) writeTo(sb *strings.Builder) {
	writeLine(sb, "BEGIN:VEVENT")
	writeLine(sb, "UID:"+escapeText(e.id))
	writeLine(sb, "DTSTAMP:"+formatDateTime(e.startDate))
	writeLine(sb, "DTSTART:"+formatDateTime(e.startDate))
	if !e.endDate.IsZero() {
		writeLine(sb, "DTEND:"+formatDateTime(e.endDate))
	}
	writeLine(sb, "SUMMARY:"+escapeText(e.summary))
	if e.description != "" {
		writeLine(sb, "DESCRIPTION:"+escapeText(e.description))
	}
	if e.location != "" {
		writeLine(sb, "LOCATION:"+escapeText(e.location))
	}
	if e.url != "" {
		writeLine(sb, "URL:"+escapeText(e.url))
	}
	if e.rrule != "" {
		writeLine(sb, "RRULE:"+e.rrule)
	}
	for _, rdate := range e.rdates {
		writeLine(sb, "RDATE:"+formatDateTime(rdate))
	}
	for _, exdate := range e.exdates {
		writeLine(sb, "EXDATE:"+formatDateTime(exdate))
	}
	writeLine(sb, "END:VEVENT")
}
