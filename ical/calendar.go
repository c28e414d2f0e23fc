// The `ical` package serializes community events into an iCalendar
// (RFC5545) subscription feed. It only writes; parsing foreign calendars is
// not something this service does.
package ical

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Calendar struct {
	id          string
	prodID      string
	name        string
	description string
	events      []Event
}

func NewCalendar() Calendar {
	return Calendar{
		id:     uuid.NewString(),
		prodID: "-//Denver Songwriters Collective//Events//EN",
	}
}

// #region Setters

func (c *Calendar) SetName(name string) {
	c.name = name
}

func (c *Calendar) SetDescription(description string) {
	c.description = description
}

func (c *Calendar) AddEvent(event Event) {
	c.events = append(c.events, event)
}

// #endregion

// Marshal the calendar into iCalendar text. Output is deterministic for the
// same calendar content (events serialize in insertion order).
func (c *Calendar) ToIcal() string {
	var sb strings.Builder
	writeLine(&sb, "BEGIN:VCALENDAR")
	writeLine(&sb, "VERSION:2.0")
	writeLine(&sb, "PRODID:"+escapeText(c.prodID))
	writeLine(&sb, "CALSCALE:GREGORIAN")
	if c.name != "" {
		writeLine(&sb, "X-WR-CALNAME:"+escapeText(c.name))
	}
	if c.description != "" {
		writeLine(&sb, "X-WR-CALDESC:"+escapeText(c.description))
	}
	for i := range c.events {
		c.events[i].writeTo(&sb)
	}
	writeLine(&sb, "END:VCALENDAR")
	return sb.String()
}

func writeLine(sb *strings.Builder, line string) {
	sb.WriteString(line)
	sb.WriteString("\r\n")
}

// escapeText escapes per RFC5545 §3.3.11.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
