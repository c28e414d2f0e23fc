package route

import (
	"net/http"
	"time"

	"github.com/xyedo/rrule"

	"github.com/samiserrag/denver-songwriters-collective-sub013/ical"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

// Subscription feeds cover a year ahead; calendar apps refresh on their own.
const icalLookaheadDays = 365

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	// the whole community calendar as one subscribable .ics feed
	muxer.HandleFunc("GET /ical", func(w http.ResponseWriter, r *http.Request) {
		events, overrides, ok := loadEventSnapshot(w, r, as)
		if !ok {
			return
		}
		overrideMap := schedule.BuildOverrideMap(overrides)

		calendar := ical.NewCalendar()
		calendar.SetName("Denver Songwriters Collective")
		calendar.SetDescription("Open mics, showcases, and song circles around Denver")

		startKey := as.Clock.Today()
		endKey := schedule.AddDaysToKey(startKey, icalLookaheadDays)
		metrics := schedule.Metrics{}

		for i := range events {
			event := &events[i]
			metrics.EventsProcessed++

			pattern := schedule.ResolvePattern(event)
			dates := pattern.DatesBetween(startKey, endKey)
			if len(dates) == 0 {
				continue
			}
			metrics.OccurrencesGenerated += len(dates)

			vevent, ok := buildVEvent(as, event, pattern, dates, overrideMap, &metrics)
			if !ok {
				continue
			}
			calendar.AddEvent(vevent)
		}
		metric.ObserveExpansion("ical", metrics)

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="dsc-events.ics"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(calendar.ToIcal()))
	})
}

func buildVEvent(
	as *utils.AppState,
	event *model.Event,
	pattern schedule.Pattern,
	dates []string,
	overrideMap map[string]*model.EventOverride,
	metrics *schedule.Metrics,
) (ical.Event, bool) {
	dtstart, ok := combineKeyAndTime(as, dates[0], event.StartTime)
	if !ok {
		return ical.Event{}, false
	}

	vevent := ical.NewEvent()
	vevent.SetID(event.ID)
	vevent.SetSummary(event.Title)
	vevent.SetDescription(event.Description)
	vevent.SetLocation(event.VenueName)
	vevent.SetURL(event.SignupURL)
	vevent.SetStartDate(dtstart)
	if dtend, ok := combineKeyAndTime(as, dates[0], event.EndTime); ok && event.EndTime != "" {
		vevent.SetEndDate(dtend)
	}

	switch pattern.Kind {
	case schedule.PatternWeekly:
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   dtstart,
			Byweekday: []rrule.Weekday{rruleWeekday(pattern.Weekday)},
		})
		if err != nil {
			return ical.Event{}, false
		}
		// RRuleString leaves DTSTART out; it's already its own property
		vevent.SetRRule(r.OrigOptions.RRuleString())
	case schedule.PatternOrdinalMonthly:
		wd := rruleWeekday(pattern.Weekday)
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.MONTHLY,
			Dtstart:   dtstart,
			Byweekday: []rrule.Weekday{wd.Nth(pattern.Ordinal)},
		})
		if err != nil {
			return ical.Event{}, false
		}
		vevent.SetRRule(r.OrigOptions.RRuleString())
	case schedule.PatternCustom:
		// the first custom date is already DTSTART; the rest become RDATEs
		for _, dateKey := range dates[1:] {
			if rdate, ok := combineKeyAndTime(as, dateKey, event.StartTime); ok {
				vevent.AddRDate(rdate)
			}
		}
	}

	// cancelled occurrences leave the feed via EXDATE
	for _, dateKey := range dates {
		override := overrideMap[schedule.OverrideKey(event.ID, dateKey)]
		if override == nil || override.Status != model.OverrideStatusCancelled {
			continue
		}
		metrics.CancelledCount++
		if exdate, ok := combineKeyAndTime(as, dateKey, event.StartTime); ok {
			vevent.AddExDate(exdate)
		}
	}

	return vevent, true
}

// combineKeyAndTime anchors a date key and an HH:MM wall time in the civil
// timezone. A blank time means midnight.
func combineKeyAndTime(as *utils.AppState, dateKey string, wallTime string) (time.Time, bool) {
	if wallTime == "" {
		wallTime = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", dateKey+" "+wallTime, as.Config.GetLocation())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func rruleWeekday(weekday time.Weekday) rrule.Weekday {
	switch weekday {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}
