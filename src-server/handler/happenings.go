package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func Happenings(as *utils.AppState) {
	id := "happenings"
	as.AddAppCmdHandler(id, happeningsHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "List everything happening on a date.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "A date like `2026-03-14` or `next friday`; today if omitted",
				Required:    false,
			},
		},
	})
}

func happeningsHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			slog.Warn("can't respond", "handler", "happenings", "content", "deferring", "error", err)
		}

		// #region | resolve the requested date
		dateKey := func() string {
			options := i.ApplicationCommandData().Options
			if len(options) == 0 {
				return as.Clock.Today()
			}
			raw := utils.CleanupString(options[0].StringValue())
			if raw == "" {
				return as.Clock.Today()
			}
			if key, ok := resolveNaturalDate(as, raw); ok {
				return key
			}
			return as.Clock.Today()
		}()
		// #endregion

		// #region | expand that single day
		events, err := model.GetPublishedEvents(context.Background(), as.BunDB)
		if err != nil {
			msg := fmt.Sprintf("Can't get events\n```\n%s```", err.Error())
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
			return fmt.Errorf("happeningsHandler: %w", err)
		}
		eventIDs := make([]string, 0, len(events))
		for _, event := range events {
			eventIDs = append(eventIDs, event.ID)
		}
		overrides, err := model.GetOverridesForEvents(context.Background(), as.BunDB, eventIDs)
		if err != nil {
			msg := fmt.Sprintf("Can't get overrides\n```\n%s```", err.Error())
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
			return fmt.Errorf("happeningsHandler: %w", err)
		}

		result := schedule.ExpandAndGroupEvents(events, schedule.ExpandOptions{
			StartKey:       dateKey,
			EndKey:         dateKey,
			MaxOccurrences: as.Config.GetMaxOccurrences(),
			MaxEvents:      as.Config.GetMaxEvents(),
			Overrides:      schedule.BuildOverrideMap(overrides),
			Clock:          as.Clock,
		})
		metric.ObserveExpansion("timeline", result.Metrics)
		// #endregion

		// #region | compose the message
		embeds := []*discordgo.MessageEmbed{}
		for _, occurrence := range result.GroupedEvents[dateKey] {
			embeds = append(embeds, occurrenceToEmbed(occurrence))
		}

		content := func() string {
			cancelledNote := ""
			if count := len(result.CancelledOccurrences); count > 0 {
				cancelledNote = fmt.Sprintf(" (%d cancelled)", count)
			}
			if len(embeds) == 0 {
				return fmt.Sprintf("No events for %s%s", dateKey, cancelledNote)
			}
			var suffix string
			if len(embeds) > 1 {
				suffix = "s"
			}
			return fmt.Sprintf("There are %d event%s for %s%s", len(embeds), suffix, dateKey, cancelledNote)
		}()
		// #endregion

		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &embeds,
		}); err != nil {
			slog.Warn("can't respond", "handler", "happenings", "content", "happenings-list", "error", err)
		}

		return nil
	}
}

func occurrenceToEmbed(occurrence schedule.Occurrence) *discordgo.MessageEmbed {
	event := occurrence.Event
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Time",
			Value:  timeRangeLabel(occurrence.StartTime, occurrence.EndTime),
			Inline: true,
		},
	}
	if event.VenueName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Venue",
			Value:  event.VenueName,
			Inline: true,
		})
	}
	if event.Cost != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Cost",
			Value:  event.Cost,
			Inline: true,
		})
	}
	if event.SignupURL != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Signup",
			Value: event.SignupURL,
		})
	}
	if event.HostNotes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Host Notes",
			Value: event.HostNotes,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       event.Title,
		Description: event.Description,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: event.ID},
	}
}

func timeRangeLabel(startTime string, endTime string) string {
	switch {
	case startTime == "":
		return "TBD"
	case endTime == "":
		return startTime
	default:
		return startTime + " - " + endTime
	}
}

func resolveNaturalDate(as *utils.AppState, raw string) (string, bool) {
	if t, err := time.Parse(schedule.DateKeyLayout, raw); err == nil {
		return t.Format(schedule.DateKeyLayout), true
	}
	base, _ := time.ParseInLocation(schedule.DateKeyLayout, as.Clock.Today(), as.Config.GetLocation())
	result, err := as.When.Parse(raw, base)
	if err != nil || result == nil {
		return "", false
	}
	return result.Time.In(as.Config.GetLocation()).Format(schedule.DateKeyLayout), true
}
