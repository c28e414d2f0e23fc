package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func Series(as *utils.AppState) {
	id := "series"
	as.AddAppCmdHandler(id, seriesHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "List all recurring series with their upcoming dates.",
	})
}

func seriesHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			slog.Warn("can't respond", "handler", "series", "content", "deferring", "error", err)
		}

		// #region | get the series view
		events, err := model.GetPublishedEvents(context.Background(), as.BunDB)
		if err != nil {
			msg := fmt.Sprintf("Can't get events\n```\n%s```", err.Error())
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
			return fmt.Errorf("seriesHandler: %w", err)
		}
		eventIDs := make([]string, 0, len(events))
		for _, event := range events {
			eventIDs = append(eventIDs, event.ID)
		}
		overrides, err := model.GetOverridesForEvents(context.Background(), as.BunDB, eventIDs)
		if err != nil {
			msg := fmt.Sprintf("Can't get overrides\n```\n%s```", err.Error())
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
			return fmt.Errorf("seriesHandler: %w", err)
		}

		result := schedule.GroupEventsAsSeriesView(events, schedule.ExpandOptions{
			MaxOccurrences: as.Config.GetMaxOccurrences(),
			MaxEvents:      as.Config.GetMaxEvents(),
			Overrides:      schedule.BuildOverrideMap(overrides),
			Clock:          as.Clock,
		})
		metric.ObserveExpansion("series", result.Metrics)
		// #endregion

		// #region | compose the message
		embeds := []*discordgo.MessageEmbed{}
		for _, entry := range result.Series {
			embeds = append(embeds, seriesEntryToEmbed(entry))
		}

		content := func() string {
			if len(embeds) == 0 {
				return "No upcoming series"
			}
			var suffix string
			if len(embeds) > 1 {
				suffix = "s"
			}
			note := ""
			if count := len(result.UnknownEvents); count > 0 {
				note = fmt.Sprintf(" (%d without a confirmed schedule)", count)
			}
			return fmt.Sprintf("%d series%s with upcoming dates%s", len(embeds), suffix, note)
		}()
		// #endregion

		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &embeds,
		}); err != nil {
			slog.Warn("can't respond", "handler", "series", "content", "series-list", "error", err)
		}

		return nil
	}
}

func seriesEntryToEmbed(entry schedule.SeriesEntry) *discordgo.MessageEmbed {
	upcoming := make([]string, 0, len(entry.UpcomingOccurrences))
	for _, occurrence := range entry.UpcomingOccurrences {
		if occurrence.IsCancelled {
			// keep the gap visible instead of hiding the date
			upcoming = append(upcoming, fmt.Sprintf("~~%s~~ (cancelled)", occurrence.DateKey))
			continue
		}
		upcoming = append(upcoming, occurrence.DateKey)
	}
	if extra := entry.TotalUpcomingCount - len(entry.UpcomingOccurrences); extra > 0 {
		upcoming = append(upcoming, fmt.Sprintf("+%d more", extra))
	}

	return &discordgo.MessageEmbed{
		Title:       entry.Event.Title,
		Description: entry.RecurrenceSummary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Next",
				Value:  entry.NextOccurrence.DateKey + " " + timeRangeLabel(entry.NextOccurrence.StartTime, entry.NextOccurrence.EndTime),
				Inline: true,
			},
			{
				Name:  "Upcoming",
				Value: strings.Join(upcoming, ", "),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: entry.Event.ID},
	}
}
