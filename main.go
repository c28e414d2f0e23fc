package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/handler"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/metric"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/model"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/route"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// injecting interaction handlers into the AppState
	handler.Happenings(as)
	handler.Series(as)

	// the Discord surface is optional; without a token only HTTP is served
	if as.DgSession != nil {
		as.DgSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			execute := func(id string) {
				if cmdHandler, ok := as.GetAppCmdHandler(id); ok {
					if err := cmdHandler(s, i); err != nil {
						slog.Error("handler error", "command", id, "error", err.Error())
					}
					return
				}
				slog.Debug("someone used an unknown interaction", "custom_id", id)
			}

			switch i.Type {
			case discordgo.InteractionApplicationCommand:
				execute(i.ApplicationCommandData().Name)
			default:
				slog.Error("unknown interaction type", "type", i.Type)
			}
		})

		if err := as.DgSession.Open(); err != nil {
			slog.Error("error opening discord connection", "error", err)
			os.Exit(1)
		}

		// tell Discord what commands we have
		if _, err := as.DgSession.ApplicationCommandBulkOverwrite(
			as.Config.GetDiscordClientID(),
			as.Config.GetDiscordGuildID(),
			func() []*discordgo.ApplicationCommand {
				var cmds []*discordgo.ApplicationCommand
				as.IterateAppCmdInfo(func(k string, v *discordgo.ApplicationCommand) {
					cmds = append(cmds, v)
				})
				return cmds
			}()); err != nil {
			slog.Error("can't create slash commands", "error", err.Error())
		}
		as.NukeAppCmdInfo()
	}

	go metric.Init(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Timeline(muxer, as)
		route.Series(muxer, as)
		route.Ical(muxer, as)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.RequestShutdown()
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
