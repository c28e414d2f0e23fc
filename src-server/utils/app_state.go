package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
)

type AppState struct {
	Config *Config
	RawDB  *sql.DB
	BunDB  *bun.DB

	// nil when DISCORD_APP_TOKEN is not set
	DgSession *discordgo.Session

	// natural-language date parsing for command/query parameters
	When *when.Parser

	// the one clock every expansion goes through
	Clock *schedule.CivilClock

	AppCloseSignalChan chan os.Signal

	mu sync.Mutex
	// will be sent to Discord
	appCmdInfo map[string]*discordgo.ApplicationCommand
	// handling commands from the Discord WSAPI
	appCmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error
	// fan-out channels closed-over by long-running goroutines
	gracefulShutdownChans []chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{
		appCmdInfo:         make(map[string]*discordgo.ApplicationCommand),
		appCmdHandler:      make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error),
		AppCloseSignalChan: make(chan os.Signal, 1),
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	as.Clock = schedule.NewCivilClock(as.Config.GetLocation())

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetDatabasePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)
	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())

	// discord session, only when configured
	if token := as.Config.GetDiscordAppToken(); token != "" {
		as.DgSession, err = discordgo.New("Bot " + token)
		if err != nil {
			slog.Error("cannot create discord session", "error", err)
			os.Exit(1)
		}
	}

	return as
}

func (as *AppState) AddAppCmdInfo(id string, info *discordgo.ApplicationCommand) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdInfo[id] = info
}

func (as *AppState) AddAppCmdHandler(id string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdHandler[id] = handler
}

func (as *AppState) GetAppCmdHandler(id string) (func(s *discordgo.Session, i *discordgo.InteractionCreate) error, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()
	handler, ok := as.appCmdHandler[id]
	return handler, ok
}

func (as *AppState) IterateAppCmdInfo(fn func(k string, v *discordgo.ApplicationCommand)) {
	as.mu.Lock()
	defer as.mu.Unlock()
	for k, v := range as.appCmdInfo {
		fn(k, v)
	}
}

// Command metadata is only needed once, during registration with Discord.
func (as *AppState) NukeAppCmdInfo() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdInfo = make(map[string]*discordgo.ApplicationCommand)
}

// CreateGracefulShutdownChan hands a goroutine a channel that closes when
// the app is going down.
func (as *AppState) CreateGracefulShutdownChan() <-chan struct{} {
	as.mu.Lock()
	defer as.mu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return ch
}

func (as *AppState) GracefulShutdown() {
	as.mu.Lock()
	chans := as.gracefulShutdownChans
	as.gracefulShutdownChans = nil
	as.mu.Unlock()

	for _, ch := range chans {
		close(ch)
	}
	if as.DgSession != nil {
		if err := as.DgSession.Close(); err != nil {
			slog.Warn("can't close discord session", "error", err)
		}
	}
	if err := as.RawDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}

// RequestShutdown lets background goroutines trip the same path as Ctrl+C.
func (as *AppState) RequestShutdown() {
	as.AppCloseSignalChan <- syscall.SIGTERM
}
