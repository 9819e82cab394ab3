package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"foxbot/src-server/model"
	"foxbot/src-server/syncer"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

type AppState struct {
	Config    *Config
	DgSession *discordgo.Session
	When      *when.Parser

	Settings *model.SettingsStore
	Events   *model.EventStore
	Syncer   *syncer.Syncer

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	// will be sent to Discord
	appCmdInfo map[string]*discordgo.ApplicationCommand
	// handling slash commands from Discord WSAPI
	appCmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error

	gracefulShutdownChans []*chan struct{}

	startedAt time.Time
	mu        sync.Mutex
}

func NewAppState() *AppState {
	as := &AppState{
		appCmdInfo:         make(map[string]*discordgo.ApplicationCommand),
		appCmdHandler:      make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startedAt:          time.Now(),
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// metric channels
	as.MetricChans = NewMetric()

	// stores
	as.Settings = model.NewSettingsStore(filepath.Join(as.Config.GetDataDir(), "settings.json"))
	as.Events = model.NewEventStore(filepath.Join(as.Config.GetDataDir(), "events.json"))

	// sync pipeline
	as.Syncer = syncer.New(as.Settings, as.Events, as.Config.GetIcalUrl(), as.MetricChans.CalendarFetch)

	// discord session
	dgSession, err := discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		slog.Error("can't create Discord session", "error", err)
		os.Exit(1)
	}
	dgSession.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages
	as.DgSession = dgSession

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

// The command info map is only needed for the startup bulk-overwrite.
func (as *AppState) NukeAppCmdInfo() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdInfo = make(map[string]*discordgo.ApplicationCommand)
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startedAt).Truncate(time.Second)
}

// CreateGracefulShutdownChan hands out a channel that will be closed
// when the app is shutting down, for long-running goroutines to clean
// up after themselves.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.mu.Lock()
	defer as.mu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.mu.Lock()
	defer as.mu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
}
