package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/auth"
	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/config"
	"github.com/dmitrijs2005/bannerkeeper/internal/logging"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/netx"
	"github.com/dmitrijs2005/bannerkeeper/internal/notify"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type AccountService interface {
	Register(ctx context.Context, identity string, secret []byte, isAdministrator bool) (bool, error)
	Login(ctx context.Context, identity string, secret []byte) (models.LoginResult, error)
}

type CatalogService interface {
	AddBanner(ctx context.Context, owner string, b models.Banner) error
	DeleteBanner(ctx context.Context, owner, title string) error
	UpdateCurrentEpisodes(ctx context.Context, owner, title string, n uint32) error
	UpdateTotalEpisodes(ctx context.Context, owner, title string, n uint32) error
	UpdateReleaseDay(ctx context.Context, owner, title, day string) error
	UpdateReleaseTime(ctx context.Context, owner, title, releaseTime string) error
	SearchBanners(ctx context.Context, owner, query string, page models.Page) ([]models.Banner, error)
	ListAllBanners(ctx context.Context, owner string) ([]models.Banner, error)
	ListPaged(ctx context.Context, owner string, page models.Page) ([]models.Banner, error)
	ListSortedByReleaseDay(ctx context.Context, owner string, page models.Page) ([]models.Banner, error)
}

type AdminService interface {
	FlaggedAccounts(ctx context.Context, actor string) ([]models.FlaggedAccount, error)
	SimulateAttack(ctx context.Context, actor, target string, count int) (int, error)
}

type EventSource interface {
	Subscribe(ctx context.Context) (<-chan notify.AttackDetected, error)
}

// Services groups the backends the App drives.
type Services struct {
	Accounts AccountService
	Catalog  CatalogService
	Admin    AdminService
	Events   EventSource
}

var (
	errNotLoggedIn    = errors.New("not logged in")
	errSessionExpired = errors.New("session expired, please log in again")
)

const defaultPageSize = 10

type App struct {
	config   *config.Config
	services Services
	logger   logging.Logger
	secret   []byte
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
	probe    func(ctx context.Context, url string, timeout time.Duration) bool

	mu    sync.Mutex
	token string
	name  string
	mode  Mode
}

// NewApp builds a terminal client reading commands from in and writing to
// out. An empty session secret in c is replaced by a random one.
func NewApp(c *config.Config, s Services, l logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	secret := c.SessionSecret
	if secret == "" {
		var err error
		if secret, err = common.MakeRandHexString(32); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}

	return &App{
		config:   c,
		services: s,
		logger:   l,
		secret:   []byte(secret),
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
		probe:    netx.CheckReachability,
	}, nil
}

// Run starts the reachability watcher and the notification listener, then
// runs the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to bannerkeeper (type 'help' for commands)")

	events, err := a.services.Events.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to notifications: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.listenNotifications(ctx, events)
	}()
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	wg.Wait()
	return nil
}

func (a *App) println(args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.name != "" {
		s = a.name + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token != ""
}

func (a *App) setSession(identity, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name, a.token = identity, token
}

func (a *App) clearSession() {
	a.setSession("", "")
}

// session verifies the stored token and returns its claims. An expired
// token ends the session.
func (a *App) session() (*auth.Claims, error) {
	a.mu.Lock()
	tok := a.token
	a.mu.Unlock()

	if tok == "" {
		return nil, errNotLoggedIn
	}
	claims, err := auth.ParseToken(tok, a.secret)
	if err != nil {
		a.clearSession()
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, errSessionExpired
		}
		return nil, errNotLoggedIn
	}
	return claims, nil
}

func (a *App) identity() (string, error) {
	claims, err := a.session()
	if err != nil {
		return "", err
	}
	return claims.Identity, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "network status changed", "mode", string(mode))
	}
}

func (a *App) checkOnline(ctx context.Context) Mode {
	mode := ModeOffline
	if a.probe(ctx, a.config.ReachabilityURL, a.config.ReachabilityTimeout) {
		mode = ModeOnline
	}
	a.setMode(ctx, mode)
	return mode
}

// StartOnlineStatusWatcher probes reachability immediately and then every
// interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) listenNotifications(ctx context.Context, events <-chan notify.AttackDetected) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.logger.Warn(ctx, "attack detected", "identity", ev.Identity, "event_id", ev.EventID)
			a.println(fmt.Sprintf("\n[%s] suspicious activity: %s", common.TopicAttackDetected, ev.Identity))
		case <-ctx.Done():
			return
		}
	}
}
