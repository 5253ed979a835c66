// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/adapters/auth"
	"github.com/tiffinbox/tiffinbox/adapters/clock"
	"github.com/tiffinbox/tiffinbox/adapters/hasher"
	apihttp "github.com/tiffinbox/tiffinbox/adapters/http"
	"github.com/tiffinbox/tiffinbox/adapters/idgen"
	"github.com/tiffinbox/tiffinbox/adapters/memory"
	"github.com/tiffinbox/tiffinbox/adapters/metrics"
	"github.com/tiffinbox/tiffinbox/adapters/sqlite"
	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/config"
	"github.com/tiffinbox/tiffinbox/domain/identity"
	"github.com/tiffinbox/tiffinbox/ports"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	DB         *sqlite.DB // nil when running on the memory driver
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	// Services
	Auth    *app.AuthService
	Menu    *app.MenuService
	Coupons *app.CouponService
	Orders  *app.OrderService

	// Stores, kept for CLI commands like seed
	Users      ports.UserStore
	Categories ports.CategoryStore
	Items      ports.ItemStore
	CouponsDB  ports.CouponStore
	OrdersDB   ports.OrderStore

	holder *config.Holder
}

// New creates and initializes the application from a loaded config.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	logger.Info().Msg("initializing tiffinbox")

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	if err := a.initStores(); err != nil {
		return nil, fmt.Errorf("init stores: %w", err)
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	a.initServices()

	if err := a.bootstrapAdmin(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("admin bootstrap failed")
	}

	a.initHTTPServer()

	return a, nil
}

// NewWithHotReload creates the application with config file watching.
// Log level changes take effect without restart; server and database
// changes need one.
func NewWithHotReload(path string) (*App, error) {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	holder, err := config.NewHolder(path, bootLogger)
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get())
	if err != nil {
		holder.Stop()
		return nil, err
	}
	a.holder = holder

	holder.OnChange(func(cfg *config.Config) {
		if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	})

	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch failed")
	}
	holder.WatchSignals()

	return a, nil
}

func (a *App) initStores() error {
	switch a.Config.Database.Driver {
	case "memory":
		a.Users = memory.NewUserStore()
		a.Categories = memory.NewCategoryStore()
		a.Items = memory.NewItemStore()
		a.CouponsDB = memory.NewCouponStore()
		a.OrdersDB = memory.NewOrderStore()
		a.Logger.Info().Msg("using in-memory stores")
		return nil

	default:
		db, err := sqlite.Open(a.Config.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}

		a.DB = db
		a.Users = sqlite.NewUserStore(db)
		a.Categories = sqlite.NewCategoryStore(db)
		a.Items = sqlite.NewItemStore(db)
		a.CouponsDB = sqlite.NewCouponStore(db)
		a.OrdersDB = sqlite.NewOrderStore(db)
		a.Logger.Info().Str("dsn", a.Config.Database.DSN).Msg("database initialized")
		return nil
	}
}

func (a *App) initServices() {
	clk := clock.Real{}
	ids := idgen.UUID{}
	bcryptHasher := hasher.NewBcrypt(0)

	a.Auth = app.NewAuthService(a.Users, bcryptHasher, clk, ids, a.Logger)
	a.Menu = app.NewMenuService(a.Categories, a.Items, clk, ids, a.Logger)
	a.Coupons = app.NewCouponService(a.CouponsDB, clk, ids, a.Logger)
	a.Orders = app.NewOrderService(a.OrdersDB, clk, ids, a.Logger)
}

// bootstrapAdmin promotes or creates the configured admin account on first
// run. A no-op when admin.email is not set.
func (a *App) bootstrapAdmin(ctx context.Context) error {
	email := a.Config.Admin.Email
	if email == "" {
		return nil
	}

	ident, err := identity.NewEmail(email)
	if err != nil {
		return err
	}

	if u, err := a.Users.GetByIdentifier(ctx, ident); err == nil {
		if u.Role == identity.RoleAdmin {
			return nil
		}
		u.Role = identity.RoleAdmin
		if err := a.Users.Update(ctx, u); err != nil {
			return err
		}
		a.Logger.Info().Str("email", ident.Value()).Msg("promoted existing user to admin")
		return nil
	}

	u, err := a.Auth.Signup(ctx, "Admin", ident, a.Config.Admin.Password)
	if err != nil {
		return err
	}
	u.Role = identity.RoleAdmin
	if err := a.Users.Update(ctx, u); err != nil {
		return err
	}

	a.Logger.Info().Str("email", ident.Value()).Msg("admin account created")
	return nil
}

func (a *App) initHTTPServer() {
	tokens := auth.NewTokenService(a.Config.Auth.JWTSecret, a.Config.Auth.TokenTTL)
	if a.Config.Auth.JWTSecret == "" {
		a.Logger.Warn().Msg("no jwt secret configured, tokens will not survive a restart")
	}

	handler := apihttp.NewHandler(apihttp.Deps{
		Auth:    a.Auth,
		Menu:    a.Menu,
		Coupons: a.Coupons,
		Orders:  a.Orders,
		Tokens:  tokens,
		Metrics: a.Metrics,
		Logger:  a.Logger,
	})

	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
