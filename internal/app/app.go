package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/IT-Nick/garden-bot/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/admin_menu_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/export_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/fallback_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/garden-bot/internal/app/handlers/telegram/stats_menu_handler"
	"github.com/IT-Nick/garden-bot/internal/app/middleware"
	"github.com/IT-Nick/garden-bot/internal/domain/media"
	"github.com/IT-Nick/garden-bot/internal/domain/session"
	"github.com/IT-Nick/garden-bot/internal/domain/stats"
	"github.com/IT-Nick/garden-bot/internal/domain/users/repository"
	"github.com/IT-Nick/garden-bot/internal/domain/users/service"
	"github.com/IT-Nick/garden-bot/internal/infra/cache"
	"github.com/IT-Nick/garden-bot/internal/infra/config"
	"github.com/IT-Nick/garden-bot/internal/infra/locks"
	"github.com/IT-Nick/garden-bot/internal/infra/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v4"
	tbmiddleware "gopkg.in/telebot.v4/middleware"
)

const (
	errorText       = "Во время запроса произошла ошибка, попробуйте ещё раз или начните заново - /start"
	chatActionEvery = 4 * time.Second
	shutdownTimeout = 10 * time.Second
)

type Services struct {
	userService    *service.UserService
	sessionService *session.Service
	statsService   *stats.Service
}

type App struct {
	config *config.Config
	logger *slog.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	cache  *cache.Client
	server *http.Server

	exportLock *locks.ExportLock
	userLocks  *locks.Keyed

	Services
}

// NewApp подключается к хранилищам и создает сервисы, не зависящие от Telegram.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	exportMode, err := locks.ParseMode(cfg.Export.Mode)
	if err != nil {
		return nil, err
	}

	db, err := InitDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	cacheClient, err := cache.New(ctx, cfg.Redis.DSN)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	app := &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		cache:      cacheClient,
		exportLock: locks.NewExportLock(exportMode, cfg.Export.PollInterval),
		userLocks:  locks.NewKeyed(),
	}

	userRepo := repository.NewUserRepository(app.db)
	app.userService = service.NewUserService(userRepo, app.cache)
	app.statsService = stats.NewService(userRepo, loc)

	return app, nil
}

// Export строит выгрузку статистики за период в обход бота.
func (app *App) Export(ctx context.Context, p stats.Period) (*stats.Report, error) {
	return app.statsService.Export(ctx, p)
}

// Stats возвращает сервис статистики.
func (app *App) Stats() *stats.Service {
	return app.statsService
}

// Close закрывает подключения к хранилищам
func (app *App) Close() {
	if err := app.cache.Close(); err != nil {
		app.logger.Error("failed to close cache", slog.Any("error", err))
	}
	app.db.Close()
}

// initTelegram создает бота и сервисы, которым нужен Telegram
func (app *App) initTelegram() error {
	poller, err := telegram.NewPoller(telegram.PollerConfig{
		Mode:        app.config.TelegramBot.Mode,
		WebhookURL:  app.config.TelegramBot.WebhookURL,
		ListenAddr:  app.config.TelegramBot.ListenAddr,
		PollTimeout: app.config.TelegramBot.PollTimeout,
	})
	if err != nil {
		return err
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:     app.config.TelegramBot.Token,
		Poller:    poller,
		ParseMode: telebot.ModeHTML,
		OnError:   app.onError,
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.sessionService = session.NewService(
		session.NewCacheStore(app.cache),
		telegram.NewGateway(bot),
		media.NewService(app.cache, app.logger),
		app.userService,
		app.userLocks,
		nil,
		session.Options{
			ImagesDir:   app.config.Quiz.ImagesDir,
			PromoURL:    app.config.Quiz.PromoURL,
			PromoButton: app.config.Quiz.PromoButton,
			DeleteDelay: app.config.Quiz.DeleteDelay,
		},
		app.logger,
	)

	app.bootstrapHandlersTelegram()
	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover(app.logger))
	if app.config.Log.Debug {
		app.bot.Use(middleware.Logger(app.logger))
	}
	app.bot.Use(
		tbmiddleware.AutoRespond(),
		middleware.TrackUser(app.userService),
	)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.sessionService).GetHandlerFunc(),
		startMiddleware(app.cache, app.config.Quiz.ThrottleTTL)...)
	app.bot.Handle(&telebot.InlineButton{Unique: session.AnswerUnique}, answer_handler.NewAnswerHandler(app.sessionService).GetHandlerFunc())
	// Кнопки без своего обработчика (например, от прошлых версий бота).
	app.bot.Handle(telebot.OnCallback, fallback_handler.NewFallbackHandler(app.sessionService).GetHandlerFunc())

	admin := app.bot.Group()
	admin.Use(middleware.AdminOnly(app.config.Admins))
	admin.Handle("/menu", admin_menu_handler.NewAdminMenuHandler().GetHandlerFunc())
	admin.Handle("/stats", stats_menu_handler.NewStatsMenuHandler().GetHandlerFunc())

	// Выгрузка: произвольный текст (число дней или интервал) и кнопки меню /stats.
	export := app.bot.Group()
	export.Use(exportMiddleware(
		app.config.Admins,
		app.cache, app.config.Export.ThrottleTTL,
		app.statsService,
		app.exportLock,
		app.logger,
	)...)
	exportHandler := export_handler.NewExportHandler(app.statsService).GetHandlerFunc()
	export.Handle(telebot.OnText, exportHandler)
	export.Handle(&telebot.InlineButton{Unique: stats_menu_handler.ExportUnique}, exportHandler)
}

// startMiddleware ограничивает частоту команды /start для каждого пользователя.
func startMiddleware(t middleware.Throttler, ttl time.Duration) []telebot.MiddlewareFunc {
	return []telebot.MiddlewareFunc{middleware.Throttle(t, ttl)}
}

// exportMiddleware собирает цепочку выгрузки. Статус "отправляет файл" показывается
// только на время самой выгрузки, после получения блокировки.
func exportMiddleware(
	admins []int64,
	t middleware.Throttler,
	ttl time.Duration,
	statsService *stats.Service,
	lock *locks.ExportLock,
	logger *slog.Logger,
) []telebot.MiddlewareFunc {
	return []telebot.MiddlewareFunc{
		middleware.AdminOnly(admins),
		middleware.Throttle(t, ttl),
		middleware.ParsePeriod(statsService.Location(), statsService.Now),
		middleware.SingleFlight(lock),
		middleware.ChatAction(telebot.UploadingDocument, chatActionEvery, logger),
	}
}

func (app *App) onError(err error, c telebot.Context) {
	attrs := []any{slog.Any("error", err)}
	if c != nil {
		attrs = append(attrs, slog.Int("update_id", c.Update().ID))
		if u := c.Sender(); u != nil {
			attrs = append(attrs, slog.Int64("user_id", u.ID))
		}
	}
	app.logger.Error("failed to handle update", attrs...)

	if c == nil || c.Chat() == nil {
		return
	}
	if sendErr := c.Send(errorText); sendErr != nil {
		app.logger.Error("failed to send error message", slog.Any("error", sendErr))
	}
}

// newHTTPServer создает HTTP сервер с проверкой состояния
func (app *App) newHTTPServer() *http.Server {
	mx := http.NewServeMux()
	mx.Handle("GET /healthz", health_handler.NewHealthHandler(map[string]health_handler.Pinger{
		"postgres": app.db,
		"redis":    app.cache,
	}))

	return &http.Server{
		Addr:              app.config.HTTPAddr(),
		Handler:           mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ListenAndServe запускает бота и HTTP сервер и останавливает их при отмене ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	if err := app.initTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}
	app.server = app.newHTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info("bot started", slog.String("mode", app.config.TelegramBot.Mode))
		app.bot.Start()
		return nil
	})
	g.Go(func() error {
		app.logger.Info("http server started", slog.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down")
		app.bot.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
