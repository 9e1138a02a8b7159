package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/api"
	"github.com/sanosuguru/go-interview-scheduler/internal/api/handler"
	apimiddleware "github.com/sanosuguru/go-interview-scheduler/internal/api/middleware"
	"github.com/sanosuguru/go-interview-scheduler/internal/application"
	"github.com/sanosuguru/go-interview-scheduler/internal/config"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
	"github.com/sanosuguru/go-interview-scheduler/internal/infrastructure/candidateapi"
	"github.com/sanosuguru/go-interview-scheduler/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-interview-scheduler/internal/infrastructure/redis"
	"github.com/sanosuguru/go-interview-scheduler/internal/notify"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/metrics"
	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
	"github.com/sanosuguru/go-interview-scheduler/internal/worker"
)

func main() {
	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	m := metrics.Init()

	ctx := context.Background()

	// 永続化スロットの選択
	slot, cleanup, err := buildSlotStore(ctx, cfg)
	if err != nil {
		logger.Fatal("永続化スロットの初期化に失敗しました", zap.Error(err))
	}
	defer cleanup()

	// イベントストア復元
	store := application.NewEventStore(slot, m)
	if err := store.Load(ctx); err != nil {
		// ストレージが死んでいてもスケジューリング自体は使える
		logger.Warn("スナップショットの復元に失敗したため空のコレクションで開始します", zap.Error(err))
	}
	logger.Info("イベントストアを復元しました",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("events", store.Count()),
	)

	// 候補者コラボレーター
	var directory candidate.Directory
	if cfg.CandidateAPI.BaseURL != "" {
		directory = candidateapi.NewClient(&cfg.CandidateAPI)
	} else {
		logger.Warn("CANDIDATE_API_URL が未設定のため候補者は空になります")
		directory = candidate.NewStaticDirectory(nil)
	}

	notifier := notify.NewLogNotifier()

	workflow := application.NewSchedulingWorkflow(store, directory, notifier, application.WorkflowDefaults{
		Time:            cfg.Scheduler.DefaultTime,
		DurationMinutes: cfg.Scheduler.DefaultDuration,
	})
	calendarView := application.NewCalendarView(store)
	upcomingPanel := application.NewUpcomingPanel(store, cfg.Scheduler.UpcomingLimit)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	registerRoutes(e, store, workflow, calendarView, upcomingPanel, directory)

	// リマインダーワーカー
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if cfg.Reminder.Enabled {
		reminder := worker.NewUpcomingReminder(store, notifier, cfg.Reminder.Interval, cfg.Reminder.Lead)
		go reminder.Start(workerCtx)
	}

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

// buildSlotStore は設定に応じた永続化スロットを組み立てる
func buildSlotStore(ctx context.Context, cfg *config.Config) (storage.SlotStore, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		client := redisinfra.NewClient(&cfg.Redis)
		if err := redisinfra.Ping(ctx, client); err != nil {
			return nil, nil, err
		}
		var slot storage.SlotStore = redisinfra.NewSlotStore(client, cfg.Storage.SlotKey)
		if cfg.Storage.UseLock {
			slot = redisinfra.NewGuardedSlotStore(slot, redisinfra.NewLockManager(client), cfg.Storage.SlotKey)
		}
		return slot, func() { client.Close() }, nil

	case "postgres":
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db.DB, cfg.Storage.MigrationsPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewSlotStore(db, cfg.Storage.SlotKey), func() { db.Close() }, nil

	default:
		return storage.NewMemorySlotStore(), func() {}, nil
	}
}

func registerRoutes(
	e *echo.Echo,
	store *application.EventStore,
	workflow *application.SchedulingWorkflow,
	calendarView *application.CalendarView,
	upcomingPanel *application.UpcomingPanel,
	directory candidate.Directory,
) {
	healthHandler := handler.NewHealthHandler()
	interviewHandler := handler.NewInterviewHandler(store)
	calendarHandler := handler.NewCalendarHandler(calendarView, upcomingPanel)
	scheduleHandler := handler.NewScheduleHandler(workflow)
	candidateHandler := handler.NewCandidateHandler(directory)

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	v1.GET("/calendar", calendarHandler.Current)
	v1.GET("/calendar/upcoming", calendarHandler.UpcomingPanel)
	v1.GET("/calendar/:year/:month", calendarHandler.Show)
	v1.POST("/calendar/navigate", calendarHandler.Navigate)

	v1.POST("/interviews", interviewHandler.Create)
	v1.GET("/interviews", interviewHandler.List)
	v1.GET("/interviews/upcoming", interviewHandler.Upcoming)
	v1.GET("/interviews/:id", interviewHandler.GetByID)
	v1.PUT("/interviews/:id", interviewHandler.Update)
	v1.DELETE("/interviews/:id", interviewHandler.Delete)

	v1.GET("/candidates", candidateHandler.List)

	v1.GET("/schedule", scheduleHandler.State)
	v1.POST("/schedule/start", scheduleHandler.Start)
	v1.POST("/schedule/candidate", scheduleHandler.SelectCandidate)
	v1.PUT("/schedule/draft", scheduleHandler.UpdateDraft)
	v1.POST("/schedule/save", scheduleHandler.Save)
	v1.POST("/schedule/cancel", scheduleHandler.Cancel)
	v1.POST("/schedule/edit", scheduleHandler.Edit)
	v1.POST("/schedule/delete", scheduleHandler.RequestDelete)
	v1.POST("/schedule/delete/confirm", scheduleHandler.ConfirmDelete)
	v1.POST("/schedule/delete/decline", scheduleHandler.DeclineDelete)
}
