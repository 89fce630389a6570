package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/routineboard/routineboard/internal/app"
	"github.com/routineboard/routineboard/internal/config"
	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/handler"
	"github.com/routineboard/routineboard/internal/notify"
	"github.com/routineboard/routineboard/internal/repository"
	"github.com/routineboard/routineboard/internal/router"
	"github.com/routineboard/routineboard/internal/service"
	"github.com/routineboard/routineboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	programRepo := repository.NewProgramRepository(pool)
	classRoomRepo := repository.NewClassRoomRepository(pool)
	courseLoadRepo := repository.NewCourseLoadRepository(pool)
	routineRepo := repository.NewRoutineRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	st := store.New()
	if err := loadState(ctx, st, programRepo, classRoomRepo, courseLoadRepo, routineRepo, requestRepo, notificationRepo); err != nil {
		logger.Fatal("failed to load state", zap.Error(err))
	}

	var forwarders []notify.Forwarder
	if cfg.AMQPURL != "" {
		forwarders = append(forwarders, notify.NewAMQPForwarder(cfg.AMQPURL))
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		tg, err := notify.NewTelegramForwarder(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram forwarder disabled", zap.Error(err))
		} else {
			forwarders = append(forwarders, tg)
		}
	}
	sink := notify.NewSink(st, logger, forwarders...)

	persister := repository.NewPersister(routineRepo, requestRepo, notificationRepo)
	svc := service.NewRoutineService(st, engine.New(), sink, persister, cfg.PersistDebounce, logger)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e,
		handler.NewRoutineHandler(svc),
		handler.NewRequestHandler(svc),
		handler.NewNotificationHandler(svc),
		handler.NewCatalogHandler(st),
	)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()
	logger.Info("routine service started",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("environment", cfg.Environment))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
	// Push any pending debounced state before the pool closes.
	svc.Close()
}

// loadState fills the in-memory store from the durable snapshot.
func loadState(
	ctx context.Context,
	st *store.Store,
	programs *repository.ProgramRepository,
	classRooms *repository.ClassRoomRepository,
	courseLoads *repository.CourseLoadRepository,
	routine *repository.RoutineRepository,
	requests *repository.RequestRepository,
	notifications *repository.NotificationRepository,
) error {
	programList, err := programs.List(ctx)
	if err != nil {
		return err
	}
	classRoomList, err := classRooms.List(ctx)
	if err != nil {
		return err
	}
	courseLoadList, err := courseLoads.List(ctx)
	if err != nil {
		return err
	}
	st.SetCatalog(programList, classRoomList, courseLoadList)

	entries, err := routine.Load(ctx)
	if err != nil {
		return err
	}
	requestList, err := requests.Load(ctx)
	if err != nil {
		return err
	}
	notificationList, err := notifications.Load(ctx)
	if err != nil {
		return err
	}
	st.SetState(entries, requestList, notificationList)
	return nil
}
