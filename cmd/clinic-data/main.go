package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/common/database"
	"github.com/Ahmed-Morsi888/Doctor-system/common/logger"
	commonmqtt "github.com/Ahmed-Morsi888/Doctor-system/common/mqtt"
	rediscommon "github.com/Ahmed-Morsi888/Doctor-system/common/redis"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/config"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/events"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/filter"
	httpapi "github.com/Ahmed-Morsi888/Doctor-system/internal/http"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/repository"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/seed"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/service"
	"github.com/Ahmed-Morsi888/Doctor-system/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.App.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("clinic-data stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doctor := httpapi.NewDoctorHandler(cfg.App.Name, cfg.App.Version, log)

	// Redis：偏好存储和 / 或事件流
	var redisClient *redis.Client
	if cfg.Preferences.Backend == config.BackendRedis || cfg.Events.Backend == config.EventsRedis {
		redisClient = rediscommon.Connect(ctx, &cfg.Redis, log)
		defer rediscommon.Close(redisClient)
	}

	// 偏好存储
	var kv store.KV
	var db *sql.DB
	switch cfg.Preferences.Backend {
	case config.BackendPostgres:
		d, err := database.OpenPostgres(ctx, &cfg.Database, log)
		if err != nil {
			// 偏好退化为仅内存，不阻止启动
			log.Warn("Postgres unavailable, preferences kept in memory", zap.Error(err))
			kv = store.NewMemoryKV()
			break
		}
		db = d
		defer database.Close(db)
		pg := store.NewPostgresKV(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure preferences schema: %w", err)
		}
		kv = pg
		doctor.Require("database", database.HealthCheck(db))
	case config.BackendRedis:
		kv = store.NewRedisKV(redisClient)
		doctor.Require("redis", rediscommon.HealthCheck(redisClient))
	default:
		kv = store.NewMemoryKV()
	}
	prefs := service.NewPreferenceService(ctx, kv, cfg.Preferences.KeyPrefix, log)
	lang := service.NewLanguageService(ctx, prefs, log)
	defer lang.Close()

	// 记录事件
	var publisher events.Publisher = events.NopPublisher{}
	switch cfg.Events.Backend {
	case config.EventsRedis:
		publisher = events.NewStreamPublisher(redisClient, cfg.Events.Stream, log)
		if cfg.Preferences.Backend != config.BackendRedis {
			doctor.Observe("redis", rediscommon.HealthCheck(redisClient))
		}
	case config.EventsMQTT:
		mqttClient, err := commonmqtt.NewClient(&cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT broker unavailable, record events disabled", zap.String("broker", cfg.MQTT.Broker), zap.Error(err))
			break
		}
		defer mqttClient.Disconnect()
		publisher = events.NewMQTTPublisher(mqttClient, cfg.Events.TopicPrefix, log)
		doctor.Observe("mqtt", func(context.Context) error {
			if !mqttClient.IsConnected() {
				return errors.New("not connected")
			}
			return nil
		})
	}

	// 种子数据 -> 内存集合
	data, err := seed.Load()
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}
	opts := filter.ListOptions{Debounce: cfg.List.SearchDebounce, PageSize: cfg.List.PageSize}

	var patientAPI service.PatientCreator
	var reservationAPI service.ReservationCreator
	if cfg.API.URL != "" {
		api := service.NewRecordsAPIClient(cfg.API.URL, cfg.API.Token, cfg.API.Timeout, log)
		patientAPI, reservationAPI = api, api
	}

	employees, err := service.NewEmployeeService(ctx, repository.NewMemoryRecordsRepo(data.Employees), opts, publisher, log)
	if err != nil {
		return err
	}
	defer employees.Close()
	patients, err := service.NewPatientService(ctx, repository.NewMemoryRecordsRepo(data.Patients), patientAPI, opts, publisher, log)
	if err != nil {
		return err
	}
	defer patients.Close()
	reservations, err := service.NewReservationService(ctx, repository.NewMemoryRecordsRepo(data.Reservations), reservationAPI, opts, publisher, log)
	if err != nil {
		return err
	}
	defer reservations.Close()

	lang.Subscribe(func(st service.LanguageState) {
		log.Info("Interface language switched", zap.String("language", st.Code), zap.String("dir", string(st.Dir)))
	})

	router := httpapi.NewRouter(log)
	router.RegisterRecordRoutes(httpapi.NewRecordsHandler[domain.Employee, service.EmployeeFields](employees, httpapi.EmployeeSheet, lang.Current, log))
	router.RegisterRecordRoutes(httpapi.NewRecordsHandler[domain.Patient, service.PatientFields](patients, httpapi.PatientSheet, lang.Current, log).WithRegistrar(patients))
	router.RegisterRecordRoutes(httpapi.NewRecordsHandler[domain.Reservation, service.ReservationFields](reservations, httpapi.ReservationSheet, lang.Current, log).WithRegistrar(reservations))
	router.RegisterPreferenceRoutes(httpapi.NewPreferenceHandler(prefs, lang, log))
	router.RegisterDoctorRoutes(doctor)

	srv := service.NewServer(cfg.App.Name, cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigCh:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown failed", zap.Error(err))
	}
	return serveErr
}
