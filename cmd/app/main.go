package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/bootstrap"
	"github.com/Domenick1991/carrental/internal/cache"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/clients"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/Domenick1991/carrental/internal/service/expenses"
	"github.com/Domenick1991/carrental/internal/service/fleet"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatalf("load time zone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CatalogCacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)

	services := api.Services{
		Fleet: fleet.NewFleetService(vehicleRepo, redisCache, fleet.WithLocation(loc)),
		Bookings: booking.NewBookingService(
			bookingRepo,
			vehicleRepo,
			redisCache,
			producer,
			cfg.Kafka.BookingEventsTopic,
			cfg.Booking.LockTTL(),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithLocation(loc),
			booking.WithCurrency(cfg.Booking.Currency),
		),
		Clients:   clients.NewClientService(clientRepo, bookingRepo),
		Expenses:  expenses.NewExpenseService(expenseRepo),
		Dashboard: dashboard.NewDashboardService(bookingRepo, vehicleRepo, clientRepo, expenseRepo, dashboard.WithLocation(loc)),
	}

	if err := bootstrap.Run(ctx, cfg, services, pool, redisCache, bootstrap.PingerFunc(producer.CheckConnection)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
