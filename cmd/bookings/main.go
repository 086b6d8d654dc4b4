package main

import (
	"roomly/internal/bookings/events"
	bookingshandler "roomly/internal/bookings/handler"
	bookingsrepository "roomly/internal/bookings/repository"
	bookingsservice "roomly/internal/bookings/service"
	roomshandler "roomly/internal/rooms/handler"
	roomsrepository "roomly/internal/rooms/repository"
	roomsservice "roomly/internal/rooms/service"
	usershandler "roomly/internal/users/handler"
	usersrepository "roomly/internal/users/repository"
	usersservice "roomly/internal/users/service"
	"roomly/pkg/app"
	"roomly/pkg/config"
	"roomly/pkg/contracts"
	"roomly/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting bookings service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher, closeProducer := initPublisher(cfg)
	defer closeProducer()

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	userRepo := usersrepository.NewMongoUserRepository(cfg)
	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepository.NewBookingLockRepository(cfg)

	userService := usersservice.NewUserService(userRepo, cfg)
	roomService := roomsservice.NewRoomService(roomRepo, cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		userRepo,
		roomRepo,
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		usershandler.NewUserHandler(userService, cfg.Log),
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, event publishing disabled")
		return events.NewNoopPublisher(), func() {}
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingEventTopic)
	cfg.Log.Info("Kafka producer initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaBookingEventTopic,
	)

	return events.NewKafkaPublisher(producer, cfg.Log), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
