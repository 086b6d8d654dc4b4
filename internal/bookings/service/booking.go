package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/events"
	"roomly/internal/bookings/repository"
	bookingvalidator "roomly/internal/bookings/validator"
	roomserrors "roomly/internal/rooms/errors"
	roomsrepository "roomly/internal/rooms/repository"
	userserrors "roomly/internal/users/errors"
	usersrepository "roomly/internal/users/repository"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

type BookingService interface {
	// Create runs the admission check and places the booking: the user
	// and room must exist, and no booking for the room may overlap the
	// requested stay (boundary dates inclusive).
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	userRepo  usersrepository.UserRepository
	roomRepo  roomsrepository.RoomRepository
	validator *bookingvalidator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	userRepo usersrepository.UserRepository,
	roomRepo roomsrepository.RoomRepository,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		userRepo:  userRepo,
		roomRepo:  roomRepo,
		validator: bookingvalidator.NewBookingValidator(cfg.Log),
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "room_id", booking.RoomID, "error", err)
		return apperrors.InvalidInput(err.Error())
	}

	if err := s.resolveUser(ctx, booking.UserID); err != nil {
		return err
	}
	if err := s.resolveRoom(ctx, booking.RoomID); err != nil {
		return err
	}

	// Advisory lock on the (room, stay) slot so two concurrent requests
	// for the same dates cannot both pass the overlap check.
	lockID := slotLockID(booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
	release, err := s.acquireSlotLock(ctx, lockID)
	if err != nil {
		return err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		existing, err := s.repo.FindOverlapping(sc, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
		if err != nil {
			return apperrors.Internal("Failed to check room availability", err)
		}
		if existing != nil {
			// The public API reports date conflicts as a bad request,
			// not 409.
			return apperrors.New(apperrors.CodeConflict, bookingserrors.MsgRoomConflict, http.StatusBadRequest)
		}

		return s.repo.Create(sc, booking)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckInDate.String(),
		"check_out", booking.CheckOutDate.String(),
	)

	s.publisher.BookingCreated(ctx, booking)
	return nil
}

func (s *bookingService) resolveUser(ctx context.Context, userID string) error {
	_, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, userserrors.ErrNotFound) {
		return apperrors.New(apperrors.CodeNotFound, bookingserrors.MsgUserNotFound, http.StatusNotFound)
	}
	// A malformed ID is a client error, reported with its own text.
	if errors.Is(err, userserrors.ErrInvalidID) {
		return apperrors.InvalidInput(err.Error())
	}
	s.cfg.Log.Error("Failed to resolve user", "user_id", userID, "error", err)
	return apperrors.Internal("Failed to resolve user", err)
}

func (s *bookingService) resolveRoom(ctx context.Context, roomID string) error {
	_, err := s.roomRepo.FindByID(ctx, roomID)
	if err == nil {
		return nil
	}
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.New(apperrors.CodeNotFound, bookingserrors.MsgRoomNotFound, http.StatusNotFound)
	}
	if errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.InvalidInput(err.Error())
	}
	s.cfg.Log.Error("Failed to resolve room", "room_id", roomID, "error", err)
	return apperrors.Internal("Failed to resolve room", err)
}

func (s *bookingService) acquireSlotLock(ctx context.Context, lockID string) (func(), error) {
	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("A booking for these dates is already in progress, please retry")
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	release := func() {
		// Release outlives request cancellation; the TTL index is the
		// backstop if this delete fails.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
		defer cancel()

		if err := s.lockRepo.Delete(releaseCtx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
		}
	}
	return release, nil
}

func slotLockID(roomID string, checkIn, checkOut model.Date) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", roomID, checkIn.String(), checkOut.String())))
	return hex.EncodeToString(sum[:16])
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput(err.Error())
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var (
		count    int64
		bookings []*model.Booking
		errCount error
		errFind  error
		wg       sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", errCount)
	}
	if errFind != nil {
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", errFind)
	}

	return bookings, count, nil
}
