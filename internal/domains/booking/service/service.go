package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	guestRepository "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/rs/zerolog/log"
)

var (
	guestSummaryColumns = []string{guestModel.FieldID, guestModel.FieldName, guestModel.FieldEmail, guestModel.FieldPhone}
	roomSummaryColumns  = []string{roomModel.FieldID, roomModel.FieldNumber, roomModel.FieldType, roomModel.FieldPrice}
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingDetail, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingDetail, error)
	GetByGuest(ctx context.Context, guestID string) ([]dto.GuestBooking, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingDetail, error)
	Delete(ctx context.Context, id string) (dto.BookingRecord, error)
}

type serviceImpl struct {
	repo       repository.Booking
	guests     guestRepository.Guest
	rooms      roomRepository.Room
	transactor gRepo.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	guests guestRepository.Guest,
	rooms roomRepository.Room,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		guests:     guests,
		rooms:      rooms,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{Key: booking.ID, Value: dto.NewEvent(eventType, booking)}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.TopicBooking, msg); err != nil {
			log.Warn().Err(err).Str("event", eventType).Str("booking", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

// guest returns the referenced guest or nil for a dangling reference.
func (s *serviceImpl) guest(ctx context.Context, id string) (*guestDto.GuestResponse, error) {
	guest, err := s.guests.Get(ctx, shared.FilterByID(id, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return nil, nil
	}

	res := &guestDto.GuestResponse{}
	res.FromModel(guest)

	return res, nil
}

// room returns the referenced room or nil for a dangling reference.
func (s *serviceImpl) room(ctx context.Context, id string) (*roomDto.RoomResponse, error) {
	room, err := s.rooms.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return nil, nil
	}

	res := &roomDto.RoomResponse{}
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) requireGuest(ctx context.Context, id string) (*guestDto.GuestResponse, error) {
	guest, err := s.guest(ctx, id)
	if err != nil {
		return nil, err
	}

	if guest == nil {
		return nil, failure.NotFound(guestModel.MessageNotFound)
	}

	return guest, nil
}

func (s *serviceImpl) requireRoom(ctx context.Context, id string) (*roomDto.RoomResponse, error) {
	room, err := s.room(ctx, id)
	if err != nil {
		return nil, err
	}

	if room == nil {
		return nil, failure.NotFound(roomModel.MessageNotFound)
	}

	return room, nil
}

func (s *serviceImpl) detail(ctx context.Context, booking model.Booking) (dto.BookingDetail, error) {
	guest, err := s.guest(ctx, booking.GuestID)
	if err != nil {
		return dto.BookingDetail{}, err
	}

	room, err := s.room(ctx, booking.RoomID)
	if err != nil {
		return dto.BookingDetail{}, err
	}

	return dto.NewBookingResponse(booking, guest, room), nil
}

func (s *serviceImpl) current(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = booking.Validate(); err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		"booking.id":          booking.ID,
		"booking.room_id":     booking.RoomID,
		"booking.check_in":    booking.CheckIn,
		"booking.check_out":   booking.CheckOut,
		"booking.total_price": booking.TotalPrice,
	})

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		guest, err := s.requireGuest(ctx, booking.GuestID)
		if err != nil {
			return err
		}

		room, err := s.requireRoom(ctx, booking.RoomID)
		if err != nil {
			return err
		}

		if err = s.repo.Insert(ctx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		res = dto.NewBookingResponse(booking, guest, room)

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventCreated, booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	guestIDs := make([]string, 0, len(models))
	roomIDs := make([]string, 0, len(models))

	for _, booking := range models {
		guestIDs = append(guestIDs, booking.GuestID)
		roomIDs = append(roomIDs, booking.RoomID)
	}

	guests, err := s.guestSummaries(ctx, shared.Unique(guestIDs))
	if err != nil {
		return res, err
	}

	rooms, err := s.roomSummaries(ctx, shared.Unique(roomIDs))
	if err != nil {
		return res, err
	}

	res.Pagination = gDto.NewPagination(total, req)
	res.Bookings = make([]dto.BookingListItem, len(models))

	for i, booking := range models {
		res.Bookings[i] = dto.NewBookingResponse(booking, guests[booking.GuestID], rooms[booking.RoomID])
	}

	return res, nil
}

func (s *serviceImpl) guestSummaries(ctx context.Context, ids []string) (map[string]*guestDto.GuestSummary, error) {
	res := make(map[string]*guestDto.GuestSummary, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	guests, err := s.guests.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, guestModel.FieldID, guestModel.TableName), guestSummaryColumns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking guests")

		return nil, fmt.Errorf("failed to resolve booking guests: %w", err)
	}

	for _, guest := range guests {
		summary := &guestDto.GuestSummary{}
		summary.FromModel(guest)
		res[guest.ID] = summary
	}

	return res, nil
}

func (s *serviceImpl) roomSummaries(ctx context.Context, ids []string) (map[string]*roomDto.RoomSummary, error) {
	res := make(map[string]*roomDto.RoomSummary, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, roomModel.FieldID, roomModel.TableName), roomSummaryColumns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking rooms")

		return nil, fmt.Errorf("failed to resolve booking rooms: %w", err)
	}

	for _, room := range rooms {
		summary := &roomDto.RoomSummary{}
		summary.FromModel(room)
		res[room.ID] = summary
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.current(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	return s.detail(ctx, booking)
}

func (s *serviceImpl) GetByGuest(ctx context.Context, guestID string) (res []dto.GuestBooking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetByGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByOptional(model.FieldGuestID, guestID, model.TableName)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest bookings")

		return res, fmt.Errorf("failed to get guest bookings: %w", err)
	}

	roomIDs := make([]string, 0, len(models))
	for _, booking := range models {
		roomIDs = append(roomIDs, booking.RoomID)
	}

	rooms := map[string]*roomDto.RoomResponse{}

	if ids := shared.Unique(roomIDs); len(ids) > 0 {
		found, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve guest booking rooms")

			return res, fmt.Errorf("failed to resolve guest booking rooms: %w", err)
		}

		for _, room := range found {
			full := &roomDto.RoomResponse{}
			full.FromModel(room)
			rooms[room.ID] = full
		}
	}

	res = make([]dto.GuestBooking, len(models))
	for i, booking := range models {
		res[i] = dto.NewBookingResponse(booking, booking.GuestID, rooms[booking.RoomID])
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var booking model.Booking

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.current(ctx, filter)
		if err != nil {
			return err
		}

		booking = stored

		mod, err := req.Apply(&booking)
		if err != nil {
			return failure.BadRequest(err)
		}

		if req.GuestID != nil {
			if _, err = s.requireGuest(ctx, booking.GuestID); err != nil {
				return err
			}
		}

		if req.RoomID != nil {
			if _, err = s.requireRoom(ctx, booking.RoomID); err != nil {
				return err
			}
		}

		if err = booking.Validate(); err != nil {
			return err
		}

		if err = s.repo.Update(ctx, mod, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		res, err = s.detail(ctx, booking)

		return err
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventUpdated, booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.BookingRecord, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.current(ctx, filter)
	if err != nil {
		return res, err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return res, fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publish(ctx, dto.EventDeleted, booking)

	return dto.NewBookingRecord(booking), nil
}
