package guest

import (
	"net/http"

	"hotel/infras/otel"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Guest
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Guest, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.With(middleware.ValidatePagination).Get("/", handler.GetGuests)
		routerGroup.Post("/", handler.CreateGuest)

		routerGroup.Route("/{id}", func(item chi.Router) {
			item.Use(middleware.ValidateID)

			item.Get("/", handler.GetGuestByID)
			item.Put("/", handler.UpdateGuest)
			item.Delete("/", handler.DeleteGuest)
			item.Get("/bookings", handler.GetGuestBookings)
		})
	})
}

// GetGuests retrieves one page of guests, newest first.
// @Summary Get all guests
// @Description Retrieve guests with pagination.
// @Tags Guest
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.List[dto.GuestResponse] "List of guests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests [get]
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)
	queryParams.Status = constant.Empty

	guests, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guests retrieved successfully")

	response.WithList(w, guests.Guests, guests.Pagination)
}

// GetGuestByID retrieves a guest by its ID.
// @Summary Get a guest by ID
// @Description Retrieve a guest by its unique identifier.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests/{id} [get]
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	guest, err := handler.service.Get(ctx, shared.PathID(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest retrieved successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// CreateGuest handles the creation of a new guest.
// @Summary Create a new guest
// @Description Create a guest. The email is stored trimmed and lower-cased and must be unique.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Create Guest Request"
// @Success 201 {object} response.Data[dto.GuestResponse] "Guest created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests [post]
func (handler *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	req := dto.CreateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest created successfully")

	response.WithJSON(w, http.StatusCreated, guest)
}

// UpdateGuest updates an existing guest by its ID.
// @Summary Update a guest by ID
// @Description Update the supplied fields of an existing guest.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Update Guest Request"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests/{id} [put]
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	req := dto.UpdateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Update(ctx, req, shared.PathID(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest updated successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// DeleteGuest deletes a guest by its ID.
// @Summary Delete a guest by ID
// @Description Delete a guest and return the deleted record. Bookings referencing it are kept.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Deleted[dto.GuestResponse] "Guest deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests/{id} [delete]
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	guest, err := handler.service.Delete(ctx, shared.PathID(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest deleted successfully")

	response.WithMessageAndData(w, http.StatusOK, model.MessageDeleted, guest)
}

// GetGuestBookings lists the bookings of a guest with their rooms expanded.
// @Summary Get the bookings of a guest
// @Description Bookings referencing the guest, newest first. A deleted room renders as null.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[[]bookingDto.GuestBooking] "Guest bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /guests/{id}/bookings [get]
func (handler *Handler) GetGuestBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestBookings")
	defer scope.End()

	var bookings []bookingDto.GuestBooking

	bookings, err := handler.bookings.GetByGuest(ctx, shared.PathID(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}
