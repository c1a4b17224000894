package dto

import (
	"mime/multipart"
	"strings"

	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/repository"
	"hotel/shared/timezone"
)

type CreateRoomRequest struct {
	Number    string   `json:"number"    validate:"required,notblank"`
	Type      string   `json:"type"      validate:"required,notblank,oneof=single double deluxe suite" message:"Type must be one of: single, double, deluxe, suite"`
	Price     *float64 `json:"price"     validate:"required,gte=0"                                      message:"Price must be a positive number"`
	Capacity  *int     `json:"capacity"  validate:"required,gte=1"                                      message:"Capacity must be a positive number"`
	Status    *string  `json:"status"    validate:"omitnil,oneof=available occupied maintenance"        message:"Status must be one of: available, occupied, maintenance"`
	Amenities []string `json:"amenities"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	status := model.StatusAvailable
	if c.Status != nil {
		status = *c.Status
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	room := model.Room{
		ID:        repository.NewID(),
		Number:    strings.TrimSpace(c.Number),
		Type:      c.Type,
		Price:     *c.Price,
		Capacity:  *c.Capacity,
		Status:    status,
		Amenities: amenities,
	}
	room.Touch(timezone.Now())

	return room
}

// UpdateRoomRequest only carries supplied fields; nil means unchanged.
type UpdateRoomRequest struct {
	Number    *string  `db:"number"    json:"number"    validate:"omitnil,notblank"`
	Type      *string  `db:"type"      json:"type"      validate:"omitnil,oneof=single double deluxe suite" message:"Type must be one of: single, double, deluxe, suite"`
	Price     *float64 `db:"price"     json:"price"     validate:"omitnil,gte=0"                            message:"Price must be a positive number"`
	Capacity  *int     `db:"capacity"  json:"capacity"  validate:"omitnil,gte=1"                            message:"Capacity must be a positive number"`
	Status    *string  `db:"status"    json:"status"    validate:"omitnil,oneof=available occupied maintenance" message:"Status must be one of: available, occupied, maintenance"`
	Amenities []string `db:"amenities" json:"amenities"`
}

// Merge trims the request and applies it onto room.
func (u *UpdateRoomRequest) Merge(room *model.Room) {
	if u.Number != nil {
		number := strings.TrimSpace(*u.Number)
		u.Number = &number
		room.Number = number
	}

	if u.Type != nil {
		room.Type = *u.Type
	}

	if u.Price != nil {
		room.Price = *u.Price
	}

	if u.Capacity != nil {
		room.Capacity = *u.Capacity
	}

	if u.Status != nil {
		room.Status = *u.Status
	}

	if u.Amenities != nil {
		room.Amenities = u.Amenities
	}
}

type UploadRoomImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID        string   `json:"_id"`
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Status    string   `json:"status"`
	Amenities []string `json:"amenities"`
	Image     string   `json:"image"`
	gModel.Timestamps
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Status = model.Status
	r.Image = model.Image
	r.Timestamps = model.Timestamps

	r.Amenities = []string(model.Amenities)
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

// RoomSummary is the shape of a room embedded in booking listings.
type RoomSummary struct {
	ID     string  `json:"_id"`
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

func (r *RoomSummary) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
}

type GetRoomsResponse struct {
	Rooms      []RoomResponse   `json:"rooms"`
	Pagination *gDto.Pagination `json:"pagination"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, total int, params gDto.QueryParams) {
	r.Pagination = gDto.NewPagination(total, params)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
