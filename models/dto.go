package models

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC3339")

// ParseEventDate accepts a calendar date (server local time) or an RFC3339 timestamp.
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// Auth

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country" binding:"required"`
	City     string `json:"city" binding:"required"`
}

type LoginInput struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type ProfileInput struct {
	Country *string `json:"country"`
	City    *string `json:"city"`
	Email   *string `json:"email" binding:"omitempty,email"`
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=6"`
}

// Content

type OrganizerInput struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email" binding:"omitempty,email"`
}

type EventInput struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Country     string         `json:"country" binding:"required"`
	City        string         `json:"city" binding:"required"`
	Address     string         `json:"address" binding:"required"`
	Date        string         `json:"date" binding:"required"`
	Time        string         `json:"time" binding:"required"`
	Organizer   OrganizerInput `json:"organizer"`
	Image       string         `json:"image" binding:"required"`
	Category    string         `json:"category" binding:"required"`
	Price       float64        `json:"price" binding:"gte=0"`
	Capacity    int            `json:"capacity" binding:"required,gt=0"`
}

func (in EventInput) Details() (EventDetails, error) {
	date, err := ParseEventDate(in.Date)
	if err != nil {
		return EventDetails{}, err
	}
	return EventDetails{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Country:     strings.TrimSpace(in.Country),
		City:        strings.TrimSpace(in.City),
		Address:     in.Address,
		Date:        date,
		Time:        in.Time,
		Organizer: Organizer{
			Name:          in.Organizer.Name,
			ContactNumber: in.Organizer.ContactNumber,
			Email:         in.Organizer.Email,
		},
		Image:    in.Image,
		Category: in.Category,
		Price:    in.Price,
		Capacity: in.Capacity,
	}, nil
}

type AccommodationInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images" binding:"required,min=1,dive,required"`
	ContactNumber string   `json:"contact_number" binding:"required"`
	Website       string   `json:"website" binding:"omitempty,url"`
}

func (in AccommodationInput) Details() AccommodationDetails {
	return AccommodationDetails{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Country:       strings.TrimSpace(in.Country),
		City:          strings.TrimSpace(in.City),
		Address:       in.Address,
		Price:         in.Price,
		Capacity:      in.Capacity,
		Amenities:     in.Amenities,
		Images:        in.Images,
		ContactNumber: in.ContactNumber,
	}
}

type RestaurantInput struct {
	Name          string   `json:"name" binding:"required"`
	Cuisine       string   `json:"cuisine" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Website       string   `json:"website" binding:"omitempty,url"`
	ContactNumber string   `json:"contact_number" binding:"required"`
	OpeningHours  string   `json:"opening_hours" binding:"required"`
	Images        []string `json:"images" binding:"required,min=1,dive,required"`
}

func (in RestaurantInput) Details() RestaurantDetails {
	return RestaurantDetails{
		Name:          strings.TrimSpace(in.Name),
		Cuisine:       in.Cuisine,
		Country:       strings.TrimSpace(in.Country),
		City:          strings.TrimSpace(in.City),
		Address:       in.Address,
		Description:   in.Description,
		Website:       in.Website,
		ContactNumber: in.ContactNumber,
		OpeningHours:  in.OpeningHours,
		Images:        in.Images,
	}
}

// Ownership carries the fields only an administrator may change on update.
type Ownership struct {
	CreatedByID *uint          `json:"created_by_id"`
	Status      *ContentStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// Restricted reports whether the patch touches admin-only fields.
func (o Ownership) Restricted() bool {
	return o.CreatedByID != nil || o.Status != nil
}

type EventPatch struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Country     *string         `json:"country"`
	City        *string         `json:"city"`
	Address     *string         `json:"address"`
	Date        *string         `json:"date"`
	Time        *string         `json:"time"`
	Organizer   *OrganizerInput `json:"organizer"`
	Image       *string         `json:"image"`
	Category    *string         `json:"category"`
	Price       *float64        `json:"price" binding:"omitempty,gte=0"`
	Capacity    *int            `json:"capacity" binding:"omitempty,gt=0"`
	Ownership
}

func (p EventPatch) Apply(d *EventDetails) error {
	if p.Date != nil {
		date, err := ParseEventDate(*p.Date)
		if err != nil {
			return err
		}
		d.Date = date
	}
	setString(&d.Title, p.Title)
	setString(&d.Description, p.Description)
	setString(&d.Country, p.Country)
	setString(&d.City, p.City)
	setString(&d.Address, p.Address)
	setString(&d.Time, p.Time)
	setString(&d.Image, p.Image)
	setString(&d.Category, p.Category)
	if p.Organizer != nil {
		d.Organizer = Organizer{
			Name:          p.Organizer.Name,
			ContactNumber: p.Organizer.ContactNumber,
			Email:         p.Organizer.Email,
		}
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Capacity != nil {
		d.Capacity = *p.Capacity
	}
	return nil
}

type AccommodationPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Type          *string   `json:"type"`
	Country       *string   `json:"country"`
	City          *string   `json:"city"`
	Address       *string   `json:"address"`
	Price         *float64  `json:"price" binding:"omitempty,gt=0"`
	Capacity      *int      `json:"capacity" binding:"omitempty,gt=0"`
	Amenities     *[]string `json:"amenities"`
	Images        *[]string `json:"images" binding:"omitempty,min=1"`
	ContactNumber *string   `json:"contact_number"`
	Website       *string   `json:"website" binding:"omitempty,url"`
	Ownership
}

func (p AccommodationPatch) Apply(d *AccommodationDetails) {
	setString(&d.Name, p.Name)
	setString(&d.Description, p.Description)
	setString(&d.Country, p.Country)
	setString(&d.City, p.City)
	setString(&d.Address, p.Address)
	setString(&d.ContactNumber, p.ContactNumber)
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Capacity != nil {
		d.Capacity = *p.Capacity
	}
	if p.Amenities != nil {
		d.Amenities = *p.Amenities
	}
	if p.Images != nil {
		d.Images = *p.Images
	}
}

type RestaurantPatch struct {
	Name          *string   `json:"name"`
	Cuisine       *string   `json:"cuisine"`
	Country       *string   `json:"country"`
	City          *string   `json:"city"`
	Address       *string   `json:"address"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website" binding:"omitempty,url"`
	ContactNumber *string   `json:"contact_number"`
	OpeningHours  *string   `json:"opening_hours"`
	Images        *[]string `json:"images" binding:"omitempty,min=1"`
	Ownership
}

func (p RestaurantPatch) Apply(d *RestaurantDetails) {
	setString(&d.Name, p.Name)
	setString(&d.Cuisine, p.Cuisine)
	setString(&d.Country, p.Country)
	setString(&d.City, p.City)
	setString(&d.Address, p.Address)
	setString(&d.Description, p.Description)
	setString(&d.Website, p.Website)
	setString(&d.ContactNumber, p.ContactNumber)
	setString(&d.OpeningHours, p.OpeningHours)
	if p.Images != nil {
		d.Images = *p.Images
	}
}

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// Admin and misc

type StatusInput struct {
	Status ContentStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type MarkReadInput struct {
	Read *bool `json:"read"`
}

type CountryInput struct {
	Country string   `json:"country" binding:"required"`
	Cities  []string `json:"cities"`
}

type CityInput struct {
	City string `json:"city" binding:"required"`
}

type EmailInput struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ApplyToRequest updates an event request. Status is not patchable on requests.
func (p EventPatch) ApplyToRequest(r *EventRequest) error {
	if err := p.Apply(&r.EventDetails); err != nil {
		return err
	}
	p.Ownership.apply(&r.CreatedByID, nil)
	return nil
}

func (p EventPatch) ApplyToEvent(e *Event) error {
	if err := p.Apply(&e.EventDetails); err != nil {
		return err
	}
	p.Ownership.apply(&e.CreatedByID, &e.Status)
	return nil
}

func (p AccommodationPatch) ApplyToRequest(r *AccommodationRequest) error {
	if p.Type != nil {
		if !IsAccommodationType(*p.Type) {
			return ErrAccommodationType
		}
		r.Type = strings.ToLower(strings.TrimSpace(*p.Type))
	}
	p.Apply(&r.AccommodationDetails)
	p.Ownership.apply(&r.CreatedByID, nil)
	return nil
}

// ApplyToAccommodation leaves Type and PriceRange to the caller, both are derived.
func (p AccommodationPatch) ApplyToAccommodation(a *Accommodation) error {
	p.Apply(&a.AccommodationDetails)
	setString(&a.Website, p.Website)
	p.Ownership.apply(&a.CreatedByID, &a.Status)
	return nil
}

func (p RestaurantPatch) ApplyToRequest(r *RestaurantRequest) error {
	p.Apply(&r.RestaurantDetails)
	p.Ownership.apply(&r.CreatedByID, nil)
	return nil
}

func (p RestaurantPatch) ApplyToRestaurant(r *Restaurant) error {
	p.Apply(&r.RestaurantDetails)
	if p.Images != nil {
		r.Image = CoverImage(r.Images)
	}
	p.Ownership.apply(&r.CreatedByID, &r.Status)
	return nil
}

func (o Ownership) apply(createdBy *uint, status *ContentStatus) {
	if o.CreatedByID != nil && createdBy != nil {
		*createdBy = *o.CreatedByID
	}
	if o.Status != nil && status != nil {
		*status = *o.Status
	}
}
