package helper

import (
	"context"
	"dashboard/config"
	bookingModel "dashboard/internal/domains/booking/model"
	bookingDto "dashboard/internal/domains/booking/model/dto"
	bookingService "dashboard/internal/domains/booking/service"
	contactModel "dashboard/internal/domains/contact/model"
	contactDto "dashboard/internal/domains/contact/model/dto"
	contactService "dashboard/internal/domains/contact/service"
	roomModel "dashboard/internal/domains/room/model"
	roomDto "dashboard/internal/domains/room/model/dto"
	roomService "dashboard/internal/domains/room/service"
	userModel "dashboard/internal/domains/user/model"
	userDto "dashboard/internal/domains/user/model/dto"
	userService "dashboard/internal/domains/user/service"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
)

const (
	seedActor    = "seeder"
	seedAdminID  = "EMP-0001"
	seedDateForm = "2006-01-02"

	seedStayMaxDays = 14
)

var (
	seedRoomTypes  = []string{"Single Bed", "Double Bed", "Double Superior", "Suite"}
	seedFacilities = []string{"AC, Shower, Towel", "AC, Bathtub, TV", "Wi-Fi, Minibar, Balcony"}
	seedAmenities  = []string{"Wi-Fi", "Air Conditioner", "Television", "Minibar", "Safe Box", "Coffee Set"}
	seedStayStatus = []string{bookingModel.StatusCheckIn, bookingModel.StatusCheckOut, bookingModel.StatusInProgress}
	seedUserStatus = []string{userModel.StatusActive, userModel.StatusInactive}
	seedReadStatus = []string{contactModel.StatusRead, contactModel.StatusUnread}
	seedRoomStatus = []string{roomModel.StatusAvailable, roomModel.StatusBooked}
)

// Seeder fills an empty dashboard with an admin account and fake records.
type Seeder struct {
	Config   *config.Config
	Bookings bookingService.Booking
	Rooms    roomService.Room
	Contacts contactService.Contact
	Users    userService.User

	faker *gofakeit.Faker
}

func NewSeeder(
	cfg *config.Config,
	bookings bookingService.Booking,
	rooms roomService.Room,
	contacts contactService.Contact,
	users userService.User,
) *Seeder {
	return &Seeder{
		Config:   cfg,
		Bookings: bookings,
		Rooms:    rooms,
		Contacts: contacts,
		Users:    users,
		faker:    gofakeit.New(0),
	}
}

// Run inserts the admin user and Seed.Count records per resource.
// Records that already exist are skipped.
func (s *Seeder) Run(ctx context.Context) error {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, seedActor)

	if err := s.seed(ctx, "admin", s.admin()); err != nil {
		return err
	}

	for i := 1; i <= s.Config.Seed.Count; i++ {
		steps := []struct {
			name string
			run  func(context.Context) error
		}{
			{name: "room", run: s.room(i)},
			{name: "booking", run: s.booking(i)},
			{name: "contact", run: s.contact(i)},
			{name: "user", run: s.user(i)},
		}

		for _, step := range steps {
			if err := s.seed(ctx, step.name, step.run); err != nil {
				return err
			}
		}
	}

	log.Info().Int("count", s.Config.Seed.Count).Msg("Database seeded")

	return nil
}

func (s *Seeder) seed(ctx context.Context, name string, run func(context.Context) error) error {
	err := run(ctx)
	if err == nil {
		return nil
	}

	var fail *failure.Failure
	if errors.As(err, &fail) && fail.Code == http.StatusConflict {
		log.Debug().Str("record", name).Msg(fail.Message)

		return nil
	}

	return fmt.Errorf("failed to seed %s: %w", name, err)
}

func (s *Seeder) admin() func(context.Context) error {
	req := userDto.CreateUserRequest{
		Photo:       s.faker.URL(),
		Name:        s.Config.Seed.AdminName,
		EmployeeID:  seedAdminID,
		Email:       s.Config.Seed.AdminEmail,
		Password:    s.Config.Seed.AdminPassword,
		StartDate:   time.Now().Format(seedDateForm),
		Description: "Dashboard administrator",
		Contact:     s.faker.Numerify("##########"),
		Status:      userModel.StatusActive,
	}

	return createUser(s.Users, req)
}

func (s *Seeder) room(i int) func(context.Context) error {
	rate := s.faker.Number(100, 500)

	req := roomDto.CreateRoomRequest{
		RoomPhoto:          s.faker.URL(),
		RoomNumber:         roomNumber(i),
		RoomType:           s.faker.RandomString(seedRoomTypes),
		Facilities:         s.faker.RandomString(seedFacilities),
		Rate:               strconv.Itoa(rate),
		OfferPrice:         strconv.Itoa(rate - s.faker.Number(0, rate/2)),
		Status:             s.faker.RandomString(seedRoomStatus),
		Description:        s.faker.Phrase(),
		Offer:              s.faker.Phrase(),
		Discount:           strconv.Itoa(s.faker.Number(0, 30)),
		CancellationPolicy: s.faker.Phrase(),
		Amenities:          []string{s.faker.RandomString(seedAmenities), s.faker.RandomString(seedAmenities)},
		Photos:             []string{s.faker.URL(), s.faker.URL()},
	}

	return func(ctx context.Context) error {
		if err := validator.ValidateStruct(&req); err != nil {
			return err //nolint:wrapcheck
		}

		_, err := s.Rooms.Create(ctx, req)

		return err //nolint:wrapcheck
	}
}

func (s *Seeder) booking(i int) func(context.Context) error {
	orderDate, checkIn, checkOut := s.stay()

	req := bookingDto.CreateBookingRequest{
		Guest: &bookingDto.Guest{
			FullName:          s.faker.Name(),
			ReservationNumber: fmt.Sprintf("RES-%04d", i),
			Image:             s.faker.URL(),
		},
		Photo:          s.faker.URL(),
		RoomPhoto:      []string{s.faker.URL()},
		RoomNumber:     roomNumber(i),
		RoomType:       s.faker.RandomString(seedRoomTypes),
		Facilities:     s.faker.RandomString(seedFacilities),
		Rate:           strconv.Itoa(s.faker.Number(100, 500)),
		Status:         s.faker.RandomString(seedStayStatus),
		OrderDate:      orderDate,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		SpecialRequest: s.faker.Phrase(),
	}

	return func(ctx context.Context) error {
		if err := validator.ValidateStruct(&req); err != nil {
			return err //nolint:wrapcheck
		}

		_, err := s.Bookings.Create(ctx, req)

		return err //nolint:wrapcheck
	}
}

func (s *Seeder) contact(i int) func(context.Context) error {
	req := contactDto.CreateContactRequest{
		Photo:     s.faker.URL(),
		Date:      s.faker.DateRange(time.Now().AddDate(0, -3, 0), time.Now()).Format(seedDateForm),
		MessageID: fmt.Sprintf("MSG-%04d", i),
		FullName:  s.faker.Name(),
		Email:     s.faker.Email(),
		Phone:     s.faker.Numerify("##########"),
		Subject:   s.faker.Phrase(),
		Comment:   s.faker.Phrase(),
		Status:    s.faker.RandomString(seedReadStatus),
	}

	return func(ctx context.Context) error {
		if err := validator.ValidateStruct(&req); err != nil {
			return err //nolint:wrapcheck
		}

		_, err := s.Contacts.Create(ctx, req)

		return err //nolint:wrapcheck
	}
}

func (s *Seeder) user(i int) func(context.Context) error {
	req := userDto.CreateUserRequest{
		Photo:       s.faker.URL(),
		Name:        s.faker.Name(),
		EmployeeID:  fmt.Sprintf("EMP-%04d", i+1),
		Email:       s.faker.Email(),
		Password:    s.faker.Password(true, true, true, false, false, 12),
		StartDate:   s.faker.DateRange(time.Now().AddDate(-5, 0, 0), time.Now()).Format(seedDateForm),
		Description: s.faker.JobTitle(),
		Contact:     s.faker.Numerify("##########"),
		Status:      s.faker.RandomString(seedUserStatus),
	}

	return createUser(s.Users, req)
}

func createUser(users userService.User, req userDto.CreateUserRequest) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := validator.ValidateStruct(&req); err != nil {
			return err //nolint:wrapcheck
		}

		_, err := users.Create(ctx, req)

		return err //nolint:wrapcheck
	}
}

// stay returns an order date on or before a check-in that precedes check-out.
func (s *Seeder) stay() (orderDate, checkIn, checkOut string) {
	now := time.Now()

	order := s.faker.DateRange(now.AddDate(0, -2, 0), now)
	in := order.AddDate(0, 0, s.faker.Number(0, seedStayMaxDays))
	out := in.AddDate(0, 0, s.faker.Number(1, seedStayMaxDays))

	return order.Format(seedDateForm), in.Format(seedDateForm), out.Format(seedDateForm)
}

func roomNumber(i int) string {
	return fmt.Sprintf("%03d", 100+i)
}
