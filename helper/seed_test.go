package helper

import (
	"context"
	"dashboard/config"
	bookingDto "dashboard/internal/domains/booking/model/dto"
	bookingMocks "dashboard/internal/domains/booking/service/mocks"
	contactDto "dashboard/internal/domains/contact/model/dto"
	contactMocks "dashboard/internal/domains/contact/service/mocks"
	roomDto "dashboard/internal/domains/room/model/dto"
	roomMocks "dashboard/internal/domains/room/service/mocks"
	userDto "dashboard/internal/domains/user/model/dto"
	userMocks "dashboard/internal/domains/user/service/mocks"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type seedFixture struct {
	seeder   *Seeder
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	contacts *contactMocks.MockContact
	users    *userMocks.MockUser
}

func newSeedFixture(t *testing.T, count int) seedFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Seed.AdminEmail = "user@test.com"
	cfg.Seed.AdminPassword = "123456"
	cfg.Seed.AdminName = "Admin"
	cfg.Seed.Count = count

	f := seedFixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		contacts: contactMocks.NewMockContact(ctrl),
		users:    userMocks.NewMockUser(ctrl),
	}
	f.seeder = NewSeeder(cfg, f.bookings, f.rooms, f.contacts, f.users)

	return f
}

func TestSeeder_Run(t *testing.T) {
	f := newSeedFixture(t, 2)

	var admin userDto.CreateUserRequest

	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req userDto.CreateUserRequest) (userDto.UserResponse, error) {
			admin = req

			assert.Equal(t, seedActor, ctx.Value(constant.ContextKeyUserID))

			return userDto.UserResponse{}, nil
		})

	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, req roomDto.CreateRoomRequest) (roomDto.RoomResponse, error) {
			assert.Empty(t, validator.Errors(&req))

			return roomDto.RoomResponse{}, nil
		})
	f.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
			assert.Empty(t, validator.Errors(&req))

			return bookingDto.BookingResponse{}, nil
		})
	f.contacts.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, req contactDto.CreateContactRequest) (contactDto.ContactResponse, error) {
			assert.Empty(t, validator.Errors(&req))

			return contactDto.ContactResponse{}, nil
		})
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, req userDto.CreateUserRequest) (userDto.UserResponse, error) {
			assert.Empty(t, validator.Errors(&req))
			assert.NotEqual(t, seedAdminID, req.EmployeeID)

			return userDto.UserResponse{}, nil
		})

	require.NoError(t, f.seeder.Run(context.Background()))

	assert.Equal(t, "user@test.com", admin.Email)
	assert.Equal(t, "123456", admin.Password)
	assert.Equal(t, seedAdminID, admin.EmployeeID)
}

func TestSeeder_SkipsExistingRecords(t *testing.T) {
	f := newSeedFixture(t, 1)

	conflict := failure.Conflict("already exists")

	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).Return(userDto.UserResponse{}, conflict)
	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(roomDto.RoomResponse{}, conflict)
	f.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(bookingDto.BookingResponse{}, conflict)
	f.contacts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(contactDto.ContactResponse{}, conflict)

	assert.NoError(t, f.seeder.Run(context.Background()))
}

func TestSeeder_StopsOnFailure(t *testing.T) {
	f := newSeedFixture(t, 3)

	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(userDto.UserResponse{}, nil)
	f.rooms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(roomDto.RoomResponse{}, errors.New("connection refused"))

	err := f.seeder.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed room")
}
