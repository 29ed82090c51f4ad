package services

import (
	"context"
	"errors"
	"testing"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) CreateGuest(ctx context.Context, g models.Guest) (models.Guest, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(models.Guest), args.Error(1)
}

func (m *MockGuestRepository) UpdateGuest(ctx context.Context, g models.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) DeleteGuest(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGuestRepository) GetGuest(ctx context.Context, id int64) (models.Guest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindGuestByName(ctx context.Context, name string) (models.Guest, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindGuestsByNames(ctx context.Context, names []string) (map[string]models.Guest, error) {
	args := m.Called(ctx, names)
	return args.Get(0).(map[string]models.Guest), args.Error(1)
}

func (m *MockGuestRepository) ListGuests(ctx context.Context) ([]models.Guest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Guest), args.Error(1)
}

func (m *MockGuestRepository) ListGuestsWithEmail(ctx context.Context) ([]models.Guest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Guest), args.Error(1)
}

func (m *MockGuestRepository) SearchGuests(ctx context.Context, fragment string, limit int) ([]models.Guest, error) {
	args := m.Called(ctx, fragment, limit)
	return args.Get(0).([]models.Guest), args.Error(1)
}

type MockRsvpRepository struct {
	mock.Mock
}

func (m *MockRsvpRepository) UpsertRsvp(ctx context.Context, s models.RsvpSubmission) (models.RsvpResponse, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.RsvpResponse), args.Error(1)
}

func (m *MockRsvpRepository) ListRsvps(ctx context.Context) ([]models.RsvpResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RsvpResponse), args.Error(1)
}

func (m *MockRsvpRepository) DeleteRsvp(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRsvpRepository) FindRsvpByName(ctx context.Context, name string) (models.RsvpResponse, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.RsvpResponse), args.Error(1)
}

func (m *MockRsvpRepository) LatestRsvpWithEmail(ctx context.Context) (models.RsvpResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RsvpResponse), args.Error(1)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) SendConfirmation(ctx context.Context, r models.RsvpResponse) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func validSubmission() models.RsvpSubmission {
	return models.RsvpSubmission{
		Name:      " Ann Smith ",
		Email:     "ann@example.com",
		Attending: "YES",
		Guests:    1,
	}
}

func TestRsvpService_Submit(t *testing.T) {
	ctx := context.Background()

	normalized := validSubmission()
	normalized.Normalize()
	stored := models.RsvpResponse{ID: 10, RsvpSubmission: normalized}

	tests := []struct {
		name      string
		in        models.RsvpSubmission
		mockSetup func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer)
		wantErr   bool
		errIs     error
		reason    string
		noWrite   bool
	}{
		{
			name: "accepted",
			in:   validSubmission(),
			mockSetup: func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer) {
				g.On("FindGuestByName", mock.Anything, "Ann Smith").Return(models.Guest{ID: 1, Name: "ann smith", PlusOneAllowed: true}, nil).Once()
				r.On("UpsertRsvp", mock.Anything, normalized).Return(stored, nil).Once()
				c.On("SendConfirmation", mock.Anything, stored).Return(nil).Once()
			},
		},
		{
			name: "email failure does not fail the submission",
			in:   validSubmission(),
			mockSetup: func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer) {
				g.On("FindGuestByName", mock.Anything, "Ann Smith").Return(models.Guest{ID: 1, PlusOneAllowed: true}, nil).Once()
				r.On("UpsertRsvp", mock.Anything, normalized).Return(stored, nil).Once()
				c.On("SendConfirmation", mock.Anything, stored).Return(errors.New("resend down")).Once()
			},
		},
		{
			name:    "missing fields",
			in:      models.RsvpSubmission{Name: "Ann"},
			wantErr: true,
			errIs:   models.ErrValidation,
			noWrite: true,
		},
		{
			name: "unknown guest writes nothing",
			in:   validSubmission(),
			mockSetup: func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer) {
				g.On("FindGuestByName", mock.Anything, "Ann Smith").Return(models.Guest{}, models.ErrNotFound).Once()
			},
			wantErr: true,
			errIs:   models.ErrGuestNotFound,
			noWrite: true,
		},
		{
			name: "plus one not allowed",
			in:   validSubmission(),
			mockSetup: func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer) {
				g.On("FindGuestByName", mock.Anything, "Ann Smith").Return(models.Guest{ID: 1, PlusOneAllowed: false}, nil).Once()
			},
			wantErr: true,
			errIs:   models.ErrForbidden,
			reason:  plusOneDenied,
			noWrite: true,
		},
		{
			name: "store failure",
			in:   validSubmission(),
			mockSetup: func(g *MockGuestRepository, r *MockRsvpRepository, c *MockConfirmer) {
				g.On("FindGuestByName", mock.Anything, "Ann Smith").Return(models.Guest{ID: 1, PlusOneAllowed: true}, nil).Once()
				r.On("UpsertRsvp", mock.Anything, normalized).Return(models.RsvpResponse{}, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guests := new(MockGuestRepository)
			rsvps := new(MockRsvpRepository)
			confirm := new(MockConfirmer)
			if tt.mockSetup != nil {
				tt.mockSetup(guests, rsvps, confirm)
			}

			svc := NewRsvpService(slogdiscard.NewDiscardLogger(), guests, rsvps, confirm)

			got, err := svc.Submit(ctx, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				if tt.reason != "" {
					var fe *models.ForbiddenError
					require.ErrorAs(t, err, &fe)
					assert.Equal(t, tt.reason, fe.Reason)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored, got)
			}
			if tt.noWrite {
				rsvps.AssertNotCalled(t, "UpsertRsvp", mock.Anything, mock.Anything)
			}

			guests.AssertExpectations(t)
			rsvps.AssertExpectations(t)
			confirm.AssertExpectations(t)
		})
	}
}

func TestRsvpService_NoGuestsWithoutPlusOne(t *testing.T) {
	guests := new(MockGuestRepository)
	rsvps := new(MockRsvpRepository)
	confirm := new(MockConfirmer)

	in := models.RsvpSubmission{Name: "Bob", Email: "bob@example.com", Attending: "no"}
	guests.On("FindGuestByName", mock.Anything, "Bob").Return(models.Guest{ID: 2}, nil).Once()
	rsvps.On("UpsertRsvp", mock.Anything, in).Return(models.RsvpResponse{ID: 3, RsvpSubmission: in}, nil).Once()
	confirm.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewRsvpService(slogdiscard.NewDiscardLogger(), guests, rsvps, confirm)

	got, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestRsvpService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	rsvps := new(MockRsvpRepository)
	svc := NewRsvpService(slogdiscard.NewDiscardLogger(), new(MockGuestRepository), rsvps, new(MockConfirmer))

	rsvps.On("ListRsvps", mock.Anything).Return([]models.RsvpResponse{{ID: 2}, {ID: 1}}, nil).Once()
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	rsvps.On("DeleteRsvp", mock.Anything, int64(9)).Return(models.ErrNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, 9), models.ErrNotFound)

	rsvps.On("DeleteRsvp", mock.Anything, int64(2)).Return(nil).Once()
	assert.NoError(t, svc.Delete(ctx, 2))

	rsvps.AssertExpectations(t)
}
