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

type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) LatestTemplate(ctx context.Context, t models.TemplateType) (models.EmailTemplate, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(models.EmailTemplate), args.Error(1)
}

func (m *MockEmailRepository) SaveTemplate(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(models.EmailTemplate), args.Error(1)
}

func (m *MockEmailRepository) GetFormSettings(ctx context.Context) (models.FormSettings, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.FormSettings), args.Bool(1), args.Error(2)
}

func (m *MockEmailRepository) SaveFormSettings(ctx context.Context, fs models.FormSettings) error {
	args := m.Called(ctx, fs)
	return args.Error(0)
}

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

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg models.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type emailFixture struct {
	svc    *EmailService
	repo   *MockEmailRepository
	guests *MockGuestRepository
	rsvps  *MockRsvpRepository
	sender *MockSender
}

func newEmailFixture(adminEmail string) emailFixture {
	f := emailFixture{
		repo:   new(MockEmailRepository),
		guests: new(MockGuestRepository),
		rsvps:  new(MockRsvpRepository),
		sender: new(MockSender),
	}
	f.svc = NewEmailService(slogdiscard.NewDiscardLogger(), f.repo, f.guests, f.rsvps, f.sender, adminEmail)
	return f
}

func TestEmailService_Template(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateBlast).Return(models.EmailTemplate{}, models.ErrNotFound).Once()
	tpl, err := f.svc.Template(ctx, models.TemplateBlast)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBlastSubject, tpl.Subject)

	stored := models.EmailTemplate{ID: 7, Type: models.TemplateConfirmation, Subject: "Thanks", Body: "<p>x</p>"}
	f.repo.On("LatestTemplate", mock.Anything, models.TemplateConfirmation).Return(stored, nil).Once()
	tpl, err = f.svc.Template(ctx, models.TemplateConfirmation)
	require.NoError(t, err)
	assert.Equal(t, stored, tpl)

	_, err = f.svc.Template(ctx, "reminder")
	assert.ErrorIs(t, err, models.ErrValidation)

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateBlast).Return(models.EmailTemplate{}, errors.New("db down")).Once()
	_, err = f.svc.Template(ctx, models.TemplateBlast)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrValidation)

	f.repo.AssertExpectations(t)
}

func TestEmailService_SaveTemplate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        models.EmailTemplate
		mockSetup func(f emailFixture)
		wantErr   bool
		errIs     error
	}{
		{
			name: "sanitized and saved",
			in: models.EmailTemplate{
				Type:    models.TemplateConfirmation,
				Subject: "  Thanks  ",
				Body:    `<p>Hi</p><script>alert(1)</script>[[form_data]]`,
			},
			mockSetup: func(f emailFixture) {
				want := models.EmailTemplate{Type: models.TemplateConfirmation, Subject: "Thanks", Body: "<p>Hi</p>[[form_data]]"}
				f.repo.On("SaveTemplate", mock.Anything, want).Return(models.EmailTemplate{ID: 1}, nil).Once()
			},
		},
		{
			name:    "unknown type",
			in:      models.EmailTemplate{Type: "reminder", Subject: "x", Body: "<p>x</p>"},
			wantErr: true,
			errIs:   models.ErrValidation,
		},
		{
			name:    "empty body after sanitizing",
			in:      models.EmailTemplate{Type: models.TemplateBlast, Subject: "x", Body: "<script>x</script>"},
			wantErr: true,
			errIs:   models.ErrValidation,
		},
		{
			name: "store failure",
			in:   models.EmailTemplate{Type: models.TemplateBlast, Subject: "x", Body: "<p>x</p>"},
			mockSetup: func(f emailFixture) {
				f.repo.On("SaveTemplate", mock.Anything, mock.Anything).Return(models.EmailTemplate{}, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmailFixture("")
			if tt.mockSetup != nil {
				tt.mockSetup(f)
			}

			_, err := f.svc.SaveTemplate(ctx, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}

			f.repo.AssertExpectations(t)
		})
	}
}

func TestEmailService_SendConfirmation_IncludesPartner(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	ann := models.RsvpResponse{ID: 1, RsvpSubmission: models.RsvpSubmission{
		Name: "Ann", Email: "ann@example.com", Attending: models.AnswerYes, Guests: 0, Song: "Dancing <Queen>",
	}}
	bob := models.RsvpResponse{ID: 2, RsvpSubmission: models.RsvpSubmission{
		Name: "Bob", Email: "bob@example.com", Attending: models.AnswerNo,
	}}

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateConfirmation).Return(models.EmailTemplate{}, models.ErrNotFound).Once()
	f.repo.On("GetFormSettings", mock.Anything).Return(models.FormSettings{SongRequestLabel: "Your song"}, true, nil).Once()
	f.guests.On("FindGuestByName", mock.Anything, "Ann").Return(models.Guest{Name: "Ann", PartnerName: "Bob"}, nil).Once()
	f.rsvps.On("FindRsvpByName", mock.Anything, "Bob").Return(bob, nil).Once()

	var sent models.EmailMessage
	f.sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(models.EmailMessage)
	}).Return(nil).Once()

	require.NoError(t, f.svc.SendConfirmation(ctx, ann))

	assert.Equal(t, "ann@example.com", sent.To)
	assert.Equal(t, models.DefaultConfirmationSubject, sent.Subject)
	assert.NotContains(t, sent.HTML, models.FormDataPlaceholder)
	assert.Contains(t, sent.HTML, "<strong>Your song:</strong> Dancing &lt;Queen&gt;")
	assert.Contains(t, sent.HTML, "<strong>Full Name:</strong> Ann")
	assert.Contains(t, sent.HTML, "Partner's Information")
	assert.Contains(t, sent.HTML, "<strong>Full Name:</strong> Bob")
	assert.NotEmpty(t, sent.Text)

	f.repo.AssertExpectations(t)
	f.guests.AssertExpectations(t)
	f.rsvps.AssertExpectations(t)
	f.sender.AssertExpectations(t)
}

func TestEmailService_SendConfirmation_NoPartnerWithoutResponse(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	ann := models.RsvpResponse{RsvpSubmission: models.RsvpSubmission{Name: "Ann", Email: "ann@example.com", Attending: models.AnswerNo}}

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateConfirmation).
		Return(models.EmailTemplate{Type: models.TemplateConfirmation, Subject: "See you", Body: "<p>[[form_data]]</p>"}, nil).Once()
	f.repo.On("GetFormSettings", mock.Anything).Return(models.FormSettings{}, false, nil).Once()
	f.guests.On("FindGuestByName", mock.Anything, "Ann").Return(models.Guest{Name: "Ann", PartnerName: "Bob"}, nil).Once()
	f.rsvps.On("FindRsvpByName", mock.Anything, "Bob").Return(models.RsvpResponse{}, models.ErrNotFound).Once()
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m models.EmailMessage) bool {
		return m.Subject == "See you" && m.ToName == "Ann"
	})).Return(errors.New("smtp down")).Once()

	err := f.svc.SendConfirmation(ctx, ann)
	require.Error(t, err)

	f.sender.AssertExpectations(t)
}

func TestEmailService_SendTest(t *testing.T) {
	ctx := context.Background()

	t.Run("uses sample guest and admin address", func(t *testing.T) {
		f := newEmailFixture("admin@example.com")

		f.repo.On("LatestTemplate", mock.Anything, models.TemplateConfirmation).Return(models.EmailTemplate{}, models.ErrNotFound).Once()
		f.rsvps.On("LatestRsvpWithEmail", mock.Anything).Return(models.RsvpResponse{}, models.ErrNotFound).Once()
		f.repo.On("GetFormSettings", mock.Anything).Return(models.FormSettings{}, false, nil).Once()
		f.guests.On("FindGuestByName", mock.Anything, "Test Guest").Return(models.Guest{}, models.ErrNotFound).Once()
		f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m models.EmailMessage) bool {
			return m.To == "admin@example.com" &&
				m.Subject == "[TEST] "+models.DefaultConfirmationSubject
		})).Return(nil).Once()

		require.NoError(t, f.svc.SendTest(ctx, ""))
		f.sender.AssertExpectations(t)
	})

	t.Run("no address", func(t *testing.T) {
		f := newEmailFixture("")
		err := f.svc.SendTest(ctx, " ")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("invalid address", func(t *testing.T) {
		f := newEmailFixture("")
		err := f.svc.SendTest(ctx, "not-an-email")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestEmailService_Blast(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	guests := []models.Guest{
		{ID: 1, Name: "Ann", Email: "ann@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
		{ID: 3, Name: "Cy", Email: "cy@example.com"},
	}

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateBlast).
		Return(models.EmailTemplate{Type: models.TemplateBlast, Subject: "Update", Body: "<p>News</p>[[form_data]]"}, nil).Once()
	f.guests.On("ListGuestsWithEmail", mock.Anything).Return(guests, nil).Once()
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m models.EmailMessage) bool { return m.To == "bob@example.com" })).
		Return(errors.New("bounced")).Once()
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m models.EmailMessage) bool {
		return m.To != "bob@example.com" && m.HTML == "<p>News</p>" && m.Subject == "Update"
	})).Return(nil).Twice()

	result, err := f.svc.Blast(ctx, models.EmailTemplate{})
	require.NoError(t, err)
	assert.Equal(t, models.BlastResult{Total: 3, Sent: 2}, result)

	f.sender.AssertExpectations(t)
}

func TestEmailService_Preview(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	latest := models.RsvpResponse{RsvpSubmission: models.RsvpSubmission{Name: "Ann", Email: "ann@example.com", Attending: models.AnswerYes, Guests: 2}}

	f.rsvps.On("LatestRsvpWithEmail", mock.Anything).Return(latest, nil).Once()
	f.repo.On("GetFormSettings", mock.Anything).Return(models.FormSettings{}, false, nil).Once()
	f.guests.On("FindGuestByName", mock.Anything, "Ann").Return(models.Guest{Name: "Ann"}, nil).Once()

	msg, err := f.svc.Preview(ctx, models.EmailTemplate{Subject: "Hi", Body: "<p>Dear guest</p>[[form_data]]"})
	require.NoError(t, err)

	assert.Equal(t, "Hi", msg.Subject)
	assert.Contains(t, msg.HTML, "<p>Dear guest</p><ul>")
	assert.Contains(t, msg.HTML, "<strong>Number of Additional Guests:</strong> 2")
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestFormData_NotAttendingHidesDetails(t *testing.T) {
	got := formData(models.DefaultFormSettings(), models.RsvpSubmission{
		Name: "Ann", Email: "ann@example.com", Attending: models.AnswerNo, Song: "x", SpecialNotes: "congrats",
	})

	assert.Contains(t, got, "<strong>Will you be attending?:</strong> No")
	assert.Contains(t, got, "congrats")
	assert.NotContains(t, got, "dance floor")
}

func TestEmailService_BlastOverride(t *testing.T) {
	ctx := context.Background()
	f := newEmailFixture("")

	f.repo.On("LatestTemplate", mock.Anything, models.TemplateBlast).Return(models.EmailTemplate{}, models.ErrNotFound).Once()
	f.guests.On("ListGuestsWithEmail", mock.Anything).Return([]models.Guest{{ID: 1, Name: "Ann", Email: "ann@example.com"}}, nil).Once()
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m models.EmailMessage) bool {
		return m.Subject == "Shuttle times" && m.HTML == "<p>Bus at 3pm</p>"
	})).Return(nil).Once()

	result, err := f.svc.Blast(ctx, models.EmailTemplate{Subject: " Shuttle times ", Body: "<p>Bus at 3pm</p>"})
	require.NoError(t, err)
	assert.Equal(t, models.BlastResult{Total: 1, Sent: 1}, result)

	f.sender.AssertExpectations(t)
}
