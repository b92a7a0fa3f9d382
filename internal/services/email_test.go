package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

type mockMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *mockMailer) Send(_ context.Context, to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type mockRenderer struct {
	name string
	err  error
}

func (m *mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	m.name = templateName
	if m.err != nil {
		return "", "", "", m.err
	}
	d := data.(*domain.BookingConfirmationEmailData)
	return "Booked " + d.EventTitle, "<p>" + d.BookingID + "</p>", d.BookingID, nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	data := &domain.BookingConfirmationEmailData{Email: "ada@example.com", EventTitle: "JSConf EU", BookingID: "bk-1"}

	t.Run("renders and sends", func(t *testing.T) {
		mailer, renderer := &mockMailer{}, &mockRenderer{}
		svc := NewEmailService(mailer, renderer, testLogger)
		require.NoError(t, svc.SendBookingConfirmation(context.Background(), data))
		require.Equal(t, "booking_confirmation", renderer.name)
		require.Equal(t, "ada@example.com", mailer.to)
		require.Equal(t, "Booked JSConf EU", mailer.subject)
		require.Equal(t, "bk-1", mailer.text)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{}, &mockRenderer{}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(context.Background(), nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &mockMailer{}
		svc := NewEmailService(mailer, &mockRenderer{err: errors.New("bad template")}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
		require.Empty(t, mailer.to)
	})

	t.Run("send error", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{err: errors.New("throttled")}, &mockRenderer{}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
	})
}
