package mailer

import (
	"context"
	"fmt"

	"villa-booking/internal/data/entity"
	"villa-booking/internal/usecase"
	"villa-booking/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer delivers booking notifications over SMTP. It implements
// usecase.Notifier; callers treat delivery as best-effort.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *Mailer) Notify(ctx context.Context, email string, booking *entity.Booking, kind usecase.NotificationKind) error {
	subject, body := m.render(booking, kind)

	msg := mail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return fmt.Errorf("set mail sender: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("set mail recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.config.Host,
		mail.WithPort(m.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.User),
		mail.WithPassword(m.config.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s mail: %w", string(kind), err)
	}

	m.log.Info("Notification sent",
		zap.String("kind", string(kind)),
		zap.String("booking_id", booking.ID.String()),
	)

	return nil
}

func (m *Mailer) render(booking *entity.Booking, kind usecase.NotificationKind) (string, string) {
	stay := fmt.Sprintf("%s to %s", booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"))

	switch kind {
	case usecase.NotificationBookingConfirmed:
		return "Your booking is confirmed",
			fmt.Sprintf("Your booking %s for %s is confirmed. We look forward to hosting you.", booking.ID.String(), stay)
	case usecase.NotificationPaymentReceived:
		return "Payment received",
			fmt.Sprintf("We received your payment for booking %s (%s). The booking will be confirmed shortly.", booking.ID.String(), stay)
	default:
		return "Booking update",
			fmt.Sprintf("There is an update on your booking %s (%s).", booking.ID.String(), stay)
	}
}
