package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalid = errors.New("Invalid data provided.")

// Message is a visitor's contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Mailer delivers a composed email.
type Mailer interface {
	Send(ctx context.Context, subject, body, replyTo string) error
}

type Service struct {
	mailer   Mailer
	log      *zap.Logger
	validate *validator.Validate
}

func NewService(mailer Mailer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{mailer: mailer, log: log, validate: validator.New()}
}

// Submit validates m and forwards it to the site owner.
func (s *Service) Submit(ctx context.Context, m Message) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	if err := s.validate.Struct(m); err != nil {
		return ErrInvalid
	}

	subject := fmt.Sprintf("New portfolio message from %s", m.Name)
	body := fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\n%s\r\n", m.Name, m.Email, m.Message)

	if err := s.mailer.Send(ctx, subject, body, m.Email); err != nil {
		s.log.Error("contact email failed", zap.String("from", m.Email), zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
