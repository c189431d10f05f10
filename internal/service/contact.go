package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/folio/folio-api/internal/mail"
	"github.com/folio/folio-api/internal/model"
)

// ContactService forwards contact-form messages to the site owner. Nothing is persisted.
type ContactService struct {
	mailer   mail.Mailer
	receiver string
}

func NewContactService(mailer mail.Mailer, receiver string) *ContactService {
	return &ContactService{mailer: mailer, receiver: receiver}
}

func (s *ContactService) Send(ctx context.Context, req model.ContactRequest) (model.ContactResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Message) == "" {
		return model.ContactResult{}, invalid("message", "Missing required fields: email and message")
	}

	receipt, err := s.mailer.Send(ctx, mail.Message{
		To:      []string{s.receiver},
		ReplyTo: email,
		Subject: contactSubject(req),
		HTML:    contactBody(req, email),
	})
	if err != nil {
		return model.ContactResult{}, err
	}

	return model.ContactResult{MessageID: receipt.ID, Accepted: receipt.Accepted}, nil
}

func senderName(req model.ContactRequest) string {
	if name := strings.TrimSpace(req.Name); name != "" {
		return name
	}
	return "Anonymous"
}

func contactSubject(req model.ContactRequest) string {
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		return fmt.Sprintf("Contact: %s — %s", subject, senderName(req))
	}
	return "New contact from " + senderName(req)
}

func contactBody(req model.ContactRequest, email string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(senderName(req)))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(email))
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", html.EscapeString(subject))
	}
	b.WriteString("<p><strong>Message:</strong></p>\n")
	message := strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br/>")
	fmt.Fprintf(&b, "<p>%s</p>\n", message)
	return b.String()
}
