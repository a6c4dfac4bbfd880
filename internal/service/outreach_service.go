package service

import (
	"strings"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/internal/mail"
)

// OutreachService covers the two public flows that do send email: the
// contact form and job applications. Bookings deliberately do not notify.
type OutreachService struct {
	jobs    domain.JobRepository
	mailer  mail.Sender
	inboxTo string // where contact messages land
}

func NewOutreachService(jobs domain.JobRepository, mailer mail.Sender, inboxTo string) *OutreachService {
	return &OutreachService{jobs: jobs, mailer: mailer, inboxTo: inboxTo}
}

func (s *OutreachService) Contact(name, email, message string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(message) == "" {
		return domain.ErrInvalidInput
	}
	body, err := mail.Render("contact", map[string]any{
		"Name": name, "Email": email, "Message": message,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(s.inboxTo, "New contact message", body)
}

func (s *OutreachService) Apply(jobID, name, email, coverNote string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return domain.ErrInvalidInput
	}
	j, err := s.jobs.FindByID(jobID)
	if err != nil {
		return err
	}
	if j == nil {
		return domain.ErrNotFound
	}
	body, err := mail.Render("application", map[string]any{
		"Name": name, "JobTitle": j.Title,
	})
	if err != nil {
		return err
	}
	if err := s.mailer.Send(email, "Application received: "+j.Title, body); err != nil {
		return err
	}
	// forward the note to the hiring inbox as well
	notice, err := mail.Render("contact", map[string]any{
		"Name": name, "Email": email, "Message": "Application for " + j.Title + ": " + coverNote,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(s.inboxTo, "New application: "+j.Title, notice)
}
