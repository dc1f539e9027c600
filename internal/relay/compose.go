// internal/relay/compose.go
//
// Feedback relay: message composition.
//
// Context
//   Both emails are rendered from embedded templates, once as HTML
//   (html/template, so customer text is escaped) and once as plain text.
//   Optional fields the customer skipped read "Not specified"; an empty
//   improvement list reads "None selected".
//
//------------------------------------------------------------------------------

package relay

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/mail"
	"github.com/yanizio/feedback/internal/requestinfo"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	notSpecified = "Not specified"
	brand        = "Green Thumb Landscaping Services"
	timeLayout   = "Monday, 2 January 2006 at 15:04 MST"

	confirmationSubject  = "Thank You for Your Feedback - Garden Services"
	confirmationFromName = "Garden Services"
)

// letter is the data every template sees.
type letter struct {
	Name         string
	Email        string
	Rating       int
	Stars        string
	ServiceType  string
	Satisfaction string
	Recommend    string
	Areas        []string
	Message      string
	SubmittedAt  string
	Origin       []string
	Brand        string
}

type templates struct {
	notificationHTML *htmltemplate.Template
	notificationText *texttemplate.Template
	confirmationHTML *htmltemplate.Template
	confirmationText *texttemplate.Template
}

func parseTemplates() (*templates, error) {
	var (
		t   templates
		err error
	)
	if t.notificationHTML, err = htmltemplate.ParseFS(templatesFS, "templates/notification.html.tmpl"); err != nil {
		return nil, err
	}
	if t.notificationText, err = texttemplate.ParseFS(templatesFS, "templates/notification.txt.tmpl"); err != nil {
		return nil, err
	}
	if t.confirmationHTML, err = htmltemplate.ParseFS(templatesFS, "templates/confirmation.html.tmpl"); err != nil {
		return nil, err
	}
	if t.confirmationText, err = texttemplate.ParseFS(templatesFS, "templates/confirmation.txt.tmpl"); err != nil {
		return nil, err
	}
	return &t, nil
}

// newLetter fills template data from a normalised submission.
func (s *Service) newLetter(ctx context.Context, sub feedback.Submission) letter {
	stars := sub.Rating.Stars()
	return letter{
		Name:         sub.Name,
		Email:        sub.Email,
		Rating:       stars,
		Stars:        feedback.StarBar(stars),
		ServiceType:  orNotSpecified(sub.ServiceType),
		Satisfaction: orNotSpecified(sub.ServiceSatisfaction),
		Recommend:    orNotSpecified(feedback.RecommendLabel(sub.WouldRecommend)),
		Areas:        sub.AreasToImprove,
		Message:      sub.Message,
		SubmittedAt:  s.now().Format(timeLayout),
		Origin:       requestinfo.FromContext(ctx).Lines(),
		Brand:        brand,
	}
}

// NotificationSubject is the operator email's subject line.
func NotificationSubject(name string, rating int) string {
	return fmt.Sprintf("New Feedback: %s - %d⭐ Rating", name, rating)
}

func (s *Service) composeNotification(l letter) (mail.Message, error) {
	html, text, err := render(s.tmpl.notificationHTML, s.tmpl.notificationText, l)
	if err != nil {
		return mail.Message{}, fmt.Errorf("notification: %w", err)
	}
	return mail.Message{
		From:    mail.Address{Name: s.cfg.FromName, Email: s.cfg.FromAddress},
		To:      []string{s.cfg.OperatorAddress},
		ReplyTo: l.Email,
		Subject: NotificationSubject(l.Name, l.Rating),
		HTML:    html,
		Text:    text,
	}, nil
}

func (s *Service) composeConfirmation(l letter) (mail.Message, error) {
	html, text, err := render(s.tmpl.confirmationHTML, s.tmpl.confirmationText, l)
	if err != nil {
		return mail.Message{}, fmt.Errorf("confirmation: %w", err)
	}
	return mail.Message{
		From:    mail.Address{Name: confirmationFromName, Email: s.cfg.FromAddress},
		To:      []string{l.Email},
		Subject: confirmationSubject,
		HTML:    html,
		Text:    text,
	}, nil
}

func render(h *htmltemplate.Template, t *texttemplate.Template, data letter) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := t.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func orNotSpecified(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}
