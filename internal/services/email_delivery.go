package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/mail"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

const maxRecipients = 500

// SendEmailInput addresses a drafted email. Recipients are the union of To
// and the members of GroupID that have an email address.
type SendEmailInput struct {
	To      []string   `json:"to" validate:"max=500,dive,email"`
	GroupID *uuid.UUID `json:"group_id"`
	Subject string     `json:"subject" validate:"max=300"`
}

type EmailDelivery struct {
	ContentID  uuid.UUID `json:"content_id"`
	Recipients int       `json:"recipients"`
	MessageID  string    `json:"message_id,omitempty"`
}

type EmailDeliveryService interface {
	SendContent(ctx context.Context, contentID uuid.UUID, in SendEmailInput) (*EmailDelivery, error)
}

type emailDeliveryService struct {
	db          *gorm.DB
	log         *logger.Logger
	churchRepo  repos.ChurchRepo
	groupRepo   repos.GroupRepo
	contentRepo repos.GeneratedContentRepo
	sender      mail.Sender
}

func NewEmailDeliveryService(
	db *gorm.DB,
	log *logger.Logger,
	churchRepo repos.ChurchRepo,
	groupRepo repos.GroupRepo,
	contentRepo repos.GeneratedContentRepo,
	sender mail.Sender,
) EmailDeliveryService {
	return &emailDeliveryService{
		db:          db,
		log:         log.With("service", "EmailDeliveryService"),
		churchRepo:  churchRepo,
		groupRepo:   groupRepo,
		contentRepo: contentRepo,
		sender:      sender,
	}
}

// SendContent mails a generated email draft. Only email drafts can be sent.
func (es *emailDeliveryService) SendContent(ctx context.Context, contentID uuid.UUID, in SendEmailInput) (*EmailDelivery, error) {
	churchID, err := churchFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	row, err := es.contentRepo.Get(ctx, nil, churchID, contentID)
	if err != nil {
		return nil, notFound(err, "content_not_found", "get content")
	}
	if row.Kind != domain.ContentKindEmail {
		return nil, apierr.BadRequest("not_an_email", "only email drafts can be sent")
	}

	to, err := es.recipients(ctx, churchID, in)
	if err != nil {
		return nil, err
	}
	if len(to) == 0 {
		return nil, apierr.BadRequest("no_recipients", "no recipients with an email address")
	}
	if len(to) > maxRecipients {
		return nil, apierr.BadRequest("too_many_recipients", "at most 500 recipients per send")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = row.Title
	}
	msg := mail.Message{
		To:         to,
		Subject:    subject,
		Text:       row.Body,
		Categories: []string{"shepherd", domain.ContentKindEmail},
	}
	if church, err := es.churchRepo.GetByID(ctx, nil, churchID); err == nil {
		msg.Categories = append(msg.Categories, church.Slug)
	}

	res, err := es.sender.Send(ctx, msg)
	if err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			return nil, &apierr.Error{Status: http.StatusServiceUnavailable, Code: "mail_not_configured", Message: "Email Not Configured", Err: err}
		}
		es.log.Warn("email send failed", "content_id", contentID, "recipients", len(to), "error", err)
		return nil, &apierr.Error{Status: http.StatusBadGateway, Code: "send_failed", Message: "Send Failed", Err: err}
	}
	es.log.Info("email sent", "content_id", contentID, "recipients", len(to), "message_id", res.MessageID)
	return &EmailDelivery{ContentID: contentID, Recipients: len(to), MessageID: res.MessageID}, nil
}

// recipients dedupes addresses case-insensitively, keeping first-seen order.
func (es *emailDeliveryService) recipients(ctx context.Context, churchID uuid.UUID, in SendEmailInput) ([]mail.Address, error) {
	seen := map[string]bool{}
	var out []mail.Address
	add := func(email, name string) {
		email = strings.TrimSpace(email)
		key := strings.ToLower(email)
		if email == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, mail.Address{Email: email, Name: name})
	}
	for _, e := range in.To {
		add(e, "")
	}
	if in.GroupID != nil {
		if _, err := es.groupRepo.Get(ctx, nil, churchID, *in.GroupID); err != nil {
			return nil, notFound(err, "group_not_found", "get group")
		}
		members, err := es.groupRepo.ListMembers(ctx, nil, *in.GroupID)
		if err != nil {
			return nil, err
		}
		for _, gm := range members {
			if gm.Member != nil {
				add(gm.Member.Email, strings.TrimSpace(gm.Member.FirstName+" "+gm.Member.LastName))
			}
		}
	}
	return out, nil
}
