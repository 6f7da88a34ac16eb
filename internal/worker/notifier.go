package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hostel-system/internal/domain/notification"
	"hostel-system/internal/retry"
)

// Audience selects who an event fans out to.
type Audience int

const (
	// HostelStudents targets every student of the event's hostel except the
	// actor; a nil hostel means every student (global poll).
	HostelStudents Audience = iota
	// HostelStaff targets the hostel's wardens plus all admins.
	HostelStaff
	// SingleUser targets TargetID only.
	SingleUser
)

type Event struct {
	Audience Audience
	HostelID *string
	ActorID  string
	TargetID string
	Title    string
	Message  string
	Type     string
	Link     string
}

// Notifier drains the event channel and writes in-app notifications, queuing
// an email for recipients who opted in. Dispatch is best effort: a failed
// event is logged and dropped, it never surfaces to the request that sent it.
type Notifier struct {
	ch   <-chan Event
	repo notification.Repository
	log  *slog.Logger
}

func NewNotifier(ch <-chan Event, repo notification.Repository, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{ch: ch, repo: repo, log: log}
}

func (n *Notifier) Run(ctx context.Context) {
	n.log.Info("notifier started")
	for {
		select {
		case <-ctx.Done():
			n.log.Info("notifier stopped")
			return
		case ev := <-n.ch:
			n.dispatch(ctx, ev)
		}
	}
}

func (n *Notifier) dispatch(ctx context.Context, ev Event) {
	recipients, err := n.resolve(ctx, ev)
	if err != nil {
		n.log.Error("notification audience lookup failed", "err", err, "title", ev.Title)
		return
	}

	for _, rcpt := range recipients {
		msg := &notification.Notification{
			ID:      uuid.NewString(),
			UserID:  rcpt.UserID,
			Title:   ev.Title,
			Message: ev.Message,
			Type:    ev.Type,
		}
		if ev.Link != "" {
			link := ev.Link
			msg.Link = &link
		}

		err := retry.DoWithRetry(ctx, 3, 100*time.Millisecond, func() error {
			return n.repo.Create(ctx, msg)
		})
		if err != nil {
			n.log.Error("notification insert failed", "err", err, "user", rcpt.UserID)
			continue
		}

		if rcpt.WantsEmail {
			n.queueEmail(rcpt, ev)
		}
	}
}

func (n *Notifier) resolve(ctx context.Context, ev Event) ([]notification.Recipient, error) {
	switch ev.Audience {
	case HostelStudents:
		if ev.HostelID == nil {
			return n.repo.AllStudents(ctx, ev.ActorID)
		}
		return n.repo.StudentsByHostel(ctx, *ev.HostelID, ev.ActorID)
	case HostelStaff:
		admins, err := n.repo.Admins(ctx)
		if err != nil {
			return nil, err
		}
		if ev.HostelID == nil {
			return admins, nil
		}
		wardens, err := n.repo.WardensByHostel(ctx, *ev.HostelID)
		if err != nil {
			return nil, err
		}
		return append(wardens, admins...), nil
	default:
		rcpt, err := n.repo.User(ctx, ev.TargetID)
		if err != nil {
			return nil, err
		}
		return []notification.Recipient{*rcpt}, nil
	}
}

// queueEmail is a stand-in for a real mail sender; the queue is just a log
// line for now.
func (n *Notifier) queueEmail(rcpt notification.Recipient, ev Event) {
	n.log.Info("email queued", "to", rcpt.Email, "subject", ev.Title)
}
