package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

const (
	EventApplicationStatusChanged = "application_status_changed"
	EventJobPosted                = "job_posted"
)

type ApplicationStatusChangedEvent struct {
	Type          string    `json:"type"`
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	Status        string    `json:"status"`
	Timestamp     string    `json:"timestamp"`
}

type JobPostedEvent struct {
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Skills    string    `json:"skills"`
	Timestamp string    `json:"timestamp"`
}

// Notifier pushes lifecycle events through the hub.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) ApplicationStatusChanged(_ context.Context, a application.Application, j job.Job) {
	if n == nil || n.hub == nil {
		return
	}
	evt := ApplicationStatusChangedEvent{
		Type:          EventApplicationStatusChanged,
		ApplicationID: a.ID,
		JobID:         j.ID,
		JobTitle:      j.Title,
		Status:        string(a.Status),
		Timestamp:     n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Printf("ws=encode status=error event=%s err=%v", evt.Type, err)
		return
	}
	n.hub.SendToUser(a.UserID, b)
}

func (n *Notifier) JobPosted(_ context.Context, j job.Job) {
	if n == nil || n.hub == nil {
		return
	}
	evt := JobPostedEvent{
		Type:      EventJobPosted,
		JobID:     j.ID,
		Title:     j.Title,
		Company:   j.Company,
		Skills:    j.Skills,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Printf("ws=encode status=error event=%s err=%v", evt.Type, err)
		return
	}
	n.hub.Broadcast(b)
}
