package ws

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(log.New(io.Discard, "", 0))
	done := make(chan struct{})
	go h.Run(done)
	t.Cleanup(func() { close(done) })
	return h
}

func fakeClient(h *Hub, userID uuid.UUID) *Client {
	return &Client{hub: h, send: make(chan []byte, 4), userID: userID}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
	}
	return nil
}

func TestNotifier_StatusChangeReachesOnlyApplicant(t *testing.T) {
	h := startHub(t)
	applicant := fakeClient(h, uuid.New())
	bystander := fakeClient(h, uuid.New())
	h.Register(applicant)
	h.Register(bystander)
	waitForClients(t, h, 2)

	n := NewNotifier(h, log.New(io.Discard, "", 0))
	j := job.Job{ID: uuid.New(), Title: "Data Engineer"}
	n.ApplicationStatusChanged(context.Background(), application.Application{
		ID:     uuid.New(),
		JobID:  j.ID,
		UserID: applicant.userID,
		Status: application.StatusAccepted,
	}, j)

	var evt ApplicationStatusChangedEvent
	if err := json.Unmarshal(receive(t, applicant), &evt); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if evt.Type != EventApplicationStatusChanged || evt.Status != "ACCEPTED" || evt.JobTitle != "Data Engineer" {
		t.Fatalf("unexpected event: %+v", evt)
	}

	select {
	case <-bystander.send:
		t.Fatalf("bystander must not receive another user's event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifier_JobPostedBroadcasts(t *testing.T) {
	h := startHub(t)
	a := fakeClient(h, uuid.New())
	b := fakeClient(h, uuid.New())
	h.Register(a)
	h.Register(b)
	waitForClients(t, h, 2)

	NewNotifier(h, nil).JobPosted(context.Background(), job.Job{ID: uuid.New(), Title: "Go Dev"})

	for _, c := range []*Client{a, b} {
		var evt JobPostedEvent
		if err := json.Unmarshal(receive(t, c), &evt); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if evt.Type != EventJobPosted || evt.Title != "Go Dev" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := fakeClient(h, uuid.New())
	h.Register(c)
	waitForClients(t, h, 1)

	h.Unregister(c)
	waitForClients(t, h, 0)
	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel closed")
	}
}

func TestHub_SendToUserReachesEverySocket(t *testing.T) {
	h := startHub(t)
	uid := uuid.New()
	tab1 := fakeClient(h, uid)
	tab2 := fakeClient(h, uid)
	h.Register(tab1)
	h.Register(tab2)
	waitForClients(t, h, 2)

	h.SendToUser(uid, []byte(`{"type":"ping"}`))
	for _, c := range []*Client{tab1, tab2} {
		if got := string(receive(t, c)); got != `{"type":"ping"}` {
			t.Fatalf("unexpected payload %s", got)
		}
	}

	h.Unregister(tab1)
	waitForClients(t, h, 1)
	h.SendToUser(uid, []byte("again"))
	if got := string(receive(t, tab2)); got != "again" {
		t.Fatalf("unexpected payload %s", got)
	}
}
