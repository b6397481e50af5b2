package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"pos-kiosk-demo/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans session events out to the push subscriptions watching them.
type WorkerPool struct {
	size     int
	jobs     chan model.SessionEvent
	registry *Registry
	webpush  *webpush.Options
	sender   NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, registry *Registry, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:     size,
		jobs:     make(chan model.SessionEvent, size*16),
		registry: registry,
		webpush:  webpushOptions,
		sender:   &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case ev := <-wp.jobs:
			wp.notifySession(ev)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an event without blocking. A full queue drops the event.
func (wp *WorkerPool) Dispatch(ev model.SessionEvent) bool {
	select {
	case wp.jobs <- ev:
		return true
	default:
		log.Printf("Notification queue full; dropping %s event for session %s", ev.Kind, ev.SessionID)
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.SessionEvent {
	return wp.jobs
}

func (wp *WorkerPool) notifySession(ev model.SessionEvent) {
	subscriptions := wp.registry.List(ev.SessionID)
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error encoding %s event for session %s: %v", ev.Kind, ev.SessionID, err)
		return
	}

	log.Printf("Sending %d notifications for session %s (%s)", len(subscriptions), ev.SessionID, ev.Kind)
	for _, sub := range subscriptions {
		wp.sendNotification(sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		wp.registry.Remove(sub.SessionID, sub.Endpoint)
	}
}
