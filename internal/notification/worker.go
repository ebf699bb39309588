package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/SherClockHolmes/webpush-go"

	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real implementation of Sender using the webpush
// library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers pushing tier-reopened notifications.
// A job is the tier whose sales just re-opened.
type WorkerPool struct {
	size    int
	jobs    chan model.Tier
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.Tier, size),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case tier := <-wp.jobs:
			log.Printf("Worker %d notifying subscribers of tier %s", id, tier)
			wp.notifyTierReopened(ctx, tier)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a tier-reopened notification job.
func (wp *WorkerPool) Dispatch(tier model.Tier) {
	wp.jobs <- tier
}

// notifyTierReopened fetches the tier's subscriptions and pushes to each.
func (wp *WorkerPool) notifyTierReopened(ctx context.Context, tier model.Tier) {
	subs, err := wp.store.SubscriptionsForTier(ctx, tier)
	if err != nil {
		log.Printf("Error fetching subscriptions for tier %s: %v", tier, err)
		return
	}
	if len(subs) == 0 {
		return
	}

	log.Printf("Sending %d notifications for tier %s", len(subs), tier)

	label := strings.ToUpper(string(tier[:1])) + string(tier[1:])
	message := fmt.Sprintf("¡Ya hay disponibilidad para el certificado %s!", label)
	for _, sub := range subs {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification and drops the
// subscription if the push service reports it gone.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
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
		if err := wp.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
