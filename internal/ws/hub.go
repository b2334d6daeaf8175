// Package ws implements the WebSocket observer hub and client management.
//
// Delivery is best-effort: at-most-once, no ordering across observers, no
// persistence. An observer that connects after a notification was
// published never receives it; a reconnecting observer is a brand-new
// client with no replay.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/metrics"
)

// registerBuffer sizes the register/unregister channels.
const registerBuffer = 64

// maxClients caps the observer set.
const maxClients = 1000

// Hub manages active WebSocket observers and fans out notifications.
// All client map mutations happen exclusively in the Run goroutine, so
// a concurrent subscribe or unsubscribe can never corrupt a broadcast
// iteration.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	shutdown   chan struct{} // signals Run to begin graceful drain
	done       chan struct{} // closed when Run has finished draining
	count      atomic.Int64
	log        *logrus.Logger
}

// NewHub creates a Hub whose broadcast queue holds queueSize pending
// notifications.
func NewHub(log *logrus.Logger, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, registerBuffer),
		unregister: make(chan *Client, registerBuffer),
		broadcast:  make(chan []byte, queueSize),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

// drainTimeout is how long the hub waits for clients to flush after shutdown.
const drainTimeout = 3 * time.Second

// Run starts the hub event loop. It should be run as a goroutine.
// It exits when Shutdown is called or the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.drainClients()

			return
		case <-h.shutdown:
			h.drainClients()

			return

		case client := <-h.register:
			if len(h.clients) >= maxClients {
				h.log.Warn("connection limit reached, dropping observer")
				client.closeSend()
				continue
			}
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			metrics.WSConnections.Set(float64(len(h.clients)))
			h.log.WithField("total", len(h.clients)).Info("observer registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			h.count.Store(int64(len(h.clients)))
			metrics.WSConnections.Set(float64(len(h.clients)))
			h.log.WithField("total", len(h.clients)).Info("observer unregistered")

		case msg := <-h.broadcast:
			metrics.BroadcastQueueDepth.Set(float64(len(h.broadcast)))
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Send buffer full: the observer is dead or too
					// slow. Drop it as part of this publish; the
					// registry heals itself without a health-check loop.
					client.closeSend()
					delete(h.clients, client)
				}
			}
			h.count.Store(int64(len(h.clients)))
			metrics.WSConnections.Set(float64(len(h.clients)))
		}
	}
}

// maxBroadcastPayload is the maximum allowed notification payload size (4 KB).
const maxBroadcastPayload = 4096

// Broadcast enqueues a raw message for delivery to every currently
// registered observer. Non-blocking: if the queue is full the message is
// dropped, never the caller's request.
func (h *Hub) Broadcast(msg []byte) {
	if len(msg) > maxBroadcastPayload {
		h.log.WithFields(logrus.Fields{
			"payload_size": len(msg),
			"max_size":     maxBroadcastPayload,
		}).Warn("dropping oversized broadcast payload")
		return
	}
	select {
	case h.broadcast <- msg:
		metrics.BroadcastQueueDepth.Set(float64(len(h.broadcast)))
	default:
		metrics.BroadcastsDropped.Inc()
		h.log.Warn("broadcast queue full, dropping notification")
	}
}

// Notify serializes a typed notification and enqueues it for delivery.
// Fire-and-forget: marshalling or delivery failures never surface to the
// caller.
func (h *Hub) Notify(eventType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal notification data")
		return
	}

	msg, err := json.Marshal(Notification{Type: eventType, Data: raw})
	if err != nil {
		h.log.WithError(err).Error("failed to marshal notification")
		return
	}

	h.Broadcast(msg)
}

// Register adds an observer to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	default:
		h.log.Warn("register channel full, dropping observer")
		c.closeSend()
	}
}

// Unregister removes an observer from the hub. Idempotent.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	default:
		// Run loop already exited; client cleanup happened in Run shutdown.
	}
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Shutdown initiates a graceful drain: sends a shutdown frame to every
// connected observer, waits for their write pumps to flush, then closes
// all connections. It blocks until drain is complete or the timeout
// expires.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}

// drainClients sends a close notification to every observer and waits for
// send buffers to flush.
func (h *Hub) drainClients() {
	if len(h.clients) == 0 {
		return
	}

	h.log.WithField("clients", len(h.clients)).Info("draining WebSocket observers")

	// Tell observers to reconnect once the server is back.
	shutdownMsg := []byte(`{"type":"shutdown","data":{"message":"server shutting down"}}`)
	for client := range h.clients {
		select {
		case client.send <- shutdownMsg:
		default:
		}
	}

	deadline := time.After(drainTimeout)
	ticker := time.NewTicker(50 * time.Millisecond) //nolint:mnd // poll interval
	defer ticker.Stop()

	for {
		allDrained := true

		for client := range h.clients {
			if len(client.send) > 0 {
				allDrained = false

				break
			}
		}

		if allDrained {
			break
		}

		select {
		case <-deadline:
			h.log.Warn("WebSocket drain timeout, closing remaining observers")

			goto closeAll
		case <-ticker.C:
		}
	}

closeAll:
	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}

	h.count.Store(0)
	metrics.WSConnections.Set(0)
}
