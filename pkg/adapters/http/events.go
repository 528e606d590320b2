package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/mazerunner/pkg/domain"
)

// allRuns is the subscription key that receives every run's events.
const allRuns = ""

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager fans lifecycle events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // RunID -> Set of Channels
	buffer      int
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		buffer:      64,
	}
}

// Subscribe registers a channel for runID, or for every run when runID is empty.
func (sm *StreamManager) Subscribe(runID string) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, sm.buffer)
	if _, ok := sm.subscribers[runID]; !ok {
		sm.subscribers[runID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[runID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[runID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, runID)
				}
			}
		})
	}
}

// Broadcast delivers msg to subscribers of runID and of all runs.
// Slow subscribers drop messages rather than block the solver.
func (sm *StreamManager) Broadcast(runID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, key := range []string{runID, allRuns} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
			}
		}
		if runID == allRuns {
			break
		}
	}
}

// Hooks publishes lifecycle events as JSON messages.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	publish := func(runID string, event domain.EventType, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		sm.Broadcast(runID, Message{Event: string(event), Data: string(data)})
	}
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			publish(e.RunID, e.Type, e)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			publish(e.RunID, e.Type, e)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			publish(e.RunID, e.Type, e)
		},
		OnRunFailed: func(ctx context.Context, e *domain.RunEvent) {
			payload := struct {
				*domain.RunEvent
				Error string `json:"error"`
			}{e, fmt.Sprint(e.Err)}
			publish(e.RunID, e.Type, payload)
		},
	}
}

// SubscribeEvents handles GET /v1/events (SSE). The optional run_id query
// parameter narrows the stream to one run.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	runID := r.URL.Query().Get("run_id")
	ch, cancel := s.Streams.Subscribe(runID)
	defer cancel()

	s.logger.Debug("SSE: client subscribed", "run_id", runID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: client disconnected", "run_id", runID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
