package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
)

// streamBuffer is the per-subscriber queue length. Diffs beyond it are dropped.
const streamBuffer = 16

// StreamManager fans scene diffs out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.SceneDiff]struct{} // SceneID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan *domain.SceneDiff]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for sceneID. The returned cancel function is
// safe to call after Close.
func (sm *StreamManager) Subscribe(sceneID string) (<-chan *domain.SceneDiff, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan *domain.SceneDiff, streamBuffer)
	if _, ok := sm.subscribers[sceneID]; !ok {
		sm.subscribers[sceneID] = make(map[chan *domain.SceneDiff]struct{})
	}
	sm.subscribers[sceneID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sceneID]; ok {
			if _, live := subs[ch]; live {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(sm.subscribers, sceneID)
			}
		}
	}
}

// Subscribers returns the number of listeners of sceneID.
func (sm *StreamManager) Subscribers(sceneID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sceneID])
}

// Broadcast delivers diff to every listener of sceneID without blocking.
func (sm *StreamManager) Broadcast(sceneID string, diff *domain.SceneDiff) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs := sm.subscribers[sceneID]
	sm.logger.Debug("StreamManager: Broadcasting", "scene_id", sceneID, "subscribers", len(subs))
	for ch := range subs {
		select {
		case ch <- diff:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping diff", "scene_id", sceneID)
		}
	}
}

// Close ends every stream of sceneID, as when the scene is deleted.
func (sm *StreamManager) Close(sceneID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[sceneID] {
		close(ch)
	}
	delete(sm.subscribers, sceneID)
}

// diffFilter reports whether a diff touches any watched field.
type diffFilter []string

func parseWatch(watch *string) diffFilter {
	if watch == nil || strings.TrimSpace(*watch) == "" {
		return nil
	}
	var f diffFilter
	for field := range strings.SplitSeq(*watch, ",") {
		if field = strings.TrimSpace(field); field != "" {
			f = append(f, field)
		}
	}
	return f
}

func (f diffFilter) keep(diff *domain.SceneDiff) bool {
	if len(f) == 0 {
		return true
	}
	for _, field := range f {
		switch field {
		case "name":
			if diff.Name != nil {
				return true
			}
		case "nodes":
			if len(diff.Nodes) > 0 {
				return true
			}
		case "removed":
			if len(diff.Removed()) > 0 {
				return true
			}
		}
	}
	return false
}

func startStream(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	return flusher, true
}

// SubscribeSceneEvents handles the GET /scenes/{sceneId}/events request (SSE).
func (s *Server) SubscribeSceneEvents(w http.ResponseWriter, r *http.Request, sceneID string, params SubscribeSceneEventsParams) {
	if _, err := s.Editor.Scene(r.Context(), sceneID); err != nil {
		s.fail(w, "SubscribeSceneEvents", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(sceneID)
	defer cancel()

	flusher, ok := startStream(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		s.logger.Error("SubscribeSceneEvents: Streaming not supported")
		return
	}
	s.logger.Info("SSE: Subscribing to scene updates", "scene_id", sceneID)

	filter := parseWatch(params.Watch)
	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "scene_id", sceneID)
			return
		case diff, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", sceneID)
				flusher.Flush()
				return
			}
			if !filter.keep(diff) {
				continue
			}
			payload, err := json.Marshal(diff)
			if err != nil {
				s.logger.Error("SSE: Failed to encode diff", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: diff\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// SubscribeLibraryEvents handles the GET /events request (SSE): template library hot reload.
func (s *Server) SubscribeLibraryEvents(w http.ResponseWriter, r *http.Request) {
	watchable, ok := s.Editor.(ports.Watchable)
	if !ok {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("template library does not support watching"))
		return
	}
	events, err := watchable.Watch(r.Context())
	// errors.ErrUnsupported maps to 501 when the loader cannot watch.
	if err != nil {
		s.fail(w, "SubscribeLibraryEvents", err)
		return
	}

	flusher, ok := startStream(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}
	s.logger.Info("SSE: Subscribing to template library reloads")

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: templates\n\n")
			flusher.Flush()
		}
	}
}
