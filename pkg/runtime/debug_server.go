package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/go-sable/sable/pkg/dom"
)

// debugServer manages the HTTP server for document tree inspection.
type debugServer struct {
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// DomTreeNode represents a node in the serialized document tree.
type DomTreeNode struct {
	ID         dom.NodeID        `json:"id"`
	Type       string            `json:"type"`
	Content    string            `json:"content,omitempty"`
	Styles     map[string]string `json:"styles,omitempty"`
	HasDataset bool              `json:"hasDataset"`
	Callbacks  []string          `json:"callbacks,omitempty"`
	Children   []DomTreeNode     `json:"children,omitempty"`
}

// WindowSummary describes one window's controller for the /windows endpoint.
type WindowSummary struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	State     string `json:"state"`
	NodeCount int    `json:"nodeCount"`
	Callbacks int    `json:"callbacks"`
	Timers    int    `json:"timers"`
}

// StartDebugServer starts the HTTP debug server on the specified port.
// Returns the actual port (useful when port=0 for ephemeral allocation).
//
// Handlers read controller state without synchronizing against dispatch:
// the server is a development tool and queries are expected between events,
// mirroring the single-threaded dispatch model.
func (a *App) StartDebugServer(port int) (int, error) {
	if a.debug == nil {
		a.debug = &debugServer{}
	}
	a.debug.mu.Lock()
	defer a.debug.mu.Unlock()

	if a.debug.server != nil {
		// Already running - return current port
		if a.debug.listener != nil {
			return a.debug.listener.Addr().(*net.TCPAddr).Port, nil
		}
		return port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/windows", a.handleWindows)
	mux.HandleFunc("/dom-tree", a.handleDomTree)
	mux.HandleFunc("/stats", a.handleStats)
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	a.debug.server = server
	a.debug.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			a.debug.mu.Lock()
			a.debug.server = nil
			a.debug.listener = nil
			a.debug.mu.Unlock()
			Logger().Error("debug server error", zap.Error(err))
		}
	}()

	Logger().Info("debug server started", zap.Int("port", actualPort))
	return actualPort, nil
}

// StopDebugServer gracefully shuts down the debug server.
func (a *App) StopDebugServer() {
	if a.debug == nil {
		return
	}
	a.debug.mu.Lock()
	server := a.debug.server
	a.debug.server = nil
	a.debug.listener = nil
	a.debug.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

// handleWindows returns a summary of every window's controller.
func (a *App) handleWindows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaries := make([]WindowSummary, 0, len(a.windows))
	for _, c := range a.Windows() {
		summaries = append(summaries, WindowSummary{
			ID:        c.Info().ID,
			Title:     c.Info().Title,
			State:     c.State().String(),
			NodeCount: c.Tree().NodeCount(),
			Callbacks: c.Registry().EntryCount(),
			Timers:    c.TimerCount(),
		})
	}
	writeJSON(w, summaries)
}

// handleDomTree returns one window's document tree as JSON.
func (a *App) handleDomTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Recover from panics during serialization
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	var windowID uint64
	if _, err := fmt.Sscanf(r.URL.Query().Get("window"), "%d", &windowID); err != nil {
		http.Error(w, "missing or invalid window parameter", http.StatusBadRequest)
		return
	}
	c := a.Window(windowID)
	if c == nil {
		http.Error(w, "no such window", http.StatusNotFound)
		return
	}

	writeJSON(w, serializeDomTree(c.Tree()))
}

// handleStats returns the app-wide activity counters.
func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, a.stats.Snapshot())
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// serializeDomTree converts a document tree into its JSON form. Node IDs
// match the depth-first numbering the dispatcher uses.
func serializeDomTree(tree *dom.Dom) DomTreeNode {
	next := dom.NodeID(0)
	return serializeSubtree(tree, &next)
}

func serializeSubtree(tree *dom.Dom, next *dom.NodeID) DomTreeNode {
	root := tree.Root()
	node := DomTreeNode{
		ID:         *next,
		Type:       root.Type().String(),
		Content:    root.Content(),
		HasDataset: root.Dataset() != nil,
	}
	*next = node.ID + 1
	if styles := root.Styles(); len(styles) > 0 {
		node.Styles = make(map[string]string, len(styles))
		for _, s := range styles {
			node.Styles[s.Key] = s.Value
		}
	}
	for _, spec := range root.Callbacks() {
		node.Callbacks = append(node.Callbacks, spec.Event.String())
	}
	for _, child := range tree.Children() {
		node.Children = append(node.Children, serializeSubtree(child, next))
	}
	return node
}
