package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/go-chi/chi/v5"
)

// Server implements ServerInterface over a ports.SceneEditor.
type Server struct {
	Editor  ports.SceneEditor
	Streams *StreamManager

	logger   *slog.Logger
	validate bool
	metrics  http.Handler
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRequestValidation checks every request against openapi.yaml.
func WithRequestValidation() Option {
	return func(s *Server) { s.validate = true }
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// NewHandler creates a new HTTP handler for the editor.
func NewHandler(ed ports.SceneEditor, opts ...Option) (http.Handler, error) {
	server := &Server{
		Editor: ed,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.logger)

	r := chi.NewRouter()

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			server.logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	handler := HandlerFromMux(server, r)
	if server.validate {
		var err error
		if handler, err = requestValidator(handler); err != nil {
			return nil, err
		}
	}
	return enableCORS(handler), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Turbo Editor API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "turbo-editor-http",
		"version":     strings.TrimSpace(editor.Version),
		"api_version": apiVersion,
	})
}

// ListTemplates handles the GET /templates request.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Editor.Templates(r.Context())
	if err != nil {
		s.fail(w, "ListTemplates", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(ids))
}

// GetTemplate handles the GET /templates/{templateId} request.
func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request, templateID string) {
	tpl, err := s.Editor.Template(r.Context(), templateID)
	if err != nil {
		s.fail(w, "GetTemplate", err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// ListScenes handles the GET /scenes request.
func (s *Server) ListScenes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Editor.Scenes(r.Context())
	if err != nil {
		s.fail(w, "ListScenes", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(ids))
}

// CreateScene handles the POST /scenes request.
func (s *Server) CreateScene(w http.ResponseWriter, r *http.Request) {
	var body CreateSceneRequest
	if !s.decode(w, r, "CreateScene", &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	sc, err := s.Editor.CreateScene(r.Context(), body.Name)
	if err != nil {
		s.fail(w, "CreateScene", err)
		return
	}
	s.logger.Info("Scene created", "scene_id", sc.ID, "name", sc.Name)
	writeJSON(w, http.StatusCreated, sc)
}

// GetScene handles the GET /scenes/{sceneId} request.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request, sceneID string) {
	sc, err := s.Editor.Scene(r.Context(), sceneID)
	if err != nil {
		s.fail(w, "GetScene", err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// DeleteScene handles the DELETE /scenes/{sceneId} request.
func (s *Server) DeleteScene(w http.ResponseWriter, r *http.Request, sceneID string) {
	if err := s.Editor.DeleteScene(r.Context(), sceneID); err != nil {
		s.fail(w, "DeleteScene", err)
		return
	}
	s.Streams.Close(sceneID)
	w.WriteHeader(http.StatusNoContent)
}

// GenerateCode handles the GET /scenes/{sceneId}/code request.
func (s *Server) GenerateCode(w http.ResponseWriter, r *http.Request, sceneID string) {
	code, err := s.Editor.Generate(r.Context(), sceneID)
	if err != nil {
		s.fail(w, "GenerateCode", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(code))
}

// AddNode handles the POST /scenes/{sceneId}/nodes request.
func (s *Server) AddNode(w http.ResponseWriter, r *http.Request, sceneID string) {
	var body AddNodeRequest
	if !s.decode(w, r, "AddNode", &body) {
		return
	}
	if body.Type == nil {
		writeError(w, http.StatusBadRequest, errors.New("type is required"))
		return
	}

	var id domain.NodeID
	diff, err := s.Editor.Edit(r.Context(), sceneID, func(st *scene.Store) error {
		parent, err := resolveParent(st, body.Parent)
		if err != nil {
			return err
		}
		id, err = st.AddNode(parent, body.Name, *body.Type)
		return err
	})
	if err != nil {
		s.fail(w, "AddNode", err)
		return
	}
	s.publish(sceneID, diff)
	writeJSON(w, http.StatusCreated, NodeResult{ID: id, Diff: diff})
}

// GetNode handles the GET /scenes/{sceneId}/nodes/{nodeId} request.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string) {
	sc, err := s.Editor.Scene(r.Context(), sceneID)
	if err != nil {
		s.fail(w, "GetNode", err)
		return
	}
	n, ok := sc.Lookup(domain.NodeID(nodeID))
	if !ok {
		s.fail(w, "GetNode", fmt.Errorf("%w: %s", domain.ErrNodeNotFound, nodeID))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// UpdateNode handles the PATCH /scenes/{sceneId}/nodes/{nodeId} request.
func (s *Server) UpdateNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string) {
	var body UpdateNodeRequest
	if !s.decode(w, r, "UpdateNode", &body) {
		return
	}

	id := domain.NodeID(nodeID)
	diff, err := s.Editor.Edit(r.Context(), sceneID, func(st *scene.Store) error {
		if body.Name != nil {
			if err := st.RenameNode(id, *body.Name); err != nil {
				return err
			}
		}
		if body.Parent == nil && body.Index == nil {
			return nil
		}
		n, ok := st.Node(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
		}
		parent, hasParent := n.Parent()
		if body.Parent != nil {
			p, err := st.Resolve(*body.Parent)
			if err != nil {
				return err
			}
			parent = p
		} else if !hasParent {
			return fmt.Errorf("move %s: %w", id, domain.ErrRootOperation)
		}
		index := -1
		if body.Index != nil {
			index = *body.Index
		}
		return st.MoveNode(id, parent, index)
	})
	if err != nil {
		s.fail(w, "UpdateNode", err)
		return
	}
	s.publish(sceneID, diff)
	writeDiff(w, sceneID, diff)
}

// RemoveNode handles the DELETE /scenes/{sceneId}/nodes/{nodeId} request.
func (s *Server) RemoveNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string) {
	diff, err := s.Editor.Edit(r.Context(), sceneID, func(st *scene.Store) error {
		return st.RemoveNode(domain.NodeID(nodeID))
	})
	if err != nil {
		s.fail(w, "RemoveNode", err)
		return
	}
	s.publish(sceneID, diff)
	writeDiff(w, sceneID, diff)
}

// SetProperty handles the PUT /scenes/{sceneId}/nodes/{nodeId}/properties/{key} request.
func (s *Server) SetProperty(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string, key string) {
	var value domain.PropertyValue
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrTypeMismatch) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, fmt.Errorf("invalid property value: %w", err))
		s.logger.Warn("SetProperty: Invalid request body", "error", err)
		return
	}

	diff, err := s.Editor.Edit(r.Context(), sceneID, func(st *scene.Store) error {
		return st.SetProperty(domain.NodeID(nodeID), key, value)
	})
	if err != nil {
		s.fail(w, "SetProperty", err)
		return
	}
	s.publish(sceneID, diff)
	writeDiff(w, sceneID, diff)
}

// ApplyTemplate handles the POST /scenes/{sceneId}/templates/{templateId} request.
func (s *Server) ApplyTemplate(w http.ResponseWriter, r *http.Request, sceneID string, templateID string) {
	var body ApplyTemplateRequest
	if r.ContentLength != 0 && !s.decode(w, r, "ApplyTemplate", &body) {
		return
	}
	tpl, err := s.Editor.Template(r.Context(), templateID)
	if err != nil {
		s.fail(w, "ApplyTemplate", err)
		return
	}

	var id domain.NodeID
	diff, err := s.Editor.Edit(r.Context(), sceneID, func(st *scene.Store) error {
		parent, err := resolveParent(st, body.Parent)
		if err != nil {
			return err
		}
		id, err = st.Instantiate(parent, tpl)
		return err
	})
	if err != nil {
		s.fail(w, "ApplyTemplate", err)
		return
	}
	s.publish(sceneID, diff)
	writeJSON(w, http.StatusCreated, NodeResult{ID: id, Diff: diff})
}

// -- Helpers --

func resolveParent(st *scene.Store, ref *string) (domain.NodeID, error) {
	if ref == nil || *ref == "" {
		return st.RootID(), nil
	}
	return st.Resolve(*ref)
}

func (s *Server) publish(sceneID string, diff *domain.SceneDiff) {
	if diff == nil {
		s.logger.Debug("No diff calculated", "scene_id", sceneID)
		return
	}
	s.Streams.Broadcast(sceneID, diff)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" rejected", "error", err, "status", status)
	}
	writeError(w, status, err)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSceneNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSceneExists),
		errors.Is(err, domain.ErrRootOperation),
		errors.Is(err, domain.ErrCycle):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTypeMismatch),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrInvalidScene):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeDiff answers with the diff, or an empty one when nothing changed.
func writeDiff(w http.ResponseWriter, sceneID string, diff *domain.SceneDiff) {
	if diff == nil {
		diff = &domain.SceneDiff{SceneID: sceneID}
	}
	writeJSON(w, http.StatusOK, diff)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
