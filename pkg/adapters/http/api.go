package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Request and response bodies of openapi.yaml.

// CreateSceneRequest is the body of POST /scenes.
type CreateSceneRequest struct {
	Name string `json:"name"`
}

// AddNodeRequest is the body of POST /scenes/{sceneId}/nodes.
type AddNodeRequest struct {
	Parent *string          `json:"parent,omitempty"`
	Name   string           `json:"name"`
	Type   *domain.NodeType `json:"type"`
}

// UpdateNodeRequest is the body of PATCH /scenes/{sceneId}/nodes/{nodeId}.
type UpdateNodeRequest struct {
	Name   *string `json:"name,omitempty"`
	Parent *string `json:"parent,omitempty"`
	Index  *int    `json:"index,omitempty"`
}

// ApplyTemplateRequest is the body of POST /scenes/{sceneId}/templates/{templateId}.
type ApplyTemplateRequest struct {
	Parent *string `json:"parent,omitempty"`
}

// NodeResult reports a created node and the change it caused.
type NodeResult struct {
	ID   domain.NodeID     `json:"id"`
	Diff *domain.SceneDiff `json:"diff"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubscribeSceneEventsParams defines parameters for SubscribeSceneEvents.
type SubscribeSceneEventsParams struct {
	// Watch is a comma separated filter over name, nodes and removed.
	Watch *string `form:"watch,omitempty" json:"watch,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (GET /events)
	SubscribeLibraryEvents(w http.ResponseWriter, r *http.Request)
	// (GET /templates)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	// (GET /templates/{templateId})
	GetTemplate(w http.ResponseWriter, r *http.Request, templateID string)
	// (GET /scenes)
	ListScenes(w http.ResponseWriter, r *http.Request)
	// (POST /scenes)
	CreateScene(w http.ResponseWriter, r *http.Request)
	// (GET /scenes/{sceneId})
	GetScene(w http.ResponseWriter, r *http.Request, sceneID string)
	// (DELETE /scenes/{sceneId})
	DeleteScene(w http.ResponseWriter, r *http.Request, sceneID string)
	// (GET /scenes/{sceneId}/code)
	GenerateCode(w http.ResponseWriter, r *http.Request, sceneID string)
	// (GET /scenes/{sceneId}/events)
	SubscribeSceneEvents(w http.ResponseWriter, r *http.Request, sceneID string, params SubscribeSceneEventsParams)
	// (POST /scenes/{sceneId}/nodes)
	AddNode(w http.ResponseWriter, r *http.Request, sceneID string)
	// (GET /scenes/{sceneId}/nodes/{nodeId})
	GetNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string)
	// (PATCH /scenes/{sceneId}/nodes/{nodeId})
	UpdateNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string)
	// (DELETE /scenes/{sceneId}/nodes/{nodeId})
	RemoveNode(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string)
	// (PUT /scenes/{sceneId}/nodes/{nodeId}/properties/{key})
	SetProperty(w http.ResponseWriter, r *http.Request, sceneID string, nodeID string, key string)
	// (POST /scenes/{sceneId}/templates/{templateId})
	ApplyTemplate(w http.ResponseWriter, r *http.Request, sceneID string, templateID string)
}

// ServerInterfaceWrapper converts path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is reported when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// pathParam binds a simple-style path parameter.
func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetHealth(w, r)
}

func (siw *ServerInterfaceWrapper) GetInfo(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetInfo(w, r)
}

func (siw *ServerInterfaceWrapper) SubscribeLibraryEvents(w http.ResponseWriter, r *http.Request) {
	siw.Handler.SubscribeLibraryEvents(w, r)
}

func (siw *ServerInterfaceWrapper) ListTemplates(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListTemplates(w, r)
}

func (siw *ServerInterfaceWrapper) GetTemplate(w http.ResponseWriter, r *http.Request) {
	var templateID string
	if !siw.pathParam(w, r, "templateId", &templateID) {
		return
	}
	siw.Handler.GetTemplate(w, r, templateID)
}

func (siw *ServerInterfaceWrapper) ListScenes(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListScenes(w, r)
}

func (siw *ServerInterfaceWrapper) CreateScene(w http.ResponseWriter, r *http.Request) {
	siw.Handler.CreateScene(w, r)
}

func (siw *ServerInterfaceWrapper) GetScene(w http.ResponseWriter, r *http.Request) {
	var sceneID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) {
		return
	}
	siw.Handler.GetScene(w, r, sceneID)
}

func (siw *ServerInterfaceWrapper) DeleteScene(w http.ResponseWriter, r *http.Request) {
	var sceneID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) {
		return
	}
	siw.Handler.DeleteScene(w, r, sceneID)
}

func (siw *ServerInterfaceWrapper) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var sceneID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) {
		return
	}
	siw.Handler.GenerateCode(w, r, sceneID)
}

func (siw *ServerInterfaceWrapper) SubscribeSceneEvents(w http.ResponseWriter, r *http.Request) {
	var sceneID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) {
		return
	}

	var params SubscribeSceneEventsParams
	if err := runtime.BindQueryParameter("form", true, false, "watch", r.URL.Query(), &params.Watch); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "watch", Err: err})
		return
	}
	siw.Handler.SubscribeSceneEvents(w, r, sceneID, params)
}

func (siw *ServerInterfaceWrapper) AddNode(w http.ResponseWriter, r *http.Request) {
	var sceneID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) {
		return
	}
	siw.Handler.AddNode(w, r, sceneID)
}

func (siw *ServerInterfaceWrapper) GetNode(w http.ResponseWriter, r *http.Request) {
	var sceneID, nodeID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) || !siw.pathParam(w, r, "nodeId", &nodeID) {
		return
	}
	siw.Handler.GetNode(w, r, sceneID, nodeID)
}

func (siw *ServerInterfaceWrapper) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var sceneID, nodeID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) || !siw.pathParam(w, r, "nodeId", &nodeID) {
		return
	}
	siw.Handler.UpdateNode(w, r, sceneID, nodeID)
}

func (siw *ServerInterfaceWrapper) RemoveNode(w http.ResponseWriter, r *http.Request) {
	var sceneID, nodeID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) || !siw.pathParam(w, r, "nodeId", &nodeID) {
		return
	}
	siw.Handler.RemoveNode(w, r, sceneID, nodeID)
}

func (siw *ServerInterfaceWrapper) SetProperty(w http.ResponseWriter, r *http.Request) {
	var sceneID, nodeID, key string
	if !siw.pathParam(w, r, "sceneId", &sceneID) || !siw.pathParam(w, r, "nodeId", &nodeID) || !siw.pathParam(w, r, "key", &key) {
		return
	}
	siw.Handler.SetProperty(w, r, sceneID, nodeID, key)
}

func (siw *ServerInterfaceWrapper) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var sceneID, templateID string
	if !siw.pathParam(w, r, "sceneId", &sceneID) || !siw.pathParam(w, r, "templateId", &templateID) {
		return
	}
	siw.Handler.ApplyTemplate(w, r, sceneID, templateID)
}

// HandlerFromMux registers the routes of si on r and returns r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err)
		},
	}

	r.Get("/health", wrapper.GetHealth)
	r.Get("/info", wrapper.GetInfo)
	r.Get("/events", wrapper.SubscribeLibraryEvents)
	r.Get("/templates", wrapper.ListTemplates)
	r.Get("/templates/{templateId}", wrapper.GetTemplate)
	r.Get("/scenes", wrapper.ListScenes)
	r.Post("/scenes", wrapper.CreateScene)
	r.Get("/scenes/{sceneId}", wrapper.GetScene)
	r.Delete("/scenes/{sceneId}", wrapper.DeleteScene)
	r.Get("/scenes/{sceneId}/code", wrapper.GenerateCode)
	r.Get("/scenes/{sceneId}/events", wrapper.SubscribeSceneEvents)
	r.Post("/scenes/{sceneId}/nodes", wrapper.AddNode)
	r.Get("/scenes/{sceneId}/nodes/{nodeId}", wrapper.GetNode)
	r.Patch("/scenes/{sceneId}/nodes/{nodeId}", wrapper.UpdateNode)
	r.Delete("/scenes/{sceneId}/nodes/{nodeId}", wrapper.RemoveNode)
	r.Put("/scenes/{sceneId}/nodes/{nodeId}/properties/{key}", wrapper.SetProperty)
	r.Post("/scenes/{sceneId}/templates/{templateId}", wrapper.ApplyTemplate)
	return r
}
