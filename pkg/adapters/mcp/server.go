package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// sceneURIPrefix addresses a stored scene as an MCP resource.
const sceneURIPrefix = "scene://"

// EditResult summarizes a scene mutation for tool callers.
type EditResult struct {
	SceneID string   `json:"scene_id" jsonschema_description:"Scene that was edited"`
	NodeID  string   `json:"node_id,omitempty" jsonschema_description:"Node created by the call, if any"`
	Changed []string `json:"changed" jsonschema_description:"IDs of nodes added or modified"`
	Removed []string `json:"removed" jsonschema_description:"IDs of nodes removed"`
}

// Server exposes an Editor as an MCP server.
type Server struct {
	editor    *editor.Editor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards output.
func NewServer(ed *editor.Editor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		editor:    ed,
		logger:    logger,
		mcpServer: server.NewMCPServer("turbo-editor-mcp", strings.TrimSpace(editor.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	sceneArg := mcp.WithString("scene_id", mcp.Required(), mcp.Description("Scene ID"))
	nodeArg := mcp.WithString("node", mcp.Required(), mcp.Description("Node ID or /path from the root, e.g. /Menu/Button"))

	s.mcpServer.AddTool(mcp.NewTool("create_scene",
		mcp.WithDescription("Create an empty scene whose root is a Container. Returns the scene document."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Scene name")),
	), s.handleCreateScene)

	s.mcpServer.AddTool(mcp.NewTool("list_scenes",
		mcp.WithDescription("List stored scene IDs."),
	), s.handleListScenes)

	s.mcpServer.AddTool(mcp.NewTool("add_node",
		mcp.WithDescription("Append a node to a parent's children."),
		sceneArg,
		mcp.WithString("parent", mcp.Description("Parent node ID or /path (defaults to the root)")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("type", mcp.Required(), mcp.Description("Node type"),
			mcp.Enum("Container", "Sprite", "Rectangle", "Circle", "Path", "Text")),
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleAddNode))

	s.mcpServer.AddTool(mcp.NewTool("remove_node",
		mcp.WithDescription("Remove a node and its whole subtree. The root cannot be removed."),
		sceneArg, nodeArg,
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleRemoveNode))

	s.mcpServer.AddTool(mcp.NewTool("move_node",
		mcp.WithDescription("Reparent or reorder a node. Moving a node under its own subtree is rejected."),
		sceneArg, nodeArg,
		mcp.WithString("parent", mcp.Required(), mcp.Description("New parent node ID or /path")),
		mcp.WithNumber("index", mcp.Description("Position among the new siblings; omit or -1 to append")),
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleMoveNode))

	s.mcpServer.AddTool(mcp.NewTool("rename_node",
		mcp.WithDescription("Change a node's display name."),
		sceneArg, nodeArg,
		mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleRenameNode))

	s.mcpServer.AddTool(mcp.NewTool("set_property",
		mcp.WithDescription("Write a node property. Values: true/false, numbers, #RRGGBB[AA] or 0xAARRGGBB colors, quoted or bare text."),
		sceneArg, nodeArg,
		mcp.WithString("key", mcp.Required(), mcp.Description("Property key, e.g. x, width, color, path")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Property value")),
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleSetProperty))

	s.mcpServer.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Return one node as JSON."),
		sceneArg, nodeArg,
	), s.handleGetNode)

	s.mcpServer.AddTool(mcp.NewTool("generate_code",
		mcp.WithDescription("Render the scene as turbo::go! DSL source."),
		sceneArg,
	), s.handleGenerateCode)

	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List template library IDs."),
	), s.handleListTemplates)

	s.mcpServer.AddTool(mcp.NewTool("apply_template",
		mcp.WithDescription("Instantiate a library template as a new subtree."),
		sceneArg,
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template ID")),
		mcp.WithString("parent", mcp.Description("Parent node ID or /path (defaults to the root)")),
		mcp.WithOutputSchema[EditResult](),
	), mcp.NewStructuredToolHandler(s.handleApplyTemplate))

	s.mcpServer.AddTool(mcp.NewTool("validate_scene",
		mcp.WithDescription("Check tree invariants and property types. Returns one finding per line, or OK."),
		sceneArg,
	), s.handleValidate)
}

func (s *Server) handleCreateScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	sc, err := s.editor.CreateScene(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create failed: %v", err)), nil
	}
	return jsonResult(sc)
}

func (s *Server) handleListScenes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.editor.Scenes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

func (s *Server) handleAddNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	parent, _ := args["parent"].(string)
	name, _ := args["name"].(string)
	typeName, _ := args["type"].(string)

	t, err := domain.ParseNodeType(typeName)
	if err != nil {
		return EditResult{}, err
	}
	if name, err = editor.SanitizeInput(name); err != nil {
		s.logger.Warn("MCP add_node: Input rejected", "error", err, "size", len(name))
		return EditResult{}, fmt.Errorf("input rejected: %w", err)
	}
	id, diff, err := s.editor.AddNode(ctx, sceneID, parent, name, t)
	if err != nil {
		return EditResult{}, fmt.Errorf("add_node failed: %w", err)
	}
	return summarize(sceneID, id, diff), nil
}

func (s *Server) handleRemoveNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	node, _ := args["node"].(string)

	diff, err := s.editor.RemoveNode(ctx, sceneID, node)
	if err != nil {
		return EditResult{}, fmt.Errorf("remove_node failed: %w", err)
	}
	return summarize(sceneID, "", diff), nil
}

func (s *Server) handleMoveNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	node, _ := args["node"].(string)
	parent, _ := args["parent"].(string)
	index := -1
	if f, ok := args["index"].(float64); ok {
		index = int(f)
	}

	diff, err := s.editor.MoveNode(ctx, sceneID, node, parent, index)
	if err != nil {
		return EditResult{}, fmt.Errorf("move_node failed: %w", err)
	}
	return summarize(sceneID, "", diff), nil
}

func (s *Server) handleRenameNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	node, _ := args["node"].(string)
	name, err := editor.SanitizeInput(stringArg(args, "name"))
	if err != nil {
		s.logger.Warn("MCP rename_node: Input rejected", "error", err)
		return EditResult{}, fmt.Errorf("input rejected: %w", err)
	}

	diff, err := s.editor.RenameNode(ctx, sceneID, node, name)
	if err != nil {
		return EditResult{}, fmt.Errorf("rename_node failed: %w", err)
	}
	return summarize(sceneID, "", diff), nil
}

func (s *Server) handleSetProperty(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	node, _ := args["node"].(string)
	key, _ := args["key"].(string)
	raw, err := editor.SanitizeInput(stringArg(args, "value"))
	if err != nil {
		s.logger.Warn("MCP set_property: Input rejected", "error", err)
		return EditResult{}, fmt.Errorf("input rejected: %w", err)
	}

	value, err := editor.ParseValue(raw)
	if err != nil {
		return EditResult{}, fmt.Errorf("set_property: %w", err)
	}
	diff, err := s.editor.SetProperty(ctx, sceneID, node, key, value)
	if err != nil {
		return EditResult{}, fmt.Errorf("set_property failed: %w", err)
	}
	return summarize(sceneID, "", diff), nil
}

func (s *Server) handleGetNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.editor.Node(ctx, request.GetString("scene_id", ""), request.GetString("node", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_node failed: %v", err)), nil
	}
	return jsonResult(n)
}

func (s *Server) handleGenerateCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := s.editor.Generate(ctx, request.GetString("scene_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate_code failed: %v", err)), nil
	}
	return mcp.NewToolResultText(code), nil
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.editor.Templates(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list_templates failed: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

func (s *Server) handleApplyTemplate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EditResult, error) {
	sceneID, _ := args["scene_id"].(string)
	templateID, _ := args["template_id"].(string)
	parent, _ := args["parent"].(string)

	id, diff, err := s.editor.ApplyTemplate(ctx, sceneID, templateID, parent)
	if err != nil {
		return EditResult{}, fmt.Errorf("apply_template failed: %w", err)
	}
	return summarize(sceneID, id, diff), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.editor.Validate(ctx, request.GetString("scene_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validate_scene failed: %v", err)), nil
	}
	if report.OK() {
		return mcp.NewToolResultText("OK"), nil
	}
	var lines []string
	for _, err := range report.Invariants {
		lines = append(lines, "invariant: "+err.Error())
	}
	for _, err := range report.Properties {
		lines = append(lines, "property: "+err.Error())
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(sceneURIPrefix+"{id}", "Scene Document",
		mcp.WithTemplateDescription("A stored scene graph as JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readScene)
}

func (s *Server) readScene(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id, ok := strings.CutPrefix(uri, sceneURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid scene uri %q", uri)
	}
	sc, err := s.editor.Scene(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}
	jsonBytes, err := json.Marshal(sc)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func summarize(sceneID string, id domain.NodeID, diff *domain.SceneDiff) EditResult {
	res := EditResult{SceneID: sceneID, NodeID: string(id), Changed: []string{}, Removed: []string{}}
	if diff == nil {
		return res
	}
	for nid, n := range diff.Nodes {
		if n != nil {
			res.Changed = append(res.Changed, string(nid))
		}
	}
	for _, nid := range diff.Removed() {
		res.Removed = append(res.Removed, string(nid))
	}
	slices.Sort(res.Changed)
	slices.Sort(res.Removed)
	return res
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
