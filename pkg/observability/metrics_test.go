package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/codegen"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/observability"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHooks(t *testing.T) {
	m := observability.NewMetrics(false)
	s := scene.New("metrics", scene.WithHooks(m.Hooks()))

	bg, err := s.AddNode(s.RootID(), "Bg", domain.NodeTypeRectangle)
	require.NoError(t, err)
	a, err := s.AddNode(bg, "A", domain.NodeTypeSprite)
	require.NoError(t, err)
	_, err = s.AddNode(a, "B", domain.NodeTypeSprite)
	require.NoError(t, err)
	require.NoError(t, s.SetProperty(bg, "color", domain.Color(0xFF0000FF)))
	require.NoError(t, s.SetProperty(a, "path", domain.Text("a.png")))
	require.NoError(t, s.MoveNode(a, s.RootID(), -1))
	require.NoError(t, s.RemoveNode(a))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesAdded.WithLabelValues("Rectangle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodesAdded.WithLabelValues("Sprite")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodesRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesMoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PropertyWrites.WithLabelValues("Color")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PropertyWrites.WithLabelValues("String")))

	g := codegen.New(codegen.WithHooks(m.Hooks()))
	g.GenerateContext(context.Background(), s.Scene())
	g.GenerateContext(context.Background(), s.Scene())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Generations))
}

func TestMetricsHandler(t *testing.T) {
	m := observability.NewMetrics(true)
	m.Generations.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "turbo_editor_generations_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	hooks := observability.LogHooks(logger).Merge(observability.NewMetrics(false).Hooks())

	s := scene.New("logged", scene.WithHooks(hooks))
	_, err := s.AddNode(s.RootID(), "Hero", domain.NodeTypeSprite)
	require.NoError(t, err)
	codegen.New(codegen.WithHooks(hooks)).Generate(s.Scene())

	out := buf.String()
	assert.Contains(t, out, "node added")
	assert.Contains(t, out, "type=Sprite")
	assert.Contains(t, out, "code generated")
	assert.Contains(t, out, "statements=1")
}
