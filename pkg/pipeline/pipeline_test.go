package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/observability"
	"github.com/matzehuels/modgraph/pkg/render"
)

const curriculumJSON = `{
  "modules": {
    "B": {"pre": ["A"]},
    "C": {"pre": ["B", "A"], "excl": ["D"]},
    "D": {"excl": ["C"]}
  },
  "programmes": {
    "alpha": {"years": [["A"], ["B"], ["C", "D"]], "required": ["A"]},
    "beta":  {"years": [["A", "E"]]}
  }
}`

func writeCurriculum(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"jpg", false},
		{"jpeg", false},
		{"json", false},
		{"SVG", false},
		{"pdf", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultInput, opts.Input)
	assert.Equal(t, curriculum.AllKinds, opts.Kinds)
	assert.Equal(t, render.FormatDOT, opts.Format)
	assert.Equal(t, "RL", opts.RankDir)
	assert.Equal(t, 1.5, opts.RankSep)
	assert.Len(t, opts.YearColours, 4)
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad rankdir", Options{RankDir: "XY"}, errors.ErrCodeInvalidRankDir},
		{"bad kind", Options{Kinds: []curriculum.Kind{"nope"}}, errors.ErrCodeInvalidKind},
		{"negative ranksep", Options{RankSep: -1}, errors.ErrCodeInvalidInput},
		{"bad programme", Options{Programme: "a\"b"}, errors.ErrCodeInvalidModuleID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Format: "JPEG"}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, render.FormatJPG, opts.Format)

	first := opts
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, first, opts)
}

func TestKindsExcept(t *testing.T) {
	assert.Equal(t, curriculum.AllKinds, KindsExcept())
	assert.Equal(t,
		[]curriculum.Kind{curriculum.Corequisite, curriculum.Exclusion},
		KindsExcept(curriculum.Prerequisite, curriculum.Suggestion))

	none := KindsExcept(curriculum.AllKinds...)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestExecute_DOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:     writeCurriculum(t, curriculumJSON),
		Programme: "alpha",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.ModuleCount)
	assert.Equal(t, 2, res.Stats.ProgrammeCount)
	require.Len(t, res.Graphs, 1)
	assert.Empty(t, res.Failures)

	dot := string(res.Artifact)
	assert.Equal(t, res.DOT, dot)
	assert.True(t, strings.HasPrefix(dot, "digraph Modules {\n"))
	assert.Contains(t, dot, `"B" -> "A"`)
	assert.Contains(t, dot, `"C" -> "B"`)
	assert.NotContains(t, dot, `"C" -> "A"`, "redundant prerequisite should be reduced")
	assert.Contains(t, dot, `"C" -> "D"`)
	assert.NotContains(t, dot, `"D" -> "C"`, "exclusion should be drawn once")
	assert.False(t, res.CacheInfo.RenderHit)
}

func TestExecute_AllProgrammes(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: writeCurriculum(t, curriculumJSON)})
	require.NoError(t, err)

	require.Len(t, res.Graphs, 2)
	assert.Equal(t, "alpha", res.Graphs[0].Programme)
	assert.Equal(t, "beta", res.Graphs[1].Programme)
	assert.Contains(t, res.DOT, "// programme alpha")
	assert.Contains(t, res.DOT, "// programme beta")
}

func TestExecute_UnknownProgramme(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Input:     writeCurriculum(t, curriculumJSON),
		Programme: "gamma",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownProgramme))
	assert.Contains(t, err.Error(), `"gamma"`)
}

func TestExecute_MissingInput(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "none.json")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigLoad))
}

func TestExecute_Whitelist(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:     writeCurriculum(t, curriculumJSON),
		Programme: "alpha",
		Kinds:     KindsExcept(curriculum.Exclusion),
		Whitelist: []string{"B"},
	})
	require.NoError(t, err)
	require.Len(t, res.Graphs, 1)
	assert.Equal(t, []string{"A", "B"}, res.Graphs[0].Universe.Sorted())
}

func TestExecute_EmptyWhitelistResult(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:     writeCurriculum(t, curriculumJSON),
		Programme: "beta",
		Whitelist: []string{"Z"},
	})
	require.NoError(t, err)
	require.Len(t, res.Graphs, 1)
	assert.True(t, res.Graphs[0].IsEmpty())
}

func TestExecute_JSON(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:     writeCurriculum(t, curriculumJSON),
		Programme: "alpha",
		Format:    render.FormatJSON,
	})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(res.Artifact, &doc))
	assert.Contains(t, doc, "programmes")
}

func TestExecute_Strict(t *testing.T) {
	const conflicting = `{
	  "modules": {},
	  "programmes": {"alpha": {"years": [["A"], ["A"]]}}
	}`
	r := NewRunner(nil, nil, nil)
	path := writeCurriculum(t, conflicting)

	_, err := r.Execute(context.Background(), Options{Input: path})
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), Options{Input: path, Strict: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), `"A"`)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnLoadStart(context.Context, string) {
	h.events = append(h.events, "load")
}

func (h *recordingHooks) OnComputeComplete(_ context.Context, programme string, _, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "compute:"+programme)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "render:"+format)
}

func TestExecute_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Input: writeCurriculum(t, curriculumJSON)})
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "compute:alpha", "compute:beta", "render:dot"}, hooks.events)
}

type memCache struct {
	data map[string][]byte
	gets int
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.gets++
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestRender_UsesCache(t *testing.T) {
	c := &memCache{data: map[string][]byte{}}
	r := NewRunner(c, nil, nil)
	opts := Options{Format: render.FormatSVG}
	dot := "digraph Modules {}\n"

	key := r.Keyer.ArtifactKey([]byte(dot), "svg")
	c.data[key] = []byte("<svg>cached</svg>")

	data, hit, err := r.RenderWithCacheInfo(context.Background(), nil, dot, opts)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "<svg>cached</svg>", string(data))
}

func TestRender_DOTSkipsCache(t *testing.T) {
	c := &memCache{data: map[string][]byte{}}
	r := NewRunner(c, nil, nil)

	data, hit, err := r.RenderWithCacheInfo(context.Background(), nil, "digraph Modules {}\n", Options{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "digraph Modules {}\n", string(data))
	assert.Zero(t, c.gets)
}
