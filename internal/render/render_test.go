package render

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgconv/internal/model"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tpl.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRender(t *testing.T) {
	path := writeTemplate(t, `<img src="/original/{{original_filename}}"><img src="/converted/{{converted_filename}}"><p>{{original_filename}}</p>`)

	got := Render(path, model.TemplateContext{
		{Key: "original_filename", Value: "20240101120000_4321.jpg"},
		{Key: "converted_filename", Value: "20240101120000_4321.jpg"},
	})

	assert.Equal(t, `<img src="/original/20240101120000_4321.jpg"><img src="/converted/20240101120000_4321.jpg"><p>20240101120000_4321.jpg</p>`, got)
}

func TestRender_Idempotent(t *testing.T) {
	path := writeTemplate(t, "<h1>{{message}}</h1>")
	ctx := model.TemplateContext{{Key: "message", Value: "No file uploaded"}}

	first := Render(path, ctx)
	second := Render(path, ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, "<h1>No file uploaded</h1>", first)
}

func TestRender_MissingTemplateFallsBack(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var logs bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))

	got := Render(filepath.Join(t.TempDir(), "missing.html"), model.TemplateContext{{Key: "message", Value: "x"}})

	assert.Equal(t, FallbackPage, got)
	assert.Equal(t, "<h1>Internal Server Error</h1>", got)
	assert.Contains(t, logs.String(), "template rendering error")
	assert.Contains(t, logs.String(), "missing.html")
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  model.TemplateContext
		want string
	}{
		{
			name: "unknown placeholders untouched",
			text: "{{a}} {{b}}",
			ctx:  model.TemplateContext{{Key: "a", Value: "1"}},
			want: "1 {{b}}",
		},
		{
			name: "no context",
			text: "{{a}}",
			want: "{{a}}",
		},
		{
			name: "value with placeholder is not re-substituted",
			text: "<p>{{message}}</p><p>{{secret}}</p>",
			ctx: model.TemplateContext{
				{Key: "message", Value: "{{secret}}"},
				{Key: "secret", Value: "leaked"},
			},
			want: "<p>{{secret}}</p><p>leaked</p>",
		},
		{
			name: "values verbatim",
			text: "{{m}}",
			ctx:  model.TemplateContext{{Key: "m", Value: "<b>&</b>"}},
			want: "<b>&</b>",
		},
		{
			name: "single braces ignored",
			text: "{m} {{m}}",
			ctx:  model.TemplateContext{{Key: "m", Value: "x"}},
			want: "{m} x",
		},
		{
			name: "duplicate key first wins",
			text: "{{m}}",
			ctx:  model.TemplateContext{{Key: "m", Value: "first"}, {Key: "m", Value: "second"}},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.ctx))
		})
	}
}
