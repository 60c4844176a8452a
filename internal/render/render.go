package render

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"imgconv/internal/model"
)

// FallbackPage is served whenever a template cannot be read, including the
// error template itself.
const FallbackPage = "<h1>Internal Server Error</h1>"

// Token returns the placeholder for key, e.g. "{{message}}".
func Token(key string) string {
	return "{{" + key + "}}"
}

// Render reads the template at path and substitutes every {{key}} from ctx.
// It never fails: a read error is logged and FallbackPage returned.
func Render(path string, ctx model.TemplateContext) string {
	b, err := os.ReadFile(path)
	if err != nil {
		slog.Error("template rendering error",
			"template", path,
			"error", fmt.Errorf("%w: %w", model.ErrTemplate, err).Error(),
		)
		return FallbackPage
	}
	return Substitute(string(b), ctx)
}

// Substitute replaces placeholders in a single pass over text.
// Values are inserted verbatim and are never themselves scanned for
// placeholders, so a value containing "{{other}}" stays literal.
// When ctx repeats a key, the first pair wins.
func Substitute(text string, ctx model.TemplateContext) string {
	if len(ctx) == 0 {
		return text
	}
	oldnew := make([]string, 0, 2*len(ctx))
	for _, p := range ctx {
		oldnew = append(oldnew, Token(p.Key), p.Value)
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}
