package routes

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/config"
	"github.com/gofiber/fiber/v2"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0; font-family: Georgia, "Times New Roman", serif; color: #132019; background: #f6f7f4; }
    main { max-width: 960px; margin: 0 auto; padding: 40px 20px 56px; }
    h1 { margin: 0 0 4px; }
    p.meta { margin: 0 0 24px; color: #536258; }
    table { width: 100%; border-collapse: collapse; background: #ffffff; border: 1px solid #d8ddd6; }
    th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #d8ddd6; }
    td.method { font-family: monospace; font-weight: bold; color: #1f6f4a; width: 90px; }
    td.path { font-family: monospace; }
    td.auth { color: #536258; width: 120px; }
  </style>
</head>
<body>
<main>
  <h1>{{ .Title }}</h1>
  <p class="meta">{{ len .Routes }} routes, rendered {{ .RenderedAt }}</p>
  <table>
    <thead><tr><th>Method</th><th>Path</th><th>Auth</th></tr></thead>
    <tbody>
    {{- range .Routes }}
      <tr><td class="method">{{ .Method }}</td><td class="path">{{ .Path }}</td><td class="auth">{{ .Auth }}</td></tr>
    {{- end }}
    </tbody>
  </table>
</main>
</body>
</html>
`

type docsRoute struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
}

type docsPageData struct {
	Title      string
	RenderedAt string
	Routes     []docsRoute
}

// registerDocsRoutes serves an index of every registered route at /docs.
// The table is built per request so routes added later still show up.
func registerDocsRoutes(app *fiber.App, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		data := docsPageData{
			Title:      "LeeFit API",
			RenderedAt: time.Now().UTC().Format(time.RFC3339),
			Routes:     collectDocsRoutes(app),
		}

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, data); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}
		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/routes.json", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.JSON(fiber.Map{"routes": collectDocsRoutes(app)})
	})

	return nil
}

func collectDocsRoutes(app *fiber.App) []docsRoute {
	var routes []docsRoute
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || r.Path == "/" || strings.HasPrefix(r.Path, "/docs") {
			continue
		}
		routes = append(routes, docsRoute{
			Method: r.Method,
			Path:   r.Path,
			Auth:   routeAuth(r.Path),
		})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	return routes
}

func routeAuth(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/"), path == "/api/auth/me", path == "/api/survey/latest":
		return "bearer"
	case path == "/api/survey":
		return "optional"
	default:
		return "public"
	}
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
