package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AtlasCoachBack/internal/config"
)

//go:embed openapi.yaml
var openAPISpec []byte

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --bg: #10151c;
      --panel: #18202b;
      --text: #e8edf3;
      --muted: #93a1b3;
      --accent: #f0a53a;
      --border: #263241;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Inter", "Segoe UI", sans-serif;
      color: var(--text);
      background: var(--bg);
    }
    main {
      max-width: 980px;
      margin: 0 auto;
      padding: 40px 20px 56px;
    }
    header, .panel {
      background: var(--panel);
      border: 1px solid var(--border);
      border-radius: 12px;
      padding: 24px;
      margin-bottom: 16px;
    }
    header h1 {
      margin: 0 0 10px;
      font-size: 2.4rem;
      color: var(--accent);
    }
    header p {
      margin: 0;
      color: var(--muted);
      line-height: 1.6;
    }
    .links {
      display: flex;
      gap: 10px;
      margin-top: 18px;
    }
    .links a {
      padding: 9px 14px;
      border-radius: 8px;
      border: 1px solid var(--accent);
      color: var(--accent);
      text-decoration: none;
      font-weight: 600;
    }
    .facts {
      display: grid;
      gap: 12px;
      grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    }
    .facts strong, .panel h2 {
      display: block;
      margin: 0 0 6px;
      font-size: 0.8rem;
      text-transform: uppercase;
      color: var(--muted);
    }
    pre {
      margin: 0;
      padding: 16px;
      overflow: auto;
      border-radius: 8px;
      background: #0b0f14;
      font-size: 0.88rem;
      line-height: 1.45;
    }
  </style>
</head>
<body>
  <main>
    <header>
      <h1>{{ .Title }}</h1>
      <p>Onboarding, plans, workout logs, the AI coach and the admin panel of the Atlas API. The raw document lives at <code>/docs/openapi.yaml</code> and is only exposed in development.</p>
      <div class="links">
        <a href="/docs/openapi.yaml">Raw YAML</a>
        <a href="/docs/openapi.yaml" download="openapi.yaml">Download</a>
      </div>
    </header>
    <section class="facts">
      <div class="panel">
        <strong>Loaded</strong>
        <span>{{ .LoadedAt }}</span>
      </div>
      <div class="panel">
        <strong>Auth</strong>
        <span>Bearer JWT from /api/auth/login</span>
      </div>
    </section>
    <section class="panel">
      <h2>openapi.yaml</h2>
      <pre>{{ .Spec }}</pre>
    </section>
  </main>
</body>
</html>
`

type docsPageData struct {
	Title    string
	LoadedAt string
	Spec     string
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	if len(openAPISpec) == 0 {
		return fmt.Errorf("openapi spec is empty")
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "Atlas Coach API",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Spec:     string(openAPISpec),
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(openAPISpec)
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("Permissions-Policy", "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()")
	c.Set("Cross-Origin-Resource-Policy", "same-origin")
	c.Set("Cross-Origin-Opener-Policy", "same-origin")
	c.Set("Cross-Origin-Embedder-Policy", "require-corp")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
