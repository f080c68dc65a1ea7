package httpd

import (
	"html/template"
	"net/http"

	"github.com/frequencyai/member-platform/pkg/logger"
)

// Marketing pages are deliberately minimal stubs: the pages exist so the
// router, guard, and redirect behavior have real targets to serve.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}} | Frequency AI</title>
</head>
<body>
  <main>
    <h1>{{.Title}}</h1>
    <p>{{.Body}}</p>
  </main>
</body>
</html>
`))

type pageData struct {
	Title string
	Body  string
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		logger.ErrorContext(r.Context(), "failed to render page", "error", err, "title", data.Title)
	}
}

func (h *PageHandler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Frequency AI",
		Body:  "AI-powered appointment booking for service businesses.",
	})
}

func (h *PageHandler) automationBenefits(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Automation Benefits",
		Body:  "Let automated scheduling handle the back and forth.",
	})
}

func (h *PageHandler) platformIntegration(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "AI Platform Integration",
		Body:  "Connect Frequency AI to the tools you already use.",
	})
}

func (h *PageHandler) contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Contact",
		Body:  "Questions? Send us a message and we'll get back to you.",
	})
}

func (h *PageHandler) member(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Member Dashboard",
		Body:  "Your appointments and account metrics live here.",
	})
}

func (h *PageHandler) customer(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Customer Detail",
		Body:  "Customer profile and booking history.",
	})
}

// notFound is the catch-all: unknown paths fall back to the home page
// rather than a 404.
func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.home(w, r)
}
