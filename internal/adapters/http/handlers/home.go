package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templates embed.FS

const homeTemplate = "home.html"

// homeTemplates is parsed once; a broken template fails at startup.
var homeTemplates = template.Must(template.ParseFS(templates, "templates/*.html"))

// HomeHandler serves the browser front end.
type HomeHandler struct {
	title     string
	apiPrefix string
}

// NewHomeHandler creates a home handler whose page calls the API mounted at apiPrefix.
func NewHomeHandler(title, apiPrefix string) *HomeHandler {
	return &HomeHandler{
		title:     title,
		apiPrefix: apiPrefix,
	}
}

// homePage is the template data for the home page.
type homePage struct {
	Title      string
	APIPrefix  string
	SearchPath string
}

// Home handles GET /
func (h *HomeHandler) Home(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{
		Template: homeTemplates,
		Name:     homeTemplate,
		Data: homePage{
			Title:      h.title,
			APIPrefix:  h.apiPrefix,
			SearchPath: h.apiPrefix + "/pokemon/search/",
		},
	})
}

// RegisterHomeRoutes registers the home page on the engine root.
func (h *HomeHandler) RegisterHomeRoutes(engine *gin.Engine) {
	engine.GET("/", h.Home)
}
