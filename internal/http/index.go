package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/services"
)

// IndexController serves the landing page and its JSON counterpart.
type IndexController struct {
	summary SummaryBuilder
}

func NewIndexController(summary SummaryBuilder) *IndexController {
	return &IndexController{summary: summary}
}

type indexPage struct {
	Summary   services.CatalogSummary
	Error     string
	DemoMode  bool
	Analytics AnalyticsTemplateData
}

// Page renders the catalog summary as HTML.
func (ic *IndexController) Page(c *gin.Context) {
	page := indexPage{
		DemoMode:  c.GetBool(demo.ContextKeyDemoMode),
		Analytics: GetAnalyticsTemplateData(c),
	}

	summary, err := ic.summary.BuildCatalogSummary(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		page.Error = "The catalog could not be loaded."
		if errors.Is(err, catalog.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
			page.Error = "The catalog is temporarily unavailable."
		}
		log.Printf("Failed to build catalog summary: %v", err)
		c.HTML(status, "index.html", page)
		return
	}

	page.Summary = summary
	c.HTML(http.StatusOK, "index.html", page)
}

// Summary returns the catalog summary as JSON.
func (ic *IndexController) Summary(c *gin.Context) {
	summary, err := ic.summary.BuildCatalogSummary(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
