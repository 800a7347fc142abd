package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/analytics"
)

const (
	analyticsContextKey = "analytics_template_data"

	// analyticsOriginContextKey carries the script origin allowed by the CSP
	analyticsOriginContextKey = "analytics_script_origin"
)

// AnalyticsTemplateData holds Plausible analytics info for templates.
type AnalyticsTemplateData struct {
	Enabled   bool
	Domain    string
	ScriptTag template.HTML
}

// AnalyticsContextMiddleware injects analytics data into the Gin context for
// templates. Must run BEFORE SecurityHeadersMiddleware in the middleware chain.
func AnalyticsContextMiddleware(cfg *analytics.PlausibleConfig) gin.HandlerFunc {
	data := AnalyticsTemplateData{ScriptTag: analytics.GenerateScriptTag(cfg)}
	if cfg != nil {
		data.Enabled = cfg.Enabled
		data.Domain = cfg.Domain
	}
	origin := cfg.ScriptOrigin()

	return func(c *gin.Context) {
		c.Set(analyticsContextKey, data)
		if origin != "" {
			c.Set(analyticsOriginContextKey, origin)
		}
		c.Next()
	}
}

// GetAnalyticsTemplateData retrieves analytics data from context for use in templates.
func GetAnalyticsTemplateData(c *gin.Context) AnalyticsTemplateData {
	if data, exists := c.Get(analyticsContextKey); exists {
		if analyticsData, ok := data.(AnalyticsTemplateData); ok {
			return analyticsData
		}
	}
	return AnalyticsTemplateData{}
}
