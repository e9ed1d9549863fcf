package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockroom/internal/query"
)

// reserved query parameters; every other parameter names a filter.
const (
	paramQuery = "q"
	paramSort  = "sort"
	paramDir   = "dir"
	paramLimit = "limit"
)

// specFromRequest reads the view criteria from the URL query string.
func specFromRequest(c *gin.Context) query.Spec {
	spec := query.Spec{
		Query: strings.TrimSpace(c.Query(paramQuery)),
		Sort: query.Sort{
			Column:    c.Query(paramSort),
			Direction: query.Direction(strings.ToLower(c.Query(paramDir))),
		},
	}

	for name, values := range c.Request.URL.Query() {
		switch name {
		case paramQuery, paramSort, paramDir, paramLimit:
			continue
		}
		if len(values) == 0 {
			continue
		}
		if spec.Filters == nil {
			spec.Filters = query.Filters{}
		}
		spec.Filters[name] = values[0]
	}
	return spec
}
