package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/export"
	"github.com/worldsacross/tutor-viewer/internal/listing"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/response"
	"github.com/worldsacross/tutor-viewer/internal/validator"
)

// loader is the part of a list service every handler needs.
type loader interface {
	Load(ctx context.Context) error
	Loaded() bool
}

// bindListQuery parses the list query string, answering 400 on failure.
func bindListQuery(c *gin.Context) (model.ListQuery, bool) {
	var q model.ListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return q, false
	}
	return q, true
}

// visit loads the collection like a page visit does. A failed load is not
// an error for the caller while an earlier snapshot exists: it is served and
// flagged stale. Without any snapshot there is nothing to show.
func visit(c *gin.Context, svc loader, log zerolog.Logger) (stale bool, ok bool) {
	if err := svc.Load(c.Request.Context()); err != nil {
		if !svc.Loaded() {
			log.Warn().Err(err).Msg("No snapshot to serve")
			response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
			return false, false
		}
		return true, true
	}
	return false, true
}

func respondPage[V any](c *gin.Context, header model.PageHeader, items string, page listing.PageResult[V], stale bool, extra gin.H) {
	data := gin.H{"header": header, items: page.Items}
	for k, v := range extra {
		data[k] = v
	}
	pagination := response.NewPagination(page.Page, page.PageSize, page.TotalItems, page.TotalPages)
	if stale {
		response.SuccessStale(c, http.StatusOK, data, pagination)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, data, pagination)
}

func respondWorkbook(c *gin.Context, log zerolog.Logger, filename string, sheet export.Sheet) {
	var buf bytes.Buffer
	if err := export.Write(&buf, sheet); err != nil {
		log.Error().Err(err).Str("sheet", sheet.Name).Msg("Failed to build workbook")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
