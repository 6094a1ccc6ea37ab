package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/models"
	"campervan_catalog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errIssueToken      = "failed to open session"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// pageQuery is the query string of the catalogue page. The filter fields
// let the filter form work as a plain GET form.
type pageQuery struct {
	Page            string   `form:"page"`
	MinPrice        string   `form:"minPrice"`
	MaxPrice        string   `form:"maxPrice"`
	VehicleTypes    []string `form:"vehicleType"`
	InstantBookable string   `form:"instantBookable" binding:"omitempty,oneof=0 1"`
}

func (q pageQuery) selection() catalog.FilterSelection {
	sel := catalog.FilterSelection{}.WithPriceRange(catalog.ParsePrice(q.MinPrice), catalog.ParsePrice(q.MaxPrice))
	for _, id := range q.VehicleTypes {
		sel = sel.ToggleVehicleType(id, true)
	}
	sel.InstantBookableOnly = q.InstantBookable == "1"
	return sel
}

// priceInput accepts a JSON number or locale formatted text like "10 000".
type priceInput struct {
	value *float64
}

func (p *priceInput) UnmarshalJSON(b []byte) error {
	p.value = nil
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		p.value = catalog.ParsePrice(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v > 0 {
		p.value = &v
	}
	return nil
}

type filterRequest struct {
	MinPrice            priceInput      `json:"minPrice"`
	MaxPrice            priceInput      `json:"maxPrice"`
	VehicleTypes        map[string]bool `json:"vehicleTypes"`
	InstantBookableOnly bool            `json:"instantBookableOnly"`
}

func (r filterRequest) selection() catalog.FilterSelection {
	return catalog.FilterSelection{
		MinPrice:            r.MinPrice.value,
		MaxPrice:            r.MaxPrice.value,
		VehicleTypes:        r.VehicleTypes,
		InstantBookableOnly: r.InstantBookableOnly,
	}
}

type toggleRequest struct {
	ID      string `json:"id" binding:"required"`
	Checked bool   `json:"checked"`
}

// FilterRequest is an exported model for Swagger docs of the filters payload.
type FilterRequest struct {
	// Lower price bound; number or text such as "1 500". Empty or 0 clears it.
	MinPrice string `json:"minPrice,omitempty" example:"1 500"`
	// Upper price bound; same format as minPrice.
	MaxPrice string `json:"maxPrice,omitempty" example:"4000"`
	// Explicit per-type inclusion flags
	VehicleTypes map[string]bool `json:"vehicleTypes,omitempty"`
	// Only instantly bookable vans
	InstantBookableOnly bool `json:"instantBookableOnly" example:"false"`
}

// ToggleRequest is an exported model for Swagger docs of the checkbox payload.
type ToggleRequest struct {
	ID      string `json:"id" example:"Alcove"`
	Checked bool   `json:"checked" example:"true"`
}

type pageData struct {
	View         catalog.View
	Token        string
	VehicleTypes []models.VehicleType
	PriceFloor   int
	PriceCeiling int
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Catalogue page
// @Description  Server-rendered first batch; page pre-slices page*pageSize items
// @Tags         catalog
// @Produce      html
// @Param        page  query  int  false  "Cumulative page"
// @Success      200
// @Failure      500  {object}  map[string]string
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if h.log != nil {
			h.log.Infow("page_query_ignored", "err", err)
		}
		q = pageQuery{Page: c.Query("page")}
	}
	page := service.ParsePage(q.Page)
	ctx := c.Request.Context()

	var initial *models.CatalogPage
	data, err := h.services.InitialPage(ctx, page)
	if err != nil {
		// the page still renders; the client retries from Error
		if h.log != nil {
			h.log.Infow("initial_fetch_failed", "page", page, "err", err)
		}
	} else {
		initial = &data
	}

	sess := h.services.Open(initial, page)
	token, err := h.services.Issue(sess.ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errIssueToken, "session_token_failed", err, "session", sess.ID)
		return
	}

	view := sess.View()
	if sel := q.selection(); !isZeroSelection(sel) {
		view = sess.SetFilters(sel)
	}

	c.HTML(http.StatusOK, indexTemplate, pageData{
		View:         view,
		Token:        token,
		VehicleTypes: models.VehicleTypes,
		PriceFloor:   catalog.PriceFloor,
		PriceCeiling: catalog.PriceCeiling,
	})
}

func isZeroSelection(sel catalog.FilterSelection) bool {
	return sel.MinPrice == nil && sel.MaxPrice == nil && len(sel.VehicleTypes) == 0 && !sel.InstantBookableOnly
}

// @Summary      Mock catalogue provider
// @Description  Full dataset on success; empty 500 on a simulated outage
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  models.CatalogPage
// @Failure      500
// @Router       /api/data [get]
func (h *Handler) apiData(c *gin.Context) {
	data, err := h.services.FetchCatalogPage(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Infow("provider_failure", "err", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      Current view
// @Tags         session
// @Produce      json
// @Success      200  {object}  catalog.View
// @Failure      401  {object}  map[string]string
// @Failure      410  {object}  map[string]string
// @Router       /api/v1/session [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).View())
}

// @Summary      Load more
// @Description  Next batch from Ready, retry from Error, no-op while Loading or AllLoaded.
// @Description  A failed fetch still answers 200; the view carries status "error".
// @Tags         session
// @Produce      json
// @Success      200  {object}  catalog.View
// @Failure      401  {object}  map[string]string
// @Failure      410  {object}  map[string]string
// @Router       /api/v1/session/load [post]
// @Security     BearerAuth
func (h *Handler) loadMore(c *gin.Context) {
	sess := currentSession(c)
	view, err := sess.Load(c.Request.Context())
	if err != nil && h.log != nil {
		h.log.Infow("session_load_failed", "session", sess.ID, "page", view.Page, "err", err)
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Replace filters
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      FilterRequest  true  "Filter selection"
// @Success      200   {object}  catalog.View
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/session/filters [put]
// @Security     BearerAuth
func (h *Handler) setFilters(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, currentSession(c).SetFilters(req.selection()))
}

// @Summary      Toggle a vehicle type checkbox
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      ToggleRequest  true  "Checkbox state"
// @Success      200   {object}  catalog.View
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/session/filters/vehicle-type [post]
// @Security     BearerAuth
func (h *Handler) toggleVehicleType(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	view := currentSession(c).UpdateFilters(func(sel catalog.FilterSelection) catalog.FilterSelection {
		return sel.ToggleVehicleType(req.ID, req.Checked)
	})
	c.JSON(http.StatusOK, view)
}
