package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/page"
)

// SeasonParam names the harvest season segment of scoped routes. The seasons
// resource uses it for its own ids so the router sees one wildcard name.
const SeasonParam = "season"

// ResourceHandler serves the list-plus-dialog routes of one resource.
type ResourceHandler[T any, P any] struct {
	*Base
	cfg     *page.Config[T, P]
	idParam string
}

// NewResourceHandler binds a page config to HTTP. idParam is the route
// parameter holding row ids.
func NewResourceHandler[T any, P any](base *Base, cfg *page.Config[T, P], idParam string) *ResourceHandler[T, P] {
	if idParam == "" {
		idParam = "id"
	}
	return &ResourceHandler[T, P]{Base: base, cfg: cfg, idParam: idParam}
}

// Register mounts the resource routes on rg, which must already point at the
// resource's base path.
func (h *ResourceHandler[T, P]) Register(rg gin.IRouter) {
	item := "/:" + h.idParam
	rg.GET("", h.List)
	rg.GET("/new", h.New)
	rg.GET(item+"/edit", h.Edit)
	rg.POST("", h.Create)
	rg.POST(item, h.Update)
	rg.POST(item+"/delete", h.Delete)
	rg.POST(item+"/actions/:action", h.Action)
}

func (h *ResourceHandler[T, P]) open(c *gin.Context) (*page.Page[T, P], bool) {
	var scope page.Scope
	if h.cfg.Scoped {
		id, ok := paramID(c, SeasonParam)
		if !ok {
			h.renderError(c, http.StatusNotFound, "Unknown harvest season")
			return nil, false
		}
		scope.SeasonID = id
	}
	return page.New(h.cfg, h.client(c), scope), true
}

func (h *ResourceHandler[T, P]) rowID(c *gin.Context) (int64, bool) {
	id, ok := paramID(c, h.idParam)
	if !ok {
		h.renderError(c, http.StatusNotFound, "That "+h.cfg.Singular+" does not exist")
	}
	return id, ok
}

func (h *ResourceHandler[T, P]) show(c *gin.Context, p *page.Page[T, P], err error) {
	if err != nil && h.endSession(c, err) {
		return
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		h.logger.Debug("resource request failed",
			zap.String("resource", h.cfg.Name),
			zap.String("state", p.State().String()),
			zap.Error(err))
	}
	h.render(c, status, "resource.html", h.cfg.Title, gin.H{"Page": p.View()})
}

// List renders the table.
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	h.show(c, p, p.Load(c.Request.Context()))
}

// New renders the table with an empty create dialog.
func (h *ResourceHandler[T, P]) New(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	if err := p.Load(c.Request.Context()); err != nil {
		h.show(c, p, err)
		return
	}
	p.OpenCreate()
	h.show(c, p, nil)
}

// Edit renders the table with the dialog prefilled from the row.
func (h *ResourceHandler[T, P]) Edit(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	id, ok := h.rowID(c)
	if !ok {
		return
	}
	if err := p.Load(c.Request.Context()); err != nil {
		h.show(c, p, err)
		return
	}
	if !p.OpenEdit(id) {
		h.render(c, http.StatusNotFound, "resource.html", h.cfg.Title, gin.H{"Page": p.View()})
		return
	}
	h.show(c, p, nil)
}

// Create submits the create dialog.
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	form, err := submitted(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Malformed form submission")
		return
	}
	h.show(c, p, p.SubmitCreate(c.Request.Context(), form))
}

// Update submits the edit dialog.
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	id, ok := h.rowID(c)
	if !ok {
		return
	}
	form, err := submitted(c)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, "Malformed form submission")
		return
	}
	h.show(c, p, p.SubmitEdit(c.Request.Context(), id, form))
}

// Delete removes a row.
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	id, ok := h.rowID(c)
	if !ok {
		return
	}
	h.show(c, p, p.Delete(c.Request.Context(), id))
}

// Action runs a row action and re-renders.
func (h *ResourceHandler[T, P]) Action(c *gin.Context) {
	p, ok := h.open(c)
	if !ok {
		return
	}
	id, ok := h.rowID(c)
	if !ok {
		return
	}
	err := p.Run(c.Request.Context(), c.Param("action"), id)
	if errors.Is(err, page.ErrUnknownAction) {
		h.renderError(c, http.StatusNotFound, "Unknown action")
		return
	}
	h.show(c, p, err)
}

func submitted(c *gin.Context) (*page.Form, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return page.NewForm(c.Request.PostForm), nil
}
