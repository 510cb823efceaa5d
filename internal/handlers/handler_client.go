package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/middleware"
)

// clientHandler handles HTTP requests for the company's client directory.
type clientHandler struct {
	clientSvc portssvc.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(clientSvc portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientSvc: clientSvc}
}

// RegisterClientRoutes registers the client directory routes.
func RegisterClientRoutes(rg *gin.RouterGroup, clientSvc portssvc.ClientSvcFacade) {
	h := newClientHandler(clientSvc)

	clients := rg.Group("/clients", middleware.Operations())
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
	}
}

// createClient godoc
// @Summary Create a client
// @Description Adds a consignee or shipper to the caller company's directory.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.Response{data=dto.ClientResponse}
// @Failure 400 {object} map[string]any "Validation failure"
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, err := h.clientSvc.CreateClient(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the caller company's clients, newest first, with paging.
// @Tags clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.Response{data=dto.ListClientsResponse}
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	params.Page, params.Limit = normalizePage(params.Page, params.Limit)
	clients, total, err := h.clientSvc.ListClients(c.Request.Context(), identity, params)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPaginationMeta(params.Page, params.Limit, total)
	respondOK(c, dto.ToListClientsResponse(clients, meta))
}
