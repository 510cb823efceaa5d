package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/middleware"
)

// shipmentHandler handles HTTP requests for shipment dossiers, their timeline
// and their attached document references.
type shipmentHandler struct {
	shipmentSvc portssvc.ShipmentSvcFacade
}

// newShipmentHandler creates a new shipmentHandler.
func newShipmentHandler(shipmentSvc portssvc.ShipmentSvcFacade) *shipmentHandler {
	return &shipmentHandler{shipmentSvc: shipmentSvc}
}

// RegisterShipmentRoutes registers the shipment routes. Reads are open to any
// authenticated company member; writes need the operations preset.
func RegisterShipmentRoutes(rg *gin.RouterGroup, shipmentSvc portssvc.ShipmentSvcFacade) {
	h := newShipmentHandler(shipmentSvc)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("", middleware.Operations(), h.createShipment)
		shipments.GET("", h.listShipments)
		shipments.GET("/:shipmentID", h.getShipment)
		shipments.PATCH("/:shipmentID", middleware.Operations(), h.updateShipment)
		shipments.POST("/:shipmentID/archive", middleware.Operations(), h.archiveShipment)
		shipments.GET("/:shipmentID/timeline", h.listTimeline)
		shipments.GET("/:shipmentID/documents", h.listDocuments)
		shipments.POST("/:shipmentID/documents", middleware.Operations(), h.addDocument)
		shipments.DELETE("/:shipmentID/documents/:documentID", middleware.Operations(), h.removeDocument)
	}
}

// createShipment godoc
// @Summary Create a shipment
// @Description Creates a dossier with a generated tracking number, defaults applied (USD, CONAKRY, IM4, DRAFT) and the initial timeline event.
// @Tags shipments
// @Accept json
// @Produce json
// @Param shipment body dto.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} dto.Response{data=dto.ShipmentResponse}
// @Failure 400 {object} map[string]any "Validation failure or unknown client"
// @Failure 403 {object} map[string]any "Role below agent"
// @Security BearerAuth
// @Router /shipments [post]
func (h *shipmentHandler) createShipment(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	shipment, err := h.shipmentSvc.CreateShipment(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, dto.ToShipmentResponse(shipment))
}

// listShipments godoc
// @Summary List shipments
// @Description Lists the company's shipments with an optional status filter and free-text search over tracking number, BL number and client name.
// @Tags shipments
// @Produce json
// @Param status query string false "Lifecycle status filter"
// @Param search query string false "Case-insensitive substring search"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.Response{data=dto.ListShipmentsResponse}
// @Failure 400 {object} map[string]any "Unknown status"
// @Security BearerAuth
// @Router /shipments [get]
func (h *shipmentHandler) listShipments(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var params dto.ListShipmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	params.Page, params.Limit = normalizePage(params.Page, params.Limit)
	shipments, total, err := h.shipmentSvc.ListShipments(c.Request.Context(), identity, params)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPaginationMeta(params.Page, params.Limit, total)
	respondOK(c, dto.ToListShipmentsResponse(shipments, meta))
}

// getShipment godoc
// @Summary Get a shipment
// @Description Retrieves one shipment with its containers, scoped to the caller's company.
// @Tags shipments
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.Response{data=dto.ShipmentResponse}
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID} [get]
func (h *shipmentHandler) getShipment(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	shipment, err := h.shipmentSvc.GetShipmentByID(c.Request.Context(), identity, c.Param("shipmentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToShipmentResponse(shipment))
}

// updateShipment godoc
// @Summary Patch a shipment
// @Description Applies a partial update. A changed status appends a timeline event in the same transaction; terminal shipments only accept no-op writes.
// @Tags shipments
// @Accept json
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Param patch body dto.UpdateShipmentRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.ShipmentResponse}
// @Failure 400 {object} map[string]any "Unknown status"
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Failure 409 {object} map[string]any "Shipment closed or archived"
// @Security BearerAuth
// @Router /shipments/{shipmentID} [patch]
func (h *shipmentHandler) updateShipment(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	shipment, err := h.shipmentSvc.UpdateShipment(c.Request.Context(), identity, c.Param("shipmentID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToShipmentResponse(shipment))
}

// archiveShipment godoc
// @Summary Archive a shipment
// @Description Soft-deletes a dossier by moving it to ARCHIVED. There is no hard delete.
// @Tags shipments
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Failure 409 {object} map[string]any "Shipment closed"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/archive [post]
func (h *shipmentHandler) archiveShipment(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.shipmentSvc.ArchiveShipment(c.Request.Context(), identity, c.Param("shipmentID")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"message": "shipment archived"})
}

// listTimeline godoc
// @Summary Shipment status history
// @Description Returns the shipment's timeline events, oldest first.
// @Tags shipments
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.Response{data=[]dto.TimelineEventResponse}
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/timeline [get]
func (h *shipmentHandler) listTimeline(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	events, err := h.shipmentSvc.ListTimeline(c.Request.Context(), identity, c.Param("shipmentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToTimelineEventResponses(events))
}

// listDocuments godoc
// @Summary List shipment documents
// @Description Returns the shipment's document references, newest first.
// @Tags documents
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.Response{data=[]dto.DocumentResponse}
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/documents [get]
func (h *shipmentHandler) listDocuments(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	docs, err := h.shipmentSvc.ListDocuments(c.Request.Context(), identity, c.Param("shipmentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToDocumentResponses(docs))
}

// addDocument godoc
// @Summary Attach a document reference
// @Description Records a named file URL against the shipment. Files themselves live in external storage.
// @Tags documents
// @Accept json
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Param document body dto.AddDocumentRequest true "Document reference"
// @Success 201 {object} dto.Response{data=dto.DocumentResponse}
// @Failure 400 {object} map[string]any "Validation failure"
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/documents [post]
func (h *shipmentHandler) addDocument(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	doc, err := h.shipmentSvc.AddDocument(c.Request.Context(), identity, c.Param("shipmentID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, dto.ToDocumentResponse(doc))
}

// removeDocument godoc
// @Summary Detach a document reference
// @Description Removes a document reference from the shipment.
// @Tags documents
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/documents/{documentID} [delete]
func (h *shipmentHandler) removeDocument(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	err := h.shipmentSvc.RemoveDocument(c.Request.Context(), identity, c.Param("shipmentID"), c.Param("documentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"message": "document removed"})
}
