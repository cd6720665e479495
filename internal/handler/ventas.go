package handler

import (
	"net/http"
	"path/filepath"

	"sneakerfever/internal/dto"
	"sneakerfever/internal/service"
	"sneakerfever/internal/worker"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct {
	svc         service.VentaService
	creditos    service.CreditoService
	render      worker.PDFRenderer
	storagePath string
	negocio     string
}

func NewVentasHandler(
	svc service.VentaService,
	creditos service.CreditoService,
	render worker.PDFRenderer,
	storagePath, negocio string,
) *VentasHandler {
	return &VentasHandler{svc: svc, creditos: creditos, render: render, storagePath: storagePath, negocio: negocio}
}

// CrearVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Transaccion unica: asigna SERIE-NUMERO, descuenta stock y, para CREDITO, genera el plan de cuotas.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearVentaRequest true "Venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "Stock insuficiente"
// @Failure      422  {object} apierror.APIError "Comprobante invalido para el documento"
// @Router       /v1/ventas [post]
func (h *VentasHandler) CrearVenta(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVenta(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "UUID del cliente"
// @Param        estado     query string false "PENDIENTE | PAGADA | ANULADA"
// @Param        forma_pago query string false "CONTADO | CREDITO"
// @Param        desde      query string false "YYYY-MM-DD"
// @Param        hasta      query string false "YYYY-MM-DD (inclusive)"
// @Param        page       query int    false "Pagina (default 1)"
// @Param        limit      query int    false "Registros por pagina (default 50)"
// @Success      200 {object} dto.VentaListResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Devuelve el stock de cada linea, marca la venta ANULADA y cancela su credito.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      409 {object} apierror.APIError "Ya anulada"
// @Router       /v1/ventas/{id}/anular [post]
func (h *VentasHandler) AnularVenta(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.AnularVenta(c.Request.Context(), id, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de la venta
// @Description  Solo ANULADA (equivale a anular) o el estado actual.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                           true "UUID de la venta"
// @Param        body body dto.ActualizarEstadoVentaRequest true "Nuevo estado"
// @Success      200 {object} dto.VentaResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas/{id}/estado [patch]
func (h *VentasHandler) ActualizarEstado(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCredito godoc
// @Summary      Credito de una venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.CreditoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/credito [get]
func (h *VentasHandler) ObtenerCredito(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.creditos.ObtenerPorVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarComprobante godoc
// @Summary      PDF del comprobante
// @Tags         ventas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id}/comprobante [get]
func (h *VentasHandler) DescargarComprobante(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	venta, err := h.svc.CargarComprobante(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := h.render(venta, h.storagePath, h.negocio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
