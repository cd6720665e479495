package handler

import (
	"net/http"

	"sneakerfever/internal/dto"
	"sneakerfever/internal/service"

	"github.com/gin-gonic/gin"
)

type CreditosHandler struct {
	svc   service.CreditoService
	pagos service.PagoService
}

func NewCreditosHandler(svc service.CreditoService, pagos service.PagoService) *CreditosHandler {
	return &CreditosHandler{svc: svc, pagos: pagos}
}

// Listar godoc
// @Summary      Listar creditos
// @Description  Por cliente y/o estado. Sin filtros devuelve los creditos ACTIVO.
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "UUID del cliente"
// @Param        estado     query string false "ACTIVO | PAGADO | VENCIDO | CANCELADO"
// @Success      200 {array} dto.CreditoResponse
// @Router       /v1/creditos [get]
func (h *CreditosHandler) Listar(c *gin.Context) {
	var filter dto.CreditoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVencidos godoc
// @Summary      Creditos vencidos con saldo
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CreditoResponse
// @Router       /v1/creditos/vencidos [get]
func (h *CreditosHandler) ListarVencidos(c *gin.Context) {
	resp, err := h.svc.ListarVencidos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarProximosVencer godoc
// @Summary      Creditos con cuotas por vencer
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Param        dias query int false "Ventana en dias (default 7)"
// @Success      200 {array} dto.CreditoResponse
// @Router       /v1/creditos/proximos-vencer [get]
func (h *CreditosHandler) ListarProximosVencer(c *gin.Context) {
	var q dto.ProximosVencerQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListarProximosVencer(c.Request.Context(), q.Dias)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener credito con su cronograma
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del credito"
// @Success      200 {object} dto.CreditoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/creditos/{id} [get]
func (h *CreditosHandler) Obtener(c *gin.Context) {
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

// ListarCuotas godoc
// @Summary      Cuotas de un credito
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del credito"
// @Success      200 {array} dto.CuotaResponse
// @Router       /v1/creditos/{id}/cuotas [get]
func (h *CreditosHandler) ListarCuotas(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarCuotas(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPagos godoc
// @Summary      Pagos de un credito
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del credito"
// @Success      200 {array} dto.PagoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/creditos/{id}/pagos [get]
func (h *CreditosHandler) ListarPagos(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstados godoc
// @Summary      Recalcular estados de cuotas y creditos
// @Description  Ejecuta el mismo barrido que el proceso periodico.
// @Tags         creditos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ActualizarEstadosResponse
// @Router       /v1/creditos/actualizar-estados [post]
func (h *CreditosHandler) ActualizarEstados(c *gin.Context) {
	n, err := h.svc.ActualizarEstados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ActualizarEstadosResponse{Actualizados: n})
}

// ObtenerCuota godoc
// @Summary      Obtener cuota
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cuota"
// @Success      200 {object} dto.CuotaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cuotas/{id} [get]
func (h *CreditosHandler) ObtenerCuota(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCuota(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCuotasVencidas godoc
// @Summary      Cuotas vencidas con saldo
// @Tags         cuotas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CuotaResponse
// @Router       /v1/cuotas/vencidas [get]
func (h *CreditosHandler) ListarCuotasVencidas(c *gin.Context) {
	resp, err := h.svc.ListarCuotasVencidas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary      Registrar pago de cuota
// @Description  Aplica el pago a la cuota y recalcula el credito; si queda saldado la venta pasa a PAGADA.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarPagoRequest true "Pago"
// @Success      201 {object} dto.PagoResponse
// @Failure      409 {object} apierror.APIError "Cuota ya pagada"
// @Failure      422 {object} apierror.APIError "Monto excede el saldo"
// @Router       /v1/pagos [post]
func (h *CreditosHandler) RegistrarPago(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.pagos.RegistrarPago(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
