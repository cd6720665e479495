package handler

import (
	"net/http"

	"sneakerfever/internal/dto"
	"sneakerfever/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientesHandler is read-only: customers are registered by the sale flow
// when a new document shows up.
type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Buscar godoc
// @Summary      Buscar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        buscar query string false "Prefijo de documento o parte del nombre"
// @Param        limit  query int    false "Maximo de resultados"
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	var q dto.ClienteQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) ObtenerPorID(c *gin.Context) {
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

// ObtenerPorDocumento godoc
// @Summary      Obtener cliente por DNI o RUC
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        documento path string true "DNI (8) o RUC (11)"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/documento/{documento} [get]
func (h *ClientesHandler) ObtenerPorDocumento(c *gin.Context) {
	resp, err := h.svc.ObtenerPorDocumento(c.Request.Context(), c.Param("documento"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
