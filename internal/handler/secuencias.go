package handler

import (
	"net/http"

	"sneakerfever/internal/dto"
	"sneakerfever/internal/service"

	"github.com/gin-gonic/gin"
)

type SecuenciasHandler struct{ svc service.SecuenciaService }

func NewSecuenciasHandler(svc service.SecuenciaService) *SecuenciasHandler {
	return &SecuenciasHandler{svc: svc}
}

// Listar godoc
// @Summary      Series activas
// @Tags         secuencias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SecuenciaResponse
// @Router       /v1/secuencias [get]
func (h *SecuenciasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarActivas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Siguiente godoc
// @Summary      Previsualizar el siguiente numero
// @Description  No reserva el numero: otra venta puede tomarlo antes.
// @Tags         secuencias
// @Produce      json
// @Security     BearerAuth
// @Param        tipo_comprobante query string true "BOLETA | FACTURA | NOTA_VENTA"
// @Param        serie            query string true "Serie, p.ej. B001"
// @Success      200 {object} map[string]string
// @Failure      422 {object} apierror.APIError "Serie no configurada"
// @Router       /v1/secuencias/siguiente [get]
func (h *SecuenciasHandler) Siguiente(c *gin.Context) {
	var q dto.SiguienteNumeroQuery
	if !bindQuery(c, &q) {
		return
	}
	numero, err := h.svc.Previsualizar(c.Request.Context(), q.TipoComprobante, q.Serie)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tipo_comprobante":     q.TipoComprobante,
		"serie":                q.Serie,
		"numero":               numero,
		"comprobante_completo": q.Serie + "-" + numero,
	})
}
