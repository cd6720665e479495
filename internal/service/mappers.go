package service

import (
	"time"

	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
)

// Read-side mapping. States are derived against hoy on a copy, so a stale
// stored VENCIDA/VENCIDO shows correctly without writing from a read.

func ventaToResponse(v *model.Venta, hoy time.Time) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:                  v.ID.String(),
		TipoComprobante:     v.TipoComprobante,
		Serie:               v.Serie,
		Numero:              v.Numero,
		ComprobanteCompleto: v.ComprobanteCompleto(),
		ClienteID:           v.ClienteID.String(),
		FechaVenta:          formatTimestamp(v.FechaVenta),
		FormaPago:           v.FormaPago,
		Detalles:            make([]dto.DetalleVentaResponse, 0, len(v.Detalles)),
		Subtotal:            v.Subtotal,
		Descuento:           v.DescuentoPorcentaje,
		MontoDescuento:      v.MontoDescuento,
		IGV:                 v.IGV,
		Total:               v.Total,
		Estado:              v.Estado,
		Observaciones:       v.Observaciones,
		UsuarioCreacion:     v.UsuarioCreacion,
	}
	if v.Cliente != nil {
		resp.ClienteNombre = v.Cliente.Nombre
		resp.ClienteDocumento = v.Cliente.Documento
	}
	for _, d := range v.Detalles {
		item := dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Descuento:      d.DescuentoPorcentaje,
			Subtotal:       d.Subtotal,
		}
		if d.Producto != nil {
			item.Producto = d.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, item)
	}
	if v.Credito != nil {
		c := creditoToResponse(v.Credito, hoy)
		resp.Credito = &c
	}
	return resp
}

func creditoToResponse(c *model.CreditoVenta, hoy time.Time) dto.CreditoResponse {
	derivado := *c
	derivado.RecalcularEstado(hoy)

	dias := model.DiasEntre(hoy, c.FechaFin)
	if dias < 0 || derivado.Terminal() {
		dias = 0
	}
	return dto.CreditoResponse{
		ID:                c.ID.String(),
		VentaID:           c.VentaID.String(),
		MontoTotal:        c.MontoTotal,
		MontoInicial:      c.MontoInicial,
		InteresPorcentaje: c.InteresPorcentaje,
		MontoInteres:      c.MontoInteres,
		MontoFinanciado:   c.MontoFinanciado,
		NumeroCuotas:      c.NumeroCuotas,
		IntervaloCuotas:   c.IntervaloCuotas,
		FechaInicio:       formatFecha(c.FechaInicio),
		FechaFin:          formatFecha(c.FechaFin),
		MontoPagado:       c.MontoPagado,
		SaldoPendiente:    c.SaldoPendiente,
		PorcentajePagado:  c.PorcentajePagado(),
		DiasRestantes:     dias,
		Estado:            derivado.Estado,
		Cuotas:            cuotasToResponse(c.Cuotas, c.Estado, hoy),
	}
}

func cuotasToResponse(cuotas []model.Cuota, estadoCredito string, hoy time.Time) []dto.CuotaResponse {
	out := make([]dto.CuotaResponse, 0, len(cuotas))
	for _, q := range cuotas {
		out = append(out, cuotaToResponse(q, estadoCredito, hoy))
	}
	return out
}

// cuotaToResponse derives the installment state for hoy. Installments of a
// cancelled credit are never reported overdue.
func cuotaToResponse(q model.Cuota, estadoCredito string, hoy time.Time) dto.CuotaResponse {
	if estadoCredito == model.CreditoCancelado {
		q.Estado = q.EstadoSinVencimiento()
	} else {
		q.RecalcularEstado(hoy)
	}
	resp := dto.CuotaResponse{
		ID:               q.ID.String(),
		CreditoID:        q.CreditoID.String(),
		NumeroCuota:      q.NumeroCuota,
		Monto:            q.Monto,
		MontoPagado:      q.MontoPagado,
		SaldoPendiente:   q.SaldoPendiente,
		FechaVencimiento: formatFecha(q.FechaVencimiento),
		Estado:           q.Estado,
	}
	if q.FechaPago != nil {
		f := formatFecha(*q.FechaPago)
		resp.FechaPago = &f
	}
	if q.Estado == model.CuotaVencida {
		resp.DiasVencida = model.DiasEntre(q.FechaVencimiento, hoy)
	}
	return resp
}

func pagoToResponse(p *model.RegistroPago) dto.PagoResponse {
	return dto.PagoResponse{
		ID:            p.ID.String(),
		CreditoID:     p.CreditoID.String(),
		CuotaID:       p.CuotaID.String(),
		Monto:         p.Monto,
		MetodoPago:    p.MetodoPago,
		Referencia:    p.Referencia,
		Observaciones: p.Observaciones,
		Usuario:       p.Usuario,
		FechaPago:     formatTimestamp(p.FechaPago),
	}
}

func movimientoToResponse(m *model.MovimientoInventario) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:             m.ID.String(),
		ProductoID:     m.ProductoID.String(),
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockNuevo:     m.StockNuevo,
		Motivo:         m.Motivo,
		ReferenciaTipo: m.ReferenciaTipo,
		Usuario:        m.Usuario,
		Observaciones:  m.Observaciones,
		CreatedAt:      formatTimestamp(m.CreatedAt),
	}
	if m.Producto != nil {
		resp.ProductoNombre = m.Producto.Nombre
	}
	if m.ReferenciaID != nil {
		ref := m.ReferenciaID.String()
		resp.ReferenciaID = &ref
	}
	return resp
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Documento: c.Documento,
		EsRUC:     c.EsRUC(),
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Activo:    c.Activo(),
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Talla:       p.Talla,
		PrecioVenta: p.PrecioVenta,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		BajoStock:   p.BajoStock(),
		Estado:      p.Estado,
	}
}
