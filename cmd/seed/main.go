// cmd/seed/main.go: Crea las series de comprobantes y un catalogo de demo.
// El stock inicial entra por el kardex como ENTRADA / COMPRA.
// Uso: go run ./cmd/seed [-demo=false]
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/config"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/infra"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"
	"sneakerfever/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var series = []model.ComprobanteSecuencia{
	{TipoComprobante: model.ComprobanteBoleta, Serie: "B001"},
	{TipoComprobante: model.ComprobanteFactura, Serie: "F001"},
	{TipoComprobante: model.ComprobanteNotaVenta, Serie: "NV01"},
}

var catalogo = []struct {
	codigo, nombre, talla, precio string
	stock, minimo                 int
}{
	{"NK-AF1-42", "Nike Air Force 1 '07", "42", "459.90", 12, 3},
	{"NK-DNK-41", "Nike Dunk Low Retro", "41", "529.90", 6, 2},
	{"AD-SMB-40", "Adidas Samba OG", "40", "489.90", 8, 2},
	{"NB-550-43", "New Balance 550", "43", "549.90", 4, 2},
	{"VN-OSK-39", "Vans Old Skool", "39", "289.90", 15, 5},
	{"CV-C70-42", "Converse Chuck 70 Hi", "42", "329.90", 2, 3},
}

func main() {
	demo := flag.Bool("demo", true, "also load the demo catalog")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	ctx := context.Background()
	secuencias := repository.NewSecuenciaRepository(db)
	for i := range series {
		s := series[i]
		if err := secuencias.Upsert(ctx, &s); err != nil {
			log.Fatal().Err(err).Str("serie", s.Serie).Msg("secuencia")
		}
		log.Info().Str("tipo", s.TipoComprobante).Str("serie", s.Serie).Int64("numero_actual", s.NumeroActual).Msg("serie lista")
	}

	if !*demo {
		return
	}
	productoRepo := repository.NewProductoRepository(db)
	inventario := service.NewInventarioService(db, productoRepo, repository.NewMovimientoRepository(db))
	productos := service.NewProductoService(db, productoRepo, inventario, nil)
	for _, item := range catalogo {
		talla := item.talla
		_, err := productos.Crear(ctx, "seed", dto.CrearProductoRequest{
			Codigo:       item.codigo,
			Nombre:       item.nombre,
			Talla:        &talla,
			PrecioVenta:  decimal.RequireFromString(item.precio),
			StockMinimo:  item.minimo,
			StockInicial: item.stock,
		})
		switch {
		case errors.Is(err, apperr.ErrConflicto):
			log.Info().Str("codigo", item.codigo).Msg("producto ya existe")
		case err != nil:
			log.Fatal().Err(err).Str("codigo", item.codigo).Msg("producto")
		default:
			log.Info().Str("codigo", item.codigo).Int("stock", item.stock).Msg("producto creado")
		}
	}
}
