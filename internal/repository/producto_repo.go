package repository

import (
	"context"
	"fmt"
	"strings"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// CreateTx writes every column, so zero stock_minimo and estado are kept.
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filter ProductoFilter) ([]model.Producto, int64, error)
	ListBajoStock(ctx context.Context) ([]model.Producto, error)
	// UpdateCampos never touches stock; that column belongs to the ledger.
	UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error

	// AplicarDeltaTx locks the product row, checks that stock+delta stays
	// non-negative and writes it. Returns the stock before and after.
	AplicarDeltaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) (antes, despues int, err error)
}

// ProductoFilter: Buscar matches codigo or nombre, case-insensitive.
type ProductoFilter struct {
	Buscar string
	Estado *int
	Page   int
	Limit  int
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.CreateTx(ctx, r.db, p)
}

func (r *productoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return apperr.FromDB(tx.WithContext(ctx).Select("*").Create(p).Error, "producto "+p.Codigo)
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *productoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := tx.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "producto "+id.String())
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, apperr.FromDB(err, "producto "+codigo)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter ProductoFilter) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Estado != nil {
		q = q.Where("estado = ?", *filter.Estado)
	} else {
		q = q.Where("estado <> ?", model.EstadoEliminado)
	}
	if b := strings.TrimSpace(filter.Buscar); b != "" {
		like := "%" + strings.ToLower(b) + "%"
		q = q.Where("LOWER(codigo) LIKE ? OR LOWER(nombre) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "productos")
	}
	offset, limit := paginate(filter.Page, filter.Limit, 20, 100)
	var productos []model.Producto
	err := q.Order("nombre ASC, codigo ASC").Offset(offset).Limit(limit).Find(&productos).Error
	return productos, total, apperr.FromDB(err, "productos")
}

func (r *productoRepo) UpdateCampos(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	delete(campos, "stock")
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "producto "+id.String())
	}
	if res.RowsAffected == 0 {
		return apperr.NoEncontrado("producto %s", id)
	}
	return nil
}

func (r *productoRepo) ListBajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("estado = ? AND stock <= stock_minimo", model.EstadoActivo).
		Order("stock ASC, nombre ASC").
		Find(&productos).Error
	return productos, apperr.FromDB(err, "productos")
}

func (r *productoRepo) AplicarDeltaTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) (int, int, error) {
	var p model.Producto
	if err := forUpdate(tx.WithContext(ctx)).Select("id", "nombre", "stock").First(&p, "id = ?", id).Error; err != nil {
		return 0, 0, apperr.FromDB(err, "producto "+id.String())
	}
	nuevo := p.Stock + delta
	if nuevo < 0 {
		return p.Stock, p.Stock, fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
			apperr.ErrStockInsuficiente, p.Nombre, p.Stock, -delta)
	}
	err := tx.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("stock", nuevo).Error
	if err != nil {
		return 0, 0, apperr.FromDB(err, "producto "+id.String())
	}
	return p.Stock, nuevo, nil
}
