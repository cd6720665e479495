package repository

import (
	"context"
	"strings"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	FindByDocumentoTx(ctx context.Context, tx *gorm.DB, documento string) (*model.Cliente, error)
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByDocumento(ctx context.Context, documento string) (*model.Cliente, error)
	// Search matches documento by prefix and nombre by substring.
	Search(ctx context.Context, buscar string, limit int) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *clienteRepo) FindByDocumento(ctx context.Context, documento string) (*model.Cliente, error) {
	return r.FindByDocumentoTx(ctx, r.db, documento)
}

func (r *clienteRepo) Search(ctx context.Context, buscar string, limit int) ([]model.Cliente, error) {
	_, limit = paginate(1, limit, 20, 100)
	q := r.db.WithContext(ctx).Where("estado <> ?", model.EstadoEliminado)
	if b := strings.TrimSpace(buscar); b != "" {
		q = q.Where("documento LIKE ? OR LOWER(nombre) LIKE ?", b+"%", "%"+strings.ToLower(b)+"%")
	}
	var clientes []model.Cliente
	err := q.Order("nombre ASC").Limit(limit).Find(&clientes).Error
	return clientes, apperr.FromDB(err, "clientes")
}

func (r *clienteRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	if err := tx.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "cliente "+id.String())
	}
	return &c, nil
}

func (r *clienteRepo) FindByDocumentoTx(ctx context.Context, tx *gorm.DB, documento string) (*model.Cliente, error) {
	var c model.Cliente
	if err := tx.WithContext(ctx).Where("documento = ?", documento).First(&c).Error; err != nil {
		return nil, apperr.FromDB(err, "cliente con documento "+documento)
	}
	return &c, nil
}

func (r *clienteRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error {
	return apperr.FromDB(tx.WithContext(ctx).Create(c).Error, "cliente")
}
