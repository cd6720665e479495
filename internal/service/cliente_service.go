package service

import (
	"context"
	"errors"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteInput identifies the buyer of a sale: by id, or by document with
// the data needed to register a new customer.
type ClienteInput struct {
	ClienteID *string
	Documento *string
	Nombre    *string
	Email     *string
}

type ClienteService interface {
	// ResolverTx finds the customer without writing. When the customer does not
	// exist yet it returns an unsaved model and nuevo=true.
	ResolverTx(ctx context.Context, tx *gorm.DB, in ClienteInput) (c *model.Cliente, nuevo bool, err error)
	GuardarTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error

	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ObtenerPorDocumento(ctx context.Context, documento string) (*dto.ClienteResponse, error)
	Buscar(ctx context.Context, q dto.ClienteQuery) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) ResolverTx(ctx context.Context, tx *gorm.DB, in ClienteInput) (*model.Cliente, bool, error) {
	var (
		c   *model.Cliente
		err error
	)
	switch {
	case in.ClienteID != nil && *in.ClienteID != "":
		id, perr := uuid.Parse(*in.ClienteID)
		if perr != nil {
			return nil, false, apperr.Validacion("cliente_id invalido")
		}
		c, err = s.repo.FindByIDTx(ctx, tx, id)
	case in.Documento != nil && *in.Documento != "":
		c, err = s.repo.FindByDocumentoTx(ctx, tx, *in.Documento)
		if errors.Is(err, apperr.ErrNoEncontrado) {
			return nuevoCliente(in)
		}
	default:
		return nil, false, apperr.Validacion("se requiere cliente_id o documento")
	}
	if err != nil {
		return nil, false, err
	}
	if !c.Activo() {
		return nil, false, apperr.Validacion("el cliente %s no esta activo", c.Documento)
	}
	return c, false, nil
}

func nuevoCliente(in ClienteInput) (*model.Cliente, bool, error) {
	doc := *in.Documento
	if !model.EsDNI(doc) && !model.EsRUC(doc) {
		return nil, false, apperr.Validacion("documento %s: se espera DNI de 8 o RUC de 11 digitos", doc)
	}
	if in.Nombre == nil || *in.Nombre == "" {
		return nil, false, apperr.Validacion("nombre_cliente es obligatorio para registrar el documento %s", doc)
	}
	return &model.Cliente{
		ID:        uuid.New(),
		Nombre:    *in.Nombre,
		Documento: doc,
		Email:     in.Email,
		Estado:    model.EstadoActivo,
	}, true, nil
}

func (s *clienteService) GuardarTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error {
	return s.repo.CreateTx(ctx, tx, c)
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) ObtenerPorDocumento(ctx context.Context, documento string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByDocumento(ctx, documento)
	if err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clienteService) Buscar(ctx context.Context, q dto.ClienteQuery) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.Search(ctx, q.Buscar, q.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	return out, nil
}
