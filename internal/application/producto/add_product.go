// Package producto contiene el alta de productos desde el panel.
package producto

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// ProductCreator puerto de alta de productos.
type ProductCreator interface {
	CreateProduct(ctx context.Context, in dto.CreateProductoRequest) (*entity.Product, error)
}

// AddProduct registra un producto nuevo con su stock inicial.
type AddProduct struct {
	products  ProductCreator
	epoch     refresh.Advancer
	validator *validator.Validate
	log       zerolog.Logger
}

// NewAddProduct construye el caso de uso.
func NewAddProduct(products ProductCreator, epoch refresh.Advancer, log zerolog.Logger) *AddProduct {
	return &AddProduct{
		products:  products,
		epoch:     epoch,
		validator: newValidator(),
		log:       log,
	}
}

// Execute valida el formulario, lo envía al servidor y avanza la época si se aceptó.
// Devuelve el producto creado y el mensaje para el operador.
func (uc *AddProduct) Execute(ctx context.Context, in dto.AgregarProductoRequest) (*entity.Product, string, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.CodigoCatalogo = strings.TrimSpace(in.CodigoCatalogo)
	in.Ubicacion = strings.TrimSpace(in.Ubicacion)

	if err := uc.validator.Struct(in); err != nil {
		return nil, "", toValidationError(err)
	}
	brand, ok := entity.ParseBrand(in.Marca)
	if !ok {
		return nil, "", &domain.ValidationError{Field: "marca", Reason: fmt.Sprintf("marca %q no reconocida", in.Marca), Err: domain.ErrInvalidInput}
	}

	p, err := uc.products.CreateProduct(ctx, dto.CreateProductoRequest{
		Nombre:         in.Nombre,
		Marca:          string(brand),
		CodigoCatalogo: in.CodigoCatalogo,
		CostoCompra:    in.CostoCompra,
		PrecioSugerido: in.PrecioSugerido,
		CantidadStock:  in.CantidadStock,
		Ubicacion:      in.Ubicacion,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("nombre", in.Nombre).Msg("alta de producto fallida")
		return nil, "", fmt.Errorf("agregar producto: %w", err)
	}

	epoch := uc.epoch.Advance()
	uc.log.Info().Int64("producto_id", p.ID).Str("marca", string(brand)).Uint64("epoca", epoch).Msg("producto agregado")
	return p, fmt.Sprintf("Producto %s agregado con éxito", p.Name), nil
}

// newValidator informa los campos con su nombre json.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// toValidationError reduce los errores del validador al primero, con el nombre json del campo.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.ValidationError{Reason: err.Error(), Err: domain.ErrInvalidInput}
	}
	fe := verrs[0]
	return &domain.ValidationError{Field: fe.Field(), Reason: reason(fe), Err: domain.ErrInvalidInput}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "gte":
		return "no puede ser negativo"
	case "max":
		return fmt.Sprintf("admite como máximo %s caracteres", fe.Param())
	}
	return "valor inválido"
}
