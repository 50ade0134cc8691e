package venta

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain"
)

// SaleRemover puerto de reversión de ventas.
type SaleRemover interface {
	DeleteSale(ctx context.Context, saleID int64) error
}

// SaleDeletion revierte una venta registrada. El servidor devuelve el stock y borra la
// venta en una sola transacción.
type SaleDeletion struct {
	sales SaleRemover
	epoch refresh.Advancer
	log   zerolog.Logger
}

// NewSaleDeletion construye el caso de uso.
func NewSaleDeletion(sales SaleRemover, epoch refresh.Advancer, log zerolog.Logger) *SaleDeletion {
	return &SaleDeletion{sales: sales, epoch: epoch, log: log}
}

// DeleteSale exige confirmación explícita; sin ella no contacta al servidor.
// La época solo avanza si el servidor confirma la reversión.
func (d *SaleDeletion) DeleteSale(ctx context.Context, saleID int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := d.sales.DeleteSale(ctx, saleID); err != nil {
		d.log.Warn().Err(err).Int64("venta_id", saleID).Msg("eliminación de venta fallida")
		return fmt.Errorf("eliminar venta %d: %w", saleID, err)
	}
	epoch := d.epoch.Advance()
	d.log.Info().Int64("venta_id", saleID).Uint64("epoca", epoch).Msg("venta eliminada y stock revertido")
	return nil
}
