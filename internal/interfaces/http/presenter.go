package http

import (
	"time"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	"github.com/jhoicas/panel-catalogos/internal/application/venta"
	"github.com/jhoicas/panel-catalogos/internal/application/vistas"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
	"github.com/jhoicas/panel-catalogos/pkg/money"
)

func vistaEstado[T any](s vistas.Snapshot[T]) dto.VistaEstado {
	return dto.VistaEstado{Estado: string(s.State), Vacia: s.Empty, Mensaje: s.Message, Epoca: s.Epoch}
}

func toProductoPanel(p entity.Product, lowStock bool) dto.ProductoPanel {
	return dto.ProductoPanel{
		ID:             p.ID,
		Nombre:         p.Name,
		Marca:          string(p.Brand),
		CodigoCatalogo: p.CatalogCode,
		CostoCompra:    money.Fixed(p.PurchaseCost),
		PrecioSugerido: money.Fixed(p.SuggestedPrice),
		Stock:          p.Inventory.Quantity,
		Ubicacion:      p.Inventory.Location,
		StockBajo:      lowStock,
	}
}

func toInventario(s *panel.Session) dto.InventarioResponse {
	snap := s.Inventory.Snapshot()
	out := dto.InventarioResponse{VistaEstado: vistaEstado(snap), Productos: []dto.ProductoPanel{}}
	for _, p := range snap.Data {
		out.Productos = append(out.Productos, toProductoPanel(p, s.Inventory.LowStock(p)))
	}
	return out
}

func toCatalogo(s *panel.Session) dto.CatalogoResponse {
	snap := s.Catalog.Snapshot()
	out := dto.CatalogoResponse{VistaEstado: vistaEstado(snap), Productos: []dto.ProductoPanel{}}
	for _, p := range snap.Data {
		out.Productos = append(out.Productos, toProductoPanel(p, false))
	}
	return out
}

func toVentaPanel(v entity.Sale, row vistas.RowState) dto.VentaPanel {
	out := dto.VentaPanel{
		ID:                 v.ID,
		Fecha:              v.Date.Format(time.RFC3339),
		ClienteNombre:      v.CustomerName,
		Estado:             string(v.Status),
		TotalPagado:        money.Fixed(v.TotalPaid),
		GananciaNeta:       money.Fixed(v.NetProfit),
		Detalles:           make([]dto.DetallePanel, 0, len(v.Lines)),
		Eliminando:         row.Busy,
		EliminarHabilitado: row.Enabled,
	}
	for _, l := range v.Lines {
		out.Detalles = append(out.Detalles, dto.DetallePanel{
			Producto:       l.ProductName,
			Cantidad:       l.Quantity,
			PrecioUnitario: money.Fixed(l.UnitPrice),
		})
	}
	return out
}

func toVentas(s *panel.Session) dto.VentasResponse {
	snap := s.Sales.Snapshot()
	out := dto.VentasResponse{VistaEstado: vistaEstado(snap), Ventas: []dto.VentaPanel{}}
	for _, v := range snap.Data {
		out.Ventas = append(out.Ventas, toVentaPanel(v, s.Sales.Row(v.ID)))
	}
	if o := s.Sales.LastOutcome(); o != nil {
		out.Eliminacion = &dto.EliminacionResultado{VentaID: o.SaleID, OK: o.OK, Mensaje: o.Message}
	}
	return out
}

func toResumen(s *panel.Session) dto.ResumenResponse {
	snap := s.Summary.Snapshot()
	out := dto.ResumenResponse{VistaEstado: vistaEstado(snap)}
	if snap.State == vistas.StateReady {
		out.GananciaNetaTotal = money.Fixed(snap.Data.NetProfit)
		out.TotalVentasBruto = money.Fixed(snap.Data.GrossSales)
		out.TotalTransacciones = snap.Data.TransactionCount
		out.ValorInventario = money.Fixed(snap.Data.InventoryValuation)
	}
	return out
}

func toBorrador(st venta.State) dto.BorradorResponse {
	out := dto.BorradorResponse{
		ClienteNombre:  st.Draft.CustomerName,
		Estado:         string(st.Draft.Status),
		Detalles:       make([]dto.LineaBorrador, 0, len(st.Draft.Lines)),
		Subtotal:       money.Fixed(st.Subtotal),
		PuedeConfirmar: st.CanSubmit,
		Enviando:       st.Submitting,
		Mensaje:        st.Message,
		Estados:        make([]string, 0, len(entity.SaleStatuses)),
	}
	for _, l := range st.Draft.Lines {
		out.Detalles = append(out.Detalles, dto.LineaBorrador{ProductoID: l.ProductID, Cantidad: l.Quantity, PrecioUnitario: l.UnitPrice})
	}
	for _, e := range entity.SaleStatuses {
		out.Estados = append(out.Estados, string(e))
	}
	return out
}

func toPanel(s *panel.Session) dto.PanelResponse {
	return dto.PanelResponse{
		Sesion:     s.ID,
		Epoca:      s.Epoch.Current(),
		Inventario: toInventario(s),
		Ventas:     toVentas(s),
		Resumen:    toResumen(s),
		Catalogo:   toCatalogo(s),
		Venta:      toBorrador(s.Composer.State()),
	}
}
