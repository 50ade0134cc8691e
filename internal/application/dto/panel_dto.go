package dto

// AgregarProductoRequest formulario de alta de producto del panel.
type AgregarProductoRequest struct {
	Nombre         string  `json:"nombre" validate:"required,max=200"`
	Marca          string  `json:"marca" validate:"required"`
	CodigoCatalogo string  `json:"codigo_catalogo" validate:"required,max=50"`
	CostoCompra    float64 `json:"costo_compra" validate:"gte=0"`
	PrecioSugerido float64 `json:"precio_sugerido" validate:"gte=0"`
	CantidadStock  int     `json:"cantidad_stock" validate:"gte=0"`
	Ubicacion      string  `json:"ubicacion" validate:"max=100"`
}

// VistaEstado estado común de una vista del panel: cargando, listo o error.
type VistaEstado struct {
	Estado  string `json:"estado"`
	Vacia   bool   `json:"vacia"`
	Mensaje string `json:"mensaje,omitempty"`
	Epoca   uint64 `json:"epoca"`
}

// ProductoPanel fila de inventario o de catálogo. Los montos van con dos decimales.
type ProductoPanel struct {
	ID             int64  `json:"id"`
	Nombre         string `json:"nombre"`
	Marca          string `json:"marca"`
	CodigoCatalogo string `json:"codigo_catalogo"`
	CostoCompra    string `json:"costo_compra"`
	PrecioSugerido string `json:"precio_sugerido"`
	Stock          int    `json:"cantidad_stock"`
	Ubicacion      string `json:"ubicacion"`
	StockBajo      bool   `json:"stock_bajo"`
}

// InventarioResponse vista de inventario.
type InventarioResponse struct {
	VistaEstado
	Productos []ProductoPanel `json:"productos"`
}

// CatalogoResponse productos ofrecibles en una venta (stock > 0).
type CatalogoResponse struct {
	VistaEstado
	Productos []ProductoPanel `json:"productos"`
}

// DetallePanel línea de una venta registrada.
type DetallePanel struct {
	Producto       string `json:"producto"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

// VentaPanel fila del historial de ventas con el estado de su botón eliminar.
type VentaPanel struct {
	ID                 int64          `json:"id"`
	Fecha              string         `json:"fecha"`
	ClienteNombre      string         `json:"cliente_nombre"`
	Estado             string         `json:"estado"`
	TotalPagado        string         `json:"total_pagado"`
	GananciaNeta       string         `json:"ganancia_neta"`
	Detalles           []DetallePanel `json:"detalles"`
	Eliminando         bool           `json:"eliminando"`
	EliminarHabilitado bool           `json:"eliminar_habilitado"`
}

// EliminacionResultado resultado de la última eliminación.
type EliminacionResultado struct {
	VentaID int64  `json:"venta_id"`
	OK      bool   `json:"ok"`
	Mensaje string `json:"mensaje"`
}

// VentasResponse vista del historial de ventas.
type VentasResponse struct {
	VistaEstado
	Ventas      []VentaPanel          `json:"ventas"`
	Eliminacion *EliminacionResultado `json:"eliminacion,omitempty"`
}

// ResumenResponse vista del resumen financiero.
type ResumenResponse struct {
	VistaEstado
	GananciaNetaTotal  string `json:"gananciaNetaTotal"`
	TotalVentasBruto   string `json:"totalVentasBruto"`
	TotalTransacciones int    `json:"totalTransacciones"`
	ValorInventario    string `json:"valorTotalInventario"`
}

// LineaBorrador línea de la venta en edición, con los valores tal como se escribieron.
type LineaBorrador struct {
	ProductoID     string `json:"producto_id"`
	Cantidad       string `json:"cantidad"`
	PrecioUnitario string `json:"precio_unitario"`
}

// BorradorResponse estado del formulario de venta.
type BorradorResponse struct {
	ClienteNombre  string          `json:"cliente_nombre"`
	Estado         string          `json:"estado"`
	Detalles       []LineaBorrador `json:"detalles"`
	Subtotal       string          `json:"subtotal"`
	PuedeConfirmar bool            `json:"puede_confirmar"`
	Enviando       bool            `json:"enviando"`
	Mensaje        string          `json:"mensaje,omitempty"`
	Estados        []string        `json:"estados"`
}

// PanelResponse estado completo del panel de una sesión.
type PanelResponse struct {
	Sesion     string             `json:"sesion"`
	Epoca      uint64             `json:"epoca"`
	Inventario InventarioResponse `json:"inventario"`
	Ventas     VentasResponse     `json:"ventas"`
	Resumen    ResumenResponse    `json:"resumen"`
	Catalogo   CatalogoResponse   `json:"catalogo"`
	Venta      BorradorResponse   `json:"venta"`
}

// CabeceraVentaRequest cliente y estado de la venta en edición. Los campos ausentes no cambian.
type CabeceraVentaRequest struct {
	ClienteNombre *string `json:"cliente_nombre"`
	Estado        *string `json:"estado"`
}

// LineaVentaRequest edición de una línea. Los valores se envían como texto, igual que
// los escribe el operador; los campos ausentes no cambian.
type LineaVentaRequest struct {
	ProductoID     *string `json:"producto_id"`
	Cantidad       *string `json:"cantidad"`
	PrecioUnitario *string `json:"precio_unitario"`
}

// LineaCreadaResponse respuesta al agregar una línea.
type LineaCreadaResponse struct {
	Indice int              `json:"indice"`
	Venta  BorradorResponse `json:"venta"`
}

// VentaRegistradaResponse respuesta de confirmar la venta.
type VentaRegistradaResponse struct {
	Mensaje string     `json:"mensaje"`
	Venta   VentaPanel `json:"venta"`
	Epoca   uint64     `json:"epoca"`
}

// ProductoAgregadoResponse respuesta del alta de producto.
type ProductoAgregadoResponse struct {
	Mensaje  string        `json:"mensaje"`
	Producto ProductoPanel `json:"producto"`
	Epoca    uint64        `json:"epoca"`
}

// MensajeResponse respuesta de operaciones sin cuerpo propio.
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
	Epoca   uint64 `json:"epoca"`
}
