package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formato de cable del servidor de registros. Los montos llegan como número o como
// string (DECIMAL serializado); decimal.Decimal acepta ambos.

// InventarioDTO registro de inventario embebido en un producto.
type InventarioDTO struct {
	CantidadStock int    `json:"cantidad_stock"`
	Ubicacion     string `json:"ubicacion"`
}

// ProductoDTO producto devuelto por GET /productos.
type ProductoDTO struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	Marca          string          `json:"marca"`
	CodigoCatalogo string          `json:"codigo_catalogo"`
	CostoCompra    decimal.Decimal `json:"costo_compra"`
	PrecioSugerido decimal.Decimal `json:"precio_sugerido"`
	Inventario     *InventarioDTO  `json:"Inventario"`
}

// CreateProductoRequest cuerpo de POST /productos.
type CreateProductoRequest struct {
	Nombre         string  `json:"nombre"`
	Marca          string  `json:"marca"`
	CodigoCatalogo string  `json:"codigo_catalogo"`
	CostoCompra    float64 `json:"costo_compra"`
	PrecioSugerido float64 `json:"precio_sugerido"`
	CantidadStock  int     `json:"cantidad_stock"`
	Ubicacion      string  `json:"ubicacion"`
}

// CreateProductoResponse respuesta de POST /productos.
type CreateProductoResponse struct {
	Producto ProductoDTO `json:"producto"`
}

// DetalleVentaRequest línea serializada de una venta nueva.
type DetalleVentaRequest struct {
	ProductoID          int64   `json:"productoId"`
	Cantidad            int     `json:"cantidad"`
	PrecioFinalUnitario float64 `json:"precio_final_unitario"`
}

// CreateVentaRequest cuerpo de POST /ventas. El servidor descuenta stock y calcula la ganancia.
type CreateVentaRequest struct {
	ClienteNombre string                `json:"cliente_nombre"`
	Estado        string                `json:"estado"`
	Detalles      []DetalleVentaRequest `json:"detalles"`
}

// ProductoRefDTO referencia al producto resuelto dentro de un detalle de venta.
type ProductoRefDTO struct {
	Nombre string `json:"nombre"`
}

// DetalleVentaDTO línea de una venta persistida.
type DetalleVentaDTO struct {
	ID                  int64           `json:"id"`
	Cantidad            int             `json:"cantidad"`
	PrecioFinalUnitario decimal.Decimal `json:"precio_final_unitario"`
	Producto            *ProductoRefDTO `json:"Producto"`
}

// VentaDTO venta devuelta por GET /ventas y POST /ventas.
type VentaDTO struct {
	ID            int64             `json:"id"`
	FechaVenta    time.Time         `json:"fecha_venta"`
	ClienteNombre string            `json:"cliente_nombre"`
	Estado        string            `json:"estado"`
	TotalPagado   decimal.Decimal   `json:"total_pagado"`
	GananciaNeta  decimal.Decimal   `json:"ganancia_neta"`
	Detalles      []DetalleVentaDTO `json:"detalles"`
}

// ResumenDTO respuesta de GET /reportes/resumen.
// totalTransacciones puede llegar como string (COUNT en Postgres), por eso es decimal.
type ResumenDTO struct {
	GananciaNetaTotal  decimal.Decimal `json:"gananciaNetaTotal"`
	TotalVentasBruto   decimal.Decimal `json:"totalVentasBruto"`
	TotalTransacciones decimal.Decimal `json:"totalTransacciones"`
}

// InventarioValoradoDTO respuesta de GET /reportes/inventario-valorado.
type InventarioValoradoDTO struct {
	ValorTotalInventario decimal.Decimal `json:"valorTotalInventario"`
}

// RegistroErrorDTO cuerpo de error del servidor de registros.
type RegistroErrorDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
