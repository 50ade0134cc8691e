// Package registrotest ofrece un servidor de registros en memoria para tests:
// misma API REST que el servidor real, con descuento y reversión de stock.
package registrotest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
)

// Product semilla de un producto.
type Product struct {
	ID             int64
	Name           string
	Brand          string
	CatalogCode    string
	Cost           decimal.Decimal
	SuggestedPrice decimal.Decimal
	Stock          int
	Location       string
}

type saleLine struct {
	id        int64
	productID int64
	quantity  int
	price     decimal.Decimal
}

type sale struct {
	id       int64
	date     time.Time
	customer string
	status   string
	lines    []saleLine
	total    decimal.Decimal
	profit   decimal.Decimal
}

type failure struct {
	status  int
	message string
}

// Server servidor de registros falso.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	products []*Product
	sales    []*sale
	nextID   int64
	failures map[string]failure
	requests map[string]int
}

// New arranca el servidor con los productos indicados. Llamar Close al terminar.
func New(seed ...Product) *Server {
	s := &Server{
		failures: make(map[string]failure),
		requests: make(map[string]int),
		nextID:   100,
	}
	for i := range seed {
		p := seed[i]
		if p.ID == 0 {
			p.ID = s.id()
		}
		s.products = append(s.products, &p)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /productos", s.listProducts)
	mux.HandleFunc("POST /productos", s.createProduct)
	mux.HandleFunc("GET /ventas", s.listSales)
	mux.HandleFunc("POST /ventas", s.createSale)
	mux.HandleFunc("DELETE /ventas/{id}", s.deleteSale)
	mux.HandleFunc("GET /reportes/resumen", s.summary)
	mux.HandleFunc("GET /reportes/inventario-valorado", s.valuation)

	s.Server = httptest.NewServer(s.intercept(mux))
	return s
}

// Fail hace que la ruta ("POST /ventas", "DELETE /ventas", ...) responda con error
// hasta que se llame Recover.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Recover elimina el error configurado para la ruta.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Requests cuántas peticiones recibió la ruta.
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// Stock stock actual del producto (-1 si no existe).
func (s *Server) Stock(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.product(productID); p != nil {
		return p.Stock
	}
	return -1
}

// SeedSale registra una venta directamente (sin pasar por la API).
func (s *Server) SeedSale(customer string, productID int64, quantity int, price decimal.Decimal) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.product(productID)
	if p == nil {
		panic(fmt.Sprintf("registrotest: producto %d inexistente", productID))
	}
	p.Stock -= quantity
	qty := decimal.NewFromInt(int64(quantity))
	v := &sale{
		id:       s.id(),
		date:     time.Now().UTC(),
		customer: customer,
		status:   "Pagada",
		lines:    []saleLine{{id: s.id(), productID: productID, quantity: quantity, price: price}},
		total:    price.Mul(qty),
		profit:   price.Sub(p.Cost).Mul(qty),
	}
	s.sales = append(s.sales, v)
	return v.id
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + routePath(r.URL.Path)
		s.mu.Lock()
		s.requests[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()
		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routePath recorta el id final de /ventas/{id}.
func routePath(path string) string {
	const prefix = "/ventas/"
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return "/ventas"
	}
	return path
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) product(id int64) *Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]dto.ProductoDTO, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, productDTO(p))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in dto.CreateProductoRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "cuerpo inválido"})
		return
	}
	s.mu.Lock()
	p := &Product{
		ID:             s.id(),
		Name:           in.Nombre,
		Brand:          in.Marca,
		CatalogCode:    in.CodigoCatalogo,
		Cost:           decimal.NewFromFloat(in.CostoCompra),
		SuggestedPrice: decimal.NewFromFloat(in.PrecioSugerido),
		Stock:          in.CantidadStock,
		Location:       in.Ubicacion,
	}
	s.products = append(s.products, p)
	out := productDTO(p)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, dto.CreateProductoResponse{Producto: out})
}

func (s *Server) listSales(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]dto.VentaDTO, 0, len(s.sales))
	for _, v := range s.sales {
		out = append(out, s.saleDTO(v))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var in dto.CreateVentaRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.Detalles) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "la venta no tiene detalles"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needed := make(map[int64]int)
	for _, d := range in.Detalles {
		p := s.product(d.ProductoID)
		if p == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("producto %d no encontrado", d.ProductoID)})
			return
		}
		needed[d.ProductoID] += d.Cantidad
		if needed[d.ProductoID] > p.Stock {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Stock insuficiente para " + p.Name})
			return
		}
	}

	v := &sale{id: s.id(), date: time.Now().UTC(), customer: in.ClienteNombre, status: in.Estado}
	for _, d := range in.Detalles {
		p := s.product(d.ProductoID)
		p.Stock -= d.Cantidad
		price := decimal.NewFromFloat(d.PrecioFinalUnitario)
		qty := decimal.NewFromInt(int64(d.Cantidad))
		v.lines = append(v.lines, saleLine{id: s.id(), productID: p.ID, quantity: d.Cantidad, price: price})
		v.total = v.total.Add(price.Mul(qty))
		v.profit = v.profit.Add(price.Sub(p.Cost).Mul(qty))
	}
	s.sales = append(s.sales, v)
	writeJSON(w, http.StatusCreated, s.saleDTO(v))
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "id inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.sales {
		if v.id != id {
			continue
		}
		for _, l := range v.lines {
			if p := s.product(l.productID); p != nil {
				p.Stock += l.quantity
			}
		}
		s.sales = append(s.sales[:i], s.sales[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "venta eliminada y stock revertido"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "venta no encontrada"})
}

func (s *Server) summary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	profit, gross := decimal.Zero, decimal.Zero
	for _, v := range s.sales {
		profit = profit.Add(v.profit)
		gross = gross.Add(v.total)
	}
	count := len(s.sales)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"gananciaNetaTotal":  profit,
		"totalVentasBruto":   gross,
		"totalTransacciones": strconv.Itoa(count),
	})
}

func (s *Server) valuation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, dto.InventarioValoradoDTO{ValorTotalInventario: total})
}

func productDTO(p *Product) dto.ProductoDTO {
	return dto.ProductoDTO{
		ID:             p.ID,
		Nombre:         p.Name,
		Marca:          p.Brand,
		CodigoCatalogo: p.CatalogCode,
		CostoCompra:    p.Cost,
		PrecioSugerido: p.SuggestedPrice,
		Inventario:     &dto.InventarioDTO{CantidadStock: p.Stock, Ubicacion: p.Location},
	}
}

func (s *Server) saleDTO(v *sale) dto.VentaDTO {
	out := dto.VentaDTO{
		ID:            v.id,
		FechaVenta:    v.date,
		ClienteNombre: v.customer,
		Estado:        v.status,
		TotalPagado:   v.total,
		GananciaNeta:  v.profit,
	}
	for _, l := range v.lines {
		name := ""
		if p := s.product(l.productID); p != nil {
			name = p.Name
		}
		out.Detalles = append(out.Detalles, dto.DetalleVentaDTO{
			ID:                  l.id,
			Cantidad:            l.quantity,
			PrecioFinalUnitario: l.price,
			Producto:            &dto.ProductoRefDTO{Nombre: name},
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
