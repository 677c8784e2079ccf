// Package apptest provee un almacén en memoria para las pruebas de los casos
// de uso: implementa los puertos de repositorio y los TxRunner de cada módulo,
// emulando la atomicidad con snapshot del estado y restauración ante error.
package apptest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comandas-api/internal/domain/entity"
	"github.com/jhoicas/Comandas-api/internal/domain/repository"
)

// ErrStockCheck emula la violación del CHECK stock >= 0 de la base.
var ErrStockCheck = errors.New("violación de check: stock negativo")

// MemStore almacén en memoria. Todas las lecturas devuelven copias, igual que
// una fila leída de la base; las escrituras dentro de un Run* se revierten
// completas si el callback falla (mismo contrato que la transacción real).
type MemStore struct {
	Products  map[string]*entity.Product
	Sales     map[string]*entity.Sale
	Purchases map[string]*entity.Purchase
	Comandas  map[string]*entity.Comanda
	Orders    map[string]*entity.Order
}

// NewMemStore construye el almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		Products:  make(map[string]*entity.Product),
		Sales:     make(map[string]*entity.Sale),
		Purchases: make(map[string]*entity.Purchase),
		Comandas:  make(map[string]*entity.Comanda),
		Orders:    make(map[string]*entity.Order),
	}
}

// SeedProduct agrega un producto con stock y precios dados.
func (s *MemStore) SeedProduct(id, title string, stock int64, sellPrice, buyPrice decimal.Decimal) {
	s.Products[id] = &entity.Product{
		ID:        id,
		Title:     title,
		Stock:     stock,
		SellPrice: sellPrice,
		BuyPrice:  buyPrice,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// StockOf devuelve el stock actual de un producto sembrado.
func (s *MemStore) StockOf(id string) int64 {
	if p, ok := s.Products[id]; ok {
		return p.Stock
	}
	return -1
}

// Accesores de repositorio (equivalen a los repos atados al pool).

func (s *MemStore) ProductRepo() repository.ProductRepository   { return productRepo{s} }
func (s *MemStore) SaleRepo() repository.SaleRepository         { return saleRepo{s} }
func (s *MemStore) PurchaseRepo() repository.PurchaseRepository { return purchaseRepo{s} }
func (s *MemStore) ComandaRepo() repository.ComandaRepository   { return comandaRepo{s} }
func (s *MemStore) OrderRepo() repository.OrderRepository       { return orderRepo{s} }

// ── TxRunners ─────────────────────────────────────────────────────────────────

func (s *MemStore) run(fn func() error) error {
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunSale implementa sale.TxRunner.
func (s *MemStore) RunSale(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	return s.run(func() error { return fn(productRepo{s}, saleRepo{s}) })
}

// RunPurchase implementa purchase.TxRunner.
func (s *MemStore) RunPurchase(ctx context.Context, fn func(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
) error) error {
	return s.run(func() error { return fn(productRepo{s}, purchaseRepo{s}) })
}

// RunComanda implementa comanda.TxRunner.
func (s *MemStore) RunComanda(ctx context.Context, fn func(
	products repository.ProductRepository,
	comandas repository.ComandaRepository,
	sales repository.SaleRepository,
) error) error {
	return s.run(func() error { return fn(productRepo{s}, comandaRepo{s}, saleRepo{s}) })
}

// RunOrder implementa order.TxRunner.
func (s *MemStore) RunOrder(ctx context.Context, fn func(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	sales repository.SaleRepository,
) error) error {
	return s.run(func() error { return fn(productRepo{s}, orderRepo{s}, saleRepo{s}) })
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type productRepo struct{ s *MemStore }

func (r productRepo) Create(p *entity.Product) error {
	now := time.Now()
	cp := *p
	cp.CreatedAt, cp.UpdatedAt = now, now
	r.s.Products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(id string) (*entity.Product, error) {
	return cloneProduct(r.s.Products[id]), nil
}

func (r productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return cloneProduct(r.s.Products[id]), nil
}

func (r productRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.Products))
	for _, p := range r.s.Products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r productRepo) Update(p *entity.Product) error {
	cur, ok := r.s.Products[p.ID]
	if !ok {
		return nil
	}
	cur.Title, cur.SellPrice, cur.URLImage, cur.Color = p.Title, p.SellPrice, p.URLImage, p.Color
	cur.UpdatedAt = time.Now()
	return nil
}

func (r productRepo) UpdateStock(id string, stock int64) error {
	if stock < 0 {
		return ErrStockCheck
	}
	if p, ok := r.s.Products[id]; ok {
		p.Stock = stock
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r productRepo) AddStock(id string, delta int64) error {
	p, ok := r.s.Products[id]
	if !ok {
		return nil
	}
	if p.Stock+delta < 0 {
		return ErrStockCheck
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	return nil
}

func (r productRepo) UpdateBuyPrice(id string, price decimal.Decimal) error {
	if p, ok := r.s.Products[id]; ok {
		p.BuyPrice = price
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r productRepo) Delete(id string) error {
	delete(r.s.Products, id)
	return nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type saleRepo struct{ s *MemStore }

func (r saleRepo) Create(s *entity.Sale) error {
	cp := cloneSale(s)
	cp.Date = time.Now() // estampa "del servidor"
	r.s.Sales[s.ID] = cp
	s.Date = cp.Date
	return nil
}

func (r saleRepo) GetByID(id string) (*entity.Sale, error) {
	return cloneSale(r.s.Sales[id]), nil
}

func (r saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return cloneSale(r.s.Sales[id]), nil
}

func (r saleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	for _, s := range r.s.Sales {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		out = append(out, cloneSale(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r saleRepo) UpdateStatus(id, status string) error {
	if s, ok := r.s.Sales[id]; ok {
		s.Status = status
	}
	return nil
}

// ── PurchaseRepository ────────────────────────────────────────────────────────

type purchaseRepo struct{ s *MemStore }

func (r purchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	cp.Date = time.Now()
	r.s.Purchases[p.ID] = &cp
	p.Date = cp.Date
	return nil
}

func (r purchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	if p, ok := r.s.Purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r purchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	out := make([]*entity.Purchase, 0, len(r.s.Purchases))
	for _, p := range r.s.Purchases {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r purchaseRepo) Delete(id string) error {
	delete(r.s.Purchases, id)
	return nil
}

// ── ComandaRepository ─────────────────────────────────────────────────────────

type comandaRepo struct{ s *MemStore }

func (r comandaRepo) Create(c *entity.Comanda) error {
	cp := cloneComanda(c)
	cp.CreatedAt = time.Now()
	r.s.Comandas[c.ID] = cp
	c.CreatedAt = cp.CreatedAt
	return nil
}

func (r comandaRepo) GetForUpdate(id string) (*entity.Comanda, error) {
	return cloneComanda(r.s.Comandas[id]), nil
}

func (r comandaRepo) ListOpen(ctx context.Context) ([]*entity.Comanda, error) {
	out := make([]*entity.Comanda, 0)
	for _, c := range r.s.Comandas {
		if c.Status == entity.ComandaStatusOpen {
			out = append(out, cloneComanda(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r comandaRepo) ReplaceItems(id string, items []entity.LineItem, total decimal.Decimal) error {
	if c, ok := r.s.Comandas[id]; ok {
		c.Items = append([]entity.LineItem(nil), items...)
		c.Total = total
	}
	return nil
}

func (r comandaRepo) Close(id string) error {
	if c, ok := r.s.Comandas[id]; ok {
		now := time.Now()
		c.Status = entity.ComandaStatusClosed
		c.ClosedAt = &now
	}
	return nil
}

// ── OrderRepository ───────────────────────────────────────────────────────────

type orderRepo struct{ s *MemStore }

func (r orderRepo) Create(o *entity.Order) error {
	cp := cloneOrder(o)
	cp.CreatedAt = time.Now()
	r.s.Orders[o.ID] = cp
	o.CreatedAt = cp.CreatedAt
	return nil
}

func (r orderRepo) GetByID(id string) (*entity.Order, error) {
	return cloneOrder(r.s.Orders[id]), nil
}

func (r orderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return cloneOrder(r.s.Orders[id]), nil
}

func (r orderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.s.Orders))
	for _, o := range r.s.Orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r orderRepo) MarkDelivered(id string) error {
	if o, ok := r.s.Orders[id]; ok {
		now := time.Now()
		o.Status = entity.OrderStatusDelivered
		if o.ActualDeliveryDate == nil {
			o.ActualDeliveryDate = &now
		}
	}
	return nil
}

func (r orderRepo) MarkFinished(id string) error {
	if o, ok := r.s.Orders[id]; ok {
		now := time.Now()
		o.Status = entity.OrderStatusFinished
		if o.PaymentDate == nil {
			o.PaymentDate = &now
		}
		if o.ClosingDate == nil {
			o.ClosingDate = &now
		}
	}
	return nil
}

func (r orderRepo) MarkCanceled(id string) error {
	if o, ok := r.s.Orders[id]; ok {
		o.Status = entity.OrderStatusCanceled
	}
	return nil
}

// ── Snapshot / clonación ──────────────────────────────────────────────────────

type snapshot struct {
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	purchases map[string]*entity.Purchase
	comandas  map[string]*entity.Comanda
	orders    map[string]*entity.Order
}

func (s *MemStore) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.Products)),
		sales:     make(map[string]*entity.Sale, len(s.Sales)),
		purchases: make(map[string]*entity.Purchase, len(s.Purchases)),
		comandas:  make(map[string]*entity.Comanda, len(s.Comandas)),
		orders:    make(map[string]*entity.Order, len(s.Orders)),
	}
	for id, p := range s.Products {
		snap.products[id] = cloneProduct(p)
	}
	for id, v := range s.Sales {
		snap.sales[id] = cloneSale(v)
	}
	for id, v := range s.Purchases {
		cp := *v
		snap.purchases[id] = &cp
	}
	for id, v := range s.Comandas {
		snap.comandas[id] = cloneComanda(v)
	}
	for id, v := range s.Orders {
		snap.orders[id] = cloneOrder(v)
	}
	return snap
}

func (s *MemStore) restore(snap snapshot) {
	s.Products = snap.products
	s.Sales = snap.sales
	s.Purchases = snap.purchases
	s.Comandas = snap.comandas
	s.Orders = snap.orders
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func cloneSale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Items = append([]entity.LineItem(nil), s.Items...)
	return &cp
}

func cloneComanda(c *entity.Comanda) *entity.Comanda {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]entity.LineItem(nil), c.Items...)
	if c.ClosedAt != nil {
		t := *c.ClosedAt
		cp.ClosedAt = &t
	}
	return &cp
}

func cloneOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]entity.LineItem(nil), o.Items...)
	if o.ActualDeliveryDate != nil {
		t := *o.ActualDeliveryDate
		cp.ActualDeliveryDate = &t
	}
	if o.PaymentDate != nil {
		t := *o.PaymentDate
		cp.PaymentDate = &t
	}
	if o.ClosingDate != nil {
		t := *o.ClosingDate
		cp.ClosingDate = &t
	}
	return &cp
}
