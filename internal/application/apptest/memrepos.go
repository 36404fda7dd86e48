// Package apptest contiene dobles en memoria de los puertos de
// repositorio, compartidos por los tests de los casos de uso.
package apptest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.StockBalanceRepository      = (*MemStockBalanceRepo)(nil)
	_ repository.StockMovementRepository     = (*MemStockMovementRepo)(nil)
	_ repository.DocumentSeriesRepository    = (*MemDocumentSeriesRepo)(nil)
	_ repository.ItemRepository              = (*MemItemRepo)(nil)
	_ repository.WarehouseRepository         = (*MemWarehouseRepo)(nil)
	_ repository.SupplierRepository          = (*MemSupplierRepo)(nil)
	_ repository.PurchaseOrderRepository     = (*MemPurchaseOrderRepo)(nil)
	_ repository.GoodsReceiptRepository      = (*MemGoodsReceiptRepo)(nil)
	_ repository.QualityInspectionRepository = (*MemQualityInspectionRepo)(nil)
	_ repository.PurchaseReturnRepository    = (*MemPurchaseReturnRepo)(nil)
	_ repository.StockTransferRepository     = (*MemStockTransferRepo)(nil)
	_ repository.StockAdjustmentRepository   = (*MemStockAdjustmentRepo)(nil)
)

func balanceKey(itemID, warehouseID string) string {
	return itemID + "|" + warehouseID
}

// MemStockBalanceRepo saldo por artículo+bodega en memoria.
type MemStockBalanceRepo struct {
	Balances map[string]*entity.StockBalance
}

func NewMemStockBalanceRepo() *MemStockBalanceRepo {
	return &MemStockBalanceRepo{Balances: make(map[string]*entity.StockBalance)}
}

func (r *MemStockBalanceRepo) Get(itemID, warehouseID string) (*entity.StockBalance, error) {
	if b, ok := r.Balances[balanceKey(itemID, warehouseID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{ItemID: itemID, WarehouseID: warehouseID}, nil
}

func (r *MemStockBalanceRepo) GetForUpdate(itemID, warehouseID string) (*entity.StockBalance, error) {
	return r.Get(itemID, warehouseID)
}

func (r *MemStockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	cp := *balance
	r.Balances[balanceKey(balance.ItemID, balance.WarehouseID)] = &cp
	return nil
}

func (r *MemStockBalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range r.Balances {
		if b.WarehouseID == warehouseID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MemStockMovementRepo libro de asientos en memoria (append-only).
type MemStockMovementRepo struct {
	Movements []*entity.StockMovement
}

func NewMemStockMovementRepo() *MemStockMovementRepo { return &MemStockMovementRepo{} }

func (r *MemStockMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.Movements = append(r.Movements, &cp)
	return nil
}

func (r *MemStockMovementRepo) ListByItemWarehouse(itemID, warehouseID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.Movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.Movements[i]
		if m.ItemID == itemID && m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemStockMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.Movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemStockMovementRepo) SumSigned(itemID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.Movements {
		if m.ItemID == itemID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.SignedQuantity())
		}
	}
	return sum, nil
}

// MemDocumentSeriesRepo consecutivos por tipo de documento y periodo.
type MemDocumentSeriesRepo struct {
	Seqs map[string]int64
}

func NewMemDocumentSeriesRepo() *MemDocumentSeriesRepo {
	return &MemDocumentSeriesRepo{Seqs: make(map[string]int64)}
}

func (r *MemDocumentSeriesRepo) NextNumber(docType, prefix string, at time.Time) (string, error) {
	period := at.Format("200601")
	key := docType + "|" + period
	r.Seqs[key]++
	return fmt.Sprintf("%s-%s-%05d", prefix, period, r.Seqs[key]), nil
}

// MemItemRepo maestro de artículos en memoria.
type MemItemRepo struct {
	Items map[string]*entity.Item
}

func NewMemItemRepo() *MemItemRepo { return &MemItemRepo{Items: make(map[string]*entity.Item)} }

func (r *MemItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.Items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *MemItemRepo) List(limit int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.Items {
		if len(out) >= limit {
			break
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

// MemWarehouseRepo maestro de bodegas en memoria.
type MemWarehouseRepo struct {
	Warehouses map[string]*entity.Warehouse
}

func NewMemWarehouseRepo() *MemWarehouseRepo {
	return &MemWarehouseRepo{Warehouses: make(map[string]*entity.Warehouse)}
}

func (r *MemWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if wh, ok := r.Warehouses[id]; ok {
		cp := *wh
		return &cp, nil
	}
	return nil, nil
}

func (r *MemWarehouseRepo) List() ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, wh := range r.Warehouses {
		cp := *wh
		out = append(out, &cp)
	}
	return out, nil
}

// MemSupplierRepo maestro de proveedores en memoria.
type MemSupplierRepo struct {
	Suppliers map[string]*entity.Supplier
}

func NewMemSupplierRepo() *MemSupplierRepo {
	return &MemSupplierRepo{Suppliers: make(map[string]*entity.Supplier)}
}

func (r *MemSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := r.Suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// MemPurchaseOrderRepo órdenes de compra en memoria.
type MemPurchaseOrderRepo struct {
	Orders map[string]*entity.PurchaseOrder
	Lines  map[string][]*entity.PurchaseOrderLine // por orderID
}

func NewMemPurchaseOrderRepo() *MemPurchaseOrderRepo {
	return &MemPurchaseOrderRepo{
		Orders: make(map[string]*entity.PurchaseOrder),
		Lines:  make(map[string][]*entity.PurchaseOrderLine),
	}
}

func (r *MemPurchaseOrderRepo) Seed(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) {
	cp := *order
	r.Orders[order.ID] = &cp
	for _, l := range lines {
		lcp := *l
		r.Lines[order.ID] = append(r.Lines[order.ID], &lcp)
	}
}

func (r *MemPurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.Orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *MemPurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, []*entity.PurchaseOrderLine, error) {
	o, ok := r.Orders[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *o
	lines, _ := r.GetLines(id)
	return &cp, lines, nil
}

func (r *MemPurchaseOrderRepo) GetLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	for _, l := range r.Lines[orderID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemPurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	for i, l := range r.Lines[line.OrderID] {
		if l.ID == line.ID {
			cp := *line
			r.Lines[line.OrderID][i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MemPurchaseOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

// MemGoodsReceiptRepo recepciones en memoria.
type MemGoodsReceiptRepo struct {
	Receipts map[string]*entity.GoodsReceipt
	Lines    map[string][]*entity.GoodsReceiptLine // por receiptID
}

func NewMemGoodsReceiptRepo() *MemGoodsReceiptRepo {
	return &MemGoodsReceiptRepo{
		Receipts: make(map[string]*entity.GoodsReceipt),
		Lines:    make(map[string][]*entity.GoodsReceiptLine),
	}
}

func (r *MemGoodsReceiptRepo) Create(receipt *entity.GoodsReceipt, lines []*entity.GoodsReceiptLine) error {
	cp := *receipt
	r.Receipts[receipt.ID] = &cp
	return r.ReplaceLines(receipt.ID, lines)
}

func (r *MemGoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error) {
	rec, ok := r.Receipts[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *rec
	var lines []*entity.GoodsReceiptLine
	for _, l := range r.Lines[id] {
		lcp := *l
		lines = append(lines, &lcp)
	}
	return &cp, lines, nil
}

func (r *MemGoodsReceiptRepo) GetForUpdate(id string) (*entity.GoodsReceipt, []*entity.GoodsReceiptLine, error) {
	return r.GetByID(id)
}

func (r *MemGoodsReceiptRepo) UpdateHeader(receipt *entity.GoodsReceipt) error {
	if _, ok := r.Receipts[receipt.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *receipt
	r.Receipts[receipt.ID] = &cp
	return nil
}

func (r *MemGoodsReceiptRepo) ReplaceLines(receiptID string, lines []*entity.GoodsReceiptLine) error {
	r.Lines[receiptID] = nil
	for _, l := range lines {
		cp := *l
		r.Lines[receiptID] = append(r.Lines[receiptID], &cp)
	}
	return nil
}

func (r *MemGoodsReceiptRepo) UpdateLine(line *entity.GoodsReceiptLine) error {
	for i, l := range r.Lines[line.ReceiptID] {
		if l.ID == line.ID {
			cp := *line
			r.Lines[line.ReceiptID][i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MemGoodsReceiptRepo) List(status string, limit int) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, rec := range r.Receipts {
		if status != "" && !strings.EqualFold(rec.Status, status) {
			continue
		}
		if len(out) >= limit {
			break
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// MemQualityInspectionRepo inspecciones en memoria.
type MemQualityInspectionRepo struct {
	Inspections []*entity.QualityInspection
	Results     []*entity.QualityInspectionResult
}

func NewMemQualityInspectionRepo() *MemQualityInspectionRepo {
	return &MemQualityInspectionRepo{}
}

func (r *MemQualityInspectionRepo) Create(inspection *entity.QualityInspection, results []*entity.QualityInspectionResult) error {
	for _, existing := range r.Inspections {
		if existing.ReceiptLineID == inspection.ReceiptLineID {
			return fmt.Errorf("%w: la línea ya tiene inspección", domain.ErrDuplicate)
		}
	}
	cp := *inspection
	r.Inspections = append(r.Inspections, &cp)
	for _, res := range results {
		rcp := *res
		r.Results = append(r.Results, &rcp)
	}
	return nil
}

func (r *MemQualityInspectionRepo) ListByReceipt(receiptID string) ([]*entity.QualityInspection, error) {
	var out []*entity.QualityInspection
	for _, insp := range r.Inspections {
		if insp.ReceiptID == receiptID {
			cp := *insp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemQualityInspectionRepo) ExistsForLine(receiptLineID string) (bool, error) {
	for _, insp := range r.Inspections {
		if insp.ReceiptLineID == receiptLineID {
			return true, nil
		}
	}
	return false, nil
}

// MemPurchaseReturnRepo devoluciones a proveedor en memoria.
type MemPurchaseReturnRepo struct {
	Returns map[string]*entity.PurchaseReturn
	Lines   map[string][]*entity.PurchaseReturnLine // por returnID
}

func NewMemPurchaseReturnRepo() *MemPurchaseReturnRepo {
	return &MemPurchaseReturnRepo{
		Returns: make(map[string]*entity.PurchaseReturn),
		Lines:   make(map[string][]*entity.PurchaseReturnLine),
	}
}

func (r *MemPurchaseReturnRepo) Create(ret *entity.PurchaseReturn, lines []*entity.PurchaseReturnLine) error {
	cp := *ret
	r.Returns[ret.ID] = &cp
	for _, l := range lines {
		lcp := *l
		r.Lines[ret.ID] = append(r.Lines[ret.ID], &lcp)
	}
	return nil
}

func (r *MemPurchaseReturnRepo) GetByID(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error) {
	ret, ok := r.Returns[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *ret
	var lines []*entity.PurchaseReturnLine
	for _, l := range r.Lines[id] {
		lcp := *l
		lines = append(lines, &lcp)
	}
	return &cp, lines, nil
}

func (r *MemPurchaseReturnRepo) GetForUpdate(id string) (*entity.PurchaseReturn, []*entity.PurchaseReturnLine, error) {
	return r.GetByID(id)
}

func (r *MemPurchaseReturnRepo) UpdateHeader(ret *entity.PurchaseReturn) error {
	if _, ok := r.Returns[ret.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ret
	r.Returns[ret.ID] = &cp
	return nil
}

func (r *MemPurchaseReturnRepo) ListByReceipt(receiptID string) ([]*entity.PurchaseReturn, error) {
	var out []*entity.PurchaseReturn
	for _, ret := range r.Returns {
		if ret.ReceiptID == receiptID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MemStockTransferRepo traslados en memoria.
type MemStockTransferRepo struct {
	Transfers map[string]*entity.StockTransfer
	Lines     map[string][]*entity.StockTransferLine // por transferID
}

func NewMemStockTransferRepo() *MemStockTransferRepo {
	return &MemStockTransferRepo{
		Transfers: make(map[string]*entity.StockTransfer),
		Lines:     make(map[string][]*entity.StockTransferLine),
	}
}

func (r *MemStockTransferRepo) Create(transfer *entity.StockTransfer, lines []*entity.StockTransferLine) error {
	cp := *transfer
	r.Transfers[transfer.ID] = &cp
	for _, l := range lines {
		lcp := *l
		r.Lines[transfer.ID] = append(r.Lines[transfer.ID], &lcp)
	}
	return nil
}

func (r *MemStockTransferRepo) GetByID(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error) {
	tr, ok := r.Transfers[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *tr
	var lines []*entity.StockTransferLine
	for _, l := range r.Lines[id] {
		lcp := *l
		lines = append(lines, &lcp)
	}
	return &cp, lines, nil
}

func (r *MemStockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, []*entity.StockTransferLine, error) {
	return r.GetByID(id)
}

func (r *MemStockTransferRepo) UpdateHeader(transfer *entity.StockTransfer) error {
	if _, ok := r.Transfers[transfer.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *transfer
	r.Transfers[transfer.ID] = &cp
	return nil
}

// MemStockAdjustmentRepo conteos físicos en memoria.
type MemStockAdjustmentRepo struct {
	Adjustments map[string]*entity.StockAdjustment
	Lines       map[string][]*entity.StockAdjustmentLine // por adjustmentID
}

func NewMemStockAdjustmentRepo() *MemStockAdjustmentRepo {
	return &MemStockAdjustmentRepo{
		Adjustments: make(map[string]*entity.StockAdjustment),
		Lines:       make(map[string][]*entity.StockAdjustmentLine),
	}
}

func (r *MemStockAdjustmentRepo) Create(adjustment *entity.StockAdjustment, lines []*entity.StockAdjustmentLine) error {
	cp := *adjustment
	r.Adjustments[adjustment.ID] = &cp
	for _, l := range lines {
		lcp := *l
		r.Lines[adjustment.ID] = append(r.Lines[adjustment.ID], &lcp)
	}
	return nil
}

func (r *MemStockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error) {
	adj, ok := r.Adjustments[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *adj
	var lines []*entity.StockAdjustmentLine
	for _, l := range r.Lines[id] {
		lcp := *l
		lines = append(lines, &lcp)
	}
	return &cp, lines, nil
}

func (r *MemStockAdjustmentRepo) GetForUpdate(id string) (*entity.StockAdjustment, []*entity.StockAdjustmentLine, error) {
	return r.GetByID(id)
}

func (r *MemStockAdjustmentRepo) UpdateHeader(adjustment *entity.StockAdjustment) error {
	if _, ok := r.Adjustments[adjustment.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *adjustment
	r.Adjustments[adjustment.ID] = &cp
	return nil
}

func (r *MemStockAdjustmentRepo) UpdateLine(line *entity.StockAdjustmentLine) error {
	for i, l := range r.Lines[line.AdjustmentID] {
		if l.ID == line.ID {
			cp := *line
			r.Lines[line.AdjustmentID][i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}
