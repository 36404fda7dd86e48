package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase es el único punto de escritura del libro de inventario.
// Cada asiento bloquea la fila de saldo (SELECT FOR UPDATE), toma el
// snapshot antes/después y actualiza el saldo materializado en la misma
// transacción.
type LedgerUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	balanceRepo   repository.StockBalanceRepository
	movementRepo  repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		balanceRepo:   balanceRepo,
		movementRepo:  movementRepo,
	}
}

// MovementInput entrada para registrar un asiento. Quantity siempre
// positiva; Direction determina el signo. UnitCost en cero para salidas
// significa "usar el costo promedio del saldo".
type MovementInput struct {
	ItemID          string
	WarehouseID     string
	Quantity        decimal.Decimal
	Direction       string // IN | OUT
	MovementType    string
	ReferenceType   string
	ReferenceID     string
	ReferenceNumber string
	UnitCost        decimal.Decimal
	Date            time.Time
	ActorID         string
}

func (in *MovementInput) validate() error {
	if in.ItemID == "" || in.WarehouseID == "" || in.MovementType == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Direction != entity.DirectionIn && in.Direction != entity.DirectionOut {
		return fmt.Errorf("%w: dirección desconocida %q", domain.ErrInvalidInput, in.Direction)
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
	}
	return nil
}

// PostMovement registra un asiento en su propia transacción, validando
// primero que artículo y bodega existan en el maestro.
func (uc *LedgerUseCase) PostMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil || item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, input.ItemID)
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil || wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, input.WarehouseID)
	}

	var posted *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		m, err := uc.PostMovementInTx(movRepo, balanceRepo, input)
		if err != nil {
			return err
		}
		posted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// PostMovementInTx registra el asiento usando los repositorios del caller
// (misma transacción). Los flujos de recepción, traslado, ajuste y
// devolución entran por aquí para que documento y asiento sean atómicos.
func (uc *LedgerUseCase) PostMovementInTx(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	// Bloquea la fila de saldo (SELECT FOR UPDATE) para serializar escrituras
	balance, err := balanceRepo.GetForUpdate(input.ItemID, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	before := balance.QuantityOnHand
	unitCost := input.UnitCost

	switch input.Direction {
	case entity.DirectionIn:
		balance.QuantityOnHand = before.Add(input.Quantity)
		// El costo promedio se fija con la primera entrada y no se recalcula
		if balance.AverageCost.IsZero() && unitCost.GreaterThan(decimal.Zero) {
			balance.AverageCost = unitCost
		}
		if unitCost.IsZero() {
			unitCost = balance.AverageCost
		}
	case entity.DirectionOut:
		if before.LessThan(input.Quantity) {
			return nil, fmt.Errorf("%w: %s en bodega %s (disponible %s, solicitado %s)",
				domain.ErrInsufficientStock, input.ItemID, input.WarehouseID,
				before.String(), input.Quantity.String())
		}
		balance.QuantityOnHand = before.Sub(input.Quantity)
		if unitCost.IsZero() {
			unitCost = balance.AverageCost
		}
	}

	balance.ItemID = input.ItemID
	balance.WarehouseID = input.WarehouseID
	balance.LastMovementAt = date
	balance.UpdatedAt = now
	if err := balanceRepo.Upsert(balance); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ItemID:          input.ItemID,
		WarehouseID:     input.WarehouseID,
		Quantity:        input.Quantity,
		Direction:       input.Direction,
		MovementType:    input.MovementType,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		ReferenceNumber: input.ReferenceNumber,
		UnitCost:        unitCost,
		TotalCost:       input.Quantity.Mul(unitCost),
		BalanceBefore:   before,
		BalanceAfter:    balance.QuantityOnHand,
		Date:            date,
		CreatedAt:       now,
		CreatedBy:       input.ActorID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// CurrentBalance devuelve el saldo materializado (cero si nunca hubo movimientos).
func (uc *LedgerUseCase) CurrentBalance(itemID, warehouseID string) (*entity.StockBalance, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balanceRepo.Get(itemID, warehouseID)
}

// ListBalances devuelve todos los saldos de una bodega.
func (uc *LedgerUseCase) ListBalances(warehouseID string) ([]*entity.StockBalance, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balanceRepo.ListByWarehouse(warehouseID)
}

// ListMovements devuelve el historial de asientos de un artículo en una bodega.
func (uc *LedgerUseCase) ListMovements(itemID, warehouseID string, limit int) ([]*entity.StockMovement, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.movementRepo.ListByItemWarehouse(itemID, warehouseID, limit)
}

// ListMovementsByReference devuelve los asientos originados por un documento.
func (uc *LedgerUseCase) ListMovementsByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	if referenceType == "" || referenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByReference(referenceType, referenceID)
}

// ConsistencyReport resultado de la verificación saldo vs. suma de asientos.
type ConsistencyReport struct {
	ItemID      string
	WarehouseID string
	OnHand      decimal.Decimal
	MovementSum decimal.Decimal
	Consistent  bool
}

// CheckConsistency verifica que el saldo en mano sea igual a la suma con
// signo de todos los asientos del par artículo+bodega.
func (uc *LedgerUseCase) CheckConsistency(itemID, warehouseID string) (*ConsistencyReport, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	balance, err := uc.balanceRepo.Get(itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	onHand := decimal.Zero
	if balance != nil {
		onHand = balance.QuantityOnHand
	}
	sum, err := uc.movementRepo.SumSigned(itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &ConsistencyReport{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		OnHand:      onHand,
		MovementSum: sum,
		Consistent:  onHand.Equal(sum),
	}, nil
}
