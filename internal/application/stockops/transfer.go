package stockops

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	refTypeStockTransfer = "stock_transfer"
	seriesStockTransfer  = "stock_transfer"
	prefixStockTransfer  = "TRF"
)

// TransferUseCase traslado de stock entre bodegas: se crea en borrador y
// al finalizar registra salida en origen y entrada en destino al costo
// promedio de origen, todo en una transacción.
type TransferUseCase struct {
	txRunner      TxRunner
	ledger        StockLedger
	transferRepo  repository.StockTransferRepository
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.ItemRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	transferRepo repository.StockTransferRepository,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.ItemRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
	}
}

// CreateTransfer crea el documento de traslado en borrador. El stock no se
// verifica aquí sino al finalizar, bajo bloqueo de fila.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, actorID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("%w: bodega origen y destino iguales", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool)
	for _, l := range in.Lines {
		if l.ItemID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[l.ItemID] {
			return nil, fmt.Errorf("%w: artículo repetido %s", domain.ErrInvalidInput, l.ItemID)
		}
		seen[l.ItemID] = true
	}
	transferDate, err := parseDate(in.TransferDate)
	if err != nil {
		return nil, err
	}

	from, err := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil || from == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.FromWarehouseID)
	}
	to, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil || to == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.ToWarehouseID)
	}
	for _, l := range in.Lines {
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil || item == nil {
			return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, l.ItemID)
		}
	}

	var resp *dto.TransferResponse
	err = uc.txRunner.RunStockOps(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockAdjustmentRepository,
		_ repository.StockMovementRepository,
		_ repository.StockBalanceRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		number, err := seriesRepo.NextNumber(seriesStockTransfer, prefixStockTransfer, transferDate)
		if err != nil {
			return err
		}
		now := time.Now()
		transfer := &entity.StockTransfer{
			ID:              uuid.New().String(),
			Number:          number,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Status:          entity.TransferStatusDraft,
			TransferDate:    transferDate,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
			CreatedBy:       actorID,
		}
		lines := make([]*entity.StockTransferLine, 0, len(in.Lines))
		for i, l := range in.Lines {
			lines = append(lines, &entity.StockTransferLine{
				ID:         uuid.New().String(),
				TransferID: transfer.ID,
				LineNo:     i + 1,
				ItemID:     l.ItemID,
				Quantity:   l.Quantity,
			})
		}
		if err := transferRepo.Create(transfer, lines); err != nil {
			return err
		}
		resp = toTransferResponse(transfer, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// FinalizeTransfer ejecuta el traslado: verifica la disponibilidad de
// todas las líneas en la bodega origen bajo bloqueo y solo entonces
// registra OUT en origen e IN en destino al costo promedio de origen. Si
// alguna línea no alcanza, nada se mueve.
func (uc *TransferUseCase) FinalizeTransfer(ctx context.Context, actorID, transferID string) (*dto.TransferResponse, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.TransferResponse
	err := uc.txRunner.RunStockOps(ctx, func(
		transferRepo repository.StockTransferRepository,
		_ repository.StockAdjustmentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.DocumentSeriesRepository,
	) error {
		transfer, lines, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, transferID)
		}
		if err := transfer.TransitionTo(entity.TransferStatusCompleted); err != nil {
			return err
		}

		// Verificación previa de todas las líneas (bloqueando las filas de
		// saldo de origen); el costo promedio de origen viaja al destino.
		sourceCost := make(map[string]decimal.Decimal, len(lines))
		for _, l := range lines {
			balance, err := balanceRepo.GetForUpdate(l.ItemID, transfer.FromWarehouseID)
			if err != nil {
				return err
			}
			if balance.QuantityOnHand.LessThan(l.Quantity) {
				return fmt.Errorf("%w: artículo %s en bodega origen (disponible %s, solicitado %s)",
					domain.ErrInsufficientStock, l.ItemID,
					balance.QuantityOnHand.String(), l.Quantity.String())
			}
			sourceCost[l.ItemID] = balance.AverageCost
		}

		now := time.Now()
		for _, l := range lines {
			cost := sourceCost[l.ItemID]
			if _, err := uc.ledger.PostMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
				ItemID:          l.ItemID,
				WarehouseID:     transfer.FromWarehouseID,
				Quantity:        l.Quantity,
				Direction:       entity.DirectionOut,
				MovementType:    entity.MovementTypeTransferOut,
				ReferenceType:   refTypeStockTransfer,
				ReferenceID:     transfer.ID,
				ReferenceNumber: transfer.Number,
				UnitCost:        cost,
				Date:            now,
				ActorID:         actorID,
			}); err != nil {
				return err
			}
			if _, err := uc.ledger.PostMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
				ItemID:          l.ItemID,
				WarehouseID:     transfer.ToWarehouseID,
				Quantity:        l.Quantity,
				Direction:       entity.DirectionIn,
				MovementType:    entity.MovementTypeTransferIn,
				ReferenceType:   refTypeStockTransfer,
				ReferenceID:     transfer.ID,
				ReferenceNumber: transfer.Number,
				UnitCost:        cost,
				Date:            now,
				ActorID:         actorID,
			}); err != nil {
				return err
			}
		}

		transfer.UpdatedAt = now
		if err := transferRepo.UpdateHeader(transfer); err != nil {
			return err
		}
		resp = toTransferResponse(transfer, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTransfer devuelve un traslado con sus líneas.
func (uc *TransferUseCase) GetTransfer(id string) (*dto.TransferResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	transfer, lines, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(transfer, lines), nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

func toTransferResponse(t *entity.StockTransfer, lines []*entity.StockTransferLine) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:              t.ID,
		Number:          t.Number,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Status:          t.Status,
		TransferDate:    t.TransferDate.Format("2006-01-02"),
		Notes:           t.Notes,
		Lines:           []dto.TransferLineResponse{},
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.TransferLineResponse{
			ID:       l.ID,
			LineNo:   l.LineNo,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
		})
	}
	return resp
}
