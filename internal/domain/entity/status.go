package entity

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Tablas centrales de transición de estado, una por familia de documento.
// Toda transición pasa por CanTransition/Transition; una transición no
// listada (incluida la reentrada a un estado terminal) se rechaza con
// domain.ErrInvalidTransition.

var receiptTransitions = map[string][]string{
	ReceiptStatusDraft:             {ReceiptStatusPendingInspection},
	ReceiptStatusPendingInspection: {ReceiptStatusInspected, ReceiptStatusDraft},
	ReceiptStatusInspected:         {ReceiptStatusPendingApproval, ReceiptStatusDraft},
	ReceiptStatusPendingApproval:   {ReceiptStatusApproved, ReceiptStatusInspected},
	ReceiptStatusApproved:          {ReceiptStatusCompleted},
	ReceiptStatusCompleted:         {},
}

var approvalTransitions = map[string][]string{
	ApprovalNone:     {ApprovalPending},
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalRejected: {ApprovalPending},
	ApprovalApproved: {},
}

var returnTransitions = map[string][]string{
	ReturnStatusDraft:    {ReturnStatusApproved},
	ReturnStatusApproved: {},
}

var transferTransitions = map[string][]string{
	TransferStatusDraft:     {TransferStatusCompleted},
	TransferStatusCompleted: {},
}

var adjustmentTransitions = map[string][]string{
	AdjustmentStatusDraft:    {AdjustmentStatusApproved},
	AdjustmentStatusApproved: {},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transition(table map[string][]string, docType, from, to string) (string, error) {
	if !canTransition(table, from, to) {
		return "", fmt.Errorf("%w: %s de %s a %s", domain.ErrInvalidTransition, docType, from, to)
	}
	return to, nil
}

// TransitionTo mueve la recepción al nuevo estado o falla si no está permitido.
func (r *GoodsReceipt) TransitionTo(status string) error {
	next, err := transition(receiptTransitions, "recepción", r.Status, status)
	if err != nil {
		return err
	}
	r.Status = next
	return nil
}

// TransitionApproval mueve el estado de aprobación de la recepción.
func (r *GoodsReceipt) TransitionApproval(status string) error {
	next, err := transition(approvalTransitions, "aprobación", r.ApprovalStatus, status)
	if err != nil {
		return err
	}
	r.ApprovalStatus = next
	return nil
}

// TransitionTo mueve la devolución al nuevo estado o falla si no está permitido.
func (r *PurchaseReturn) TransitionTo(status string) error {
	next, err := transition(returnTransitions, "devolución", r.Status, status)
	if err != nil {
		return err
	}
	r.Status = next
	return nil
}

// TransitionTo mueve el traslado al nuevo estado o falla si no está permitido.
func (t *StockTransfer) TransitionTo(status string) error {
	next, err := transition(transferTransitions, "traslado", t.Status, status)
	if err != nil {
		return err
	}
	t.Status = next
	return nil
}

// TransitionTo mueve el ajuste al nuevo estado o falla si no está permitido.
func (a *StockAdjustment) TransitionTo(status string) error {
	next, err := transition(adjustmentTransitions, "ajuste", a.Status, status)
	if err != nil {
		return err
	}
	a.Status = next
	return nil
}
