// Package approval implementa el adaptador HTTP hacia el motor de
// aprobaciones (servicio externo). La decisión regresa después por el
// endpoint de callback; aquí solo se abre la solicitud.
package approval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/receiving"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ receiving.ApprovalService = (*Client)(nil)

// Client cliente del servicio de aprobaciones. Con BaseURL vacío opera en
// modo dev: registra la solicitud en el log y no llama a nadie (el
// documento queda pendiente hasta que llegue el callback manual).
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type initiateRequest struct {
	WorkflowType  string          `json:"workflow_type"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	DisplayNumber string          `json:"display_number"`
	RequesterID   string          `json:"requester_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// InitiateApproval abre la solicitud de aprobación. Un error aquí hace que
// el caller deshaga el submit (la recepción queda como estaba).
func (c *Client) InitiateApproval(ctx context.Context, req receiving.ApprovalRequest) error {
	if c.baseURL == "" {
		c.log.Warn().
			Str("entity_id", req.EntityID).
			Str("number", req.DisplayNumber).
			Msg("servicio de aprobaciones sin configurar; solicitud solo registrada")
		return nil
	}

	body, err := json.Marshal(initiateRequest{
		WorkflowType:  req.WorkflowType,
		EntityType:    req.EntityType,
		EntityID:      req.EntityID,
		DisplayNumber: req.DisplayNumber,
		RequesterID:   req.RequesterID,
		Amount:        req.Amount,
	})
	if err != nil {
		return fmt.Errorf("approval: serializar solicitud: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/approvals", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("approval: crear request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("approval: enviar solicitud: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("approval: respuesta %d del servicio", resp.StatusCode)
	}
	c.log.Info().
		Str("entity_id", req.EntityID).
		Str("number", req.DisplayNumber).
		Msg("solicitud de aprobación abierta")
	return nil
}
