package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.DocumentSeriesRepository = (*DocumentSeriesRepo)(nil)

// DocumentSeriesRepo emite consecutivos PREFIX-YYYYMM-seq desde la tabla
// document_series. El incremento se hace con upsert atómico, por lo que dos
// transacciones concurrentes nunca obtienen el mismo número.
type DocumentSeriesRepo struct {
	q Querier
}

// NewDocumentSeriesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentSeriesRepository(q Querier) *DocumentSeriesRepo {
	return &DocumentSeriesRepo{q: q}
}

// NextNumber incrementa la serie del tipo de documento en el periodo
// YYYYMM de la fecha dada y devuelve el número formateado.
func (r *DocumentSeriesRepo) NextNumber(docType, prefix string, at time.Time) (string, error) {
	period := at.Format("200601")
	query := `
		INSERT INTO document_series (doc_type, period, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET last_seq = document_series.last_seq + 1
		RETURNING last_seq`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, docType, period).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("next document number: %w", err)
	}
	return fmt.Sprintf("%s-%s-%05d", prefix, period, seq), nil
}
