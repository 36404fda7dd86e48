package repository

import "time"

// DocumentSeriesRepository emite consecutivos únicos por tipo de documento
// y periodo (PREFIX-YYYYMM-seq). La implementación incrementa la serie bajo
// FOR UPDATE dentro de la transacción que crea el documento.
type DocumentSeriesRepository interface {
	NextNumber(docType, prefix string, at time.Time) (string, error)
}
