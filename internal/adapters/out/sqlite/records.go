package sqlite

import (
	"time"

	"intimacoes/internal/core/domain/model/batch"
	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
)

type metaRecord struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
}

type courierRecord struct {
	ID             kernel.UUID `json:"id"`
	Name           string      `json:"name"`
	Document       string      `json:"document,omitempty"`
	Address        string      `json:"address,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	SecondaryPhone string      `json:"secondaryPhone,omitempty"`
	PaymentKey     string      `json:"paymentKey,omitempty"`
	PreferredRoute string      `json:"preferredRoute,omitempty"`
}

type reconciliationRecord struct {
	ReturnAt        time.Time    `json:"returnAt"`
	PGFNDelivered   int          `json:"pgfnDelivered"`
	PGFNReturned    int          `json:"pgfnReturned"`
	PGFNAbsent      int          `json:"pgfnAbsent"`
	NormalDelivered int          `json:"normalDelivered"`
	NormalReturned  int          `json:"normalReturned"`
	NormalAbsent    int          `json:"normalAbsent"`
	TotalValue      kernel.Money `json:"totalValue"`
}

type batchRecord struct {
	ID              kernel.UUID           `json:"id"`
	CourierID       kernel.UUID           `json:"courierId"`
	PGFNInitial     int                   `json:"pgfnInitial"`
	NormalInitial   int                   `json:"normalInitial"`
	DepartureAt     time.Time             `json:"departureAt"`
	EstimatedReturn kernel.Date           `json:"estimatedReturnDate"`
	Description     string                `json:"description,omitempty"`
	Status          string                `json:"status"`
	Reconciliation  *reconciliationRecord `json:"reconciliation,omitempty"`
}

func courierToRecord(c *courier.Courier) courierRecord {
	p := c.Profile()
	return courierRecord{
		ID:             c.ID(),
		Name:           c.Name(),
		Document:       p.Document,
		Address:        p.Address,
		Phone:          p.Phone,
		SecondaryPhone: p.SecondaryPhone,
		PaymentKey:     p.PaymentKey,
		PreferredRoute: p.PreferredRoute,
	}
}

func courierFromRecord(r courierRecord) (*courier.Courier, error) {
	return courier.RestoreCourier(r.ID, r.Name, courier.Profile{
		Document:       r.Document,
		Address:        r.Address,
		Phone:          r.Phone,
		SecondaryPhone: r.SecondaryPhone,
		PaymentKey:     r.PaymentKey,
		PreferredRoute: r.PreferredRoute,
	})
}

func batchToRecord(b *batch.Batch) batchRecord {
	d := b.Details()
	rec := batchRecord{
		ID:              b.ID(),
		CourierID:       b.CourierID(),
		PGFNInitial:     b.PGFNInitial(),
		NormalInitial:   b.NormalInitial(),
		DepartureAt:     d.DepartureAt,
		EstimatedReturn: d.EstimatedReturn,
		Description:     d.Description,
		Status:          b.Status().String(),
	}

	if r, ok := b.Reconciliation(); ok {
		rec.Reconciliation = &reconciliationRecord{
			ReturnAt:        r.ReturnAt,
			PGFNDelivered:   r.Counts.PGFNDelivered,
			PGFNReturned:    r.Counts.PGFNReturned,
			PGFNAbsent:      r.Counts.PGFNAbsent,
			NormalDelivered: r.Counts.NormalDelivered,
			NormalReturned:  r.Counts.NormalReturned,
			NormalAbsent:    r.Counts.NormalAbsent,
			TotalValue:      r.TotalValue,
		}
	}
	return rec
}

func batchFromRecord(rec batchRecord) (*batch.Batch, error) {
	status, err := batch.ParseStatus(rec.Status)
	if err != nil {
		return nil, err
	}

	var reconciliation *batch.Reconciliation
	if r := rec.Reconciliation; r != nil {
		reconciliation = &batch.Reconciliation{
			ReturnAt: r.ReturnAt,
			Counts: batch.Counts{
				PGFNDelivered:   r.PGFNDelivered,
				PGFNReturned:    r.PGFNReturned,
				PGFNAbsent:      r.PGFNAbsent,
				NormalDelivered: r.NormalDelivered,
				NormalReturned:  r.NormalReturned,
				NormalAbsent:    r.NormalAbsent,
			},
			TotalValue: r.TotalValue,
		}
	}

	return batch.RestoreBatch(rec.ID, rec.CourierID, rec.PGFNInitial, rec.NormalInitial, batch.Details{
		DepartureAt:     rec.DepartureAt,
		EstimatedReturn: rec.EstimatedReturn,
		Description:     rec.Description,
	}, status, reconciliation)
}
