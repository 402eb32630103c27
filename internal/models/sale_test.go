package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleTotal_MinorUnits(t *testing.T) {
	// 100 chickens at 5000 minor units each
	s := Sale{DocQuantity: 100, DocUnitPrice: 5000}
	assert.Equal(t, int64(500000), s.Total())
}

func TestSaleDOC(t *testing.T) {
	s := Sale{DocQuantity: 100, DocDeliveredQuantity: 40}

	doc := s.DOC()
	assert.Equal(t, int64(100), doc.Total)
	assert.Equal(t, int64(60), doc.Remaining)
}

func TestSaleDOC_OverDelivered(t *testing.T) {
	// delivered > sold is not rejected anywhere, remaining goes negative
	s := Sale{DocQuantity: 10, DocDeliveredQuantity: 12}
	assert.Equal(t, int64(-2), s.DOC().Remaining)
}

func TestDOCStatusLabel(t *testing.T) {
	tests := []struct {
		name string
		doc  DOCStatus
		want string
	}{
		{"all delivered", DOCStatus{Total: 100, Remaining: 0}, "Completed"},
		{"partially delivered", DOCStatus{Total: 100, Remaining: 60}, "60 / 100"},
		{"nothing delivered", DOCStatus{Total: 25, Remaining: 25}, "25 / 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.Label())
		})
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "partial", "deposit"} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus(""))
}
