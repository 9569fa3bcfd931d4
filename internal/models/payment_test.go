package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
		ok   bool
	}{
		{"pix", PaymentPix, true},
		{"Dinheiro", PaymentCash, true},
		{"Débito", PaymentDebit, true},
		{"debit card", PaymentDebit, true},
		{"cartão de crédito", PaymentCredit, true},
		{"CREDIT", PaymentCredit, true},
		{"transferência bancária", PaymentTransfer, true},
		{"outro", PaymentOther, true},
		{"boleto", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := MapPaymentMethod(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Crédito", PaymentMethodLabel("credito"))
	assert.Equal(t, "Transferência", PaymentMethodLabel("TRANSFER"))
	assert.Equal(t, "boleto", PaymentMethodLabel(" boleto "))
	assert.Equal(t, "", PaymentMethodLabel(""))
}

func TestIsCreditPayment(t *testing.T) {
	assert.True(t, IsCreditPayment("Crédito"))
	assert.True(t, IsCreditPayment("credit"))
	assert.False(t, IsCreditPayment("pix"))
}
