package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivangarciagi10/email-servicev2/internal/domain"
)

func decoratedOrder() *domain.DraftOrder {
	return &domain.DraftOrder{
		ID:        987654,
		Name:      "#D123",
		Currency:  "MXN",
		CreatedAt: "2024-06-01T10:00:00Z",
		LineItems: []domain.LineItem{
			{
				Title:    "Taza personalizada",
				Quantity: 3,
				Price:    "100.00",
				Properties: []domain.Attribute{
					{Name: "Decorado", Value: "$10.00 por unidad"},
				},
			},
		},
	}
}

func TestCustomerEmailCarriesAdjustedTotals(t *testing.T) {
	text := customerEmailText(decoratedOrder(), testCustomer())

	// Unit price includes the decoration; the total multiplies it by quantity.
	assert.Contains(t, text, "MXN 110.00")
	assert.Contains(t, text, "Total: MXN 330.00")
	assert.Contains(t, text, "#D123")
	assert.Contains(t, text, "01/06/2024")
	assert.Contains(t, text, "Laura Méndez")
	assert.Contains(t, text, "Cantidad: 3")
}

func TestCustomerEmailHTMLCarriesLineBreakdown(t *testing.T) {
	html := customerEmailHTML(decoratedOrder(), testCustomer())

	assert.Contains(t, html, "Precio unitario: MXN 110.00")
	assert.Contains(t, html, "Precio total: MXN 330.00")
	assert.Contains(t, html, "<strong>Total:</strong> MXN 330.00")
}

func TestAdvisorEmailCarriesCustomerInfoAndTotals(t *testing.T) {
	customer := testCustomer()
	customer.Phone = "+52 55 0000 1111"
	text := advisorEmailText(decoratedOrder(), customer, testAdvisor())

	assert.Contains(t, text, "Juan Pérez")
	assert.Contains(t, text, "Laura Méndez")
	assert.Contains(t, text, "cliente@example.com")
	assert.Contains(t, text, "+52 55 0000 1111")
	assert.Contains(t, text, "Total: MXN 330.00")
}

func TestAdvisorEmailMissingPhonePlaceholder(t *testing.T) {
	text := advisorEmailText(decoratedOrder(), testCustomer(), testAdvisor())
	assert.Contains(t, text, "Teléfono: No proporcionado")

	html := advisorEmailHTML(decoratedOrder(), testCustomer(), testAdvisor())
	assert.Contains(t, html, "No proporcionado")
}

func TestFormatOrderDateFallsBackToRawValue(t *testing.T) {
	assert.Equal(t, "01/06/2024", formatOrderDate("2024-06-01T10:00:00Z"))
	assert.Equal(t, "sin fecha", formatOrderDate("sin fecha"))
}

func TestEmailsAreStandaloneDocuments(t *testing.T) {
	html := customerEmailHTML(decoratedOrder(), testCustomer())
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))

	html = advisorEmailHTML(decoratedOrder(), testCustomer(), testAdvisor())
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}
