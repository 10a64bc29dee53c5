package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivangarciagi10/email-servicev2/internal/domain"
	"github.com/ivangarciagi10/email-servicev2/internal/pricing"
)

// formatAmount renders an amount as "MXN 1234.56".
func formatAmount(currency string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}

// formatOrderDate renders the Shopify timestamp as dd/mm/yyyy, falling back
// to the raw value when it does not parse.
func formatOrderDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("02/01/2006")
}

func customerEmailText(order *domain.DraftOrder, customer *domain.Customer) string {
	lines := pricing.ApplyDecorations(order.LineItems)
	total := formatAmount(order.Currency, pricing.OrderTotal(lines))

	var items strings.Builder
	for _, line := range lines {
		items.WriteString(fmt.Sprintf("\n- %s\n  Cantidad: %d\n  Precio: %s\n",
			line.Title, line.Quantity, formatAmount(order.Currency, line.UnitPrice)))
	}

	return fmt.Sprintf(`¡Cotización Creada Exitosamente!

Estimado/a %s,

Su cotización ha sido creada exitosamente. A continuación encontrará los detalles:

DETALLES DE LA COTIZACIÓN:
- Número de Cotización: %s
- Fecha: %s
- Total: %s

PRODUCTOS COTIZADOS:
%s
Nuestro equipo de asesores se pondrá en contacto con usted pronto para continuar con el proceso.

Si tiene alguna pregunta, no dude en contactarnos.

Este es un correo automático, por favor no responda a este mensaje.
`, customer.FullName(), order.Name, formatOrderDate(order.CreatedAt), total, items.String())
}

func customerEmailHTML(order *domain.DraftOrder, customer *domain.Customer) string {
	lines := pricing.ApplyDecorations(order.LineItems)
	total := formatAmount(order.Currency, pricing.OrderTotal(lines))

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Cotización Creada</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #f8f9fa; padding: 20px; text-align: center; }
    .content { padding: 20px; }
    .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; }
    .order-details { background-color: #f8f9fa; padding: 15px; margin: 20px 0; border-radius: 5px; }
    .item { margin: 10px 0; padding: 10px; border-bottom: 1px solid #eee; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>¡Cotización Creada Exitosamente!</h1>
    </div>
    <div class="content">
      <p>Estimado/a %s</p>
      <p>Su cotización ha sido creada exitosamente. A continuación encontrará los detalles:</p>
      <div class="order-details">
        <h3>Detalles de la Cotización</h3>
        <p><strong>Número de Cotización:</strong> %s</p>
        <p><strong>Fecha:</strong> %s</p>
        <p><strong>Total:</strong> %s</p>
      </div>
      <h3>Productos Cotizados:</h3>
      %s
      <p>Nuestro equipo de asesores se pondrá en contacto con usted pronto para continuar con el proceso.</p>
      <p>Si tiene alguna pregunta, no dude en contactarnos.</p>
    </div>
    <div class="footer">
      <p>Este es un correo automático, por favor no responda a este mensaje.</p>
    </div>
  </div>
</body>
</html>
`, customer.FullName(), order.Name, formatOrderDate(order.CreatedAt), total, itemsHTML(order.Currency, lines))
}

func advisorEmailText(order *domain.DraftOrder, customer *domain.Customer, advisor *domain.Advisor) string {
	lines := pricing.ApplyDecorations(order.LineItems)
	total := formatAmount(order.Currency, pricing.OrderTotal(lines))

	var items strings.Builder
	for _, line := range lines {
		items.WriteString(fmt.Sprintf("\n- %s\n  Cantidad: %d\n  Precio: %s\n",
			line.Title, line.Quantity, formatAmount(order.Currency, line.UnitPrice)))
	}

	phone := customer.Phone
	if phone == "" {
		phone = "No proporcionado"
	}

	return fmt.Sprintf(`Nueva Cotización Generada

Estimado/a %s,

Se ha generado una nueva cotización para uno de sus clientes asignados.

INFORMACIÓN DEL CLIENTE:
- Nombre: %s
- Email: %s
- Teléfono: %s

DETALLES DE LA COTIZACIÓN:
- Número de Cotización: %s
- Fecha: %s
- Total: %s

PRODUCTOS COTIZADOS:
%s
Por favor, contacte al cliente lo antes posible para continuar con el proceso de venta.

Puede acceder a la cotización desde el panel de administración de Shopify.

Este es un correo automático del sistema de notificaciones.
`, advisor.FullName(), customer.FullName(), customer.Email, phone,
		order.Name, formatOrderDate(order.CreatedAt), total, items.String())
}

func advisorEmailHTML(order *domain.DraftOrder, customer *domain.Customer, advisor *domain.Advisor) string {
	lines := pricing.ApplyDecorations(order.LineItems)
	total := formatAmount(order.Currency, pricing.OrderTotal(lines))

	phone := customer.Phone
	if phone == "" {
		phone = "No proporcionado"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Nueva Cotización</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #007bff; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; }
    .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; }
    .customer-info { background-color: #e9ecef; padding: 15px; margin: 20px 0; border-radius: 5px; }
    .order-details { background-color: #f8f9fa; padding: 15px; margin: 20px 0; border-radius: 5px; }
    .item { margin: 10px 0; padding: 10px; border-bottom: 1px solid #eee; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Nueva Cotización Generada</h1>
    </div>
    <div class="content">
      <p>Estimado/a %s</p>
      <p>Se ha generado una nueva cotización para uno de sus clientes asignados.</p>
      <div class="customer-info">
        <h3>Información del Cliente</h3>
        <p><strong>Nombre:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Teléfono:</strong> %s</p>
      </div>
      <div class="order-details">
        <h3>Detalles de la Cotización</h3>
        <p><strong>Número de Cotización:</strong> %s</p>
        <p><strong>Fecha:</strong> %s</p>
        <p><strong>Total:</strong> %s</p>
      </div>
      <h3>Productos Cotizados:</h3>
      %s
      <p>Por favor, contacte al cliente lo antes posible para continuar con el proceso de venta.</p>
      <p>Puede acceder a la cotización desde el panel de administración de Shopify.</p>
    </div>
    <div class="footer">
      <p>Este es un correo automático del sistema de notificaciones.</p>
    </div>
  </div>
</body>
</html>
`, advisor.FullName(), customer.FullName(), customer.Email, phone,
		order.Name, formatOrderDate(order.CreatedAt), total, itemsHTML(order.Currency, lines))
}

// itemsHTML renders the per-line breakdown shared by both HTML emails:
// quantity, effective unit price (base plus decoration) and line total.
func itemsHTML(currency string, lines []pricing.Line) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(fmt.Sprintf(`<div class="item">
        <p><strong>%s</strong></p>
        <p>Cantidad: %d</p>
        <p>Precio unitario: %s</p>
        <p>Precio total: %s</p>
      </div>
`, line.Title, line.Quantity,
			formatAmount(currency, line.UnitPrice),
			formatAmount(currency, line.Total())))
	}
	return b.String()
}
