package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"tienda_virtual/internal/models"
)

// FormatMoney presenta centavos como monto decimal para humanos; el
// float existe solo en la capa de presentación.
func FormatMoney(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// SendOrderConfirmation envía el resumen del pedido por correo. Sin SMTP
// configurado se omite en silencio: el checkout nunca depende del mail.
func SendOrderConfirmation(to string, order *models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️  SMTP no configurado — se omite el correo de confirmación")
		return nil
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@tienda-virtual.com"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmación de tu pedido " + order.Numero)
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando confirmación de pedido a", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order *models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.Nombre, item.Cantidad,
			FormatMoney(item.Precio), FormatMoney(item.Precio*int64(item.Cantidad)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
	<h2>¡Gracias por tu compra!</h2>
	<p>Tu pedido <strong>%s</strong> fue creado correctamente.</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Importe</th></tr>
		%s
	</table>
	<p><strong>Total: %s</strong></p>
	<p>Estado del pago: %s (%s)</p>
</body>
</html>`, order.Numero, itemsHTML, FormatMoney(order.Total), order.Pago.Estado, order.Pago.Metodo)
}
