// Package notify builds the WhatsApp order summary and its deep link. The
// message hands a finalized order off to the shop's WhatsApp number; no
// response is awaited.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/order"
)

// PixDetails is the payment routing block embedded in PIX orders.
type PixDetails struct {
	PixKey    string
	PixType   string
	Recipient string
}

// PixProvider is an optional capability: when the payment method requires an
// advance transfer, the composer asks it for routing details. Any lookup
// failure degrades to a fallback line and never aborts composition.
type PixProvider interface {
	GetPixDetails(ctx context.Context) (*PixDetails, error)
}

type Customer struct {
	Name  string
	Phone string
	Email string
}

const pixFallbackLine = "\n*DADOS PIX:* Entre em contato para obter as informações.\n\n"

type Composer struct {
	pix        PixProvider // may be nil
	pixTimeout time.Duration
	now        func() time.Time
}

func NewComposer(pix PixProvider, pixTimeout time.Duration) *Composer {
	if pixTimeout <= 0 {
		pixTimeout = 3 * time.Second
	}
	return &Composer{
		pix:        pix,
		pixTimeout: pixTimeout,
		now:        time.Now,
	}
}

// Compose renders the order confirmation text sent to the shop. It never
// fails because of the PIX lookup; only a nil order is an error.
func (c *Composer) Compose(ctx context.Context, o *order.Order, customer Customer) (string, error) {
	if o == nil {
		return "", fmt.Errorf("notify: cannot compose message for nil order")
	}

	var b strings.Builder

	now := c.now()
	b.WriteString("*NOVO PEDIDO - AERO PIZZA*\n\n")
	fmt.Fprintf(&b, "*Pedido:* %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "*Data:* %s\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "*Horário:* %s\n\n", now.Format("15:04:05"))

	b.WriteString("*Dados do Cliente:*\n")
	fmt.Fprintf(&b, "*Nome:* %s\n", customer.Name)
	fmt.Fprintf(&b, "*Telefone:* %s\n", customer.Phone)
	fmt.Fprintf(&b, "*Email:* %s\n", customer.Email)

	if o.DeliveryType == order.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "*Endereço de Entrega:* %s\n", o.DeliveryAddress)
		fmt.Fprintf(&b, "*Tipo:* Delivery (Taxa: R$ %.2f)\n", o.DeliveryFee)
	} else {
		b.WriteString("*Tipo:* Retirada no local\n")
	}

	fmt.Fprintf(&b, "\n*Forma de Pagamento:* %s\n", o.PaymentMethod.Label())

	if o.PaymentMethod == order.PaymentPix {
		b.WriteString(c.pixBlock(ctx))
	}

	b.WriteString("*Itens do Pedido:*\n")
	for i, item := range o.Items {
		fmt.Fprintf(&b, "\n%d. *%s* x%d\n", i+1, item.ProductName, item.Quantity)
		fmt.Fprintf(&b, "   Valor: R$ %.2f cada = R$ %.2f\n", item.UnitPrice, item.TotalPrice)
		if item.Notes != "" {
			fmt.Fprintf(&b, "   Obs: %s\n", item.Notes)
		}
	}

	b.WriteString("\n*Resumo do Valor:*\n")
	fmt.Fprintf(&b, "Subtotal: R$ %.2f\n", o.TotalAmount)
	if o.DeliveryType == order.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Taxa de Delivery: R$ %.2f\n", o.DeliveryFee)
	}
	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Desconto: R$ %.2f\n", o.DiscountAmount)
	}
	fmt.Fprintf(&b, "*TOTAL: R$ %.2f*\n\n", o.FinalAmount)

	if o.Notes != "" {
		fmt.Fprintf(&b, "*Observações Gerais:* %s\n\n", o.Notes)
	}

	b.WriteString("*Região de Atendimento:* Prazeres e região\n")
	b.WriteString("*Tempo estimado de entrega:* 30-40 minutos\n\n")
	b.WriteString("*Pedido confirmado! Aguardamos seu contato.*")

	return b.String(), nil
}

func (c *Composer) pixBlock(ctx context.Context) string {
	if c.pix == nil {
		return pixFallbackLine
	}

	pixCtx, cancel := context.WithTimeout(ctx, c.pixTimeout)
	defer cancel()

	details, err := c.pix.GetPixDetails(pixCtx)
	if err != nil || details == nil {
		log.Warn().Err(err).Msg("notify: pix lookup failed, using fallback line")
		return pixFallbackLine
	}

	var b strings.Builder
	b.WriteString("\n*DADOS PARA PAGAMENTO PIX:*\n")
	fmt.Fprintf(&b, "*Chave PIX:* %s\n", details.PixKey)
	fmt.Fprintf(&b, "*Tipo:* %s\n", details.PixType)
	fmt.Fprintf(&b, "*Destinatário:* %s\n\n", details.Recipient)
	b.WriteString("*IMPORTANTE:* Faça o pagamento e envie o comprovante para confirmarmos seu pedido.\n\n")
	return b.String()
}

// DeepLink returns the wa.me URL that opens WhatsApp with the message
// prefilled.
func DeepLink(phoneNumber, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phoneNumber, url.QueryEscape(text))
}

// FallbackLink opens WhatsApp with no prefilled text. Used when composing
// the message failed entirely, so the completed order is not lost.
func FallbackLink(phoneNumber string) string {
	return "https://wa.me/" + phoneNumber
}
