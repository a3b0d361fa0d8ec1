package notify_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeropizza/backend/internal/notify"
	"github.com/aeropizza/backend/internal/order"
)

type stubPixProvider struct {
	details *notify.PixDetails
	err     error
	block   bool
}

func (s *stubPixProvider) GetPixDetails(ctx context.Context) (*notify.PixDetails, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.details, s.err
}

func sampleOrder(paymentMethod order.PaymentMethod, deliveryType order.DeliveryType) *order.Order {
	return &order.Order{
		ID:              uuid.Must(uuid.NewV4()),
		OrderNumber:     "AERO17000000000001A2",
		Status:          order.StatusPending,
		PaymentMethod:   paymentMethod,
		DeliveryType:    deliveryType,
		TotalAmount:     75.50,
		DeliveryFee:     8.00,
		FinalAmount:     83.50,
		DeliveryAddress: "Rua das Flores, 123",
		CustomerPhone:   "81999990000",
		Items: []order.OrderItem{
			{ProductName: "Margherita", Quantity: 2, UnitPrice: 30.00, TotalPrice: 60.00, Notes: "sem cebola"},
			{ProductName: "Guaraná", Quantity: 1, UnitPrice: 15.50, TotalPrice: 15.50},
		},
	}
}

var sampleCustomer = notify.Customer{
	Name:  "João Silva",
	Phone: "81999990000",
	Email: "joao@example.com",
}

func TestComposer_Compose_DeliveryWithPix(t *testing.T) {
	provider := &stubPixProvider{details: &notify.PixDetails{
		PixKey:    "aeropizza@pix.com",
		PixType:   "Email",
		Recipient: "AeroPizza Ltda",
	}}
	composer := notify.NewComposer(provider, time.Second)

	msg, err := composer.Compose(context.Background(), sampleOrder(order.PaymentPix, order.DeliveryTypeDelivery), sampleCustomer)
	require.NoError(t, err)

	assert.Contains(t, msg, "*NOVO PEDIDO - AERO PIZZA*")
	assert.Contains(t, msg, "*Nome:* João Silva")
	assert.Contains(t, msg, "*Endereço de Entrega:* Rua das Flores, 123")
	assert.Contains(t, msg, "*Forma de Pagamento:* Pix")
	assert.Contains(t, msg, "*Chave PIX:* aeropizza@pix.com")
	assert.Contains(t, msg, "*Destinatário:* AeroPizza Ltda")
	assert.Contains(t, msg, "1. *Margherita* x2")
	assert.Contains(t, msg, "Valor: R$ 30.00 cada = R$ 60.00")
	assert.Contains(t, msg, "Obs: sem cebola")
	assert.Contains(t, msg, "Subtotal: R$ 75.50")
	assert.Contains(t, msg, "Taxa de Delivery: R$ 8.00")
	assert.Contains(t, msg, "*TOTAL: R$ 83.50*")
}

func TestComposer_Compose_PickupHasNoDeliveryBlock(t *testing.T) {
	composer := notify.NewComposer(nil, time.Second)

	o := sampleOrder(order.PaymentCash, order.DeliveryTypePickup)
	o.DeliveryFee = 0
	o.FinalAmount = 75.50

	msg, err := composer.Compose(context.Background(), o, sampleCustomer)
	require.NoError(t, err)

	assert.Contains(t, msg, "*Tipo:* Retirada no local")
	assert.NotContains(t, msg, "Endereço de Entrega")
	assert.NotContains(t, msg, "Taxa de Delivery")
	assert.Contains(t, msg, "*Forma de Pagamento:* Dinheiro")
	assert.NotContains(t, msg, "PIX")
}

func TestComposer_Compose_PixLookupFailureFallsBack(t *testing.T) {
	provider := &stubPixProvider{err: errors.New("config missing")}
	composer := notify.NewComposer(provider, time.Second)

	msg, err := composer.Compose(context.Background(), sampleOrder(order.PaymentPix, order.DeliveryTypeDelivery), sampleCustomer)
	require.NoError(t, err)

	assert.Contains(t, msg, "*DADOS PIX:* Entre em contato para obter as informações.")
	assert.NotContains(t, msg, "Chave PIX")
}

func TestComposer_Compose_PixLookupTimeoutFallsBack(t *testing.T) {
	provider := &stubPixProvider{block: true}
	composer := notify.NewComposer(provider, 20*time.Millisecond)

	start := time.Now()
	msg, err := composer.Compose(context.Background(), sampleOrder(order.PaymentPix, order.DeliveryTypeDelivery), sampleCustomer)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, msg, "*DADOS PIX:* Entre em contato para obter as informações.")
}

func TestComposer_Compose_NilPixProviderFallsBack(t *testing.T) {
	composer := notify.NewComposer(nil, time.Second)

	msg, err := composer.Compose(context.Background(), sampleOrder(order.PaymentPix, order.DeliveryTypeDelivery), sampleCustomer)
	require.NoError(t, err)

	assert.Contains(t, msg, "*DADOS PIX:* Entre em contato para obter as informações.")
}

func TestComposer_Compose_NilOrder(t *testing.T) {
	composer := notify.NewComposer(nil, time.Second)

	_, err := composer.Compose(context.Background(), nil, sampleCustomer)
	assert.Error(t, err)
}

func TestDeepLink_EscapesMessage(t *testing.T) {
	link := notify.DeepLink("5581999990000", "*NOVO PEDIDO*\ncom acentuação & símbolos?")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5581999990000?text="))
	assert.NotContains(t, link, "\n")
	assert.NotContains(t, link, " ")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*NOVO PEDIDO*\ncom acentuação & símbolos?", parsed.Query().Get("text"))
}

func TestFallbackLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5581999990000", notify.FallbackLink("5581999990000"))
}
