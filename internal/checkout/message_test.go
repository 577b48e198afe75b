package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func deliveryInput() MessageInput {
	return MessageInput{
		TenantName: "Pizza Juan",
		Items: []Item{
			{Name: "Pizza", Quantity: 2, UnitPrice: 5000},
		},
		Fulfillment:  FulfillmentDelivery,
		DeliveryFee:  1500,
		Address:      "Av. Libertad 123, Chillán",
		CustomerName: "Pedro",
	}
}

func TestBuildOrderMessage_TotalsAndLines(t *testing.T) {
	msg := BuildOrderMessage(deliveryInput())

	assert.Equal(t, int64(11500), msg.Total)

	lines := strings.Split(msg.Text, "\n")
	assert.Contains(t, lines, "Subtotal: $10000")
	assert.Contains(t, lines, "Delivery: $1500")
	assert.Contains(t, lines, "Total: $11500")
	assert.Contains(t, lines, "• 2x Pizza = $10000")
	assert.Contains(t, lines, "Dirección: Av. Libertad 123, Chillán")
	assert.Contains(t, lines, "Nombre: Pedro")
}

func TestBuildOrderMessage_ExactText(t *testing.T) {
	msg := BuildOrderMessage(MessageInput{
		TenantName: "Pizza Juan",
		Items: []Item{
			{Name: "Pizza", Quantity: 2, UnitPrice: 5000},
			{Name: "Bebida", Quantity: 1, UnitPrice: 1500},
		},
		Fulfillment:  FulfillmentDelivery,
		DeliveryFee:  1500,
		Address:      "Av. Libertad 123",
		CustomerName: "Pedro",
		Note:         "  sin cebolla ",
	})

	want := strings.Join([]string{
		"Hola! Quiero hacer un pedido en Pizza Juan 🛒",
		"",
		"Pedido:",
		"• 2x Pizza = $10000",
		"• 1x Bebida = $1500",
		"",
		"Subtotal: $11500",
		"Delivery: $1500",
		"Total: $13000",
		"",
		"Delivery ✅",
		"Dirección: Av. Libertad 123",
		"",
		"Nombre: Pedro",
		"Comentario: sin cebolla",
	}, "\n")

	assert.Equal(t, want, msg.Text)
	assert.Equal(t, int64(13000), msg.Total)
}

func TestBuildOrderMessage_Pickup(t *testing.T) {
	in := deliveryInput()
	in.Fulfillment = FulfillmentPickup

	msg := BuildOrderMessage(in)

	// 受け取りのときは配送系の行が出ない
	assert.Equal(t, int64(10000), msg.Total)
	assert.Contains(t, msg.Text, "Retiro en local ✅")
	assert.NotContains(t, msg.Text, "Delivery: $")
	assert.NotContains(t, msg.Text, "Dirección:")
	assert.Contains(t, msg.Text, "Total: $10000")
}

func TestBuildOrderMessage_Deterministic(t *testing.T) {
	a := BuildOrderMessage(deliveryInput())
	b := BuildOrderMessage(deliveryInput())
	assert.Equal(t, a, b)
}

func TestBuildOrderMessage_NoteAppendsExactlyOneLine(t *testing.T) {
	base := BuildOrderMessage(deliveryInput())

	in := deliveryInput()
	in.Note = "sin cebolla"
	withNote := BuildOrderMessage(in)

	baseLines := strings.Split(base.Text, "\n")
	noteLines := strings.Split(withNote.Text, "\n")

	assert.Equal(t, len(baseLines)+1, len(noteLines))
	assert.Equal(t, "Comentario: sin cebolla", noteLines[len(noteLines)-1])

	// 空白だけのコメントは行を増やさない
	in.Note = "   "
	assert.Equal(t, base.Text, BuildOrderMessage(in).Text)
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("+56 9 1234-5678", "Hola! ¿Cómo estás?")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/56912345678?text="))
	// encodeURIComponent相当：スペースは+ではなく%20
	assert.NotContains(t, link, "+")
}

func TestBuildWhatsAppLink_RoundTrip(t *testing.T) {
	msg := BuildOrderMessage(deliveryInput())
	link := BuildWhatsAppLink("+56912345678", msg.Text)

	u, err := url.Parse(link)
	assert.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)

	// textパラメータをデコードすると元のメッセージに正確に戻る
	assert.Equal(t, msg.Text, u.Query().Get("text"))
}
