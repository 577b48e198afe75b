package checkout

import (
	"fmt"
	"net/url"
	"strings"
)

type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentDelivery Fulfillment = "delivery"
)

// 注文メッセージに載せる1行分。
type Item struct {
	Name      string
	Quantity  int64
	UnitPrice int64
}

type MessageInput struct {
	TenantName   string
	Items        []Item
	Fulfillment  Fulfillment
	DeliveryFee  int64
	Address      string
	CustomerName string
	Note         string
}

type Message struct {
	Text  string `json:"text"`
	Total int64  `json:"total"`
}

// WhatsAppに流す注文メッセージを組み立てる純粋関数。
// subtotalは渡された集計を信用せず、ここで必ず計算し直す。
// 同じ入力なら必ず同じ文字列になる（現在時刻などには依存しない）。
func BuildOrderMessage(in MessageInput) Message {
	var subtotal int64
	for _, it := range in.Items {
		subtotal += it.UnitPrice * it.Quantity
	}

	delivery := in.Fulfillment == FulfillmentDelivery

	total := subtotal
	if delivery {
		total += in.DeliveryFee
	}

	parts := make([]string, 0, len(in.Items)+12)
	parts = append(parts, fmt.Sprintf("Hola! Quiero hacer un pedido en %s 🛒", in.TenantName))
	parts = append(parts, "")
	parts = append(parts, "Pedido:")
	for _, it := range in.Items {
		parts = append(parts, fmt.Sprintf("• %dx %s = $%d", it.Quantity, it.Name, it.Quantity*it.UnitPrice))
	}
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("Subtotal: $%d", subtotal))
	if delivery {
		parts = append(parts, fmt.Sprintf("Delivery: $%d", in.DeliveryFee))
	}
	parts = append(parts, fmt.Sprintf("Total: $%d", total))
	parts = append(parts, "")
	if delivery {
		parts = append(parts, "Delivery ✅")
	} else {
		parts = append(parts, "Retiro en local ✅")
	}
	if delivery && strings.TrimSpace(in.Address) != "" {
		parts = append(parts, "Dirección: "+in.Address)
	}
	parts = append(parts, "")
	parts = append(parts, "Nombre: "+in.CustomerName)
	if note := strings.TrimSpace(in.Note); note != "" {
		parts = append(parts, "Comentario: "+note)
	}

	return Message{Text: strings.Join(parts, "\n"), Total: total}
}

// wa.meのディープリンクを作る。電話番号は数字以外を全部落とす。
func BuildWhatsAppLink(phone string, text string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + encodeComponent(text)
}

// encodeURIComponent相当。QueryEscapeはスペースを+にするので%20へ直す。
// これでtextパラメータをデコードすれば元のメッセージに正確に戻る。
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
