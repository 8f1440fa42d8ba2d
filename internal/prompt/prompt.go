// Package prompt assembles the text sent to the language model and the
// listing used when generation fails.
package prompt

import (
	"fmt"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"strings"
)

const (
	preamble = "شما یک ربات فروشنده هستید. فقط به زبان فارسی و به صورت خلاصه و مودبانه پاسخ بدهید.\n" +
		"با استفاده از اطلاعات زیر درباره محصولات، به سؤال کاربر پاسخ دهید:\n\n"
	productsHeading = "محصولات یافت‌شده:\n"
	fallbackHeading = "📦 محصولات پیشنهادی:\n"
	currency        = "تومان"

	// NoResults is the reply when the catalog has nothing for the message
	NoResults = "❌ محصولی با این مشخصات پیدا نشد."
)

// Build returns the generation prompt for question and the retrieved products.
// The product section is left out when products is empty.
func Build(question string, products []*domain.RetrievedProduct) string {
	var b strings.Builder
	b.WriteString(preamble)

	if len(products) > 0 {
		b.WriteString(productsHeading)
		for _, p := range products {
			fmt.Fprintf(&b, "- %s — %s — %d %s\n", p.Name, p.Description, p.Price, currency)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "سؤال کاربر: %s\n\nپاسخ:", question)
	return b.String()
}

// Fallback lists the products by name and price
func Fallback(products []*domain.RetrievedProduct) string {
	var b strings.Builder
	b.WriteString(fallbackHeading)
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%d %s)\n", p.Name, p.Price, currency)
	}
	return b.String()
}
