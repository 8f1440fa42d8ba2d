package prompt

import (
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

var products = []*domain.RetrievedProduct{
	{Name: "گوشی سامسونگ مدل 512", Description: "پشتیبانی از شارژ سریع ۶۵ وات", Price: 12500000},
	{Name: "گوشی اپل مدل 128", Description: "حافظه داخلی بالا و دوربین باکیفیت", Price: 64000000},
}

func TestBuildIsDeterministic(t *testing.T) {
	assert.Equal(t, Build("گوشی سامسونگ دارید؟", products), Build("گوشی سامسونگ دارید؟", products))
	assert.Equal(t, Build("سلام", nil), Build("سلام", nil))
}

func TestBuildWithProducts(t *testing.T) {
	p := Build("گوشی سامسونگ دارید؟", products)

	assert.True(t, strings.HasPrefix(p, preamble))
	assert.Contains(t, p, productsHeading)
	assert.Contains(t, p, "- گوشی سامسونگ مدل 512 — پشتیبانی از شارژ سریع ۶۵ وات — 12500000 تومان\n")
	assert.True(t, strings.HasSuffix(p, "سؤال کاربر: گوشی سامسونگ دارید؟\n\nپاسخ:"))

	// products keep their input order
	assert.Less(t, strings.Index(p, "سامسونگ مدل"), strings.Index(p, "اپل مدل"))
}

func TestBuildWithoutProducts(t *testing.T) {
	p := Build("سلام", []*domain.RetrievedProduct{})

	assert.NotContains(t, p, productsHeading)
	assert.Equal(t, preamble+"سؤال کاربر: سلام\n\nپاسخ:", p)
}

func TestFallback(t *testing.T) {
	f := Fallback(products)

	assert.True(t, strings.HasPrefix(f, "📦 محصولات پیشنهادی:"))
	assert.Equal(t, fallbackHeading+
		"- گوشی سامسونگ مدل 512 (12500000 تومان)\n"+
		"- گوشی اپل مدل 128 (64000000 تومان)\n", f)
}
