package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<h3 class="inline-flex items-center text-sm uppercase">Monday, Oct 19</h3>
<ul>
  <li class="item first"><span class="code big">B789 Boeing</span></li>
  <li class="item"><span class="code">A359</span><div aria-label="logo" role="img" style="x"></div></li>
</ul>
<h3 class="inline-flex items-center text-sm uppercase">Tuesday, Oct 20</h3>
<table><tr class="data-row">
  <td class="hidden-xs hidden-sm" data-time-format="DD MMM YYYY">19 Oct 2026</td>
  <td><label>From</label><em>skip</em><span class="details">Shenzhen (SZX)</span></td>
</tr></table>
</body></html>`

func parsePage(t *testing.T) Element {
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc.Root()
}

func TestFindAll_ByTagAndClass(t *testing.T) {
	root := parsePage(t)

	items := root.FindAll(TagClass("li", "item"))
	assert.Len(t, items, 2)

	items = root.FindAll(TagClass("li", "first item"))
	assert.Len(t, items, 1)

	assert.Empty(t, root.FindAll(TagClass("li", "missing")))
}

func TestFindFirst_ByTagAndAttribute(t *testing.T) {
	root := parsePage(t)

	logo, ok := root.FindFirst(TagAttr("div", Attr{"aria-label", "logo"}, Attr{"role", "img"}))
	require.True(t, ok)
	style, ok := logo.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "x", style)

	_, ok = root.FindFirst(TagAttr("div", Attr{"aria-label", "logo"}, Attr{"role", "button"}))
	assert.False(t, ok)

	date, ok := root.FindFirst(TagAttr("td", Attr{"data-time-format", "DD MMM YYYY"}).WithClass("hidden-xs hidden-sm"))
	require.True(t, ok)
	assert.Equal(t, "19 Oct 2026", date.Text())
}

func TestLabelAndNextSibling(t *testing.T) {
	root := parsePage(t)

	label, ok := root.FindFirst(Label("label", "FROM"))
	require.True(t, ok, "label match ignores case")

	value, ok := label.NextSibling(TagClass("span", "details"))
	require.True(t, ok)
	assert.Equal(t, "Shenzhen (SZX)", value.Text())

	_, ok = label.NextSibling(TagClass("span", "missing"))
	assert.False(t, ok)

	_, ok = root.FindFirst(Label("label", "STA"))
	assert.False(t, ok)
}

func TestFindPrevious(t *testing.T) {
	root := parsePage(t)
	header := TagClass("h3", "inline-flex items-center text-sm uppercase")

	items := root.FindAll(TagClass("li", "item"))
	require.Len(t, items, 2)
	for _, item := range items {
		h, ok := item.FindPrevious(header)
		require.True(t, ok)
		assert.Equal(t, "Monday, Oct 19", h.Text())
	}

	row, ok := root.FindFirst(TagClass("tr", "data-row"))
	require.True(t, ok)
	h, ok := row.FindPrevious(header)
	require.True(t, ok)
	assert.Equal(t, "Tuesday, Oct 20", h.Text())

	first, ok := root.FindFirst(header)
	require.True(t, ok)
	_, ok = first.FindPrevious(header)
	assert.False(t, ok)
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "span.truncate.text-sm", TagClass("span", "truncate text-sm").String())
	assert.Equal(t, "div[role=img]", TagAttr("div", Attr{"role", "img"}).String())
	assert.Equal(t, "label:contains(STD)", Label("label", "STD").String())
}

func TestSelectorMatching(t *testing.T) {
	doc, err := ParseString(`<div>
<span class="items">partial</span>
<span class=" item  wide ">padded</span>
<label>Scheduled <b>sta</b></label>
<span data-x="1" data-y="2">attrs</span>
</div>`)
	require.NoError(t, err)
	root := doc.Root()

	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{name: "class tokens are whole words", sel: TagClass("span", "item"), want: []string{"padded"}},
		{name: "class order is ignored", sel: TagClass("span", "wide item"), want: []string{"padded"}},
		{name: "any tag", sel: TagClass("", "items"), want: []string{"partial"}},
		{name: "label text spans child elements", sel: Label("label", "STA"), want: []string{"Scheduled sta"}},
		{name: "every attribute must match", sel: TagAttr("span", Attr{"data-x", "1"}, Attr{"data-y", "2"}), want: []string{"attrs"}},
		{name: "attribute value mismatch", sel: TagAttr("span", Attr{"data-x", "2"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, el := range root.FindAll(tt.sel) {
				got = append(got, el.Text())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
