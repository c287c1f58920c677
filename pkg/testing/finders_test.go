package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pico/pkg/dom"
)

const finderMarkup = `<section>
	<ul is="x-list">
		<li @ref="item">one</li>
		<li @ref="item">two</li>
	</ul>
	<x-card><p class="lead">lead text</p></x-card>
</section>`

func TestFinders(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	_, err := tester.PumpMarkup(finderMarkup)
	require.NoError(t, err)

	assert.Equal(t, 2, tester.Find(ByTag("LI")).Count())
	assert.Equal(t, 2, tester.Find(ByRef("item")).Count())
	assert.Equal(t, "ul", tester.Find(ByComponent("x-list")).First().TagName())
	assert.True(t, tester.Find(ByComponent("x-card")).Exists())
	assert.Equal(t, "two", tester.Find(ByRef("item")).At(1).Text())
	assert.True(t, tester.Find(ByAttr("class", "lead")).Exists())
	assert.Equal(t, "lead text", tester.Find(ByText("lead text")).First().Text())
	assert.Equal(t, 1, tester.Find(ByTextContaining("lead")).Count())
	assert.Nil(t, tester.Find(ByTag("table")).FirstOrNil())

	inCard := tester.Find(Descendant(ByComponent("x-card"), ByTag("p")))
	assert.Equal(t, 1, inCard.Count())
	inList := tester.Find(Descendant(ByTag("section"), ByPredicate(func(el *dom.Element) bool {
		return el.Text() == "one"
	})))
	assert.Equal(t, 1, inList.Count())
}

func TestFinderPanicsDescribeFinder(t *testing.T) {
	tester := NewComponentTesterWithT(t)

	assert.PanicsWithValue(t, "Finder found no elements: ByRef(nope)", func() {
		tester.Find(ByRef("nope")).First()
	})
	assert.PanicsWithValue(t, "Finder index 3 out of range (found 0): ByTag(li)", func() {
		tester.Find(ByTag("li")).At(3)
	})
}
