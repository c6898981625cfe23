package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySuffixFilter(t *testing.T) {
	list := []string{
		"https://www.theyworkforyou.com/debates/?id=2024-03-12a.1.0",
		"https://www.theyworkforyou.com/wms/?id=2024-03-12.2.wms.mh",
		"https://www.theyworkforyou.com/debates/?id=2024-03-12a.3.0",
	}

	kept := Apply(list, NewSuffixFilter(".mh"))

	assert.Equal(t, []string{list[0], list[2]}, kept)
}

func TestApplyNoFilters(t *testing.T) {
	list := []string{"https://example.com/a", "https://example.com/b"}

	assert.Equal(t, list, Apply(list))
}

func TestApplyAllFiltersMustPass(t *testing.T) {
	list := []string{
		"https://example.com/keep",
		"https://example.com/drop.mh",
		"https://example.com/drop.pdf",
	}

	kept := Apply(list, NewSuffixFilter(".mh"), NewSuffixFilter(".pdf"))

	assert.Equal(t, []string{"https://example.com/keep"}, kept)
}

func TestApplyEmptyList(t *testing.T) {
	assert.Empty(t, Apply(nil, NewSuffixFilter(".mh")))
}
