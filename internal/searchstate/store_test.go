package searchstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

func TestInitForm_Idempotent(t *testing.T) {
	c := NewCoordinator()
	c.InitForm("A")
	c.SetSearchText("A", "hello")

	c.InitForm("A")
	assert.Equal(t, "hello", c.Snapshot("A").SearchText, "re-init must not reset state")
}

func TestPerFormIsolation(t *testing.T) {
	c := NewCoordinator()
	c.SetAdvancedSearchField("A", "branchcode", "001")
	c.SetAdvancedSearchField("B", "branchcode", "777")

	assert.Equal(t, map[string]string{"branchcode": "001"}, c.Snapshot("A").AdvancedSearch)
	assert.Equal(t, map[string]string{"branchcode": "777"}, c.Snapshot("B").AdvancedSearch)

	c.ClearForm("A")
	assert.False(t, c.Has("A"))
	assert.True(t, c.Has("B"), "clearing A must not delete B")
	assert.Equal(t, map[string]string{"branchcode": "777"}, c.Snapshot("B").AdvancedSearch)
}

func TestSetAdvancedSearchField_EmptyClearsKey(t *testing.T) {
	c := NewCoordinator()
	c.SetAdvancedSearchField("A", "branchcode", "001")
	c.SetAdvancedSearchField("A", "ccycd", "USD")

	c.SetAdvancedSearchField("A", "branchcode", "")
	assert.Equal(t, map[string]string{"ccycd": "USD"}, c.Snapshot("A").AdvancedSearch)
}

func TestSetAdvancedSearchField_TrimsWhitespace(t *testing.T) {
	c := NewCoordinator()
	c.SetAdvancedSearchField("A", "branchcode", "  001  ")
	assert.Equal(t, map[string]string{"branchcode": "001"}, c.Snapshot("A").AdvancedSearch)

	// A whitespace-only value is a cleared input, same as an empty one.
	c.SetAdvancedSearchField("A", "branchcode", "   ")
	assert.Empty(t, c.Snapshot("A").AdvancedSearch)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := NewCoordinator()
	c.SetAdvancedSearchField("A", "branchcode", "001")

	snap := c.Snapshot("A")
	snap.AdvancedSearch["branchcode"] = "mutated"
	snap.SearchText = "mutated"

	assert.Equal(t, "001", c.Snapshot("A").AdvancedSearch["branchcode"])
	assert.Equal(t, "", c.Snapshot("A").SearchText)
}

func TestBeginSearch_StaleGenerationDiscarded(t *testing.T) {
	c := NewCoordinator()

	gen1 := c.BeginSearch("A")
	gen2 := c.BeginSearch("A")
	require.Greater(t, gen2, gen1)
	assert.True(t, c.Snapshot("A").IsFetching)

	fresh := &schema.PageData[schema.Record]{Items: []schema.Record{{"id": "new"}}}
	applied := c.SetDataSearch("A", gen2, fresh)
	assert.True(t, applied)
	assert.False(t, c.Snapshot("A").IsFetching)

	// The slow first response arrives after the second; it must not
	// overwrite the fresher page.
	stale := &schema.PageData[schema.Record]{Items: []schema.Record{{"id": "old"}}}
	applied = c.SetDataSearch("A", gen1, stale)
	assert.False(t, applied)

	page := c.Snapshot("A").DataSearch
	require.NotNil(t, page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "new", page.Items[0]["id"])
}

func TestSetIsModify(t *testing.T) {
	c := NewCoordinator()
	c.SetIsModify("A", true)
	assert.True(t, c.Snapshot("A").IsModify)
	assert.False(t, c.Snapshot("B").IsModify)
}

func TestDefaults(t *testing.T) {
	c := NewCoordinator()
	st := c.Snapshot("fresh")
	assert.False(t, st.IsFetching)
	assert.False(t, st.IsModify)
	assert.True(t, st.FetchControlDefault)
	assert.Empty(t, st.AdvancedSearch)
	assert.Nil(t, st.DataSearch)
}
