package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_SetAddsColumn(t *testing.T) {
	tbl := New("a")
	tbl.Append([]string{"1"})
	tbl.Append([]string{"2"})

	tbl.Set(1, "b", "x")

	assert.Equal(t, []string{"a", "b"}, tbl.Header)
	assert.Equal(t, []string{"1", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"2", "x"}, tbl.Rows[1])
}

func TestTable_Require(t *testing.T) {
	tbl := New("OrderID", "Price")
	require.NoError(t, tbl.Require("OrderID"))

	err := tbl.Require("OrderID", "Quantity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Quantity"`)
}

func TestTable_AppendMapAndColumn(t *testing.T) {
	tbl := New("a", "b")
	tbl.AppendMap(map[string]string{"b": "2", "zzz": "ignored"})
	tbl.Append([]string{"x", "y", "dropped"})

	assert.Equal(t, []string{"", "2"}, tbl.Rows[0])
	assert.Equal(t, []string{"x", "y"}, tbl.Rows[1])
	assert.Equal(t, []string{"2", "y"}, tbl.Column("b"))
}

func TestTable_DuplicateHeaderFirstWins(t *testing.T) {
	tbl := New("a", "a")
	tbl.Append([]string{"first", "second"})
	assert.Equal(t, "first", tbl.Get(0, "a"))
}
