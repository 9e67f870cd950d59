package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 25)
	require.Equal(t, 2, pg.Page)
	require.Equal(t, 10, pg.PerPage)
	require.Equal(t, 25, pg.Total)
	require.Equal(t, 3, pg.TotalPages, "partial final page counts as a page")

	pg = NewPagination(1, 10, 30)
	require.Equal(t, 3, pg.TotalPages)

	pg = NewPagination(1, 10, 0)
	require.Zero(t, pg.TotalPages)
}

func TestNewPaginationNormalizesInputs(t *testing.T) {
	pg := NewPagination(0, 0, 5)
	require.Equal(t, 1, pg.Page)
	require.Equal(t, 10, pg.PerPage)
	require.Equal(t, 1, pg.TotalPages)

	pg = NewPagination(-3, -1, 11)
	require.Equal(t, 1, pg.Page)
	require.Equal(t, 2, pg.TotalPages)
}
