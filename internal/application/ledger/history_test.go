package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func snapWithCash(cash string) *entity.Snapshot {
	return &entity.Snapshot{Cash: dec(cash), TotalSales: decimal.Zero}
}

func TestHistory_PopEsLIFO(t *testing.T) {
	h := ledger.NewHistory(10)
	h.Push(snapWithCash("1"))
	h.Push(snapWithCash("2"))
	h.Push(snapWithCash("3"))

	assert.True(t, dec("3").Equal(h.Pop().Cash))
	assert.True(t, dec("2").Equal(h.Pop().Cash))
	assert.True(t, dec("1").Equal(h.Pop().Cash))
	assert.Nil(t, h.Pop())
}

func TestHistory_ProfundidadAcotada_DescartaElMasAntiguo(t *testing.T) {
	h := ledger.NewHistory(3)
	for _, c := range []string{"1", "2", "3", "4", "5"} {
		h.Push(snapWithCash(c))
	}

	require.Equal(t, 3, h.Len())
	assert.True(t, dec("5").Equal(h.Pop().Cash))
	assert.True(t, dec("4").Equal(h.Pop().Cash))
	assert.True(t, dec("3").Equal(h.Pop().Cash), "los snapshots 1 y 2 fueron descartados")
	assert.Equal(t, 0, h.Len())
}

func TestHistory_ProfundidadInvalidaUsaElDefault(t *testing.T) {
	h := ledger.NewHistory(0)
	for i := 0; i < ledger.DefaultUndoDepth+10; i++ {
		h.Push(snapWithCash("1"))
	}
	assert.Equal(t, ledger.DefaultUndoDepth, h.Len())
}
