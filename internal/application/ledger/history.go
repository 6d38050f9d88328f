package ledger

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// History es la pila de snapshots para deshacer. Está acotada: al superar la
// profundidad máxima se descarta el snapshot más antiguo. El acceso siempre
// ocurre bajo el lock del Store, así que no necesita sincronización propia.
type History struct {
	stack    []*entity.Snapshot
	maxDepth int
}

// DefaultUndoDepth profundidad por defecto de la pila de deshacer.
const DefaultUndoDepth = 100

// NewHistory construye la pila con la profundidad dada (<=0 usa el default).
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultUndoDepth
	}
	return &History{maxDepth: maxDepth}
}

// Push apila un snapshot, descartando el más antiguo si se alcanzó el tope.
func (h *History) Push(snap *entity.Snapshot) {
	if len(h.stack) >= h.maxDepth {
		copy(h.stack, h.stack[1:])
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.stack = append(h.stack, snap)
}

// Pop desapila y devuelve el snapshot más reciente, o nil si está vacía.
func (h *History) Pop() *entity.Snapshot {
	if len(h.stack) == 0 {
		return nil
	}
	snap := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return snap
}

// Len devuelve la cantidad de snapshots apilados.
func (h *History) Len() int { return len(h.stack) }
