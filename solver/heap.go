/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package solver

// activityHeap is a binary heap ordering variables by decreasing activity,
// with O(log n) decrease-key support. Strongly inspired by MiniSat's
// mtl/Heap.h; unlike a generic heap it reads variable.activity directly off
// the shared varStore instead of a private activity slice, and stores each
// variable's heap position on the variable record itself
// (variable.heapIndex) rather than in a parallel indices array.
type activityHeap struct {
	vs      *varStore
	content []VarID
}

func newActivityHeap(vs *varStore) *activityHeap {
	return &activityHeap{vs: vs}
}

func (h *activityHeap) lt(i, j VarID) bool {
	return h.vs.vars[i].activity > h.vs.vars[j].activity
}

func heapLeft(i int) int   { return i*2 + 1 }
func heapRight(i int) int  { return (i + 1) * 2 }
func heapParent(i int) int { return (i - 1) >> 1 }

func (h *activityHeap) percolateUp(i int) {
	x := h.content[i]
	p := heapParent(i)
	for i != 0 && h.lt(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.vs.vars[h.content[p]].heapIndex = int32(i)
		i = p
		p = heapParent(p)
	}
	h.content[i] = x
	h.vs.vars[x].heapIndex = int32(i)
}

func (h *activityHeap) percolateDown(i int) {
	x := h.content[i]
	for heapLeft(i) < len(h.content) {
		var child int
		if heapRight(i) < len(h.content) && h.lt(h.content[heapRight(i)], h.content[heapLeft(i)]) {
			child = heapRight(i)
		} else {
			child = heapLeft(i)
		}
		if !h.lt(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.vs.vars[h.content[i]].heapIndex = int32(i)
		i = child
	}
	h.content[i] = x
	h.vs.vars[x].heapIndex = int32(i)
}

func (h *activityHeap) len() int    { return len(h.content) }
func (h *activityHeap) empty() bool { return len(h.content) == 0 }

func (h *activityHeap) contains(v VarID) bool {
	return h.vs.vars[v].heapIndex >= 0
}

// decreaseKey re-percolates v after its activity increased (named after the
// min-heap convention this ordering emulates: higher activity sorts first).
func (h *activityHeap) decreaseKey(v VarID) {
	h.percolateUp(int(h.vs.vars[v].heapIndex))
}

func (h *activityHeap) insert(v VarID) {
	h.vs.vars[v].heapIndex = int32(len(h.content))
	h.content = append(h.content, v)
	h.percolateUp(len(h.content) - 1)
}

// removeMin pops and returns the variable with the highest activity.
func (h *activityHeap) removeMin() VarID {
	x := h.content[0]
	last := h.content[len(h.content)-1]
	h.content[0] = last
	h.vs.vars[last].heapIndex = 0
	h.vs.vars[x].heapIndex = -1
	h.content = h.content[:len(h.content)-1]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}

// build rebuilds the heap from scratch over the given variables.
func (h *activityHeap) build(vars []VarID) {
	for _, v := range h.content {
		h.vs.vars[v].heapIndex = -1
	}
	h.content = h.content[:0]
	for _, v := range vars {
		h.vs.vars[v].heapIndex = int32(len(h.content))
		h.content = append(h.content, v)
	}
	for i := len(h.content)/2 - 1; i >= 0; i-- {
		h.percolateDown(i)
	}
}
