package assignment

import (
	"container/heap"
	"context"
)

// arc is a directed edge of the residual network
type arc struct {
	to   int
	rev  int // index of the paired arc in g[to]
	cap  int
	cost int
}

// flowNetwork solves min-cost flow by successive shortest paths. Potentials
// keep reduced costs non-negative so Dijkstra can be used on every round.
type flowNetwork struct {
	n int
	g [][]*arc
}

func newFlowNetwork(n int) *flowNetwork {
	return &flowNetwork{
		n: n,
		g: make([][]*arc, n),
	}
}

// addArc adds from→to with its zero-capacity reverse and returns the forward arc
func (f *flowNetwork) addArc(from, to, cap, cost int) *arc {
	fwd := &arc{to: to, rev: len(f.g[to]), cap: cap, cost: cost}
	rev := &arc{to: from, rev: len(f.g[from]), cap: 0, cost: -cost}
	f.g[from] = append(f.g[from], fwd)
	f.g[to] = append(f.g[to], rev)
	return fwd
}

type queueItem struct {
	dist int
	node int
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist == pq[j].dist {
		return pq[i].node < pq[j].node
	}
	return pq[i].dist < pq[j].dist
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(queueItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	x := old[n-1]
	*pq = old[:n-1]
	return x
}

// minCostFlow pushes up to limit units from s to t. Each augmentation is a
// cheapest path, so the flow is min-cost for every value it passes through.
// It stops early when ctx is done and reports that via interrupted.
func (f *flowNetwork) minCostFlow(ctx context.Context, s, t, limit int) (flow, cost int, interrupted bool) {
	const inf = 1 << 60

	pot := make([]int, f.n)
	dist := make([]int, f.n)
	prevNode := make([]int, f.n)
	prevArc := make([]int, f.n)

	for flow < limit {
		if ctx.Err() != nil {
			return flow, cost, true
		}

		for i := range dist {
			dist[i] = inf
		}
		dist[s] = 0

		pq := &priorityQueue{{dist: 0, node: s}}
		heap.Init(pq)

		for pq.Len() > 0 {
			item := heap.Pop(pq).(queueItem)
			v := item.node
			if item.dist != dist[v] {
				continue
			}

			for i, e := range f.g[v] {
				if e.cap <= 0 {
					continue
				}
				nd := item.dist + e.cost + pot[v] - pot[e.to]
				if nd < dist[e.to] {
					dist[e.to] = nd
					prevNode[e.to] = v
					prevArc[e.to] = i
					heap.Push(pq, queueItem{dist: nd, node: e.to})
				}
			}
		}

		if dist[t] == inf {
			break
		}

		for v := range pot {
			if dist[v] < inf {
				pot[v] += dist[v]
			}
		}

		push := limit - flow
		for v := t; v != s; v = prevNode[v] {
			e := f.g[prevNode[v]][prevArc[v]]
			if e.cap < push {
				push = e.cap
			}
		}

		for v := t; v != s; v = prevNode[v] {
			e := f.g[prevNode[v]][prevArc[v]]
			e.cap -= push
			f.g[v][e.rev].cap += push
		}

		flow += push
		cost += push * pot[t]
	}

	return flow, cost, false
}
