package scheduler

import (
	"container/heap"
	"sync"

	"classbook/pkg/model"
)

type queueItem struct {
	req    *model.ReservationRequest
	seq    uint64
	ticket *Ticket
}

// requestHeap is a min-heap on (priority, arrival sequence).
type requestHeap []*queueItem

func (h requestHeap) Len() int { return len(h) }

func (h requestHeap) Less(i, j int) bool {
	if h[i].req.Priority != h[j].req.Priority {
		return h[i].req.Priority < h[j].req.Priority
	}
	return h[i].seq < h[j].seq
}

func (h requestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *requestHeap) Push(x any) {
	*h = append(*h, x.(*queueItem))
}

func (h *requestHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// resourceQueue is one classroom's admission queue. mu guards items. slot
// is a one-token semaphore held for the whole of a drain so that at most one
// check-then-commit sequence runs per classroom; it is a channel so a
// waiting submitter can give up once its own request has been resolved.
type resourceQueue struct {
	mu    sync.Mutex
	items requestHeap
	slot  chan struct{}
}

func newResourceQueue() *resourceQueue {
	return &resourceQueue{slot: make(chan struct{}, 1)}
}

func (q *resourceQueue) push(item *queueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.items, item)
}

func (q *resourceQueue) pop() (*queueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.items).(*queueItem), true
}

func (q *resourceQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
