package datastructure

import (
	"testing"
)

func TestMinHeapExtractionOrder(t *testing.T) {
	pq := NewFourAryHeap[int](func(a, b int) bool { return a < b })

	ranks := []float64{5, 1, 4, 2, 3}
	for i, rank := range ranks {
		pq.Insert(NewPriorityQueueNode(rank, i))
	}

	prev := -1.0
	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if node.GetRank() < prev {
			t.Fatalf("extracted rank %v after %v", node.GetRank(), prev)
		}
		prev = node.GetRank()
	}
}

// equal ranks must come out ordered by the tie-break function.
func TestMinHeapDeterministicTieBreak(t *testing.T) {
	pq := NewBinaryHeap[int](func(a, b int) bool { return a < b })

	for _, item := range []int{7, 3, 9, 1, 5} {
		pq.Insert(NewPriorityQueueNode(1.0, item))
	}

	want := []int{1, 3, 5, 7, 9}
	for _, w := range want {
		node, err := pq.ExtractMin()
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if node.GetItem() != w {
			t.Fatalf("tie-break order: got %d, want %d", node.GetItem(), w)
		}
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	pq := NewFourAryHeap[int](func(a, b int) bool { return a < b })

	a := NewPriorityQueueNode(10.0, 1)
	b := NewPriorityQueueNode(20.0, 2)
	pq.Insert(a)
	pq.Insert(b)

	if err := pq.DecreaseKey(b, 5.0); err != nil {
		t.Fatalf("err: %v", err)
	}

	node, err := pq.ExtractMin()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if node.GetItem() != 2 {
		t.Fatalf("decrease-key should move item 2 to the front, got %d", node.GetItem())
	}

	if err := pq.DecreaseKey(a, 50.0); err == nil {
		t.Fatal("increasing a rank via DecreaseKey must fail")
	}
}
