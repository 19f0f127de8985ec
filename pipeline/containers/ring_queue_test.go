package containers

import "testing"

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[string](2)

	if !rq.IsEmpty() {
		t.Errorf("new queue should be empty")
	}
	if _, err := rq.Dequeue(); err == nil {
		t.Errorf("dequeue on empty queue should fail")
	}
	if _, err := rq.Peek(); err == nil {
		t.Errorf("peek on empty queue should fail")
	}

	if err := rq.Enqueue("a"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := rq.Enqueue("b"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if !rq.IsFull() {
		t.Errorf("queue of size 2 with 2 elements should be full")
	}
	if err := rq.Enqueue("c"); err == nil {
		t.Errorf("enqueue on full queue should fail")
	}

	front, err := rq.Peek()
	if err != nil || front != "a" {
		t.Errorf("peek: expected a, got %q (%v)", front, err)
	}

	v, err := rq.Dequeue()
	if err != nil || v != "a" {
		t.Errorf("dequeue: expected a, got %q (%v)", v, err)
	}
	if rq.Len() != 1 {
		t.Errorf("len: expected 1, got %d", rq.Len())
	}
}

func TestRingQueueWrapAround(t *testing.T) {
	rq := NewRingQueue[int](3)

	for cycle := 0; cycle < 5; cycle++ {
		for i := 0; i < 3; i++ {
			if err := rq.Enqueue(cycle*10 + i); err != nil {
				t.Fatalf("cycle %d enqueue %d: %v", cycle, i, err)
			}
		}
		for i := 0; i < 3; i++ {
			v, err := rq.Dequeue()
			if err != nil {
				t.Fatalf("cycle %d dequeue %d: %v", cycle, i, err)
			}
			if v != cycle*10+i {
				t.Errorf("cycle %d: expected %d, got %d", cycle, cycle*10+i, v)
			}
		}
	}
}
