package queue

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSPSCProperties(t *testing.T) {
	Convey("A freshly created queue is empty", t, func() {
		q := New[int](4)
		_, ok := q.Consume()
		So(ok, ShouldBeFalse)
	})

	Convey("Cap reports one less than the requested size", t, func() {
		q := New[int](8)
		So(q.Cap(), ShouldEqual, 7)
	})

	Convey("Values come out in FIFO order", t, func() {
		q := New[int](8)
		for i := 0; i < 5; i++ {
			So(q.Produce(i), ShouldBeTrue)
		}
		for i := 0; i < 5; i++ {
			v, ok := q.Consume()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, i)
		}
	})

	Convey("Produce fails without loss once the ring is full", t, func() {
		q := New[int](4) // effective capacity 3
		So(q.Produce(1), ShouldBeTrue)
		So(q.Produce(2), ShouldBeTrue)
		So(q.Produce(3), ShouldBeTrue)
		So(q.Produce(4), ShouldBeFalse)

		v, ok := q.Consume()
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 1)

		So(q.Produce(4), ShouldBeTrue)
	})

	Convey("DrainInto collects every ready value and leaves the queue empty", t, func() {
		q := New[int](8)
		for i := 0; i < 6; i++ {
			q.Produce(i)
		}

		drained := q.DrainInto(nil)
		So(len(drained), ShouldEqual, 6)
		for i, v := range drained {
			So(v, ShouldEqual, i)
		}

		_, ok := q.Consume()
		So(ok, ShouldBeFalse)
	})

	Convey("A produce/consume cycle that wraps past the end of the backing array preserves order", t, func() {
		q := New[int](4)
		q.Produce(1)
		q.Produce(2)
		q.Consume()
		q.Consume()
		q.Produce(3)
		q.Produce(4)
		q.Produce(5)

		var got []int
		for {
			v, ok := q.Consume()
			if !ok {
				break
			}
			got = append(got, v)
		}
		So(got, ShouldResemble, []int{3, 4, 5})
	})
}

func TestSPSCConcurrentProducerConsumerLosesNothing(t *testing.T) {
	const n = 100000
	q := New[int](1024)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			for !q.Produce(i) {
			}
		}
	}()

	sum := 0
	received := 0
	for received < n {
		v, ok := q.Consume()
		if !ok {
			continue
		}
		sum += v
		received++
	}
	<-done

	want := n * (n - 1) / 2
	if sum != want {
		t.Fatalf("sum of received values = %d, want %d", sum, want)
	}
}
