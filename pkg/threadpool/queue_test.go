package threadpool_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/threadpool/pkg/threadpool"
)

var _ = Describe("Queue", func() {
	var q *threadpool.Queue[int]

	BeforeEach(func() {
		q = threadpool.NewQueue[int]()
	})

	AfterEach(func() {
		q.Close()
	})

	It("should pop items in push order", func() {
		for i := range 5 {
			Expect(q.Push(i)).To(BeTrue())
		}
		Expect(q.Len()).To(Equal(5))

		for i := range 5 {
			v, ok := q.Pop()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(i))
		}
		Expect(q.Len()).To(Equal(0))
	})

	It("should not return anything from TryPop when empty", func() {
		_, ok := q.TryPop()
		Expect(ok).To(BeFalse())

		q.Push(7)
		v, ok := q.TryPop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(7))
	})

	// Given a consumer blocked on an empty queue
	// When an item is pushed
	// Then the consumer should wake up and receive it
	It("should block Pop until an item is pushed", func() {
		got := make(chan int, 1)
		go func() {
			v, ok := q.Pop()
			if ok {
				got <- v
			}
		}()

		Consistently(got, 100*time.Millisecond).ShouldNot(Receive())
		q.Push(42)
		Eventually(got, time.Second).Should(Receive(Equal(42)))
	})

	It("should release every blocked consumer on Close", func() {
		const consumers = 3
		released := make(chan bool, consumers)
		for range consumers {
			go func() {
				_, ok := q.Pop()
				released <- ok
			}()
		}

		Consistently(released, 100*time.Millisecond).ShouldNot(Receive())
		q.Close()

		for range consumers {
			Eventually(released, time.Second).Should(Receive(BeFalse()))
		}
	})

	It("should refuse pushes and drop pending items once closed", func() {
		q.Push(1)
		q.Close()
		q.Close()

		Expect(q.Push(2)).To(BeFalse())
		Expect(q.Len()).To(Equal(0))

		_, ok := q.Pop()
		Expect(ok).To(BeFalse())
	})

	// Given several producers and consumers sharing the queue
	// When every produced item is consumed
	// Then each item should be seen exactly once
	It("should not lose or duplicate items under concurrency", func() {
		const (
			producers   = 4
			consumers   = 4
			perProducer = 250
			stop        = -1
		)

		var (
			mu   sync.Mutex
			seen = make(map[int]int)
			cwg  sync.WaitGroup
		)
		for range consumers {
			cwg.Add(1)
			go func() {
				defer cwg.Done()
				for {
					v, ok := q.Pop()
					if !ok || v == stop {
						return
					}
					mu.Lock()
					seen[v]++
					mu.Unlock()
				}
			}()
		}

		var pwg sync.WaitGroup
		for p := range producers {
			pwg.Add(1)
			go func() {
				defer pwg.Done()
				for i := range perProducer {
					q.Push(p*perProducer + i)
				}
			}()
		}
		pwg.Wait()

		for range consumers {
			q.Push(stop)
		}
		cwg.Wait()

		Expect(seen).To(HaveLen(producers * perProducer))
		for v, n := range seen {
			Expect(n).To(Equal(1), "item %d consumed %d times", v, n)
		}
	})
})
