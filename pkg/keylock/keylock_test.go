package keylock

import (
	"sync"
	"testing"
)

func TestLockSerializesSameKey(t *testing.T) {
	l := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	unlock1 := l.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := l.Lock(2)
		unlock2()
		close(done)
	}()

	<-done
}
