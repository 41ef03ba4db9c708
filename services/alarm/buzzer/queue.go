// services/alarm/buzzer/queue.go

package buzzer

import "buzzalarm-go/types"

// QueueCapacity bounds the number of pending tone requests.
const QueueCapacity = 20

// Request is one queued tone. It is never modified after Put.
type Request struct {
	Tone       types.Tone
	DurationMs uint16
}

// queue is a fixed-size FIFO; insertion order is playback order.
type queue struct {
	buf  [QueueCapacity]Request
	head uint8
	n    uint8
}

// push appends r and reports false when the queue is full (r is dropped).
func (q *queue) push(r Request) bool {
	if q.n >= QueueCapacity {
		return false
	}
	q.buf[(int(q.head)+int(q.n))%QueueCapacity] = r
	q.n++
	return true
}

func (q *queue) pop() (Request, bool) {
	if q.n == 0 {
		return Request{}, false
	}
	r := q.buf[q.head]
	q.head = uint8((int(q.head) + 1) % QueueCapacity)
	q.n--
	return r, true
}

func (q *queue) clear()      { q.head, q.n = 0, 0 }
func (q *queue) len() int    { return int(q.n) }
func (q *queue) empty() bool { return q.n == 0 }
