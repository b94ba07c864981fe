package cardstack

// Card is one unit of stack content. Cards are plain values; two cards with
// the same text are interchangeable.
type Card struct {
	Title  string
	Body   string
	Prompt string
}

// Queue is a fixed cyclic sequence of cards. The card at position 0 is the
// front. The only mutation is Rotate, so the queue always holds the same
// cards in some rotation of the original order.
type Queue struct {
	cards []Card
	tally [3]int
}

// NewQueue returns a queue over a copy of cards.
func NewQueue(cards []Card) *Queue {
	q := &Queue{cards: make([]Card, len(cards))}
	copy(q.cards, cards)
	return q
}

// Len returns the number of cards.
func (q *Queue) Len() int {
	return len(q.cards)
}

// Front returns the card at position 0. ok is false for an empty queue.
func (q *Queue) Front() (c Card, ok bool) {
	if len(q.cards) == 0 {
		return Card{}, false
	}
	return q.cards[0], true
}

// At returns the card at position i. Panics if i is out of range.
func (q *Queue) At(i int) Card {
	return q.cards[i]
}

// Top returns the first min(n, Len) cards, front first.
func (q *Queue) Top(n int) []Card {
	n = max(0, min(n, len(q.cards)))
	out := make([]Card, n)
	copy(out, q.cards[:n])
	return out
}

// Cards returns a copy of the whole queue, front first.
func (q *Queue) Cards() []Card {
	return q.Top(len(q.cards))
}

// Rotate moves the front card to the back. Both directions perform the same
// rotation; the direction is only counted. No-op on an empty queue.
func (q *Queue) Rotate(dir Direction) {
	if len(q.cards) == 0 {
		return
	}
	front := q.cards[0]
	copy(q.cards, q.cards[1:])
	q.cards[len(q.cards)-1] = front
	if int(dir) < len(q.tally) {
		q.tally[dir]++
	}
}

// Tally returns how many rotations were made in dir.
func (q *Queue) Tally(dir Direction) int {
	if int(dir) >= len(q.tally) {
		return 0
	}
	return q.tally[dir]
}
