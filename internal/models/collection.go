package models

import (
	"errors"
	"time"
)

// ErrPositionOutOfRange is returned by Queue.Move for an index outside the queue.
var ErrPositionOutOfRange = errors.New("queue position out of range")

// Favorite is one row of a user's favorites set.
// The composite primary key keeps (user, card) pairs unique.
type Favorite struct {
	UserID     uint `gorm:"primaryKey"`
	GameCardID uint `gorm:"primaryKey;index"`
	CreatedAt  time.Time
}

// QueueEntry is one position of a user's queue.
// Positions of a user's entries are always 0..n-1 with no gaps.
type QueueEntry struct {
	UserID     uint `gorm:"primaryKey;autoIncrement:false"`
	Position   int  `gorm:"primaryKey;autoIncrement:false"`
	GameCardID uint `gorm:"not null;index"`
}

// Queue is a user's ordered list of card IDs. The index is the position.
type Queue []uint

// Append adds a card at the end. Duplicates are allowed.
func (q Queue) Append(cardID uint) Queue {
	out := make(Queue, len(q), len(q)+1)
	copy(out, q)
	return append(out, cardID)
}

// RemoveFirst drops the first occurrence of cardID and reports whether one was found.
// Entries after it shift down by one; relative order is untouched.
func (q Queue) RemoveFirst(cardID uint) (Queue, bool) {
	for i, id := range q {
		if id == cardID {
			out := make(Queue, 0, len(q)-1)
			out = append(out, q[:i]...)
			return append(out, q[i+1:]...), true
		}
	}
	return q, false
}

// RemoveAll drops every occurrence of cardID and returns how many were removed.
func (q Queue) RemoveAll(cardID uint) (Queue, int) {
	out := make(Queue, 0, len(q))
	for _, id := range q {
		if id != cardID {
			out = append(out, id)
		}
	}
	return out, len(q) - len(out)
}

// Move relocates the entry at position from to position to.
func (q Queue) Move(from, to int) (Queue, error) {
	if from < 0 || from >= len(q) || to < 0 || to >= len(q) {
		return q, ErrPositionOutOfRange
	}
	out := make(Queue, 0, len(q))
	out = append(out, q[:from]...)
	out = append(out, q[from+1:]...)
	moved := q[from]
	out = append(out[:to], append(Queue{moved}, out[to:]...)...)
	return out, nil
}

// Contains reports whether cardID appears anywhere in the queue.
func (q Queue) Contains(cardID uint) bool {
	for _, id := range q {
		if id == cardID {
			return true
		}
	}
	return false
}

// Entries renders the queue as dense, positioned rows for userID.
func (q Queue) Entries(userID uint) []QueueEntry {
	entries := make([]QueueEntry, len(q))
	for i, id := range q {
		entries[i] = QueueEntry{UserID: userID, Position: i, GameCardID: id}
	}
	return entries
}
