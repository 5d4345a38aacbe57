package services

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/jawikivec/internal/logger"
)

// throughput logs a line every n items with the sentence rate measured
// since the previous line.
type throughput struct {
	every *rate.Sometimes
	now   func() time.Time

	items     int
	sentences int

	lastAt        time.Time
	lastSentences int
}

func newThroughput(every int, now func() time.Time) *throughput {
	t := &throughput{
		every:  &rate.Sometimes{Every: every},
		now:    now,
		lastAt: now(),
	}
	// Sometimes fires on its first call; consume it so the first line
	// appears after n items.
	t.every.Do(func() {})
	return t
}

// add records one item carrying n sentences.
func (t *throughput) add(n int) {
	t.items++
	t.sentences += n
	t.every.Do(t.log)
}

func (t *throughput) rate() int {
	at := t.now()
	elapsed := at.Sub(t.lastAt).Seconds()
	delta := t.sentences - t.lastSentences
	t.lastAt = at
	t.lastSentences = t.sentences
	if elapsed <= 0 {
		return delta
	}
	return int(float64(delta) / elapsed)
}

func (t *throughput) log() {
	logger.Info("Saved %d articles containing %d sentences (%d sentences/sec).",
		t.items, t.sentences, t.rate())
}

// lineCounter logs every n lines.
type lineCounter struct {
	every *rate.Sometimes
	lines int
	label string
}

func newLineCounter(every int, label string) *lineCounter {
	c := &lineCounter{every: &rate.Sometimes{Every: every}, label: label}
	c.every.Do(func() {})
	return c
}

func (c *lineCounter) add() {
	c.lines++
	c.every.Do(func() {
		logger.Info("Tokenized %d %s.", c.lines, c.label)
	})
}
