package ui

import (
	"context"
	"time"
	"unicode"
	"unicode/utf8"
)

// Pacing for Replay. A frame carries between minWordsPerFrame and
// maxWordsPerFrame words depending on how much text is still waiting
// relative to paceWindow bytes.
const (
	paceWindow       = 500
	minWordsPerFrame = 1
	maxWordsPerFrame = 5
	maxWordBytes     = 12 // longer words are split across frames
)

// wordPacer hands out the pending text a few words at a time, speeding up
// while a lot of text is waiting, like a model that has fallen behind.
type wordPacer struct {
	pending string
}

func (p *wordPacer) done() bool { return p.pending == "" }

func (p *wordPacer) wordsPerFrame() int {
	fill := float64(len(p.pending)) / paceWindow
	switch {
	case fill < 0.2:
		return minWordsPerFrame
	case fill > 0.8:
		return maxWordsPerFrame
	}
	return minWordsPerFrame + int((maxWordsPerFrame-minWordsPerFrame)*fill)
}

// next removes and returns the next frame.
func (p *wordPacer) next() string {
	frame, rest := extractWords(p.pending, p.wordsPerFrame())
	p.pending = rest
	return frame
}

// Replay splits text into word-paced frames and calls emit with each one,
// waiting interval between frames. A zero interval emits without waiting.
// Concatenating every emitted frame gives back text.
func Replay(ctx context.Context, text string, interval time.Duration, emit func(string) error) error {
	p := &wordPacer{pending: text}
	return drain(ctx, interval, p.done, p.next, emit)
}

// ReplayChunks is Replay with fixed-size frames of at most size bytes,
// never splitting a UTF-8 sequence.
func ReplayChunks(ctx context.Context, text string, size int, interval time.Duration, emit func(string) error) error {
	rest := text
	next := func() string {
		chunk := cutChunk(rest, size)
		rest = rest[len(chunk):]
		return chunk
	}
	return drain(ctx, interval, func() bool { return rest == "" }, next, emit)
}

func drain(ctx context.Context, interval time.Duration, done func() bool, next func() string, emit func(string) error) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for !done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(next()); err != nil {
			return err
		}
		if tick == nil || done() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
	return nil
}

// cutChunk returns the longest prefix of s of at most size bytes that ends
// on a rune boundary, and at least one rune.
func cutChunk(s string, size int) string {
	if size <= 0 || size >= len(s) {
		return s
	}
	end := size
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	if end == 0 {
		_, n := utf8.DecodeRuneInString(s)
		end = n
	}
	return s[:end]
}

// extractWords splits content after its first n words, each taken with the
// whitespace before it. A word longer than maxWordBytes ends the frame after
// its first maxWordBytes bytes, cut back to a rune boundary.
func extractWords(content string, n int) (frame, rest string) {
	pos := 0
	for words := 0; words < n && pos < len(content); words++ {
		pos = skip(content, pos, unicode.IsSpace)
		start := pos
		pos = skip(content, pos, func(r rune) bool { return !unicode.IsSpace(r) })
		if pos-start > maxWordBytes {
			pos = start + len(cutChunk(content[start:], maxWordBytes))
			break
		}
	}
	return content[:pos], content[pos:]
}

// skip advances from pos past runes matching keep.
func skip(s string, pos int, keep func(rune) bool) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !keep(r) {
			break
		}
		pos += size
	}
	return pos
}
