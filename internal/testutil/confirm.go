package testutil

import "sync"

// RecordingConfirmer answers every prompt with a fixed reply and records the prompts.
type RecordingConfirmer struct {
	mu      sync.Mutex
	reply   bool
	prompts []string
}

// NewRecordingConfirmer creates a confirmer that always answers reply.
func NewRecordingConfirmer(reply bool) *RecordingConfirmer {
	return &RecordingConfirmer{reply: reply}
}

func (c *RecordingConfirmer) Confirm(prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.reply
}

// SetReply changes the answer for later prompts.
func (c *RecordingConfirmer) SetReply(reply bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reply = reply
}

// Prompts returns the prompts seen so far.
func (c *RecordingConfirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}
