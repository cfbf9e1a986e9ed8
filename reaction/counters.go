package reaction

import (
	"rechord-client/models"
	"rechord-client/utils"
)

// Counters are the overlay's local copies of a voice's comment and play
// counts, seeded once at construction. They diverge from the source voice and
// are never synced back; the like counter lives with the Reactor.
type Counters struct {
	Comments int
	Plays    int
}

func NewCounters(voice models.Voice) Counters {
	return Counters{Comments: voice.CommentCount, Plays: voice.PlayCount}
}

// RecordPlay bumps the local play counter when playback starts.
func (c *Counters) RecordPlay() {
	c.Plays++
}

// RecordComment bumps the local comment counter after a comment is posted.
func (c *Counters) RecordComment() {
	c.Comments++
}

func (c Counters) CommentLabel() string {
	return utils.FormatCount(c.Comments)
}

func (c Counters) PlayLabel() string {
	return utils.FormatCount(c.Plays)
}
