package reaction

import (
	"context"
	"log"
	"sync"

	"rechord-client/models"
	"rechord-client/session"
)

// VoiceAPI is the slice of the API client the reactors need.
type VoiceAPI interface {
	LikeVoice(ctx context.Context, voiceID, clientID int64, token string) error
	UnlikeVoice(ctx context.Context, voiceID, clientID int64, token string) error
}

// Reactor toggles the liked state for one voice and keeps the like counter
// consistent with it. Implementations differ in how they treat a failed
// server request.
type Reactor interface {
	Toggle(sess session.Session) (liked bool, count int)
	Liked() bool
	Count() int
}

// Optimistic mutates local state first and never reverts it: the visible
// state never waits on the network, and a failed request is only logged.
// The liked flag always starts false; it is not hydrated from the server.
type Optimistic struct {
	client   VoiceAPI
	dispatch Dispatcher
	voiceID  int64

	liked    bool
	count    int
	lastTask *Task
}

func NewOptimistic(client VoiceAPI, dispatcher Dispatcher, voice models.Voice) *Optimistic {
	return &Optimistic{
		client:   client,
		dispatch: dispatcher,
		voiceID:  voice.ID,
		count:    voice.LikeCount,
	}
}

func (o *Optimistic) Toggle(sess session.Session) (bool, int) {
	if o.liked {
		o.liked = false
		o.count = floorAtZero(o.count - 1)
	} else {
		o.liked = true
		o.count++
	}

	if auth, ok := session.Credentials(sess); ok {
		o.lastTask = o.dispatch.Dispatch(o.request(o.liked, auth))
	}
	return o.liked, o.count
}

func (o *Optimistic) Liked() bool {
	return o.liked
}

func (o *Optimistic) Count() int {
	return o.count
}

// LastTask returns the handle of the most recently dispatched request, or nil
// if no request has been dispatched.
func (o *Optimistic) LastTask() *Task {
	return o.lastTask
}

func (o *Optimistic) request(like bool, auth session.Authenticated) func(context.Context) error {
	return func(ctx context.Context) error {
		call := o.client.UnlikeVoice
		if like {
			call = o.client.LikeVoice
		}
		if err := call(ctx, o.voiceID, auth.ClientID, auth.Token); err != nil {
			log.Printf("reaction request failed: voice=%d like=%t err=%v", o.voiceID, like, err)
			return err
		}
		return nil
	}
}

// Reconciling applies the same optimistic mutation but reverts it when the
// server rejects the request. Drop-in replacement for Optimistic.
type Reconciling struct {
	client   VoiceAPI
	dispatch Dispatcher
	voiceID  int64

	mu       sync.Mutex
	liked    bool
	count    int
	lastTask *Task
}

func NewReconciling(client VoiceAPI, dispatcher Dispatcher, voice models.Voice) *Reconciling {
	return &Reconciling{
		client:   client,
		dispatch: dispatcher,
		voiceID:  voice.ID,
		count:    voice.LikeCount,
	}
}

func (r *Reconciling) Toggle(sess session.Session) (bool, int) {
	r.mu.Lock()
	if r.liked {
		r.liked = false
		r.count = floorAtZero(r.count - 1)
	} else {
		r.liked = true
		r.count++
	}
	liked, count := r.liked, r.count
	r.mu.Unlock()

	if auth, ok := session.Credentials(sess); ok {
		r.lastTask = r.dispatch.Dispatch(func(ctx context.Context) error {
			call := r.client.UnlikeVoice
			if liked {
				call = r.client.LikeVoice
			}
			if err := call(ctx, r.voiceID, auth.ClientID, auth.Token); err != nil {
				r.revert(liked)
				return err
			}
			return nil
		})
	}
	return liked, count
}

func (r *Reconciling) revert(liked bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if liked {
		r.liked = false
		r.count = floorAtZero(r.count - 1)
	} else {
		r.liked = true
		r.count++
	}
}

func (r *Reconciling) Liked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liked
}

func (r *Reconciling) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *Reconciling) LastTask() *Task {
	return r.lastTask
}

func floorAtZero(count int) int {
	if count < 0 {
		return 0
	}
	return count
}
