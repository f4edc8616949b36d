package ai

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// RequestKind is one of the three cooperative worker kinds of spec.md §5.
type RequestKind int

const (
	RequestMove RequestKind = iota
	RequestHint
	RequestExplain
)

// Request carries a request id and the position key it was issued against,
// per §5's "stable request identifiers and a position-key tag".
type Request struct {
	ID          int64
	Kind        RequestKind
	PositionKey uint64
	State       *board.GameState
	Move        board.Move // only meaningful for RequestExplain
	Options     Options
	ExplainOpts ExplainOptions
}

// Response carries the same request id and position key back unchanged, so
// the host routing layer can discard a response that no longer matches the
// latest request or the current position (§5, §8's "policy staleness").
type Response struct {
	RequestID   int64
	PositionKey uint64
	Kind        RequestKind
	Result      Result
	Explanation *Explanation
	Err         error
}

var errNoLegalMoves = errors.New("ai: no legal moves for the side to move")

// Router supervises one Engine per request kind via errgroup, so a move
// search, a hint search, and an explain computation never share a
// transposition table or ordering state (spec.md §5's per-worker
// isolation). It tracks only the latest request id per kind; a response
// computed against a superseded request is never delivered.
type Router struct {
	mu       sync.Mutex
	latestID map[RequestKind]int64
	engines  map[RequestKind]*Engine
	// runMu serializes the requests of one kind, which share its Engine.
	runMu map[RequestKind]*sync.Mutex
}

// NewRouter builds a Router with one independently sized Engine per kind.
func NewRouter(ttSizeMB int, configPath string) *Router {
	return &Router{
		latestID: make(map[RequestKind]int64),
		engines: map[RequestKind]*Engine{
			RequestMove:    NewEngine(ttSizeMB, configPath),
			RequestHint:    NewEngine(ttSizeMB, configPath),
			RequestExplain: NewEngine(ttSizeMB, configPath),
		},
		runMu: map[RequestKind]*sync.Mutex{
			RequestMove:    new(sync.Mutex),
			RequestHint:    new(sync.Mutex),
			RequestExplain: new(sync.Mutex),
		},
	}
}

// Dispatch submits req on its own goroutine and returns a channel that
// receives exactly one Response if req is still the latest of its kind and
// its position key still matches currentKey() when the work completes;
// otherwise the channel is closed without a value, leaving the stale result
// to be discarded silently (the host never sees it).
func (r *Router) Dispatch(ctx context.Context, req Request, currentKey func() uint64) <-chan Response {
	r.mu.Lock()
	r.latestID[req.Kind] = req.ID
	r.mu.Unlock()

	out := make(chan Response, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if mu := r.runMu[req.Kind]; mu != nil {
			mu.Lock()
			defer mu.Unlock()
		}
		resp := r.run(gctx, req)

		r.mu.Lock()
		stillLatest := r.latestID[req.Kind] == req.ID
		r.mu.Unlock()

		if !stillLatest || resp.PositionKey != currentKey() {
			close(out)
			return nil
		}
		out <- resp
		close(out)
		return nil
	})
	go func() { _ = g.Wait() }()
	return out
}

// Stop requests cooperative cancellation of kind's in-flight search, used
// when a newer request of the same kind supersedes it before it completes.
func (r *Router) Stop(kind RequestKind) {
	if s := r.engines[kind]; s != nil {
		s.searcher.Stop()
	}
}

func (r *Router) run(ctx context.Context, req Request) Response {
	engine := r.engines[req.Kind]

	switch req.Kind {
	case RequestMove, RequestHint:
		callerStop := req.Options.StopRequested
		opts := req.Options
		opts.StopRequested = func() bool {
			if ctx.Err() != nil {
				return true
			}
			return callerStop != nil && callerStop()
		}
		result, ok := engine.ChooseMove(req.State, opts)
		if !ok {
			return Response{RequestID: req.ID, PositionKey: req.PositionKey, Kind: req.Kind, Err: errNoLegalMoves}
		}
		return Response{RequestID: req.ID, PositionKey: req.PositionKey, Kind: req.Kind, Result: result}

	case RequestExplain:
		expl := ExplainMove(req.State, req.Move, req.ExplainOpts)
		return Response{RequestID: req.ID, PositionKey: req.PositionKey, Kind: req.Kind, Explanation: &expl}
	}
	return Response{RequestID: req.ID, PositionKey: req.PositionKey, Kind: req.Kind}
}
