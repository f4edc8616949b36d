package ai

import (
	"context"
	"testing"
	"time"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

func TestRouterDispatchDeliversAMoveResponse(t *testing.T) {
	r := NewRouter(1, "")
	gs := board.NewGameState()

	req := Request{ID: 1, Kind: RequestMove, PositionKey: gs.Hash, State: gs, Options: Options{Difficulty: Easy}}
	ch := r.Dispatch(context.Background(), req, func() uint64 { return gs.Hash })

	select {
	case resp, ok := <-ch:
		if !ok {
			t.Fatal("expected a delivered response, channel closed empty")
		}
		if resp.Err != nil {
			t.Fatalf("unexpected error: %v", resp.Err)
		}
		if resp.RequestID != req.ID {
			t.Errorf("RequestID = %d, want %d", resp.RequestID, req.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch did not deliver a response in time")
	}
}

func TestRouterDiscardsResponseForStalePositionKey(t *testing.T) {
	r := NewRouter(1, "")
	gs := board.NewGameState()

	req := Request{ID: 1, Kind: RequestMove, PositionKey: gs.Hash, State: gs, Options: Options{Difficulty: Easy}}
	// currentKey reports a key that never matches, simulating the position
	// having moved on before the search completed.
	ch := r.Dispatch(context.Background(), req, func() uint64 { return 0xFFFFFFFF })

	select {
	case resp, ok := <-ch:
		if ok {
			t.Fatalf("expected the stale response to be discarded, got %+v", resp)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch did not close the channel in time")
	}
}

func TestRouterDiscardsResponseForSupersededRequest(t *testing.T) {
	r := NewRouter(1, "")
	gs := board.NewGameState()

	first := Request{ID: 1, Kind: RequestMove, PositionKey: gs.Hash, State: gs, Options: Options{Difficulty: Easy}}
	ch1 := r.Dispatch(context.Background(), first, func() uint64 { return gs.Hash })

	second := Request{ID: 2, Kind: RequestMove, PositionKey: gs.Hash, State: gs, Options: Options{Difficulty: Easy}}
	ch2 := r.Dispatch(context.Background(), second, func() uint64 { return gs.Hash })

	select {
	case resp, ok := <-ch1:
		if ok {
			t.Errorf("expected the superseded request's response to be discarded, got %+v", resp)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ch1 did not close in time")
	}

	select {
	case resp, ok := <-ch2:
		if !ok {
			t.Fatal("expected the latest request's response to be delivered")
		}
		if resp.RequestID != second.ID {
			t.Errorf("RequestID = %d, want %d", resp.RequestID, second.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ch2 did not deliver a response in time")
	}
}

func TestRouterExplainRequest(t *testing.T) {
	r := NewRouter(1, "")
	gs, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := board.NewMove(board.E4, board.D5)
	req := Request{ID: 1, Kind: RequestExplain, PositionKey: gs.Hash, State: gs, Move: m}
	ch := r.Dispatch(context.Background(), req, func() uint64 { return gs.Hash })

	select {
	case resp, ok := <-ch:
		if !ok {
			t.Fatal("expected a delivered explain response")
		}
		if resp.Explanation == nil {
			t.Fatal("expected a non-nil Explanation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch did not deliver an explain response in time")
	}
}
