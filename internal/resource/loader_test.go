package resource

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewLoaderStartsLoading(t *testing.T) {
	loader := New(func(context.Context) State[int] { return Success(1) })

	state := loader.State()
	if !state.Loading || state.Data != nil || state.Error != "" {
		t.Fatalf("expected pristine loading state, got %+v", state)
	}
}

func TestLoadResolvesWithOperationResultVerbatim(t *testing.T) {
	loader := New(func(context.Context) State[[]int] {
		return State[[]int]{Data: &[]int{1, 2, 3}}
	})

	state := loader.Load(context.Background())
	if state.Loading {
		t.Fatalf("expected resolved state")
	}
	if state.Error != "" {
		t.Fatalf("expected no error, got %q", state.Error)
	}
	if !reflect.DeepEqual(state.Value(), []int{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", state.Value())
	}
	if !state.Ready() || state.Failed() {
		t.Fatalf("expected ready state, got %+v", state)
	}
}

func TestLoadSurfacesOperationFailure(t *testing.T) {
	loader := New(FromCall(func(context.Context) (string, error) {
		return "", errors.New("HTTP error! status: 500")
	}))

	state := loader.Load(context.Background())
	if state.Data != nil {
		t.Fatalf("expected no data, got %v", *state.Data)
	}
	if state.Error != "HTTP error! status: 500" {
		t.Fatalf("unexpected error %q", state.Error)
	}
	if !state.Failed() {
		t.Fatalf("expected failed state")
	}
}

func TestFailureWithoutMessageUsesDefault(t *testing.T) {
	state := Failure[int](nil)
	if state.Error != defaultErrorMessage {
		t.Fatalf("expected default message, got %q", state.Error)
	}
}

func TestLoadEntersLoadingBeforeEveryInvocation(t *testing.T) {
	var loader *Loader[int]
	calls := 0
	loader = New(func(context.Context) State[int] {
		calls++
		if !loader.State().Loading {
			t.Errorf("call %d: operation invoked outside loading state", calls)
		}
		return Success(calls)
	})

	var published []State[int]
	loader.Subscribe(func(s State[int]) { published = append(published, s) })

	ctx := context.Background()
	loader.Load(ctx, "2024-05-01")
	loader.Load(ctx, "2024-05-02")
	loader.Load(ctx, "2024-05-03", 7)

	if calls != 3 {
		t.Fatalf("expected 3 invocations, got %d", calls)
	}
	if len(published) != 6 {
		t.Fatalf("expected 6 published states, got %d", len(published))
	}
	for i := 0; i < len(published); i += 2 {
		if !published[i].Loading {
			t.Fatalf("state %d: expected loading before result", i)
		}
		if published[i+1].Loading {
			t.Fatalf("state %d: expected resolved result", i+1)
		}
	}
}

func TestLoadSkipsUnchangedDependencies(t *testing.T) {
	calls := 0
	loader := New(func(context.Context) State[int] {
		calls++
		return Success(calls)
	})

	ctx := context.Background()
	loader.Load(ctx, "week", []string{"mon", "tue"})
	state := loader.Load(ctx, "week", []string{"mon", "tue"})

	if calls != 1 {
		t.Fatalf("expected a single invocation, got %d", calls)
	}
	if state.Value() != 1 {
		t.Fatalf("expected cached value 1, got %d", state.Value())
	}

	loader.Load(ctx, "week", []string{"mon"})
	if calls != 2 {
		t.Fatalf("expected re-invocation after dependency change, got %d", calls)
	}
}

func TestRefetchIsIdempotentForDeterministicOperation(t *testing.T) {
	loader := New(func(context.Context) State[[]string] {
		return Success([]string{"squat", "bench"})
	})

	ctx := context.Background()
	first := loader.Refetch(ctx)
	second := loader.Refetch(ctx)

	if !reflect.DeepEqual(first.Value(), second.Value()) {
		t.Fatalf("expected identical data, got %v and %v", first.Value(), second.Value())
	}
	if second.Loading || second.Error != "" {
		t.Fatalf("expected resolved success, got %+v", second)
	}
}

func TestRefetchDropsStaleResult(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex
	calls := 0
	loader := New(func(context.Context) State[string] {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return Success("first")
		}
		return Success("second")
	})

	ctx := context.Background()
	done := make(chan State[string])
	go func() {
		done <- loader.Refetch(ctx)
	}()

	<-firstStarted
	second := loader.Refetch(ctx)
	if second.Value() != "second" {
		t.Fatalf("expected second result, got %q", second.Value())
	}

	close(releaseFirst)
	stale := <-done

	if stale.Value() != "second" {
		t.Fatalf("expected superseded call to report the newer state, got %q", stale.Value())
	}
	if got := loader.State().Value(); got != "second" {
		t.Fatalf("expected loader to keep the newest result, got %q", got)
	}
}

func TestConcurrentRefetchPublishesLatestStateLast(t *testing.T) {
	for iteration := 0; iteration < 100; iteration++ {
		var counter atomic.Int64
		loader := New(func(context.Context) State[int64] {
			return Success(counter.Add(1))
		})

		var mu sync.Mutex
		var last State[int64]
		loader.Subscribe(func(s State[int64]) {
			if s.Loading {
				time.Sleep(50 * time.Microsecond)
			}
			mu.Lock()
			last = s
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				loader.Refetch(context.Background())
			}()
		}
		wg.Wait()

		mu.Lock()
		got := last
		mu.Unlock()
		want := loader.State()
		if got.Loading || !reflect.DeepEqual(got, want) {
			t.Fatalf("iteration %d: last published %+v, loader state %+v", iteration, got, want)
		}
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	loader := New(func(context.Context) State[int] { return Success(1) })

	count := 0
	unsubscribe := loader.Subscribe(func(State[int]) { count++ })
	loader.Refetch(context.Background())
	unsubscribe()
	loader.Refetch(context.Background())

	if count != 2 {
		t.Fatalf("expected 2 notifications before unsubscribe, got %d", count)
	}
}

func TestStateJSONShape(t *testing.T) {
	body, err := json.Marshal(Success([]int{1, 2, 3}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(body) != `{"data":[1,2,3],"loading":false,"error":null}` {
		t.Fatalf("unexpected json %s", body)
	}

	var decoded State[[]int]
	if err := json.Unmarshal([]byte(`{"data":null,"loading":false,"error":"boom"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Data != nil || decoded.Error != "boom" {
		t.Fatalf("unexpected decoded state %+v", decoded)
	}
}
