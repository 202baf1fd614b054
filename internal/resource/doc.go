// Package resource tracks the lifecycle of a remote read.
//
// A Loader wraps an Operation and exposes its current State: loading while
// an invocation is in flight, then either data or an error. Load re-invokes
// the operation when its dependency list changes and Refetch does so on
// demand. Every invocation is numbered; a result that arrives after a newer
// invocation started is dropped, so the state always reflects the most
// recently started call.
//
//	sessions := resource.New(client.TrainingSessions)
//	state := sessions.Load(ctx, day)
//	if state.Failed() {
//	    fmt.Println(state.Error)
//	}
package resource
