// Package liveoak provides an in-process, asynchronous CRUD connector over a
// tree of addressable resources.
//
// # Architecture
//
// Requests flow through a staged pipeline:
//
//	caller -> connector -> [validation -> subscription -> dispatch] -> response
//
// The connector (package connector) assigns every request a unique identity,
// registers a completion handler in its correlation table, and submits the
// request to the pipeline head. The pipeline (package pipeline) pushes the
// request forward through its stages; whichever stage completes it produces
// the response, which travels back through the earlier stages and is emitted
// to the connector, which removes and invokes the matching handler exactly
// once.
//
// A blocking facade is layered on top of the callback form: each operation
// bridges its handler to a single-shot future, waits for it (or for the
// caller's context), encodes the resulting resource into a transport-neutral
// state value (package codec), and converts structured error outcomes into
// the typed failures of package errors.
//
// Nothing here touches the network: requests and responses are plain values
// handed between goroutines. The one optional outward surface is the
// subscription notifier (package subscription), which can publish resource
// change events to NATS for external observers.
//
// # Quick start
//
//	root := tree.NewRoot()
//	p := pipeline.New([]pipeline.Stage{
//		pipeline.NewDispatchStage(root, nil),
//	})
//	p.Start(context.Background())
//	defer p.Stop(5 * time.Second)
//
//	conn := connector.New(p)
//	conn.Create(nil, "/", types.NewState("widgets")) // the container
//
//	state := types.NewState("w1")
//	state.Put("color", "blue")
//	created, err := conn.Create(nil, "/widgets", state)
package liveoak
