package zilliz

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/embedstack/std/v1/observability"
)

// FXModule is an fx.Module that provides and configures the Zilliz store.
// This module registers the client and store with the Fx dependency injection
// framework, making them available to other components in the application.
//
// The module:
// 1. Provides the ZillizClient factory (dials the cluster, fails fast)
// 2. Provides the Store factory implementing vectordb.Service
// 3. Invokes the lifecycle registration to close the client on shutdown
//
// Usage:
//
//	app := fx.New(
//	    zilliz.FXModule,
//	    fx.Provide(zilliz.NewConfig),
//	    // other modules...
//	)
var FXModule = fx.Module("zilliz",
	fx.Provide(
		NewZillizClient,
		NewStore,
	),
	fx.Invoke(RegisterZillizLifecycle),
)

// ZillizParams groups the dependencies needed to create a ZillizClient
type ZillizParams struct {
	fx.In

	Config *Config
}

// StoreParams groups the dependencies needed to create a Store.
// Embedder and Observer are optional; without an embedder only requests
// carrying precomputed vectors can be served.
type StoreParams struct {
	fx.In

	Client   *ZillizClient
	Embedder Embedder               `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// ZillizLifecycleParams groups the dependencies needed for lifecycle management
type ZillizLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *ZillizClient
}

// RegisterZillizLifecycle registers the client with the fx lifecycle system.
//
// Connectivity is already validated inside NewZillizClient, so the only hook
// needed here is a graceful shutdown of both underlying handles on stop.
//
// Note: This function is automatically invoked by the FXModule and does not
// need to be called directly in application code.
func RegisterZillizLifecycle(params ZillizLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("[Zilliz] Shutting down client")
			return params.Client.Close(ctx)
		},
	})
}
