package zilliz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

//
// ──────────────────────────────────────────────────────────────
//   ZILLIZ CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Milvus Go client,
// used here to talk to Zilliz Cloud (managed Milvus).
//
// The remote service exposes two distinct access surfaces: a data-plane
// client for record operations (search, upsert, delete) and a
// connection-scoped management surface for collection DDL, loading and
// statistics. This wrapper owns one handle per surface. Both are dialed
// against the same (uri, token) pair, but they are separate resource
// lifetimes and are never conflated into one handle.
//
// Responsibilities:
//   • Establish and validate connectivity with Zilliz Cloud.
//   • Own the lifecycle of the data-plane and management handles.
//   • Offer a safe API suitable for Fx dependency injection.
//

// ZillizClient owns the two handles to a Zilliz Cloud cluster.
type ZillizClient struct {
	data    dataAPI
	admin   adminAPI
	cfg     *Config
	started bool
}

const defaultBatchSize = 200 // chunk size for batched upserts

// NewZillizClient dials the cluster configured in p.Config and validates
// connectivity via a health check.
//
// Both underlying handles are created here, each bound to (uri, token); a
// failure on either one is a connection error and nothing is retried at
// this layer.
//
// Example:
//
//	client, _ := zilliz.NewZillizClient(zilliz.ZillizParams{Config: cfg})
func NewZillizClient(p ZillizParams) (*ZillizClient, error) {
	log.Printf("[Zilliz] Connecting to endpoint: %s", p.Config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), p.Config.ConnectTimeout)
	defer cancel()

	// Keepalive pings hold the connection open across the idle timeouts of
	// managed-cloud load balancers.
	connCfg := &milvusclient.ClientConfig{
		Address: p.Config.URI,
		APIKey:  p.Config.Token,
		DialOptions: []grpc.DialOption{
			grpc.WithKeepaliveParams(keepalive.ClientParameters{
				Time:                30 * time.Second,
				Timeout:             10 * time.Second,
				PermitWithoutStream: true,
			}),
		},
	}

	data, err := newDataHandle(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("[Zilliz] failed to initialize client: %w", err)
	}

	admin, err := newAdminHandle(ctx, connCfg)
	if err != nil {
		_ = data.Close(ctx)
		return nil, fmt.Errorf("[Zilliz] failed to open connection: %w", err)
	}

	c := &ZillizClient{
		data:    data,
		admin:   admin,
		cfg:     p.Config,
		started: true,
	}

	if err := c.healthCheck(); err != nil {
		_ = c.Close(context.Background())
		return nil, fmt.Errorf("[Zilliz] health check failed: %w", err)
	}

	log.Println("[Zilliz] Client connected successfully")
	return c, nil
}

// healthCheck verifies the availability of the cluster by listing its
// collections through the management handle. It is lightweight and fast,
// suitable for startup and readiness probes.
func (c *ZillizClient) healthCheck() error {
	if !c.started {
		return ErrNotStarted
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	names, err := c.admin.ListCollections(ctx)
	if err != nil {
		return err
	}

	log.Printf("[Zilliz] Health check passed (collections=%d, endpoint=%s)", len(names), c.cfg.URI)
	return nil
}

// Close shuts down both handles. Safe to call more than once.
func (c *ZillizClient) Close(ctx context.Context) error {
	if !c.started {
		return nil
	}
	c.started = false

	log.Println("[Zilliz] closing client")
	return errors.Join(c.data.Close(ctx), c.admin.Close(ctx))
}
