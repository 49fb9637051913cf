package zilliz

import (
	"context"
	"fmt"
	"strconv"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/embedstack/std/v1/vectordb"
)

// Schema field names of the collections this adapter manages.
const (
	fieldID     = "id"
	fieldText   = "text"
	fieldVector = "vector"
	fieldMeta   = "meta"
)

const (
	idMaxLength   = 256
	textMaxLength = 65535
)

// searchParams captures one remote similarity-search call.
type searchParams struct {
	collection   string
	vectors      [][]float32
	limit        int
	expr         string
	outputFields []string
}

// dataAPI is the data-plane surface of the remote service: direct record
// operations against a collection. It mirrors the vendor's standalone client
// access pattern.
type dataAPI interface {
	Search(ctx context.Context, p searchParams) ([]milvusclient.ResultSet, error)
	Upsert(ctx context.Context, collection string, cols []column.Column) (int64, error)
	DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error)
	Close(ctx context.Context) error
}

// adminAPI is the connection-scoped management surface of the remote service:
// collection DDL, loading, and statistics. The vendor exposes this through a
// separate connection-bound API, so it is kept as its own handle even though
// it targets the same endpoint as dataAPI.
type adminAPI interface {
	HasCollection(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string, dim uint64) error
	DropCollection(ctx context.Context, name string) error
	LoadCollection(ctx context.Context, name string) error
	RowCount(ctx context.Context, name string) (uint64, error)
	Describe(ctx context.Context, name string) (*vectordb.Collection, error)
	ListCollections(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

// Injection points for the two underlying SDK handles. Tests substitute these
// to observe dialing behavior and to stub the remote service.
var (
	newDataHandle = func(ctx context.Context, cfg *milvusclient.ClientConfig) (dataAPI, error) {
		api, err := milvusclient.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &milvusData{api: api}, nil
	}

	newAdminHandle = func(ctx context.Context, cfg *milvusclient.ClientConfig) (adminAPI, error) {
		api, err := milvusclient.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &milvusAdmin{api: api}, nil
	}
)

// milvusData implements dataAPI on top of the official Milvus Go SDK.
type milvusData struct {
	api *milvusclient.Client
}

func (h *milvusData) Search(ctx context.Context, p searchParams) ([]milvusclient.ResultSet, error) {
	vectors := make([]entity.Vector, len(p.vectors))
	for i, v := range p.vectors {
		vectors[i] = entity.FloatVector(v)
	}

	opt := milvusclient.NewSearchOption(p.collection, p.limit, vectors).
		WithANNSField(fieldVector).
		WithOutputFields(p.outputFields...)
	if p.expr != "" {
		opt = opt.WithFilter(p.expr)
	}

	return h.api.Search(ctx, opt)
}

func (h *milvusData) Upsert(ctx context.Context, collection string, cols []column.Column) (int64, error) {
	res, err := h.api.Upsert(ctx, milvusclient.NewColumnBasedInsertOption(collection, cols...))
	if err != nil {
		return 0, err
	}
	return res.UpsertCount, nil
}

func (h *milvusData) DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error) {
	res, err := h.api.Delete(ctx, milvusclient.NewDeleteOption(collection).WithStringIDs(fieldID, ids))
	if err != nil {
		return 0, err
	}
	return res.DeleteCount, nil
}

func (h *milvusData) Close(ctx context.Context) error {
	return h.api.Close(ctx)
}

// milvusAdmin implements adminAPI on top of the official Milvus Go SDK.
type milvusAdmin struct {
	api *milvusclient.Client
}

func (h *milvusAdmin) HasCollection(ctx context.Context, name string) (bool, error) {
	return h.api.HasCollection(ctx, milvusclient.NewHasCollectionOption(name))
}

func (h *milvusAdmin) CreateCollection(ctx context.Context, name string, dim uint64) error {
	schema := entity.NewSchema().
		WithName(name).
		WithField(entity.NewField().
			WithName(fieldID).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(idMaxLength).
			WithIsPrimaryKey(true)).
		WithField(entity.NewField().
			WithName(fieldText).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(textMaxLength)).
		WithField(entity.NewField().
			WithName(fieldMeta).
			WithDataType(entity.FieldTypeJSON)).
		WithField(entity.NewField().
			WithName(fieldVector).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(dim)))

	if err := h.api.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(name, schema)); err != nil {
		return err
	}

	task, err := h.api.CreateIndex(ctx, milvusclient.NewCreateIndexOption(name, fieldVector, index.NewAutoIndex(entity.COSINE)))
	if err != nil {
		return err
	}
	return task.Await(ctx)
}

func (h *milvusAdmin) DropCollection(ctx context.Context, name string) error {
	return h.api.DropCollection(ctx, milvusclient.NewDropCollectionOption(name))
}

func (h *milvusAdmin) LoadCollection(ctx context.Context, name string) error {
	task, err := h.api.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(name))
	if err != nil {
		return err
	}
	return task.Await(ctx)
}

func (h *milvusAdmin) RowCount(ctx context.Context, name string) (uint64, error) {
	stats, err := h.api.GetCollectionStats(ctx, milvusclient.NewGetCollectionStatsOption(name))
	if err != nil {
		return 0, err
	}

	raw, ok := stats["row_count"]
	if !ok {
		return 0, nil
	}
	count, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected row_count %q: %w", raw, err)
	}
	return count, nil
}

func (h *milvusAdmin) Describe(ctx context.Context, name string) (*vectordb.Collection, error) {
	info, err := h.api.DescribeCollection(ctx, milvusclient.NewDescribeCollectionOption(name))
	if err != nil {
		return nil, err
	}

	coll := &vectordb.Collection{Name: name}
	if info.Schema != nil {
		for _, field := range info.Schema.Fields {
			if field.DataType != entity.FieldTypeFloatVector {
				continue
			}
			if raw, ok := field.TypeParams[entity.TypeParamDim]; ok {
				if dim, err := strconv.ParseUint(raw, 10, 64); err == nil {
					coll.VectorSize = dim
				}
			}
		}
	}

	state, err := h.api.GetLoadState(ctx, milvusclient.NewGetLoadStateOption(name))
	if err != nil {
		return nil, err
	}
	coll.Loaded = state.State == entity.LoadStateLoaded

	return coll, nil
}

func (h *milvusAdmin) ListCollections(ctx context.Context) ([]string, error) {
	return h.api.ListCollections(ctx, milvusclient.NewListCollectionOption())
}

func (h *milvusAdmin) Close(ctx context.Context) error {
	return h.api.Close(ctx)
}
