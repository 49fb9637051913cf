package zilliz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedstack/std/v1/observability"
	"github.com/embedstack/std/v1/vectordb"
)

// ── Test doubles ─────────────────────────────────────────────────────────────

type upsertCall struct {
	collection string
	cols       []column.Column
}

type fakeData struct {
	searchCalls []searchParams
	searchSets  []milvusclient.ResultSet
	searchErr   error

	upsertCalls []upsertCall
	upsertErr   error

	deleteCalls [][]string
	deleteErr   error

	closed bool
}

func (f *fakeData) Search(ctx context.Context, p searchParams) ([]milvusclient.ResultSet, error) {
	f.searchCalls = append(f.searchCalls, p)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchSets, nil
}

func (f *fakeData) Upsert(ctx context.Context, collection string, cols []column.Column) (int64, error) {
	f.upsertCalls = append(f.upsertCalls, upsertCall{collection: collection, cols: cols})
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	return int64(cols[0].Len()), nil
}

func (f *fakeData) DeleteByIDs(ctx context.Context, collection string, ids []string) (int64, error) {
	f.deleteCalls = append(f.deleteCalls, ids)
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return int64(len(ids)), nil
}

func (f *fakeData) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type createdCollection struct {
	name string
	dim  uint64
}

type fakeAdmin struct {
	exists  bool
	hasErr  error
	created []createdCollection
	dropped []string
	loaded  []string

	rowCount    uint64
	rowCountErr error

	collections []string
	listErr     error

	description *vectordb.Collection
	describeErr error

	closed bool
}

func (f *fakeAdmin) HasCollection(ctx context.Context, name string) (bool, error) {
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.exists, nil
}

func (f *fakeAdmin) CreateCollection(ctx context.Context, name string, dim uint64) error {
	f.created = append(f.created, createdCollection{name: name, dim: dim})
	f.exists = true
	return nil
}

func (f *fakeAdmin) DropCollection(ctx context.Context, name string) error {
	f.dropped = append(f.dropped, name)
	f.exists = false
	return nil
}

func (f *fakeAdmin) LoadCollection(ctx context.Context, name string) error {
	f.loaded = append(f.loaded, name)
	return nil
}

func (f *fakeAdmin) RowCount(ctx context.Context, name string) (uint64, error) {
	return f.rowCount, f.rowCountErr
}

func (f *fakeAdmin) Describe(ctx context.Context, name string) (*vectordb.Collection, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.description, nil
}

func (f *fakeAdmin) ListCollections(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.collections, nil
}

func (f *fakeAdmin) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type fakeEmbedder struct {
	gotTexts [][]string
	vectors  [][]float64
	err      error
}

func (f *fakeEmbedder) CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	f.gotTexts = append(f.gotTexts, texts)
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func newTestStore(data dataAPI, admin adminAPI, embedder Embedder) *Store {
	cfg := &Config{
		URI:        "https://test.zillizcloud.com",
		Token:      "test-token",
		Collection: DefaultCollection,
		VectorDim:  4,
	}
	client := &ZillizClient{data: data, admin: admin, cfg: cfg, started: true}
	return &Store{client: client, cfg: cfg, embedder: embedder}
}

func textResultSet(texts ...string) milvusclient.ResultSet {
	ids := make([]string, len(texts))
	scores := make([]float32, len(texts))
	for i := range texts {
		ids[i] = "doc" + string(rune('1'+i))
		scores[i] = 1.0 - float32(i)*0.1
	}
	return milvusclient.ResultSet{
		ResultCount: len(texts),
		IDs:         column.NewColumnVarChar(fieldID, ids),
		Scores:      scores,
		Fields: []column.Column{
			column.NewColumnVarChar(fieldText, texts),
		},
	}
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestQuerySkipEmbedding(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("result_doc")}}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	queryVec := []float32{0.1, 0.2, 0.3, 0.4}
	texts, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{queryVec},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"result_doc"}, texts)

	require.Len(t, data.searchCalls, 1)
	call := data.searchCalls[0]
	assert.Equal(t, DefaultCollection, call.collection)
	assert.Equal(t, 1, call.limit)
	assert.Equal(t, []string{fieldText}, call.outputFields)
	assert.Equal(t, [][]float32{queryVec}, call.vectors)
	assert.Empty(t, call.expr)
}

func TestQueryEmptyCollection(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: false}
	store := newTestStore(data, admin, nil)

	texts, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1, 0.2}},
		TopK:          3,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Empty(t, data.searchCalls, "no search should be issued for a missing collection")
}

func TestQueryZeroRowCollection(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("stale")}}
	admin := &fakeAdmin{exists: true, rowCount: 0}
	store := newTestStore(data, admin, nil)

	texts, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1, 0.2}},
		TopK:          3,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	assert.Empty(t, texts)
	assert.Empty(t, data.searchCalls, "no search should be issued when the collection holds zero rows")
}

func TestQueryEmbedsTexts(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("a", "b")}}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	embedder := &fakeEmbedder{vectors: [][]float64{{0.5, 0.25, 0.125, 0.0625}}}
	store := newTestStore(data, admin, embedder)

	texts, err := store.Query(context.Background(), vectordb.QueryRequest{
		Texts: []string{"what is a vector database"},
		TopK:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts)

	require.Len(t, embedder.gotTexts, 1)
	assert.Equal(t, []string{"what is a vector database"}, embedder.gotTexts[0])

	require.Len(t, data.searchCalls, 1)
	assert.Equal(t, [][]float32{{0.5, 0.25, 0.125, 0.0625}}, data.searchCalls[0].vectors)
}

func TestQueryNoEmbedder(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: true, rowCount: 1}, nil)

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Texts: []string{"hello"},
		TopK:  1,
	})
	assert.ErrorIs(t, err, ErrNoEmbedder)
}

func TestQueryValidation(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: true, rowCount: 1}, nil)

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1}},
		SkipEmbedding: true,
	})
	assert.Error(t, err, "zero topK must be rejected")

	_, err = store.Query(context.Background(), vectordb.QueryRequest{
		TopK:          1,
		SkipEmbedding: true,
	})
	assert.Error(t, err, "skip-embedding requests must carry vectors")

	_, err = store.Query(context.Background(), vectordb.QueryRequest{TopK: 1})
	assert.Error(t, err, "requests without texts or vectors must be rejected")
}

func TestQueryWithFilters(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("filtered")}}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	filters := vectordb.NewFilterSet(vectordb.Must(
		vectordb.NewUserMatch("app_id", "demo"),
	))

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1, 0.2}},
		TopK:          1,
		SkipEmbedding: true,
		Filters:       filters,
	})
	require.NoError(t, err)

	require.Len(t, data.searchCalls, 1)
	assert.Equal(t, `meta["app_id"] == "demo"`, data.searchCalls[0].expr)
}

func TestQuerySearchError(t *testing.T) {
	data := &fakeData{searchErr: errors.New("rpc unavailable")}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1}},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

// ── Search ───────────────────────────────────────────────────────────────────

func TestSearchShapesResults(t *testing.T) {
	set := milvusclient.ResultSet{
		ResultCount: 2,
		IDs:         column.NewColumnVarChar(fieldID, []string{"doc1", "doc2"}),
		Scores:      []float32{0.95, 0.85},
		Fields: []column.Column{
			column.NewColumnVarChar(fieldText, []string{"first", "second"}),
			column.NewColumnJSONBytes(fieldMeta, [][]byte{
				[]byte(`{"app_id":"demo"}`),
				[]byte(`{}`),
			}),
		},
	}
	data := &fakeData{searchSets: []milvusclient.ResultSet{set}}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	results, err := store.Search(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1, 0.2, 0.3, 0.4}},
		TopK:          2,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0], 2)

	first := results[0][0]
	assert.Equal(t, "doc1", first.ID)
	assert.InDelta(t, 0.95, first.Score, 1e-6)
	assert.Equal(t, "first", first.Text)
	assert.Equal(t, map[string]any{"app_id": "demo"}, first.Payload)

	require.Len(t, data.searchCalls, 1)
	assert.Equal(t, []string{fieldText, fieldMeta}, data.searchCalls[0].outputFields)
}

func TestSearchEmptyCollection(t *testing.T) {
	data := &fakeData{}
	store := newTestStore(data, &fakeAdmin{exists: false}, nil)

	results, err := store.Search(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1}},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, data.searchCalls)
}

func TestSearchZeroRowCollection(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("stale")}}
	store := newTestStore(data, &fakeAdmin{exists: true, rowCount: 0}, nil)

	results, err := store.Search(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1}},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, data.searchCalls, "no search should be issued when the collection holds zero rows")
}

// ── Add ──────────────────────────────────────────────────────────────────────

func TestAddCreatesCollection(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: false}
	store := newTestStore(data, admin, nil)

	err := store.Add(context.Background(), vectordb.Document{
		ID:     "doc1",
		Text:   "hello world",
		Vector: []float32{0.1, 0.2, 0.3, 0.4},
		Meta:   map[string]any{"app_id": "demo"},
	})
	require.NoError(t, err)

	require.Len(t, admin.created, 1)
	assert.Equal(t, DefaultCollection, admin.created[0].name)
	assert.Equal(t, uint64(4), admin.created[0].dim)
	assert.Equal(t, []string{DefaultCollection}, admin.loaded)

	require.Len(t, data.upsertCalls, 1)
	cols := data.upsertCalls[0].cols
	require.Len(t, cols, 4)
	assert.Equal(t, fieldID, cols[0].Name())
	assert.Equal(t, fieldText, cols[1].Name())
	assert.Equal(t, fieldMeta, cols[2].Name())
	assert.Equal(t, fieldVector, cols[3].Name())

	id, err := cols[0].GetAsString(0)
	require.NoError(t, err)
	assert.Equal(t, "doc1", id)
}

func TestAddSkipsCreateWhenCollectionExists(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	err := store.Add(context.Background(), vectordb.Document{
		ID:     "doc1",
		Text:   "hello",
		Vector: []float32{0.1, 0.2, 0.3, 0.4},
	})
	require.NoError(t, err)
	assert.Empty(t, admin.created)
	require.Len(t, data.upsertCalls, 1)
}

func TestAddEmbedsMissingVectors(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	embedder := &fakeEmbedder{vectors: [][]float64{{0.9, 0.8, 0.7, 0.6}}}
	store := newTestStore(data, admin, embedder)

	err := store.Add(context.Background(),
		vectordb.Document{ID: "plain", Text: "needs embedding"},
		vectordb.Document{ID: "ready", Text: "has vector", Vector: []float32{0.1, 0.2, 0.3, 0.4}},
	)
	require.NoError(t, err)

	require.Len(t, embedder.gotTexts, 1)
	assert.Equal(t, []string{"needs embedding"}, embedder.gotTexts[0])
	require.Len(t, data.upsertCalls, 1)
}

func TestAddWithoutEmbedderRejectsVectorless(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: true, rowCount: 1}, nil)

	err := store.Add(context.Background(), vectordb.Document{ID: "doc1", Text: "no vector"})
	assert.ErrorIs(t, err, ErrNoEmbedder)
}

func TestAddBatches(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	docs := make([]vectordb.Document, 450)
	for i := range docs {
		docs[i] = vectordb.Document{
			ID:     fmt.Sprintf("doc-%d", i),
			Text:   "text",
			Vector: []float32{0.1, 0.2, 0.3, 0.4},
		}
	}

	require.NoError(t, store.Add(context.Background(), docs...))
	assert.Len(t, data.upsertCalls, 3, "450 docs must split into 3 batches of at most 200")
}

func TestAddValidation(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: true, rowCount: 1}, nil)

	err := store.Add(context.Background(), vectordb.Document{Text: "no id"})
	assert.Error(t, err)

	err = store.Add(context.Background(), vectordb.Document{ID: "empty"})
	assert.Error(t, err)

	assert.NoError(t, store.Add(context.Background()), "adding nothing is a no-op")
}

// ── Delete / Count / Reset ───────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	data := &fakeData{}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(data, admin, nil)

	require.NoError(t, store.Delete(context.Background(), []string{"doc1", "doc2"}))
	require.Len(t, data.deleteCalls, 1)
	assert.Equal(t, []string{"doc1", "doc2"}, data.deleteCalls[0])
}

func TestDeleteNoOps(t *testing.T) {
	data := &fakeData{}
	store := newTestStore(data, &fakeAdmin{exists: true, rowCount: 1}, nil)
	require.NoError(t, store.Delete(context.Background(), nil))
	assert.Empty(t, data.deleteCalls)

	data = &fakeData{}
	store = newTestStore(data, &fakeAdmin{exists: false}, nil)
	require.NoError(t, store.Delete(context.Background(), []string{"doc1"}))
	assert.Empty(t, data.deleteCalls, "deleting from a missing collection is a no-op")
}

func TestCount(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: true, rowCount: 42}, nil)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestCountMissingCollection(t *testing.T) {
	store := newTestStore(&fakeData{}, &fakeAdmin{exists: false}, nil)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestReset(t *testing.T) {
	admin := &fakeAdmin{exists: true, rowCount: 1}
	store := newTestStore(&fakeData{}, admin, nil)

	require.NoError(t, store.Reset(context.Background()))
	assert.Equal(t, []string{DefaultCollection}, admin.dropped)

	// Second reset sees no collection and does nothing.
	require.NoError(t, store.Reset(context.Background()))
	assert.Len(t, admin.dropped, 1)
}

// ── Collection metadata ──────────────────────────────────────────────────────

func TestCollection(t *testing.T) {
	admin := &fakeAdmin{
		exists:      true,
		rowCount:    7,
		description: &vectordb.Collection{Name: DefaultCollection, VectorSize: 4, Loaded: true},
	}
	store := newTestStore(&fakeData{}, admin, nil)

	coll, err := store.Collection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultCollection, coll.Name)
	assert.Equal(t, uint64(4), coll.VectorSize)
	assert.Equal(t, uint64(7), coll.RowCount)
	assert.True(t, coll.Loaded)
}

func TestListCollections(t *testing.T) {
	admin := &fakeAdmin{collections: []string{"embedchain_store", "other"}}
	store := newTestStore(&fakeData{}, admin, nil)

	names, err := store.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"embedchain_store", "other"}, names)
}

// ── Observer ─────────────────────────────────────────────────────────────────

type recordingObserver struct {
	operations []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.operations = append(r.operations, ctx)
}

func TestStoreReportsOperations(t *testing.T) {
	data := &fakeData{searchSets: []milvusclient.ResultSet{textResultSet("hit")}}
	admin := &fakeAdmin{exists: true, rowCount: 1}
	observer := &recordingObserver{}
	store := newTestStore(data, admin, nil).WithObserver(observer)

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1, 0.2}},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.NoError(t, err)

	require.Len(t, observer.operations, 1)
	op := observer.operations[0]
	assert.Equal(t, "zilliz", op.Component)
	assert.Equal(t, "query", op.Operation)
	assert.Equal(t, DefaultCollection, op.Resource)
	assert.Equal(t, int64(1), op.Size)
	assert.NoError(t, op.Error)
	assert.GreaterOrEqual(t, op.Duration, time.Duration(0))
}

func TestStoreReportsFailures(t *testing.T) {
	data := &fakeData{searchErr: errors.New("boom")}
	observer := &recordingObserver{}
	store := newTestStore(data, &fakeAdmin{exists: true, rowCount: 1}, nil).WithObserver(observer)

	_, err := store.Query(context.Background(), vectordb.QueryRequest{
		Vectors:       [][]float32{{0.1}},
		TopK:          1,
		SkipEmbedding: true,
	})
	require.Error(t, err)

	require.Len(t, observer.operations, 1)
	assert.Error(t, observer.operations[0].Error)
}
