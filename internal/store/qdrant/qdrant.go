// Package qdrant implements store.DocumentStore using Qdrant over gRPC.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/crossmerch/semsearch/internal/store"
)

// Store is a Qdrant-backed document store. The collection uses cosine
// distance, so reported scores are cosine similarity; Search shifts them by
// +1.0 to satisfy the non-negative scoring contract.
type Store struct {
	conn        *grpc.ClientConn
	collections pb.CollectionsClient
	points      pb.PointsClient
	collection  string
	dimension   int
}

// New connects to Qdrant and returns a store for the given collection.
func New(ctx context.Context, host string, port int, collection string, dimension int) (*Store, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &Store{
		conn:        conn,
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		collection:  collection,
		dimension:   dimension,
	}, nil
}

// EnsureSchema creates the collection with a cosine vector index if it does
// not already exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	exists, err := s.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{
		CollectionName: s.collection,
	})
	if err != nil {
		return fmt.Errorf("qdrant collection exists: %w", err)
	}
	if exists.GetResult().GetExists() {
		return nil
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(s.dimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant create collection: %w", err)
	}
	return nil
}

func (s *Store) Index(ctx context.Context, doc store.Document) (store.IndexResult, error) {
	payload, err := payloadFromProduct(doc.Product)
	if err != nil {
		return store.IndexResult{}, fmt.Errorf("qdrant payload: %w", err)
	}

	// A fresh point id per write: repeated indexing accumulates records
	// rather than overwriting by product_id.
	id := uuid.NewString()
	_, err = s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Points: []*pb.PointStruct{{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: doc.Vector}}},
			Payload: payload,
		}},
	})
	if err != nil {
		return store.IndexResult{}, fmt.Errorf("qdrant upsert: %w", err)
	}
	return store.IndexResult{Result: "created", ID: id}, nil
}

func (s *Store) Search(ctx context.Context, vector []float32, size int) ([]store.Hit, error) {
	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(size),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	hits := make([]store.Hit, len(resp.Result))
	for i, pt := range resp.Result {
		product, err := productFromPayload(pt.Payload)
		if err != nil {
			return nil, fmt.Errorf("qdrant payload decode: %w", err)
		}
		hits[i] = store.Hit{
			Score:   pt.Score + 1.0,
			Product: product,
		}
	}
	return hits, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

var _ store.DocumentStore = (*Store)(nil)
