package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hostel-drishti/backend/config"
)

// GridFSStore keeps images in a MongoDB GridFS bucket; they are served back
// by GET /api/images/:id
type GridFSStore struct {
	client  *mongo.Client
	bucket  *gridfs.Bucket
	baseURL string
}

// NewGridFSStore connects to MongoDB and opens the bucket
func NewGridFSStore(ctx context.Context, cfg *config.GridFSConfig, baseURL string) (*GridFSStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	bucket, err := gridfs.NewBucket(client.Database(cfg.Database), options.GridFSBucket().SetName(cfg.Bucket))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}

	return &GridFSStore{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *GridFSStore) Name() string { return "gridfs" }

func (s *GridFSStore) Save(ctx context.Context, obj Object) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{
		{Key: "contentType", Value: obj.ContentType},
		{Key: "folder", Value: obj.Folder},
		{Key: "originalName", Value: obj.Filename},
	})

	stream, err := s.bucket.OpenUploadStream(obj.Key(), opts)
	if err != nil {
		return "", fmt.Errorf("gridfs open upload: %w", err)
	}

	if dl, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(dl)
	}
	if _, err := stream.Write(obj.Data); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("gridfs write: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("gridfs close: %w", err)
	}

	id, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("gridfs: unexpected file id %v", stream.FileID)
	}
	return s.baseURL + "/api/images/" + id.Hex(), nil
}

// Open reads an image back with the content type recorded at upload
func (s *GridFSStore) Open(ctx context.Context, id string) ([]byte, string, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", ErrObjectNotFound
	}

	stream, err := s.bucket.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("gridfs open download: %w", err)
	}
	defer stream.Close()

	deadline := time.Now().Add(30 * time.Second)
	if dl, ok := ctx.Deadline(); ok {
		deadline = dl
	}
	_ = stream.SetReadDeadline(deadline)

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, "", fmt.Errorf("gridfs read: %w", err)
	}

	contentType := "application/octet-stream"
	if f := stream.GetFile(); f != nil && f.Metadata != nil {
		if v, ok := f.Metadata.Lookup("contentType").StringValueOK(); ok {
			contentType = v
		}
	}
	return data, contentType, nil
}

// Close disconnects from MongoDB
func (s *GridFSStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
