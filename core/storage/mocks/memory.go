package mocks

import (
	"bytes"
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"content-store/core/storage"

	"github.com/minio/minio-go/v7"
)

// Memory is an in-memory storage.Client for tests that need real round trips.
// Set the *Err fields to inject failures.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memoryEntry

	PutErr    error
	GetErr    error
	RemoveErr error

	gets    atomic.Int64
	closes  atomic.Int64
	uploads atomic.Int64
}

type memoryEntry struct {
	data    []byte
	modTime time.Time
}

// NewMemory returns an empty in-memory client.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryEntry)}
}

func memoryKey(bucket, key string) string {
	return bucket + "/" + key
}

// Put stores data directly, bypassing the upload path.
func (m *Memory) Put(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[memoryKey(bucket, key)] = memoryEntry{data: append([]byte(nil), data...), modTime: time.Now().UTC()}
}

// Data returns the stored bytes and whether the object exists.
func (m *Memory) Data(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.objects[memoryKey(bucket, key)]
	return e.data, ok
}

// Gets is the number of GetObject calls.
func (m *Memory) Gets() int64 { return m.gets.Load() }

// OpenObjects is the number of objects returned by GetObject and not closed yet.
func (m *Memory) OpenObjects() int64 { return m.gets.Load() - m.closes.Load() }

// Uploads is the number of FPutObject calls.
func (m *Memory) Uploads() int64 { return m.uploads.Load() }

func (m *Memory) BucketExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (m *Memory) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	return nil
}

func (m *Memory) FPutObject(_ context.Context, bucketName, objectName, filePath string, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	m.uploads.Add(1)
	if m.PutErr != nil {
		return minio.UploadInfo{}, m.PutErr
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.Put(bucketName, objectName, data)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (m *Memory) GetObject(_ context.Context, bucketName, objectName string, _ minio.GetObjectOptions) (storage.Object, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.gets.Add(1)

	m.mu.Lock()
	e, ok := m.objects[memoryKey(bucketName, objectName)]
	m.mu.Unlock()

	obj := &memoryObject{owner: m, key: objectName}
	if ok {
		obj.entry = &e
		obj.reader = bytes.NewReader(e.data)
	}
	return obj, nil
}

func (m *Memory) RemoveObject(_ context.Context, bucketName, objectName string, _ minio.RemoveObjectOptions) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, memoryKey(bucketName, objectName))
	return nil
}

// memoryObject behaves like *minio.Object: a missing key only shows up on Stat or Read.
type memoryObject struct {
	owner  *Memory
	key    string
	entry  *memoryEntry
	reader *bytes.Reader
	closed atomic.Bool
}

func (o *memoryObject) notFound() error {
	return minio.ErrorResponse{Code: "NoSuchKey", Key: o.key, StatusCode: 404, Message: "The specified key does not exist."}
}

func (o *memoryObject) Read(p []byte) (int, error) {
	if o.entry == nil {
		return 0, o.notFound()
	}
	return o.reader.Read(p)
}

func (o *memoryObject) Close() error {
	if o.closed.CompareAndSwap(false, true) {
		o.owner.closes.Add(1)
	}
	return nil
}

func (o *memoryObject) Stat() (minio.ObjectInfo, error) {
	if o.entry == nil {
		return minio.ObjectInfo{}, o.notFound()
	}
	return minio.ObjectInfo{Key: o.key, Size: int64(len(o.entry.data)), LastModified: o.entry.modTime}, nil
}
