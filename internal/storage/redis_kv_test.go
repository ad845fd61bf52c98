package storage

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestRedisKVCRUD(t *testing.T) {
	url := os.Getenv("AITODO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("AITODO_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	kv, err := OpenRedis(ctx, url, "aitodo-test:"+t.Name()+":")
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer kv.Close()

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("get: %q %v", got, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
