package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Backend tests run against live servers named by GEODRAW_TEST_REDIS
// (host:port) and GEODRAW_TEST_MONGO (a mongodb:// URI).

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key still present")
	}
	if err := c.Set(ctx, "k2", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if n, err := c.(Clearer).Clear(ctx); err != nil || n < 1 {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("GEODRAW_TEST_REDIS")
	if addr == "" {
		t.Skip("GEODRAW_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr, Prefix: "geodraw-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("GEODRAW_TEST_MONGO")
	if uri == "" {
		t.Skip("GEODRAW_TEST_MONGO not set")
	}
	c, err := NewMongoCache(context.Background(), MongoOptions{URI: uri, Database: "geodraw_test"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
