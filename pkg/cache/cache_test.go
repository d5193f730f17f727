package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = (%q, %v), want miss", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() failed: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit, want miss")
	}

	if err := c.Set(ctx, "github:pull:1", []byte("body"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	data, hit, err := c.Get(ctx, "github:pull:1")
	if err != nil || !hit {
		t.Fatalf("Get() = (_, %v, %v), want hit", hit, err)
	}
	if string(data) != "body" {
		t.Errorf("Get() = %q, want %q", data, "body")
	}

	if err := c.Delete(ctx, "github:pull:1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "github:pull:1"); hit {
		t.Error("Get() after Delete hit, want miss")
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned as hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("not json"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = (_, %v, %v), want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c, err := NewRedisCache(ctx, "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache() failed: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get() = (_, %v, %v), want clean miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get() = (%q, %v, %v), want (v, true, nil)", data, hit, err)
	}
	if !srv.Exists("woo-release:k") {
		t.Error("key not stored under woo-release: prefix")
	}

	srv.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() after TTL hit, want miss")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "://nope"); err == nil {
		t.Error("NewRedisCache() with bad url succeeded, want error")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	type body struct{ Text string }
	key := Key("github", "pull", "woocommerce/woocommerce", "42")
	if key != "github:pull:woocommerce/woocommerce:42" {
		t.Errorf("Key() = %q", key)
	}

	size, err := SetJSON(ctx, c, key, body{Text: "hello"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if size != len(`{"Text":"hello"}`) {
		t.Errorf("SetJSON() size = %d", size)
	}
	var got body
	hit, err := GetJSON(ctx, c, key, &got)
	if err != nil || !hit {
		t.Fatalf("GetJSON() = (%v, %v), want hit", hit, err)
	}
	if got.Text != "hello" {
		t.Errorf("GetJSON() Text = %q, want %q", got.Text, "hello")
	}

	hit, _ = GetJSON(ctx, NewNullCache(), key, &got)
	if hit {
		t.Error("GetJSON() on NullCache hit, want miss")
	}
}

func TestFileCachePathLayout(t *testing.T) {
	c := &FileCache{dir: "/cache"}
	p := c.path("github:pull:woocommerce/woocommerce:1")
	if p != c.path("github:pull:woocommerce/woocommerce:1") {
		t.Error("path() should be deterministic")
	}
	if p == c.path("github:pull:woocommerce/woocommerce:2") {
		t.Error("different keys should map to different files")
	}
	rel, _ := filepath.Rel("/cache", p)
	dir, file := filepath.Split(rel)
	if len(dir) != 3 || len(file) != 62+len(".json") {
		t.Errorf("path() = %q, want <2 hex>/<62 hex>.json", rel)
	}
}
