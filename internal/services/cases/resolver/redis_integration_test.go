//go:build integration

package resolver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) (addr string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start redis container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port()), func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestRedisStore_Integration(t *testing.T) {
	addr, stop := startRedis(t)
	defer stop()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s := NewRedisStore(client, "", time.Second)
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss should be (false, nil), got %v %v", ok, err)
	}

	d := &fakeDispatcher{db: withSources("ds_shared")}
	r1 := New(d, s, Options{})
	r2 := New(d, s, Options{})
	if _, err := r1.Resolve(ctx, dbID); err != nil {
		t.Fatal(err)
	}
	got, err := r2.Resolve(ctx, dbID)
	if err != nil || got != "ds_shared" {
		t.Fatalf("second resolver should read the shared entry: %q %v", got, err)
	}
	if d.Calls() != 1 {
		t.Fatalf("expected one upstream read across resolvers, got %d", d.Calls())
	}
	if v, _ := client.Get(ctx, DefaultRedisPrefix+dbID).Result(); v != "ds_shared" {
		t.Fatalf("unexpected raw value %q", v)
	}

	if err := r1.Forget(ctx, dbID); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, dbID); ok {
		t.Fatal("Forget should delete the key")
	}

	_ = s.Set(ctx, "ttl", "x")
	time.Sleep(1500 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "ttl"); ok {
		t.Fatal("expected ttl expiry")
	}
}
