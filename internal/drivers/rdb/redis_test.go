package rdb

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-gateway/internal/config"
	"github.com/vlatan/transcript-gateway/internal/containers"
)

var ( // Package global variables
	testCfg        *config.Config
	testRdb        *Service
	baseCtx, noCtx context.Context
	skipReason     string
)

// Sets ups a Redis container for all tests in this package to use
func TestMain(m *testing.M) {
	// Deferred cleanup does not run past os.Exit
	os.Exit(runTests(m))
}

// runTests performs a setup and runs all the tests in this package
func runTests(m *testing.M) int {

	// Load the project's .env file, valid only for local test runs
	if projectRoot, err := containers.ProjectRoot(); err == nil {
		if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err != nil {
			log.Printf("failed to load .env file; %v", err)
		}
	}

	baseCtx = context.Background()

	c, cancel := context.WithCancel(baseCtx)
	noCtx = c
	cancel()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	testCfg = cfg

	setupCtx, setupCancel := context.WithTimeout(baseCtx, 2*time.Minute)
	defer setupCancel()

	// Without a container runtime only the tests that need no server run
	container, err := containers.StartRedis(setupCtx, testCfg)
	if err != nil {
		skipReason = err.Error()
		return m.Run()
	}
	defer container.Terminate(baseCtx)

	testRdb, err = New(testCfg)
	if err != nil {
		log.Fatalf("failed to create Redis client; %v", err)
	}
	defer testRdb.Close()

	return m.Run()
}

func requireRedis(t *testing.T) {
	t.Helper()
	if testRdb == nil {
		t.Skipf("redis container unavailable: %s", skipReason)
	}
}

func TestNewInvalid(t *testing.T) {

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"nil config", nil},
		{"no host", &config.Config{RedisPort: 6379}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("got nil error, want error")
			}
		})
	}
}

func TestNew(t *testing.T) {
	requireRedis(t)

	// Invalid host
	invalidHostCfg := *testCfg
	invalidHostCfg.RedisHost = "::invalid"

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{"invalid host", &invalidHostCfg, true},
		{"valid config", testCfg, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			rdb, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error on creation: %v", err)
			}
			t.Cleanup(func() { rdb.Close() })

			pingCtx, cancel := context.WithTimeout(baseCtx, 10*time.Second)
			t.Cleanup(cancel)

			// Connection errors only show up on the first command
			err = rdb.Client.Ping(pingCtx).Err()
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}
		})
	}
}

func TestIncrWithTTL(t *testing.T) {
	requireRedis(t)

	key := "test:incr:" + t.Name()
	t.Cleanup(func() { testRdb.Client.Del(baseCtx, key) })

	for want := int64(1); want <= 3; want++ {
		got, err := testRdb.IncrWithTTL(baseCtx, key, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}

	ttl, err := testRdb.Client.TTL(baseCtx, key).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("got ttl %v, want within (0, %v]", ttl, time.Minute)
	}

	if _, err := testRdb.IncrWithTTL(noCtx, key, time.Minute); err == nil {
		t.Errorf("got nil error with cancelled context, want error")
	}
}

func TestHealth(t *testing.T) {
	requireRedis(t)

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr bool
	}{
		{"cancelled context", noCtx, true},
		{"valid result", baseCtx, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := testRdb.Health(tt.ctx)
			if err, gotErr := stats["error"]; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}
		})
	}
}
