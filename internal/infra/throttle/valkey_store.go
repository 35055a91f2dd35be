package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/todo-api/internal/domain/auth"
)

// ValkeyStore keeps failed login counters in a Valkey-compatible database so
// that every replica sees the same lockout state.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "todo"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Failures(ctx context.Context, key string) (int, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.attemptKey(key)).Build())
	count, err := resp.AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return int(count), nil
}

// recordFailureScript increments the counter and arms its expiry in one step.
// A counter found without a TTL is re-armed so it can never outlive the window.
var recordFailureScript = valkey.NewLuaScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 or redis.call('TTL', KEYS[1]) < 0 then
  redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

func (s *ValkeyStore) RecordFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	if window < time.Second {
		window = time.Second
	}
	seconds := strconv.FormatInt(int64(window/time.Second), 10)
	count, err := recordFailureScript.Exec(ctx, s.client, []string{s.attemptKey(key)}, []string{seconds}).AsInt64()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *ValkeyStore) Reset(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.attemptKey(key)).Build()).Error()
}

func (s *ValkeyStore) attemptKey(key string) string {
	return fmt.Sprintf("%s:login:attempts:%s", s.prefix, key)
}

var _ auth.AttemptStore = (*ValkeyStore)(nil)
