package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/postquery/internal/db"
)

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	c := mock.NewClient(gomock.NewController(t))
	return NewStoreForTest(c), c
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		result  rueidis.RedisResult
		wantErr bool
	}{
		{"pong", mock.Result(mock.RedisString("PONG")), false},
		{"timeout", mock.ErrorResult(context.DeadlineExceeded), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("PING")).Return(tc.result)

			err := s.Ping(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("Ping() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !isDBError(err, db.OpPing) {
				t.Errorf("expected db.Error{Op: PING}, got %v", err)
			}
		})
	}
}

func TestWaitForReady_RetriesUntilPong(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.ErrorResult(errors.New("connection refused"))).Times(2),
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisString("PONG"))),
	)

	if err := s.WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("connection refused"))).
		AnyTimes()

	err := s.WaitForReady(context.Background(), 200*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestGet(t *testing.T) {
	const key = "postquery:search:abc"
	tests := []struct {
		name      string
		result    rueidis.RedisResult
		want      string
		wantMiss  bool
		wantOpErr bool
	}{
		{name: "hit", result: mock.Result(mock.RedisBlobString(`[{"id":"p1"}]`)), want: `[{"id":"p1"}]`},
		{name: "miss", result: mock.Result(mock.RedisNil()), wantMiss: true},
		{name: "network error", result: mock.ErrorResult(context.DeadlineExceeded), wantOpErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("GET", key)).Return(tc.result)

			data, err := s.Get(context.Background(), key)
			switch {
			case tc.wantMiss:
				if !errors.Is(err, db.ErrKeyNotFound) {
					t.Errorf("expected ErrKeyNotFound, got %v", err)
				}
			case tc.wantOpErr:
				if errors.Is(err, db.ErrKeyNotFound) || !isDBError(err, db.OpGet) {
					t.Errorf("expected db.Error{Op: GET}, got %v", err)
				}
			default:
				if err != nil || string(data) != tc.want {
					t.Errorf("Get() = %q, %v", data, err)
				}
			}
		})
	}
}

func TestSetWithTTL_SendsExpiry(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "k", "[]", "EX", "300")).
		Return(mock.Result(mock.RedisString("OK")))

	if err := s.SetWithTTL(context.Background(), "k", []byte("[]"), 5*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetWithTTL_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "k"
		})).
		Return(mock.ErrorResult(errors.New("READONLY You can't write against a read only replica")))

	err := s.SetWithTTL(context.Background(), "k", []byte("v"), time.Minute)
	if !isDBError(err, db.OpSet) {
		t.Errorf("expected db.Error{Op: SET}, got %v", err)
	}
}

func isDBError(err error, op string) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr) && dbErr.Op == op
}
