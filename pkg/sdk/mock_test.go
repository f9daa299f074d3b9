package postquery

import (
	"context"

	"github.com/kailas-cloud/postquery/internal/domain/search/request"
	"github.com/kailas-cloud/postquery/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/postquery/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]result.Post, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Post, error) {
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- pinger mock ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

func newTestClient(search searchUseCase, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		panic(err)
	}
	return wireClient(&mockPinger{}, search, &mockHealthUC{}, cfg, nil, obs)
}
