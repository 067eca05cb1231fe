package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Adda-Baaj/nievex-client/internal/config"
	"github.com/Adda-Baaj/nievex-client/internal/history"
	"github.com/Adda-Baaj/nievex-client/internal/logger"
	"github.com/Adda-Baaj/nievex-client/pkg/api"
	"github.com/Adda-Baaj/nievex-client/pkg/publishers"
)

// Service wires the API client with the local history and event publishers.
// Remote failures are returned unchanged. History and notification failures
// are logged and never fail the operation.
type Service struct {
	client *api.Client
	fanout *publishers.Fanout
	log    logger.Logger

	// The history store is opened on first use so commands that never touch
	// it (health) do not take the bbolt file lock.
	openStore func() (history.Store, error)
	storeOnce sync.Once
	store     history.Store
	storeErr  error
}

// NewService builds a service runtime from config. clientOpts are applied after
// the logger option and exist mainly to point the client at another host.
func NewService(ctx context.Context, cfg *config.Config, log logger.Logger, clientOpts ...api.Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := api.New(append([]api.Option{api.WithLogger(log)}, clientOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	openStore := func() (history.Store, error) {
		store, err := history.NewStore(cfg.HistoryType, cfg.HistoryPath, history.Options{
			EntryTTL:        cfg.HistoryTTL,
			CleanupInterval: cfg.HistoryCleanupInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		log.DebugObj("history opened", "history_config", map[string]any{
			"type":        cfg.HistoryType,
			"path":        cfg.HistoryPath,
			"ttl_seconds": int(cfg.HistoryTTL.Seconds()),
		})
		return store, nil
	}

	return newService(client, openStore, fanout, log), nil
}

func newService(client *api.Client, openStore func() (history.Store, error), fanout *publishers.Fanout, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if openStore == nil {
		openStore = func() (history.Store, error) { return history.NewStore("none", "", history.Options{}) }
	}
	return &Service{
		client:    client,
		fanout:    fanout,
		log:       log,
		openStore: openStore,
	}
}

// historyStore opens the store once. A failed open is logged and remembered;
// every later call reports the same error.
func (s *Service) historyStore() (history.Store, error) {
	s.storeOnce.Do(func() {
		s.store, s.storeErr = s.openStore()
		if s.storeErr != nil {
			s.log.WarnObj("history unavailable", "history_error", map[string]any{
				"error": s.storeErr.Error(),
			})
		}
	})
	return s.store, s.storeErr
}

// buildFanout loads the publishers file. An empty path disables notifications.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	cfgs, err := publishers.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}

	pubClients, err := publishers.DefaultBuilders().Build(ctx, cfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(cfgs))
	for _, pubCfg := range cfgs {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.DebugObj("publishers loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Upload sends the file at path to the CDN.
func (s *Service) Upload(ctx context.Context, path string) (api.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	return s.UploadReader(ctx, filepath.Base(path), f)
}

// UploadReader sends r to the CDN under name.
func (s *Service) UploadReader(ctx context.Context, name string, r io.Reader) (api.Payload, error) {
	payload, err := s.client.UploadFile(ctx, name, r)
	if err != nil {
		return nil, err
	}
	s.afterSuccess(ctx, history.KindUpload, publishers.KindFileUploaded, name, payload)
	return payload, nil
}

// Shorten creates a short link for url. An empty customID lets the service pick one.
func (s *Service) Shorten(ctx context.Context, url, customID string) (api.Payload, error) {
	payload, err := s.client.CreateShortURL(ctx, url, api.WithCustomID(customID))
	if err != nil {
		return nil, err
	}
	s.afterSuccess(ctx, history.KindShortURL, publishers.KindShortURLCreated, url, payload)
	return payload, nil
}

// Health checks the remote service.
func (s *Service) Health(ctx context.Context) (api.Payload, error) {
	return s.client.CheckHealth(ctx)
}

// History lists recorded operations, oldest first.
func (s *Service) History() ([]history.Entry, error) {
	store, err := s.historyStore()
	if err != nil {
		return nil, err
	}
	entries, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Close releases the history store and publishers.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publishers close failed", "error", err)
		firstErr = err
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.ErrorObj("history close failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// afterSuccess journals the operation and notifies the publishers under one id.
func (s *Service) afterSuccess(ctx context.Context, kind history.Kind, eventKind, subject string, payload api.Payload) {
	evt := publishers.NewEvent(eventKind, subject, payload)

	if store, err := s.historyStore(); err == nil {
		s.record(store, history.Entry{
			ID:        evt.ID,
			Kind:      kind,
			Subject:   subject,
			Response:  evt.Response,
			CreatedAt: evt.CreatedAt,
		})
	}

	if s.fanout.Size() == 0 {
		return
	}
	delivered, err := s.fanout.Publish(ctx, evt)
	if err != nil {
		s.log.WarnObj("event publish failed", "publish_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	s.log.DebugObj("event published", "publish_result", map[string]any{
		"event_id":  evt.ID,
		"delivered": delivered,
	})
}

func (s *Service) record(store history.Store, e history.Entry) {
	if err := store.Record(e); err != nil {
		s.log.WarnObj("history record failed", "history_error", map[string]any{
			"entry_id": e.ID,
			"error":    err.Error(),
		})
	}
}
