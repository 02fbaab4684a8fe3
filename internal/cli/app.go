package cli

import (
	"fmt"

	"semnotes/config"
	"semnotes/internal/adapter/embedding"
	"semnotes/internal/adapter/memstore"
	"semnotes/internal/adapter/store"
	"semnotes/internal/port"
	"semnotes/internal/usecase"
)

// app bundles the wired-up service with the handles the commands need to
// close afterwards.
type app struct {
	service  *usecase.Service
	embedder port.Embedder

	repo    port.NoteRepository
	vectors port.VectorIndex
}

// openApp builds the embedder and both stores from config, then reconciles
// their id spaces before handing out the service.
func openApp(showProgress bool) (*app, error) {
	cfg := GetConfig()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	dimension := embedder.Dimension()

	var (
		repo    port.NoteRepository
		vectors port.VectorIndex
	)
	switch cfg.Storage.Backend {
	case "bolt", "":
		if err := config.EnsureDataDir(rootDir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		notes, err := store.NewBoltNotes(config.NotesDBPath(rootDir))
		if err != nil {
			return nil, err
		}
		vectors, err = store.NewBoltVectors(notes.DB(), dimension)
		if err != nil {
			notes.Close()
			return nil, err
		}
		repo = notes
	case "sqlite":
		if err := config.EnsureDataDir(rootDir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		notes, err := store.NewSQLiteNotes(config.NotesDBPath(rootDir))
		if err != nil {
			return nil, err
		}
		vectors, err = store.NewBoltVectorsAt(config.VectorsDBPath(rootDir), dimension)
		if err != nil {
			notes.Close()
			return nil, err
		}
		repo = notes
	case "memory":
		repo = memstore.NewMemoryNotes()
		vectors = memstore.NewMemoryVectors(dimension)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	result, err := usecase.Reconcile(repo, vectors, embedder, showProgress)
	if err != nil {
		vectors.Close()
		repo.Close()
		return nil, fmt.Errorf("startup reconciliation failed: %w", err)
	}
	if showProgress && (result.Rebuilt > 0 || result.Orphans > 0) {
		fmt.Printf("Reconciled stores: %d vectors rebuilt, %d orphans dropped\n",
			result.Rebuilt, result.Orphans)
	}

	return &app{
		service:  usecase.NewService(repo, vectors, embedder),
		embedder: embedder,
		repo:     repo,
		vectors:  vectors,
	}, nil
}

func (a *app) Close() {
	a.vectors.Close()
	a.repo.Close()
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "ollama", "":
		e, err := embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
		if err != nil {
			return nil, err
		}
		return e.WithDimension(cfg.Embedding.Dimension), nil
	case "openai":
		e, err := embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model)
		if err != nil {
			return nil, err
		}
		return e.WithDimension(cfg.Embedding.Dimension), nil
	case "mock":
		dimension := cfg.Embedding.Dimension
		if dimension <= 0 {
			dimension = 384
		}
		return embedding.NewMockEmbedder(dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Embedding.Provider)
	}
}
