package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/changelog"
	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fixture struct {
	store  *docstore.MemoryStore
	blobs  blob.Store
	bus    *event.InMemoryBus
	types  *repository.ItemTypeRepository
	fridge *repository.FridgeRepository
	cart   *repository.CartRepository
	log    *repository.ChangeLogRepository

	fridgeSvc *FridgeService
	cartSvc   *CartService
	typeSvc   *ItemTypeService
	query     *QueryService
}

func newFixture(t *testing.T, blobs blob.Store) *fixture {
	t.Helper()

	if blobs == nil {
		blobs = blob.NewMemory("http://cdn.local")
	}
	store := docstore.NewMemory(nil)
	f := &fixture{
		store:  store,
		blobs:  blobs,
		bus:    event.NewBus(),
		types:  repository.NewItemTypeRepository(store),
		fridge: repository.NewFridgeRepository(store),
		cart:   repository.NewCartRepository(store),
		log:    repository.NewChangeLogRepository(store),
	}

	assets := asset.NewManager(blobs, asset.Options{}, nil)
	recorder := changelog.NewRecorder(f.log, f.bus, nil, nil)
	f.fridgeSvc = NewFridgeService(f.fridge, f.types, assets, recorder, nil, nil)
	f.cartSvc = NewCartService(f.cart, f.fridge, f.bus, nil, nil)
	f.typeSvc = NewItemTypeService(f.types, assets, f.bus, nil, nil)
	f.query = NewQueryService(f.types, f.fridge, f.cart, f.log, DefaultStatsWindow, nil)
	return f
}

func (f *fixture) itemType(t *testing.T, name string) model.ItemType {
	t.Helper()

	itemType, err := f.types.Create(context.Background(), model.ItemTypeInput{Name: name}, nil)
	require.NoError(t, err)
	return itemType
}

func (f *fixture) entries(t *testing.T) []model.LogEntry {
	t.Helper()

	entries, err := f.log.Range(context.Background(), time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return entries
}

func photo(name string) *asset.Upload {
	data := append([]byte{}, pngHeader...)
	return &asset.Upload{Filename: name, ContentType: "image/png", Size: int64(len(data)), Body: bytes.NewReader(data)}
}
