package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/service"
)

func seededOpen(t *testing.T) OpenFunc {
	t.Helper()

	now := time.Now().UTC()
	store := docstore.NewMemory(nil)
	seed := []struct {
		ago  time.Duration
		op   string
		item string
		user string
	}{
		{3 * time.Hour, "add", "Milk", "alice"},
		{2 * time.Hour, "modify", "Milk", "bob"},
		{90 * time.Minute, "add", "Ham", "bob"},
		{time.Hour, "delete", "Milk", "alice"},
		{40 * 24 * time.Hour, "add", "Milk", "old"},
	}
	for _, s := range seed {
		_, err := store.Seed(docstore.ChangeLog, now.Add(-s.ago), docstore.Fields{"op_type": s.op, "item": s.item, "user": s.user})
		require.NoError(t, err)
	}

	log := repository.NewChangeLogRepository(store)
	backend := Backend{
		Stats: service.NewStatsService(log, 0, nil, nil, nil),
		Query: service.NewQueryService(repository.NewItemTypeRepository(store), repository.NewFridgeRepository(store),
			repository.NewCartRepository(store), log, 0, nil),
	}
	return func(context.Context) (Backend, func(), error) {
		return backend, func() {}, nil
	}
}

func run(t *testing.T, open OpenFunc, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsText(t *testing.T) {
	out, err := run(t, seededOpen(t), "stats", "--sort", "item")
	require.NoError(t, err)

	assert.Contains(t, out, "ITEM")
	assert.Regexp(t, `Ham\s+1\s+0\s+0\s+bob`, out)
	assert.Regexp(t, `Milk\s+1\s+1\s+1\s+alice`, out)
	assert.NotContains(t, out, "old")
}

func TestStatsJSONAndYAML(t *testing.T) {
	out, err := run(t, seededOpen(t), "stats", "--filter", "MILK", "-o", "json")
	require.NoError(t, err)

	var parsed struct {
		Stats []struct {
			Item    string `json:"item"`
			TopUser string `json:"top_user"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Stats, 1)
	assert.Equal(t, "alice", parsed.Stats[0].TopUser)

	out, err = run(t, seededOpen(t), "stats", "-o", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "window")
	assert.Len(t, doc["stats"], 2)
}

func TestChangeLogNewestFirstWithLimit(t *testing.T) {
	out, err := run(t, seededOpen(t), "changelog", "--limit", "2", "-o", "json")
	require.NoError(t, err)

	var entries []struct {
		OpType string `json:"op_type"`
		Item   string `json:"item"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].OpType)
	assert.Equal(t, "Ham", entries[1].Item)
}

func TestRejectsBadInput(t *testing.T) {
	_, err := run(t, seededOpen(t), "stats", "-o", "xml")
	require.Error(t, err)

	_, err = run(t, seededOpen(t), "stats", "--sort", "user")
	require.Error(t, err)

	_, err = run(t, seededOpen(t), "stats", "--start", "last week")
	require.Error(t, err)

	_, err = run(t, seededOpen(t), "changelog", "--start", "2026-02-01", "--end", "2026-01-01")
	require.Error(t, err)
}
