package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
)

// schemaVersion is written into every document. Documents without the field
// are version 0 and use the legacy photo_url/blob_name asset keys.
const schemaVersion = 1

// quantity accepts both JSON numbers and numeric strings.
type quantity float64

func (q *quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("parse quantity %q: %w", s, err)
		}
		*q = quantity(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = quantity(v)
	return nil
}

type assetColumns struct {
	AssetURL *string `json:"asset_url"`
	AssetKey *string `json:"asset_key"`
	PhotoURL *string `json:"photo_url,omitempty"`
	BlobName *string `json:"blob_name,omitempty"`
}

func (a assetColumns) ref() *model.AssetRef {
	url, key := deref(a.AssetURL), deref(a.AssetKey)
	if key == "" && url == "" {
		url, key = deref(a.PhotoURL), deref(a.BlobName)
	}
	if key == "" {
		return nil
	}
	return &model.AssetRef{URL: url, Key: key}
}

func assetFields(ref *model.AssetRef) docstore.Fields {
	if ref == nil || ref.Key == "" {
		return docstore.Fields{"asset_url": nil, "asset_key": nil}
	}
	return docstore.Fields{"asset_url": ref.URL, "asset_key": ref.Key}
}

type itemTypeRecord struct {
	Schema      int    `json:"schema"`
	Name        string `json:"name"`
	Description string `json:"description"`
	assetColumns
}

type fridgeItemRecord struct {
	Schema     int      `json:"schema"`
	TypeID     string   `json:"type_id"`
	Quantity   quantity `json:"quantity"`
	Unit       string   `json:"unit"`
	User       string   `json:"user"`
	ExpiryDate *string  `json:"expiry_date"`
	assetColumns
}

type cartItemRecord struct {
	Schema   int      `json:"schema"`
	TypeID   string   `json:"type_id"`
	Quantity quantity `json:"quantity"`
	Unit     string   `json:"unit"`
	User     string   `json:"user"`
}

type logEntryRecord struct {
	Schema       int    `json:"schema"`
	OpType       string `json:"op_type"`
	Item         string `json:"item"`
	OldValue     string `json:"old_value"`
	NewValue     string `json:"new_value"`
	ChangedValue string `json:"changed_value"`
	User         string `json:"user"`
}

func decode(doc docstore.Document, target any, schemaOf func() int) error {
	if err := doc.Decode(target); err != nil {
		return err
	}
	if v := schemaOf(); v > schemaVersion {
		return fmt.Errorf("document %s has schema %d: %w", doc.ID, v, model.ErrUnsupportedSchema)
	}
	return nil
}

func decodeItemType(doc docstore.Document) (model.ItemType, error) {
	var rec itemTypeRecord
	if err := decode(doc, &rec, func() int { return rec.Schema }); err != nil {
		return model.ItemType{}, err
	}
	return model.ItemType{
		ID:          doc.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Asset:       rec.ref(),
		CreatedAt:   doc.CreatedAt,
	}, nil
}

func itemTypeFields(in model.ItemTypeInput) docstore.Fields {
	return docstore.Fields{
		"schema":      schemaVersion,
		"name":        in.Name,
		"description": in.Description,
	}
}

func decodeFridgeItem(doc docstore.Document) (model.FridgeItem, error) {
	var rec fridgeItemRecord
	if err := decode(doc, &rec, func() int { return rec.Schema }); err != nil {
		return model.FridgeItem{}, err
	}
	return model.FridgeItem{
		ID:         doc.ID,
		TypeID:     rec.TypeID,
		Quantity:   float64(rec.Quantity),
		Unit:       rec.Unit,
		User:       rec.User,
		ExpiryDate: deref(rec.ExpiryDate),
		Asset:      rec.ref(),
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func fridgeItemFields(in model.FridgeItemInput) docstore.Fields {
	return docstore.Fields{
		"schema":      schemaVersion,
		"quantity":    in.Quantity,
		"unit":        in.Unit,
		"expiry_date": optional(in.ExpiryDate),
	}
}

func decodeCartItem(doc docstore.Document) (model.CartItem, error) {
	var rec cartItemRecord
	if err := decode(doc, &rec, func() int { return rec.Schema }); err != nil {
		return model.CartItem{}, err
	}
	return model.CartItem{
		ID:        doc.ID,
		TypeID:    rec.TypeID,
		Quantity:  float64(rec.Quantity),
		Unit:      rec.Unit,
		User:      rec.User,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func decodeLogEntry(doc docstore.Document) (model.LogEntry, error) {
	var rec logEntryRecord
	if err := decode(doc, &rec, func() int { return rec.Schema }); err != nil {
		return model.LogEntry{}, err
	}
	return model.LogEntry{
		ID:           doc.ID,
		OpType:       model.OpType(rec.OpType),
		Item:         rec.Item,
		OldValue:     rec.OldValue,
		NewValue:     rec.NewValue,
		ChangedValue: rec.ChangedValue,
		User:         rec.User,
		Time:         doc.CreatedAt,
	}, nil
}

func logEntryFields(entry model.LogEntry) docstore.Fields {
	return docstore.Fields{
		"schema":        schemaVersion,
		"op_type":       string(entry.OpType),
		"item":          entry.Item,
		"old_value":     entry.OldValue,
		"new_value":     entry.NewValue,
		"changed_value": entry.ChangedValue,
		"user":          entry.User,
	}
}

func merge(dst docstore.Fields, src docstore.Fields) docstore.Fields {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
