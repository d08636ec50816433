package model

import "time"

// UnknownItemType labels fridge or cart entries whose type_id no longer resolves.
const UnknownItemType = "unknown"

// AssetRef points at a photo stored in the blob store. URL and Key always travel together.
type AssetRef struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type ItemType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Asset       *AssetRef `json:"asset,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type FridgeItem struct {
	ID         string    `json:"id"`
	TypeID     string    `json:"type_id"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	User       string    `json:"user"`
	ExpiryDate string    `json:"expiry_date,omitempty"`
	Asset      *AssetRef `json:"asset,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasAsset reports whether a photo is attached.
func (f FridgeItem) HasAsset() bool {
	return f.Asset != nil && f.Asset.Key != ""
}

type CartItem struct {
	ID        string    `json:"id"`
	TypeID    string    `json:"type_id"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// FridgeItemView joins a fridge entry with the name of its item type.
type FridgeItemView struct {
	FridgeItem
	TypeName string `json:"type_name"`
}

// CartItemView joins a cart entry with the name of its item type.
type CartItemView struct {
	CartItem
	TypeName string `json:"type_name"`
}

// FridgeItemInput carries the caller-editable fields of a fridge entry.
type FridgeItemInput struct {
	TypeID     string
	Quantity   float64
	Unit       string
	ExpiryDate string
}

// CartItemInput carries the caller-editable fields of a cart entry.
type CartItemInput struct {
	TypeID   string
	Quantity float64
	Unit     string
}

type ItemTypeInput struct {
	Name        string
	Description string
}
