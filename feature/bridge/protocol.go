package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storage-bridge/core/utils"
	"storage-bridge/feature/inventory"
	"storage-bridge/feature/inventory/models"
)

// ErrMalformedMessage is returned for frames that cannot be decoded.
var ErrMalformedMessage = errors.New("malformed message")

// MessageType is the "type" field of every frame.
type MessageType string

// Inbound, from the storage system.
const (
	TypeStoredItem    MessageType = "storedItem"
	TypeStoredItemEol MessageType = "storedItemEol"
	TypeStoredItems   MessageType = "storedItems"
	TypeGameChat      MessageType = "gameChat"
)

// Outbound, to the storage system.
const (
	TypeCraftItem   MessageType = "craftItem"
	TypeSetLimit    MessageType = "setLimit"
	TypeDiscardItem MessageType = "discardItem"
	TypeWebChat     MessageType = "webChat"
)

// GameChat is a chat line typed in game.
type GameChat struct {
	UUID     string `json:"uuid"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// Inbound is one decoded frame. Only the field matching Type is set.
type Inbound struct {
	Type MessageType
	// Record is set for storedItem.
	Record inventory.Record
	// Records is set for storedItems.
	Records inventory.Snapshot
	// Dropped counts malformed entries skipped inside a storedItems batch.
	Dropped int
	// Chat is set for gameChat.
	Chat GameChat
}

type envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// wireItem accepts isCraftable as a bool or 0/1.
type wireItem struct {
	ID          string `json:"id"`
	Amount      *int64 `json:"amount"`
	Fingerprint string `json:"fingerprint"`
	IsCraftable any    `json:"isCraftable"`
	IsCrafting  any    `json:"isCrafting"`
}

// Decode parses one frame. Unknown types decode without error so callers can ignore them.
func Decode(frame []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if env.Type == "" {
		return Inbound{}, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}

	in := Inbound{Type: env.Type}
	switch env.Type {
	case TypeStoredItem:
		var w wireItem
		if err := json.Unmarshal(payload(env, frame), &w); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		rec, err := toRecord(w)
		if err != nil {
			return Inbound{}, err
		}
		in.Record = rec

	case TypeStoredItems:
		var items []json.RawMessage
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return Inbound{}, fmt.Errorf("%w: data is not an array: %v", ErrMalformedMessage, err)
		}
		in.Records = make(inventory.Snapshot, 0, len(items))
		for _, raw := range items {
			var w wireItem
			if err := json.Unmarshal(raw, &w); err != nil {
				in.Dropped++
				continue
			}
			rec, err := toRecord(w)
			if err != nil {
				in.Dropped++
				continue
			}
			in.Records = append(in.Records, rec)
		}

	case TypeGameChat:
		if err := json.Unmarshal(payload(env, frame), &in.Chat); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
	}

	return in, nil
}

// payload returns the data object when present, else the flat frame.
func payload(env envelope, frame []byte) []byte {
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return frame
	}
	return env.Data
}

func toRecord(w wireItem) (inventory.Record, error) {
	if w.Fingerprint == "" {
		return inventory.Record{}, fmt.Errorf("%w: empty fingerprint", ErrMalformedMessage)
	}
	if w.Amount == nil || *w.Amount < 0 {
		return inventory.Record{}, fmt.Errorf("%w: invalid amount for %s", ErrMalformedMessage, w.Fingerprint)
	}

	modID, itemID := SplitItemID(w.ID)
	if itemID == "" {
		return inventory.Record{}, fmt.Errorf("%w: empty item id for %s", ErrMalformedMessage, w.Fingerprint)
	}

	return inventory.Record{
		Fingerprint: w.Fingerprint,
		ItemID:      itemID,
		ModID:       modID,
		Amount:      *w.Amount,
		IsCraftable: utils.ToBool(w.IsCraftable),
		IsCrafting:  utils.ToBool(w.IsCrafting),
	}, nil
}

// SplitItemID splits "modId:itemId". Without a colon the mod defaults to minecraft.
func SplitItemID(id string) (modID, itemID string) {
	id = strings.TrimSpace(id)
	mod, item, found := strings.Cut(id, ":")
	if !found {
		return models.DefaultModID, id
	}
	if mod == "" {
		mod = models.DefaultModID
	}
	return mod, item
}

// Command is an outbound frame.
type Command struct {
	Type        MessageType `json:"type"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	ItemID      string      `json:"itemId,omitempty"`
	ModID       string      `json:"modId,omitempty"`
	Amount      int64       `json:"amount,omitempty"`
	Min         *int64      `json:"min,omitempty"`
	Max         *int64      `json:"max,omitempty"`
	DisplayName string      `json:"displayName,omitempty"`
	Content     string      `json:"content,omitempty"`
}

// CraftItem builds a craft request.
func CraftItem(itemID, modID string, amount int64) Command {
	return Command{Type: TypeCraftItem, ItemID: itemID, ModID: modID, Amount: amount}
}

// SetLimit builds a limit update. Nil bounds are omitted, so both nil resets the rule.
func SetLimit(fingerprint string, min, max *int64) Command {
	return Command{Type: TypeSetLimit, Fingerprint: fingerprint, Min: min, Max: max}
}

// DiscardItem builds a discard request for a max breach.
func DiscardItem(d inventory.Decision) Command {
	return Command{Type: TypeDiscardItem, Fingerprint: d.Fingerprint, ItemID: d.ItemID, ModID: d.ModID, Amount: d.Amount}
}

// WebChat builds a chat relay.
func WebChat(displayName, content string) Command {
	return Command{Type: TypeWebChat, DisplayName: displayName, Content: content}
}
