package bridge

import (
	"encoding/json"
	"testing"

	"storage-bridge/feature/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_StoredItem(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  inventory.Record
	}{
		{
			name:  "wrapped",
			frame: `{"type":"storedItem","data":{"id":"create:gear","amount":12,"fingerprint":"fp1","isCraftable":true,"isCrafting":false}}`,
			want:  inventory.Record{Fingerprint: "fp1", ItemID: "gear", ModID: "create", Amount: 12, IsCraftable: true},
		},
		{
			name:  "flat",
			frame: `{"type":"storedItem","id":"minecraft:stone","amount":0,"fingerprint":"fp2"}`,
			want:  inventory.Record{Fingerprint: "fp2", ItemID: "stone", ModID: "minecraft", Amount: 0},
		},
		{
			name:  "no mod prefix",
			frame: `{"type":"storedItem","data":{"id":"dirt","amount":3,"fingerprint":"fp3","isCraftable":1,"isCrafting":true}}`,
			want:  inventory.Record{Fingerprint: "fp3", ItemID: "dirt", ModID: "minecraft", Amount: 3, IsCraftable: true, IsCrafting: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode([]byte(tt.frame))
			require.NoError(t, err)
			assert.Equal(t, TypeStoredItem, in.Type)
			assert.Equal(t, tt.want, in.Record)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	frames := map[string]string{
		"not json":          `{{{`,
		"missing type":      `{"data":{}}`,
		"empty fingerprint": `{"type":"storedItem","data":{"id":"a:b","amount":1,"fingerprint":""}}`,
		"negative amount":   `{"type":"storedItem","data":{"id":"a:b","amount":-1,"fingerprint":"x"}}`,
		"missing amount":    `{"type":"storedItem","data":{"id":"a:b","fingerprint":"x"}}`,
		"empty item id":     `{"type":"storedItem","data":{"id":"mod:","amount":1,"fingerprint":"x"}}`,
		"wrong shape":       `{"type":"storedItem","data":{"id":5,"amount":1,"fingerprint":"x"}}`,
		"batch not array":   `{"type":"storedItems","data":{"id":"a:b"}}`,
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(frame))
			assert.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}

func TestDecode_Batch(t *testing.T) {
	frame := `{"type":"storedItems","data":[
		{"id":"minecraft:stone","amount":1,"fingerprint":"a"},
		{"id":"minecraft:stone","amount":-4,"fingerprint":"bad"},
		{"id":"minecraft:dirt","amount":2,"fingerprint":"b"},
		"garbage"
	]}`

	in, err := Decode([]byte(frame))
	require.NoError(t, err)
	assert.Equal(t, TypeStoredItems, in.Type)
	assert.Equal(t, 2, in.Dropped)
	require.Len(t, in.Records, 2)
	assert.Equal(t, "b", in.Records[1].Fingerprint)
}

func TestDecode_OtherTypes(t *testing.T) {
	in, err := Decode([]byte(`{"type":"storedItemEol"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeStoredItemEol, in.Type)

	in, err = Decode([]byte(`{"type":"gameChat","uuid":"u1","userName":"Steve","message":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, GameChat{UUID: "u1", UserName: "Steve", Message: "hi"}, in.Chat)

	in, err = Decode([]byte(`{"type":"updateLimits","limits":{}}`))
	require.NoError(t, err)
	assert.Equal(t, MessageType("updateLimits"), in.Type)
}

func TestSplitItemID(t *testing.T) {
	cases := map[string][2]string{
		"minecraft:stone":    {"minecraft", "stone"},
		"stone":              {"minecraft", "stone"},
		":stone":             {"minecraft", "stone"},
		"mod:item:variant":   {"mod", "item:variant"},
		"  create:cogwheel ": {"create", "cogwheel"},
	}
	for id, want := range cases {
		mod, item := SplitItemID(id)
		assert.Equal(t, want, [2]string{mod, item}, id)
	}
}

func TestCommandJSON(t *testing.T) {
	min, max := int64(0), int64(10)

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"craft", CraftItem("stone", "minecraft", 15), `{"type":"craftItem","itemId":"stone","modId":"minecraft","amount":15}`},
		{"set limit", SetLimit("fp", &min, &max), `{"type":"setLimit","fingerprint":"fp","min":0,"max":10}`},
		{"reset limit", SetLimit("fp", nil, nil), `{"type":"setLimit","fingerprint":"fp"}`},
		{"web chat", WebChat("op", "hello"), `{"type":"webChat","displayName":"op","content":"hello"}`},
		{"discard", DiscardItem(inventory.Decision{Fingerprint: "fp", ItemID: "stone", ModID: "minecraft", Amount: 50}),
			`{"type":"discardItem","fingerprint":"fp","itemId":"stone","modId":"minecraft","amount":50}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.cmd)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
