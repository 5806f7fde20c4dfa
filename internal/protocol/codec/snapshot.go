// Package codec serializes game snapshots in the protobuf wire format.
//
//	message Snapshot {
//	  bytes  game_id        = 1;
//	  uint64 current_player = 2;
//	  repeated Player players = 3;
//	  repeated Card   cards   = 4;
//	}
//	message Player { uint64 level = 1; }
//	message Card {
//	  string id       = 1;
//	  sint64 state    = 2; // state.Layout encoding, -1 for the deck
//	  uint64 position = 3;
//	  bool   active   = 4;
//	  bool   open     = 5;
//	}
package codec

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/engine"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

const (
	fieldGameID        protowire.Number = 1
	fieldCurrentPlayer protowire.Number = 2
	fieldPlayers       protowire.Number = 3
	fieldCards         protowire.Number = 4

	fieldPlayerLevel protowire.Number = 1

	fieldCardID       protowire.Number = 1
	fieldCardState    protowire.Number = 2
	fieldCardPosition protowire.Number = 3
	fieldCardActive   protowire.Number = 4
	fieldCardOpen     protowire.Number = 5
)

var errWireType = errors.New("unexpected wire type")

// EncodeSnapshot serializes snap. Card states are encoded with layout and
// must be valid for it.
func EncodeSnapshot(layout state.Layout, snap *engine.Snapshot) ([]byte, error) {
	b := make([]byte, 0, 16*len(snap.Cards)+32)
	b = protowire.AppendTag(b, fieldGameID, protowire.BytesType)
	b = protowire.AppendBytes(b, snap.GameID[:])
	b = protowire.AppendTag(b, fieldCurrentPlayer, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(snap.CurrentPlayer))

	scratch := GetBuffer()
	defer PutBuffer(scratch)

	for _, p := range snap.Players {
		m := (*scratch)[:0]
		m = protowire.AppendTag(m, fieldPlayerLevel, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(p.Level))
		b = protowire.AppendTag(b, fieldPlayers, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
		*scratch = m
	}

	for _, c := range snap.Cards {
		if err := layout.Validate(c.State); err != nil {
			return nil, err
		}
		m := encodeCard((*scratch)[:0], layout, c)
		b = protowire.AppendTag(b, fieldCards, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
		*scratch = m
	}
	return b, nil
}

func encodeCard(b []byte, layout state.Layout, c state.Card) []byte {
	b = protowire.AppendTag(b, fieldCardID, protowire.BytesType)
	b = protowire.AppendString(b, c.ID())
	b = protowire.AppendTag(b, fieldCardState, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(layout.Encode(c.State))))
	b = protowire.AppendTag(b, fieldCardPosition, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Position))
	b = protowire.AppendTag(b, fieldCardActive, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(c.Active))
	b = protowire.AppendTag(b, fieldCardOpen, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(c.Open))
	return b
}

// DecodeSnapshot parses data produced by EncodeSnapshot. Unknown fields are
// skipped. Every failure wraps apperrors.ErrInvalidSnapshot; the result is
// not checked for game consistency, engine.Restore does that.
func DecodeSnapshot(layout state.Layout, data []byte) (*engine.Snapshot, error) {
	snap := &engine.Snapshot{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldGameID:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			id, err := uuid.FromBytes(v)
			if err != nil {
				return 0, err
			}
			snap.GameID = id
			return n, nil
		case fieldCurrentPlayer:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			snap.CurrentPlayer = int(v)
			return n, nil
		case fieldPlayers:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			p, err := decodePlayer(v)
			if err != nil {
				return 0, err
			}
			snap.Players = append(snap.Players, p)
			return n, nil
		case fieldCards:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			c, err := decodeCard(layout, v)
			if err != nil {
				return 0, err
			}
			snap.Cards = append(snap.Cards, c)
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidSnapshot, err)
	}
	return snap, nil
}

func decodePlayer(data []byte) (engine.Player, error) {
	var p engine.Player
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldPlayerLevel {
			return 0, nil
		}
		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return 0, err
		}
		p.Level = int(v)
		return n, nil
	})
	return p, err
}

func decodeCard(layout state.Layout, data []byte) (state.Card, error) {
	var (
		c     state.Card
		id    string
		code  = int64(state.NoCode)
		hasID bool
	)
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldCardID:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			id, hasID = string(v), true
			return n, nil
		case fieldCardState, fieldCardPosition, fieldCardActive, fieldCardOpen:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			switch num {
			case fieldCardState:
				code = protowire.DecodeZigZag(v)
			case fieldCardPosition:
				c.Position = int(v)
			case fieldCardActive:
				c.Active = protowire.DecodeBool(v)
			case fieldCardOpen:
				c.Open = protowire.DecodeBool(v)
			}
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return c, err
	}
	if !hasID {
		return c, errors.New("card without id")
	}

	if c.Card, err = card.ParseID(id); err != nil {
		return c, err
	}
	if c.State, err = layout.Decode(int(code)); err != nil {
		return c, err
	}
	return c, nil
}

// walk calls fn for every field in b. fn returns how many bytes of the field
// value it consumed; 0 means the field is unknown and is skipped.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}
