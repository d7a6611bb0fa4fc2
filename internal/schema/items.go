// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import (
	"errors"
	"fmt"

	"pagesmith/internal/models"
)

var (
	// ErrIndexOutOfRange is returned when an item index is outside the list.
	ErrIndexOutOfRange = errors.New("item index out of range")
	// ErrUnknownField is returned for list or field names the kind does not declare.
	ErrUnknownField = errors.New("unknown field")
)

// ItemOp selects the collection operation performed by ApplyEdit.
type ItemOp string

const (
	ItemInsert ItemOp = "insert"
	ItemUpdate ItemOp = "update"
	ItemRemove ItemOp = "remove"
)

// ItemEdit is a positional change to one of a section's item collections.
// For inserts, Index -1 appends and a nil Item uses the list's starter
// entry. For updates, Field names the item field set to Value.
type ItemEdit struct {
	List  string      `json:"list"`
	Op    ItemOp      `json:"op"`
	Index int         `json:"index"`
	Field string      `json:"field,omitempty"`
	Value string      `json:"value,omitempty"`
	Item  models.Item `json:"item,omitempty"`
}

// ApplyEdit returns a copy of c with the edit applied. The input record is
// never modified.
func ApplyEdit(c models.Content, e ItemEdit) (models.Content, error) {
	field, ok := For(c.Kind()).List(e.List)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no list %q", ErrUnknownField, c.Kind(), e.List)
	}
	out, ok := c.Clone().(models.Lister)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no lists", ErrUnknownField, c.Kind())
	}
	items, _ := out.Items(e.List)

	switch e.Op {
	case ItemInsert:
		item := e.Item
		if item == nil {
			item, _ = NewItem(e.List)
		}
		for k := range item {
			if !hasField(field, k) {
				return nil, fmt.Errorf("%w: %s item has no field %q", ErrUnknownField, e.List, k)
			}
		}
		items, err := InsertAt(items, e.Index, item)
		if err != nil {
			return nil, err
		}
		out.SetItems(e.List, items)
	case ItemUpdate:
		if !hasField(field, e.Field) {
			return nil, fmt.Errorf("%w: %s item has no field %q", ErrUnknownField, e.List, e.Field)
		}
		items, err := UpdateAt(items, e.Index, e.Field, e.Value)
		if err != nil {
			return nil, err
		}
		out.SetItems(e.List, items)
	case ItemRemove:
		items, err := RemoveAt(items, e.Index)
		if err != nil {
			return nil, err
		}
		out.SetItems(e.List, items)
	default:
		return nil, fmt.Errorf("unknown item operation %q", e.Op)
	}
	return out, nil
}

func hasField(f Field, name string) bool {
	for _, sub := range f.Item {
		if sub.Name == name {
			return true
		}
	}
	return false
}

// InsertAt inserts item before position index. An index of -1 or len(items)
// appends.
func InsertAt(items []models.Item, index int, item models.Item) ([]models.Item, error) {
	if index == -1 {
		index = len(items)
	}
	if index < 0 || index > len(items) {
		return nil, fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfRange, index, len(items))
	}
	out := make([]models.Item, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	return append(out, items[index:]...), nil
}

// UpdateAt sets one field of the item at index.
func UpdateAt(items []models.Item, index int, field, value string) ([]models.Item, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: update at %d, length %d", ErrIndexOutOfRange, index, len(items))
	}
	out := append([]models.Item(nil), items...)
	updated := make(models.Item, len(out[index])+1)
	for k, v := range out[index] {
		updated[k] = v
	}
	updated[field] = value
	out[index] = updated
	return out, nil
}

// RemoveAt deletes the item at index. Later items shift down by one.
func RemoveAt(items []models.Item, index int) ([]models.Item, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: remove at %d, length %d", ErrIndexOutOfRange, index, len(items))
	}
	out := make([]models.Item, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...), nil
}
