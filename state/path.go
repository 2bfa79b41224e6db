package state

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrPathNotFound is returned by Lookup when nothing exists at the path.
var ErrPathNotFound = errors.New("state: path not found")

// Paths use dotted gjson/sjson syntax, e.g. "主角.背包.长剑.数量". Dots and
// wildcards inside a key are escaped with a backslash.

// Lookup reads the value at path from the canonical encoding of d.
func Lookup(d Document, path string) (gjson.Result, error) {
	b, err := Marshal(d)
	if err != nil {
		return gjson.Result{}, err
	}
	res := gjson.GetBytes(b, path)
	if !res.Exists() {
		return res, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return res, nil
}

// Patch sets path in a raw document to value. The result is raw again;
// normalize it before trusting its shape.
func Patch(raw []byte, path string, value any) ([]byte, error) {
	out, err := sjson.SetBytes(orEmpty(raw), path, value)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", path, err)
	}
	return out, nil
}

// PatchRaw is Patch with an already encoded JSON value.
func PatchRaw(raw []byte, path string, value []byte) ([]byte, error) {
	if !gjson.ValidBytes(value) {
		return nil, fmt.Errorf("set %s: value is not valid JSON", path)
	}
	out, err := sjson.SetRawBytes(orEmpty(raw), path, value)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", path, err)
	}
	return out, nil
}

// Delete removes path from a raw document. Deleting a missing path is a no-op.
func Delete(raw []byte, path string) ([]byte, error) {
	out, err := sjson.DeleteBytes(orEmpty(raw), path)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", path, err)
	}
	return out, nil
}

func orEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}
