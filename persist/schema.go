// Package persist implements the structure-only serialization format of
// §4.6 and an optional SQLite-backed store for named snapshots (§6.4,
// grounded on the teacher's texel/snapshot.go TreeCapture split between
// render state and structure).
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/texelation/multisplit/model"
)

// CurrentVersion is the schema version this package writes. Decode rejects
// any document whose version exceeds it.
const CurrentVersion uint16 = 1

// MaxIdentifierLength bounds pane_id and widget_id length on decode (§6.4:
// "max length 1 KiB enforced by the decoder").
const MaxIdentifierLength = 1024

// ErrUnsupportedVersion is returned by Decode when the document's version
// exceeds CurrentVersion.
var ErrUnsupportedVersion = errors.New("persist: unsupported schema version")

// ErrIdentifierTooLong is returned by Decode when a pane_id or widget_id
// exceeds MaxIdentifierLength.
var ErrIdentifierTooLong = errors.New("persist: identifier exceeds maximum length")

// DecodeError wraps a decode failure with the reason, matching §7's
// DecodeError(reason) kind.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("persist: decode failed: %s", e.Reason) }
func (e *DecodeError) Unwrap() error { return e.Err }

type wireTree struct {
	Version  uint16          `json:"version"`
	Revision uint64          `json:"revision"`
	Focused  *string         `json:"focused,omitempty"`
	Root     json.RawMessage `json:"root,omitempty"`
}

type wireNode struct {
	Kind        string          `json:"kind"`
	PaneID      string          `json:"pane_id,omitempty"`
	WidgetID    string          `json:"widget_id,omitempty"`
	Orientation string             `json:"orientation,omitempty"`
	Ratios      [2]float64         `json:"ratios"`
	Children    [2]json.RawMessage `json:"children"`
}

// Encode serializes tree per the §4.6 schema. If includeFocus is false,
// the focused field is omitted entirely rather than encoded as null,
// matching the save(include_focus bool) Open Question resolution in
// SPEC_FULL.md §D.
func Encode(tree *model.Tree, includeFocus bool) ([]byte, error) {
	out := wireTree{Version: CurrentVersion, Revision: tree.Revision}
	if includeFocus && tree.FocusedPane != "" {
		focused := string(tree.FocusedPane)
		out.Focused = &focused
	}
	if tree.Root != nil {
		raw, err := encodeNode(tree.Root)
		if err != nil {
			return nil, err
		}
		out.Root = raw
	}
	return json.Marshal(out)
}

func encodeNode(n *model.Node) (json.RawMessage, error) {
	if n.IsLeaf() {
		w := wireNode{Kind: "leaf", PaneID: string(n.Leaf.PaneID), WidgetID: string(n.Leaf.WidgetID)}
		return json.Marshal(w)
	}
	s := n.Split
	firstRaw, err := encodeNode(s.Children[0])
	if err != nil {
		return nil, err
	}
	secondRaw, err := encodeNode(s.Children[1])
	if err != nil {
		return nil, err
	}
	w := wireNode{
		Kind:        "split",
		Orientation: orientationString(s.Orientation),
		Ratios:      s.Ratios,
		Children:    [2]json.RawMessage{firstRaw, secondRaw},
	}
	return json.Marshal(w)
}

func orientationString(o model.Orientation) string {
	if o == model.Vertical {
		return "V"
	}
	return "H"
}

// Decode parses data per the §4.6 schema into a Tree, validating every
// structural invariant before returning it (model.Validate, plus
// identifier-length checks §6.4 imposes at the wire layer). Decode is
// all-or-nothing: any failure returns a non-nil error and a nil Tree.
func Decode(data []byte, epsilon float64) (*model.Tree, error) {
	var wt wireTree
	if err := json.Unmarshal(data, &wt); err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if wt.Version > CurrentVersion {
		return nil, &DecodeError{Reason: fmt.Sprintf("version %d exceeds supported %d", wt.Version, CurrentVersion), Err: ErrUnsupportedVersion}
	}

	tree := &model.Tree{Revision: wt.Revision}
	if wt.Focused != nil {
		tree.FocusedPane = model.PaneId(*wt.Focused)
	}
	if len(wt.Root) > 0 {
		root, err := decodeNode(wt.Root)
		if err != nil {
			return nil, err
		}
		tree.Root = root
	}

	if err := model.Validate(tree.Root, epsilon); err != nil {
		return nil, &DecodeError{Reason: "decoded tree violates an invariant", Err: err}
	}
	if err := model.ValidateFocus(tree.Root, tree.FocusedPane); err != nil {
		return nil, &DecodeError{Reason: "decoded focus does not refer to a live pane", Err: err}
	}
	return tree, nil
}

func decodeNode(raw json.RawMessage) (*model.Node, error) {
	var w wireNode
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &DecodeError{Reason: "invalid node", Err: err}
	}
	switch w.Kind {
	case "leaf":
		if len(w.PaneID) > MaxIdentifierLength || len(w.WidgetID) > MaxIdentifierLength {
			return nil, &DecodeError{Reason: "identifier exceeds maximum length", Err: ErrIdentifierTooLong}
		}
		return model.NewLeaf(model.PaneId(w.PaneID), model.WidgetId(w.WidgetID)), nil
	case "split":
		orientation, err := parseOrientation(w.Orientation)
		if err != nil {
			return nil, err
		}
		first, err := decodeNode(w.Children[0])
		if err != nil {
			return nil, err
		}
		second, err := decodeNode(w.Children[1])
		if err != nil {
			return nil, err
		}
		return model.NewSplit(orientation, first, second, w.Ratios), nil
	default:
		return nil, &DecodeError{Reason: fmt.Sprintf("unknown node kind %q", w.Kind)}
	}
}

func parseOrientation(s string) (model.Orientation, error) {
	switch s {
	case "V":
		return model.Vertical, nil
	case "H":
		return model.Horizontal, nil
	default:
		return 0, &DecodeError{Reason: fmt.Sprintf("unknown orientation %q", s)}
	}
}
