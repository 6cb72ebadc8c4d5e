package document

import "unicode/utf8"

// TransformPath returns where p ends up after op. The boolean is false when
// op removed the node at p. Affinity only matters when op splits the node at
// p: Forward follows the new right-hand node.
func TransformPath(p Path, op Operation, aff Affinity) (Path, bool) {
	if len(p) == 0 {
		return p, true
	}
	out := p.Clone()

	switch op.Type {
	case OpInsertNode:
		o := op.Path
		if o.Equal(p) || o.EndsBefore(p) || o.IsAncestorOf(p) {
			out[len(o)-1]++
		}

	case OpRemoveNode:
		o := op.Path
		if o.Equal(p) || o.IsAncestorOf(p) {
			return nil, false
		}
		if o.EndsBefore(p) {
			out[len(o)-1]--
		}

	case OpMergeNode:
		o := op.Path
		if o.Equal(p) || o.EndsBefore(p) {
			out[len(o)-1]--
		} else if o.IsAncestorOf(p) {
			out[len(o)-1]--
			out[len(o)] += op.Position
		}

	case OpSplitNode:
		o := op.Path
		switch {
		case o.Equal(p):
			if aff == Forward {
				out[len(out)-1]++
			}
		case o.EndsBefore(p):
			out[len(o)-1]++
		case o.IsAncestorOf(p) && p[len(o)] >= op.Position:
			out[len(o)-1]++
			out[len(o)] -= op.Position
		}

	case OpMoveNode:
		o, onp := op.Path, op.NewPath
		if o.Equal(onp) {
			return out, true
		}
		if o.IsAncestorOf(p) || o.Equal(p) {
			cp := onp.Clone()
			if o.EndsBefore(onp) && len(o) < len(onp) {
				cp[len(o)-1]--
			}
			return append(cp, p[len(o):]...), true
		}
		switch {
		case o.IsSibling(onp) && (onp.IsAncestorOf(p) || onp.Equal(p)):
			if o.EndsBefore(p) {
				out[len(o)-1]--
			} else {
				out[len(o)-1]++
			}
		case onp.EndsBefore(p) || onp.Equal(p) || onp.IsAncestorOf(p):
			if o.EndsBefore(p) {
				out[len(o)-1]--
			}
			out[len(onp)-1]++
		case o.EndsBefore(p):
			if onp.Equal(p) {
				out[len(onp)-1]++
			}
			out[len(o)-1]--
		}
	}
	return out, true
}

// TransformPoint returns where pt ends up after op. The boolean is false
// when op removed the leaf holding pt.
func TransformPoint(pt Point, op Operation, aff Affinity) (Point, bool) {
	out := pt.Clone()

	switch op.Type {
	case OpInsertText:
		if op.Path.Equal(pt.Path) && (op.Offset < pt.Offset || (op.Offset == pt.Offset && aff == Forward)) {
			out.Offset += utf8.RuneCountInString(op.Text)
		}

	case OpRemoveText:
		if op.Path.Equal(pt.Path) && op.Offset <= pt.Offset {
			out.Offset -= min(pt.Offset-op.Offset, utf8.RuneCountInString(op.Text))
		}

	case OpMergeNode:
		if op.Path.Equal(pt.Path) {
			out.Offset += op.Position
		}
		out.Path, _ = TransformPath(pt.Path, op, aff)

	case OpSplitNode:
		if op.Path.Equal(pt.Path) {
			if op.Position < pt.Offset || (op.Position == pt.Offset && aff == Forward) {
				out.Offset -= op.Position
				out.Path, _ = TransformPath(pt.Path, op, Forward)
			}
			return out, true
		}
		out.Path, _ = TransformPath(pt.Path, op, aff)

	default:
		p, ok := TransformPath(pt.Path, op, aff)
		if !ok {
			return Point{}, false
		}
		out.Path = p
	}
	return out, true
}
