package squirreljson

import "fmt"

// View is a cursor onto one tape record. Views are cheap value types: they
// hold a Document pointer and a tape index, and reading one never decodes
// more than the record it points at. Reading the same View's RawBytes
// twice returns identical slices, since a View never mutates the
// Document it points into.
type View struct {
	doc   *Document
	index int
}

func (v View) record() Record {
	return v.doc.Tape.Records[v.index]
}

// Kind returns the kind of the record this View points at.
func (v View) Kind() Kind {
	return v.record().Kind
}

// Offset returns the record's starting byte offset in the Document's
// Buffer.
func (v View) Offset() int {
	return int(v.record().Offset)
}

// Length returns the record's byte span. It is meaningless for container
// records (ObjectBegin/ObjectEnd/ArrayBegin/ArrayEnd).
func (v View) Length() int {
	return int(v.record().Length)
}

// RawBytes returns the record's textual span from the underlying buffer.
// For strings and keys this includes the surrounding quotes and any
// escape sequences, undecoded: the caller decides whether and when to
// unescape.
func (v View) RawBytes() []byte {
	rec := v.record()
	return v.doc.Buffer[rec.Offset : rec.Offset+rec.Length]
}

// OwnedBytes returns this record's raw bytes, copied out of the
// Document's buffer when copyStrings is true. Adapters that hand values
// back to callers who might retain them past the Document's lifetime
// (e.g. ToExternalValue with ScanOptions.CopyStrings set) should use this
// instead of RawBytes.
func (v View) OwnedBytes(copyStrings bool) []byte {
	raw := v.RawBytes()
	if !copyStrings {
		return raw
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Skip returns a View positioned right after this record's full span: for
// a container, that's the record following its matching End, found in
// O(1) via the tape's Jump field; for anything else, it's simply the next
// tape record.
func (v View) Skip() View {
	rec := v.record()
	if rec.Kind.IsBegin() {
		return View{doc: v.doc, index: int(rec.Jump) + 1}
	}
	return View{doc: v.doc, index: v.index + 1}
}

// AsObject returns an iterator over this View's (key, value) members. It
// fails if the View's kind is not ObjectBegin.
func (v View) AsObject() (ObjectIter, error) {
	rec := v.record()
	if rec.Kind != ObjectBegin {
		return ObjectIter{}, fmt.Errorf("squirreljson: AsObject called on a %s view", rec.Kind)
	}
	return ObjectIter{doc: v.doc, pos: v.index + 1, end: int(rec.Jump)}, nil
}

// AsArray returns an iterator over this View's elements. It fails if the
// View's kind is not ArrayBegin.
func (v View) AsArray() (ArrayIter, error) {
	rec := v.record()
	if rec.Kind != ArrayBegin {
		return ArrayIter{}, fmt.Errorf("squirreljson: AsArray called on a %s view", rec.Kind)
	}
	return ArrayIter{doc: v.doc, pos: v.index + 1, end: int(rec.Jump)}, nil
}

// ObjectIter walks the (key, value) pairs of one object, in tape order.
type ObjectIter struct {
	doc *Document
	pos int
	end int
}

// Next returns the next member's key bytes (with the surrounding quotes
// excluded, undecoded otherwise) and a View onto its value. ok is false
// once every member has been visited.
func (it *ObjectIter) Next() (key []byte, value View, ok bool) {
	if it.pos >= it.end {
		return nil, View{}, false
	}
	keyRec := it.doc.Tape.Records[it.pos]
	// Key bytes exclude the surrounding quotes, since callers overwhelmingly
	// want to compare a key against a field name; RawBytes on the
	// underlying View is still available for callers that want the
	// quoted form.
	key = it.doc.Buffer[keyRec.Offset+1 : keyRec.Offset+keyRec.Length-1]
	valueIndex := it.pos + 1
	value = View{doc: it.doc, index: valueIndex}
	it.pos = value.Skip().index
	return key, value, true
}

// ArrayIter walks the elements of one array, in tape order.
type ArrayIter struct {
	doc *Document
	pos int
	end int
}

// Next returns a View onto the next element. ok is false once every
// element has been visited.
func (it *ArrayIter) Next() (value View, ok bool) {
	if it.pos >= it.end {
		return View{}, false
	}
	value = View{doc: it.doc, index: it.pos}
	it.pos = value.Skip().index
	return value, true
}
