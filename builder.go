package squirreljson

// parserState tracks what kind of token the builder expects next: a key,
// a value, a separator, or the top-level start/end of the document. The
// builder below is a direct, table-driven state machine over these states.
type parserState uint8

const (
	stTopStart parserState = iota
	stInObjectKey
	stInObjectAfterKey
	stInObjectValue
	stInObjectAfterValue
	stInArray
	stInArrayAfterValue
	stDone
)

// classifyAll runs the block classifier and the string-mask resolver over
// the whole buffer, producing a structural bitset (with in-string bytes
// already excluded) and a real-quote bitset. It returns a *ScanError with
// CauseTruncated if the buffer ends mid-string.
func classifyAll(buf []byte) (structBits, quoteBits bitset, err *ScanError) {
	numBlocks := (len(buf) + blockWidth - 1) / blockWidth
	structBits = newBitset(numBlocks)
	quoteBits = newBitset(numBlocks)

	var state stringMaskState
	var scratch [blockWidth]byte
	for blk := 0; blk < numBlocks; blk++ {
		start := blk * blockWidth
		end := start + blockWidth
		var block []byte
		if end <= len(buf) {
			block = buf[start:end]
		} else {
			for i := range scratch {
				scratch[i] = 0
			}
			copy(scratch[:], buf[start:])
			block = scratch[:]
		}
		m := classifyBlock(block)
		_, sm, rq := state.resolve(m)
		structBits.words[blk] = sm
		quoteBits.words[blk] = rq
	}

	if state.truncated() {
		return structBits, quoteBits, newScanError(CauseTruncated, len(buf))
	}
	return structBits, quoteBits, nil
}

// buildInto walks the structural and real-quote bitsets in byte order and
// emits tape records, maintaining an explicit frame stack for container
// nesting. It never recurses. Records are appended onto dst, which lets a
// caller pre-size or reuse the backing array instead of always starting
// from a fresh nil slice.
func buildInto(buf []byte, structBits, quoteBits bitset, checked bool, dst []Record) ([]Record, *ScanError) {
	cur := newRawCursor(buf, checked)

	tape := dst
	var stack frameStack
	state := stTopStart
	pos := 0

	for {
		sp := structBits.next(pos)
		qp := quoteBits.next(pos)

		tPos := -1
		tIsQuote := false
		switch {
		case sp == -1 && qp == -1:
			tPos = -1
		case sp == -1:
			tPos, tIsQuote = qp, true
		case qp == -1:
			tPos, tIsQuote = sp, false
		case sp < qp:
			tPos, tIsQuote = sp, false
		default:
			tPos, tIsQuote = qp, true
		}

		if tPos == -1 {
			break
		}

		if tIsQuote {
			openPos := tPos
			closePos := quoteBits.next(openPos + 1)
			if closePos == -1 {
				return nil, newScanError(CauseTruncated, openPos)
			}
			length := uint32(closePos - openPos + 1)
			switch state {
			case stInObjectKey:
				tape = append(tape, Record{Kind: Key, Offset: uint32(openPos), Length: length})
				state = stInObjectAfterKey
			case stInObjectValue:
				tape = append(tape, Record{Kind: String, Offset: uint32(openPos), Length: length})
				state = stInObjectAfterValue
			case stInArray:
				tape = append(tape, Record{Kind: String, Offset: uint32(openPos), Length: length})
				state = stInArrayAfterValue
			default:
				return nil, newScanError(CauseStructural, openPos)
			}
			pos = closePos + 1
			continue
		}

		c := cur.byteAt(tPos)

		if tPos > pos {
			switch state {
			case stInObjectValue, stInArray:
				rec := makePrimitive(&cur, pos, tPos)
				tape = append(tape, rec)
				if state == stInObjectValue {
					state = stInObjectAfterValue
				} else {
					state = stInArrayAfterValue
				}
			case stInObjectKey:
				// A non-string value where an object key was required.
				return nil, newScanError(CauseStructural, pos)
			default:
				// A gap here means the input isn't well-formed (a bare
				// run of bytes where no value was expected). There is no
				// recovery: the bytes are left off the tape, which keeps
				// the scan memory-safe without pretending the result is
				// meaningful.
			}
		}

		switch c {
		case '{':
			if state != stTopStart && state != stInObjectValue && state != stInArray {
				return nil, newScanError(CauseStructural, tPos)
			}
			idx := uint32(len(tape))
			tape = append(tape, Record{Kind: ObjectBegin, Offset: uint32(tPos)})
			stack.push(frame{beginIndex: idx, kind: ObjectBegin})
			state = stInObjectKey
		case '[':
			if state != stTopStart && state != stInObjectValue && state != stInArray {
				return nil, newScanError(CauseStructural, tPos)
			}
			idx := uint32(len(tape))
			tape = append(tape, Record{Kind: ArrayBegin, Offset: uint32(tPos)})
			stack.push(frame{beginIndex: idx, kind: ArrayBegin})
			state = stInArray
		case '}':
			if state != stInObjectKey && state != stInObjectAfterValue {
				return nil, newScanError(CauseStructural, tPos)
			}
			f, ok := stack.pop()
			if !ok || f.kind != ObjectBegin {
				return nil, newScanError(CauseStructural, tPos)
			}
			endIdx := uint32(len(tape))
			tape = append(tape, Record{Kind: ObjectEnd, Offset: uint32(tPos), Jump: f.beginIndex})
			tape[f.beginIndex].Jump = endIdx
			state = resumeState(&stack)
		case ']':
			if state != stInArray && state != stInArrayAfterValue {
				return nil, newScanError(CauseStructural, tPos)
			}
			f, ok := stack.pop()
			if !ok || f.kind != ArrayBegin {
				return nil, newScanError(CauseStructural, tPos)
			}
			endIdx := uint32(len(tape))
			tape = append(tape, Record{Kind: ArrayEnd, Offset: uint32(tPos), Jump: f.beginIndex})
			tape[f.beginIndex].Jump = endIdx
			state = resumeState(&stack)
		case ':':
			if state != stInObjectAfterKey {
				return nil, newScanError(CauseStructural, tPos)
			}
			state = stInObjectValue
		case ',':
			switch state {
			case stInObjectAfterValue:
				state = stInObjectKey
			case stInArrayAfterValue:
				state = stInArray
			default:
				return nil, newScanError(CauseStructural, tPos)
			}
		}
		pos = tPos + 1
	}

	if !stack.empty() {
		return nil, newScanError(CauseTruncated, len(buf))
	}
	if state != stDone {
		return nil, newScanError(CauseStructural, len(buf))
	}
	return tape, nil
}

// resumeState returns the state the builder should resume in after
// popping a closed container: the state the parent container was in right
// after accepting that container as one of its values, or stDone if the
// stack is now empty (the top-level container just closed).
func resumeState(stack *frameStack) parserState {
	f, ok := stack.top()
	if !ok {
		return stDone
	}
	if f.kind == ObjectBegin {
		return stInObjectAfterValue
	}
	return stInArrayAfterValue
}

// makePrimitive classifies and emits the primitive spanning [start, end).
// The leading byte alone disambiguates kind; number syntax is never
// validated. A literal's length is capped at the span, so a truncated
// literal in malformed input never reaches past end.
func makePrimitive(cur *rawCursor, start, end int) Record {
	span := uint32(end - start)
	lead := cur.byteAt(start)
	switch lead {
	case 't':
		return Record{Kind: True, Offset: uint32(start), Length: min(4, span)}
	case 'f':
		return Record{Kind: False, Offset: uint32(start), Length: min(5, span)}
	case 'n':
		return Record{Kind: Null, Offset: uint32(start), Length: min(4, span)}
	default:
		return Record{Kind: Number, Offset: uint32(start), Length: span}
	}
}
