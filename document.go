package squirreljson

// Document is the result of a successful scan: the input buffer plus the
// tape describing its lexical structure. A Document is immutable once
// returned and safe to share across goroutines; the caller must keep
// Buffer alive for as long as any View derived from this Document is in
// use, since Views only ever hold offsets into it.
type Document struct {
	Buffer []byte
	Tape   Tape
}

// Scan classifies input, a buffer holding one minified JSON object or
// array, into a Document. Scan makes exactly one pass over input and does
// not retain input beyond the returned Document's Buffer field.
//
// On malformed input, Scan either returns a *ScanError or a Document whose
// tape is unspecified but still internally consistent (every offset
// in-bounds, every jump well-nested) -- it never panics and never produces
// an out-of-bounds offset, on any byte sequence.
func Scan(input []byte) (*Document, error) {
	return scan(input, ScanOptions{})
}

// ScanChecked behaves like Scan but always uses the checked rawCursor,
// regardless of build tags. It is intended for tests and for the fuzz
// target, where the extra validation is worth the cost.
func ScanChecked(input []byte) (*Document, error) {
	return scan(input, ScanOptions{Checked: true})
}

// ScanWithOptions behaves like Scan but honors the supplied ScanOptions.
func ScanWithOptions(input []byte, opts ScanOptions) (*Document, error) {
	return scan(input, opts)
}

func scan(input []byte, opts ScanOptions) (*Document, error) {
	if len(input) == 0 {
		return nil, newScanError(CauseEmpty, 0)
	}
	if input[0] != '{' && input[0] != '[' {
		return nil, newScanError(CauseEmpty, 0)
	}

	structBits, quoteBits, cerr := classifyAll(input)
	if cerr != nil {
		return nil, cerr
	}

	var dst []Record
	if opts.SizeHint > 0 {
		dst = make([]Record, 0, opts.SizeHint)
	}

	checked := opts.Checked || isCheckedBuild
	records, berr := buildInto(input, structBits, quoteBits, checked, dst)
	if berr != nil {
		return nil, berr
	}

	return &Document{Buffer: input, Tape: Tape{Records: records}}, nil
}

// Clone deep-copies the buffer and tape so the returned Document no longer
// aliases d's input slice. Use it when a Document needs to outlive the
// buffer it was scanned from, e.g. before returning a parsed record from a
// pooled read buffer back to a caller.
func (d *Document) Clone() *Document {
	buf := make([]byte, len(d.Buffer))
	copy(buf, d.Buffer)
	recs := make([]Record, len(d.Tape.Records))
	copy(recs, d.Tape.Records)
	return &Document{Buffer: buf, Tape: Tape{Records: recs}}
}

// Root returns a View over the first tape record, which is always the
// document's top-level ObjectBegin or ArrayBegin for any Document produced
// by Scan.
func (d *Document) Root() View {
	return View{doc: d, index: 0}
}
