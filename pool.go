package squirreljson

import "sync"

// DocumentPool reuses Document tape backing arrays across scans of
// short-lived buffers, the common case for a log/document storage engine
// ingesting one record at a time.
//
// A DocumentPool's Scan/Put pair is safe to call from multiple goroutines
// concurrently, as long as each goroutine scans a disjoint buffer -- this
// does not add any concurrency to the scan itself.
type DocumentPool struct {
	pool sync.Pool
}

// NewDocumentPool returns a ready-to-use DocumentPool.
func NewDocumentPool() *DocumentPool {
	return &DocumentPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Document{}
			},
		},
	}
}

// Scan behaves like Scan, but reuses a Document's tape backing array from
// the pool when one is available. The returned Document must be released
// back to the pool with Put once the caller is done with it -- typically
// right after the fields of interest have been decoded out of it, since
// the Document (and every View derived from it) becomes invalid the
// instant it's returned to the pool.
func (p *DocumentPool) Scan(input []byte) (*Document, error) {
	return p.ScanWithOptions(input, ScanOptions{})
}

// ScanWithOptions is Scan's counterpart honoring ScanOptions.
func (p *DocumentPool) ScanWithOptions(input []byte, opts ScanOptions) (*Document, error) {
	d := p.pool.Get().(*Document)
	records := d.Tape.Records[:0]
	if opts.SizeHint > cap(records) {
		records = make([]Record, 0, opts.SizeHint)
	}

	if len(input) == 0 {
		p.pool.Put(d)
		return nil, newScanError(CauseEmpty, 0)
	}
	if input[0] != '{' && input[0] != '[' {
		p.pool.Put(d)
		return nil, newScanError(CauseEmpty, 0)
	}

	structBits, quoteBits, cerr := classifyAll(input)
	if cerr != nil {
		p.pool.Put(d)
		return nil, cerr
	}

	checked := opts.Checked || isCheckedBuild
	built, berr := buildInto(input, structBits, quoteBits, checked, records)
	if berr != nil {
		p.pool.Put(d)
		return nil, berr
	}

	d.Buffer = input
	d.Tape = Tape{Records: built}
	return d, nil
}

// Put returns d to the pool. d and every View derived from it must not be
// used again afterward.
func (p *DocumentPool) Put(d *Document) {
	d.Buffer = nil
	p.pool.Put(d)
}
