package reader

import crengine "github.com/inkfold/crengine"

// Page is a borrowed, index-bound view onto a Document. It holds no native
// resource and must not outlive the document it came from.
type Page struct {
	doc   *Document
	index uint32
}

// Index returns the page's position within the document.
func (p *Page) Index() uint32 {
	return p.index
}

// Render renders the page into the caller's canvas. It delegates to the
// parent document and inherits all of its validation: thread affinity,
// bounds against the current page count, and surface size.
func (p *Page) Render(canvas *crengine.Canvas) error {
	return p.doc.RenderPage(p.index, canvas)
}
