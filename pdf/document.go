package pdf

import "fmt"

// PageSize represents page dimensions in points (1 point = 1/72 inch).
type PageSize struct {
	Width  float64
	Height float64
}

// PageSizeLetter is 8.5 x 11 inches, the paper the sheets are
// designed for.
var PageSizeLetter = PageSize{612, 792}

// Page accumulates content and resources for one document page.
type Page struct {
	writer  *Writer
	size    PageSize
	fonts   map[string]int // resource name -> object number
	images  map[string]int
	content *ContentStream
}

// Document builds a multi-page PDF.
type Document struct {
	writer      *Writer
	pages       []int
	pagesObjNum int
	title       string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		writer: NewWriter(),
	}
}

// Writer exposes the underlying PDF writer for image embedding and
// encryption setup.
func (d *Document) Writer() *Writer {
	return d.writer
}

// NewPage starts a new page of the given size.
func (d *Document) NewPage(size PageSize) *Page {
	return &Page{
		writer:  d.writer,
		size:    size,
		fonts:   make(map[string]int),
		images:  make(map[string]int),
		content: NewContentStream(),
	}
}

// Content returns the page's content stream.
func (p *Page) Content() *ContentStream {
	return p.content
}

// AddFont registers a standard font on the page and returns its
// resource name (e.g. "/F1"). Registering the same font twice reuses
// the first resource.
func (p *Page) AddFont(font Font) string {
	resourceName := font.Resource()[1:]
	if _, ok := p.fonts[resourceName]; ok {
		return "/" + resourceName
	}

	encoding := "/Encoding/WinAnsiEncoding"
	if font == ZapfDingbats {
		// Dingbats has its own built-in encoding
		encoding = ""
	}
	fontDict := fmt.Sprintf("<</Type/Font/Subtype/Type1/BaseFont/%s%s>>", font.BaseFont(), encoding)
	p.fonts[resourceName] = p.writer.AddObject([]byte(fontDict))

	return "/" + resourceName
}

// AddImage registers an embedded image as a page resource and returns
// its resource name.
func (p *Page) AddImage(info *ImageInfo) string {
	resourceName := info.Name
	if resourceName == "" {
		resourceName = fmt.Sprintf("Im%d", len(p.images)+1)
	}
	if len(resourceName) > 0 && resourceName[0] == '/' {
		resourceName = resourceName[1:]
	}
	p.images[resourceName] = info.ObjectNum
	return "/" + resourceName
}

// ClosePage finalizes a page and appends it to the document.
func (d *Document) ClosePage(p *Page) {
	if d.pagesObjNum == 0 {
		// Reserve the pages-tree object so pages can reference it
		d.pagesObjNum = d.writer.reserveObjectNumber()
	}

	contentObjNum := d.writer.AddStreamObject(Dictionary{}, p.content.Bytes(), true)

	resources := "<<"
	if len(p.fonts) > 0 {
		resources += "/Font<<"
		for name, objNum := range p.fonts {
			resources += fmt.Sprintf("/%s %d 0 R", name, objNum)
		}
		resources += ">>"
	}
	if len(p.images) > 0 {
		resources += "/XObject<<"
		for name, objNum := range p.images {
			resources += fmt.Sprintf("/%s %d 0 R", name, objNum)
		}
		resources += ">>"
	}
	resources += ">>"

	pageDict := fmt.Sprintf(`<</Type/Page/Parent %d 0 R/MediaBox[0 0 %.0f %.0f]/Contents %d 0 R/Resources%s>>`,
		d.pagesObjNum, p.size.Width, p.size.Height, contentObjNum, resources)
	d.pages = append(d.pages, d.writer.AddObject([]byte(pageDict)))
}

// SetTitle records the document title for the Info dictionary.
func (d *Document) SetTitle(title string) {
	d.title = title
}

// PageCount returns the number of closed pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Protect enables AES-256 password protection on the document.
func (d *Document) Protect(userPassword, ownerPassword string, permissions int32) error {
	return d.writer.Protect(userPassword, ownerPassword, permissions)
}

// Bytes assembles the pages tree and catalog and returns the complete
// PDF file.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	kids := "["
	for _, pageNum := range d.pages {
		kids += fmt.Sprintf("%d 0 R ", pageNum)
	}
	kids += "]"

	pagesDict := fmt.Sprintf("<</Type/Pages/Kids%s/Count %d>>", kids, len(d.pages))
	d.writer.SetObject(d.pagesObjNum, []byte(pagesDict))

	catalogObjNum := d.writer.AddObject([]byte(fmt.Sprintf("<</Type/Catalog/Pages %d 0 R>>", d.pagesObjNum)))
	d.writer.SetRoot(catalogObjNum)

	if d.title != "" {
		info := fmt.Sprintf("<</Title(%s)/Producer(examgen)>>", encodePDFString(d.title))
		d.writer.SetInfo(d.writer.AddObject([]byte(info)))
	}

	return d.writer.Bytes()
}
