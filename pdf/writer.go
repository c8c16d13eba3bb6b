// Package pdf emits the PDF files the exam artifacts are printed to:
// classic xref documents with content streams, image XObjects, and an
// optional AES-256 standard security handler.
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Object is a single numbered PDF object.
type Object struct {
	Number     int
	Generation int
	Content    []byte     // raw content (dictionary, array, ...)
	Stream     []byte     // stream data, when this is a stream object
	Dict       Dictionary // stream dictionary
}

// Dictionary represents a PDF dictionary.
type Dictionary map[string]interface{}

// Writer assembles a PDF file object by object.
type Writer struct {
	objects    map[int]*Object
	nextObjNum int
	rootRef    string
	infoRef    string
	encryptRef string
	encryption *Encryption
	fileID     []byte
	version    string
}

// NewWriter creates an empty PDF writer. The file ID is a fresh UUID,
// so two runs over the same input still produce distinct documents.
func NewWriter() *Writer {
	id := uuid.New()
	return &Writer{
		objects:    make(map[int]*Object),
		nextObjNum: 1,
		fileID:     id[:],
		version:    "1.7",
	}
}

// AddObject adds a new object and returns its object number.
func (w *Writer) AddObject(content []byte) int {
	objNum := w.nextObjNum
	w.nextObjNum++

	w.objects[objNum] = &Object{
		Number:  objNum,
		Content: content,
	}
	return objNum
}

// AddStreamObject adds a stream object with dictionary and data.
func (w *Writer) AddStreamObject(dict Dictionary, data []byte, compress bool) int {
	objNum := w.reserveObjectNumber()
	w.setStream(objNum, dict, data, compress)
	return objNum
}

// SetObject sets or replaces the object at a specific number.
func (w *Writer) SetObject(objNum int, content []byte) {
	w.objects[objNum] = &Object{
		Number:  objNum,
		Content: content,
	}
	if objNum >= w.nextObjNum {
		w.nextObjNum = objNum + 1
	}
}

// reserveObjectNumber claims an object number without content, so
// forward references can be emitted before the object is built.
func (w *Writer) reserveObjectNumber() int {
	objNum := w.nextObjNum
	w.nextObjNum++
	return objNum
}

func (w *Writer) setStream(objNum int, dict Dictionary, data []byte, compress bool) {
	streamData := data
	if compress && len(data) > 0 {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
		streamData = buf.Bytes()
		dict["Filter"] = "/FlateDecode"
	}
	dict["Length"] = len(streamData)

	w.objects[objNum] = &Object{
		Number: objNum,
		Dict:   dict,
		Stream: streamData,
	}
	if objNum >= w.nextObjNum {
		w.nextObjNum = objNum + 1
	}
}

// SetRoot sets the root (catalog) object reference.
func (w *Writer) SetRoot(objNum int) {
	w.rootRef = fmt.Sprintf("%d 0 R", objNum)
}

// SetInfo sets the info dictionary object reference.
func (w *Writer) SetInfo(objNum int) {
	w.infoRef = fmt.Sprintf("%d 0 R", objNum)
}

// Write outputs the complete PDF to out.
func (w *Writer) Write(out io.Writer) error {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%%PDF-%s\n", w.version))
	buf.Write([]byte{0x25, 0xE2, 0xE3, 0xCF, 0xD3, 0x0A}) // binary marker

	var objNums []int
	for num := range w.objects {
		objNums = append(objNums, num)
	}
	sort.Ints(objNums)

	positions := make(map[int]int64)

	for _, objNum := range objNums {
		obj := w.objects[objNum]
		positions[objNum] = int64(buf.Len())

		buf.WriteString(fmt.Sprintf("%d %d obj\n", objNum, obj.Generation))

		if obj.Stream != nil {
			streamData := obj.Stream
			if w.encryption != nil {
				encrypted, err := w.encryption.encryptStream(streamData)
				if err != nil {
					return err
				}
				streamData = encrypted
				obj.Dict["Length"] = len(streamData)
			}
			buf.Write(w.formatDictionary(obj.Dict))
			buf.WriteString("\nstream\n")
			buf.Write(streamData)
			buf.WriteString("\nendstream")
		} else if obj.Content != nil {
			// Strings inside non-stream objects stay plain. The sheet
			// payload lives entirely in content streams and XObjects,
			// which are encrypted above.
			buf.Write(obj.Content)
		}

		buf.WriteString("\nendobj\n")
	}

	xrefPos := int64(buf.Len())
	buf.WriteString("xref\n")
	buf.WriteString(fmt.Sprintf("0 %d\n", w.nextObjNum))
	buf.WriteString(fmt.Sprintf("%010d %05d f \n", 0, 65535))
	for i := 1; i < w.nextObjNum; i++ {
		if pos, ok := positions[i]; ok {
			buf.WriteString(fmt.Sprintf("%010d %05d n \n", pos, 0))
		} else {
			buf.WriteString(fmt.Sprintf("%010d %05d f \n", 0, 1))
		}
	}

	buf.WriteString("trailer\n<<\n")
	buf.WriteString(fmt.Sprintf("/Size %d\n", w.nextObjNum))
	if w.rootRef != "" {
		buf.WriteString(fmt.Sprintf("/Root %s\n", w.rootRef))
	}
	if w.infoRef != "" {
		buf.WriteString(fmt.Sprintf("/Info %s\n", w.infoRef))
	}
	if w.encryptRef != "" {
		buf.WriteString(fmt.Sprintf("/Encrypt %s\n", w.encryptRef))
	}
	hexID := fmt.Sprintf("%X", w.fileID)
	buf.WriteString(fmt.Sprintf("/ID [<%s><%s>]\n", hexID, hexID))
	buf.WriteString(">>\n")

	buf.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefPos))

	_, err := out.Write(buf.Bytes())
	return err
}

// Bytes returns the complete PDF as a byte slice.
func (w *Writer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatDictionary formats a Dictionary as PDF syntax.
func (w *Writer) formatDictionary(dict Dictionary) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<")

	// Sort keys for consistent output
	var keys []string
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := dict[key]
		if !strings.HasPrefix(key, "/") {
			key = "/" + key
		}
		buf.WriteString(key)
		buf.WriteString(" ")
		buf.WriteString(w.formatValue(value))
		buf.WriteString(" ")
	}

	buf.WriteString(">>")
	return buf.Bytes()
}

// formatValue formats a value for PDF output.
func (w *Writer) formatValue(value interface{}) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		// Names and references pass through, anything else is a string
		if strings.HasPrefix(v, "/") || strings.HasSuffix(v, " R") {
			return v
		}
		return "(" + v + ")"
	case []byte:
		return "<" + fmt.Sprintf("%X", v) + ">"
	case []interface{}:
		var items []string
		for _, item := range v {
			items = append(items, w.formatValue(item))
		}
		return "[" + strings.Join(items, " ") + "]"
	case Dictionary:
		return string(w.formatDictionary(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
