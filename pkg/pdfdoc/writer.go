package pdfdoc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// writePDF serializes pages into a minimal PDF 1.4 document: one shared
// Type1 Helvetica resource, uncompressed content streams, a classic xref
// table. Object layout: 1 catalog, 2 page tree, 3 font, then a page/content
// pair per page.
func writePDF(pages []renderedPage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("write pdf: no pages")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objCount := 3 + 2*len(pages)
	offsets := make([]int, objCount+1)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, pg := range pages {
		pageObj := 4 + 2*i
		contObj := pageObj + 1
		writeObj(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			fnum(pg.width), fnum(pg.height), contObj))
		stream := contentStream(pg)
		writeObj(contObj, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	return buf.Bytes(), nil
}

// contentStream emits one BT/ET block per line: black fill, absolute
// positioning via Td.
func contentStream(pg renderedPage) string {
	var sb strings.Builder
	for _, ln := range pg.lines {
		fmt.Fprintf(&sb, "BT\n/F1 %s Tf\n0 0 0 rg\n%s %s Td\n(%s) Tj\nET\n",
			fnum(ln.size), fnum(ln.x), fnum(ln.y), escapeText(ln.text))
	}
	return sb.String()
}

// winAnsiSubst maps typographic punctuation onto its WinAnsi byte code.
// 0x80-0x9F is where WinAnsi diverges from Latin-1.
var winAnsiSubst = map[rune]byte{
	'€': 0x80, // €
	'…': 0x85, // …
	'‘': 0x91, // '
	'’': 0x92, // '
	'“': 0x93, // "
	'”': 0x94, // "
	'•': 0x95, // •
	'–': 0x96, // –
	'—': 0x97, // —
	'™': 0x99, // ™
}

// escapeText makes a string safe for a PDF literal string: parens and
// backslashes escaped, characters outside WinAnsi replaced.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '(':
			sb.WriteString(`\(`)
		case r == ')':
			sb.WriteString(`\)`)
		case r < 32 || (r >= 0x7f && r <= 0x9f):
			// C0/C1 controls have no WinAnsi glyph
			sb.WriteByte(' ')
		case r < 256:
			sb.WriteByte(byte(r))
		default:
			if b, ok := winAnsiSubst[r]; ok {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
