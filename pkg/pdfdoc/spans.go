package pdfdoc

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ExtractSpans extracts styled text spans from every page by scanning the
// decoded content streams. Non-text content is skipped; spans that are empty
// after trimming are dropped. Positions are approximate: the text matrix is
// tracked only for translation, which is sufficient for the common
// resume-style documents this pipeline handles.
func ExtractSpans(pdfBytes []byte) ([]StyledSpan, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return nil, &DocumentUnreadableError{Reason: "read pdf", Err: err}
	}

	fonts := resolveFontNames(ctx)

	var spans []StyledSpan
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		spans = append(spans, scanContent(data, pageNr-1, fonts)...)
	}
	return spans, nil
}

// resolveFontNames maps content-stream font resource labels (e.g. "F1") to
// BaseFont names by walking page resource dictionaries in the xref table.
// Later pages overwrite earlier labels; resumes almost always share one
// resource set, so the approximation holds.
func resolveFontNames(ctx *model.Context) map[string]string {
	out := map[string]string{}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		d, ok := entry.Object.(types.Dict)
		if !ok {
			continue
		}
		t, found := d.Find("Type")
		if !found {
			continue
		}
		if name, isName := t.(types.Name); !isName || name != "Page" {
			continue
		}
		resObj, found := d.Find("Resources")
		if !found {
			continue
		}
		res, err := ctx.DereferenceDict(resObj)
		if err != nil || res == nil {
			continue
		}
		fObj, found := res.Find("Font")
		if !found {
			continue
		}
		fontRes, err := ctx.DereferenceDict(fObj)
		if err != nil || fontRes == nil {
			continue
		}
		for label, ref := range fontRes {
			fontDict, err := ctx.DereferenceDict(ref)
			if err != nil || fontDict == nil {
				continue
			}
			bf, found := fontDict.Find("BaseFont")
			if !found {
				continue
			}
			if n, ok := bf.(types.Name); ok {
				out[label] = trimSubsetPrefix(string(n))
			}
		}
	}
	return out
}

// trimSubsetPrefix strips the "ABCDEF+" subset tag from a BaseFont name.
func trimSubsetPrefix(name string) string {
	if len(name) > 7 && name[6] == '+' {
		return name[7:]
	}
	return name
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokString
	tokName
	tokArrayStart
	tokArrayEnd
)

type token struct {
	kind tokKind
	num  float64
	str  string
	name string
}

// textState tracks the subset of graphics state needed for span extraction.
type textState struct {
	fontLabel string
	fontSize  float64
	color     [3]float64
	x, y      float64
	leading   float64
}

// scanContent interprets the text operators of a decoded content stream and
// emits one span per text-showing operation.
func scanContent(data []byte, page int, fonts map[string]string) []StyledSpan {
	var spans []StyledSpan
	st := textState{fontSize: DefaultFontSize}
	var stack []token

	emit := func(raw string) {
		text := strings.TrimSpace(cleanText(raw))
		if text == "" {
			return
		}
		fontName := fonts[st.fontLabel]
		if fontName == "" {
			fontName = st.fontLabel
		}
		if fontName == "" {
			fontName = DefaultFontName
		}
		width := approxWidth(text, st.fontSize)
		spans = append(spans, StyledSpan{
			Text:     text,
			FontName: fontName,
			FontSize: st.fontSize,
			Color:    st.color,
			BBox:     [4]float64{st.x, st.y - st.fontSize, st.x + width, st.y},
			Page:     page,
			Flags:    styleFlags(fontName),
		})
		st.x += width
	}

	lastNums := func(n int) []float64 {
		out := make([]float64, n)
		j := n - 1
		for i := len(stack) - 1; i >= 0 && j >= 0; i-- {
			if stack[i].kind == tokNumber {
				out[j] = stack[i].num
				j--
			}
		}
		return out
	}
	lastString := func() string {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].kind == tokString {
				return stack[i].str
			}
		}
		return ""
	}
	lineAdvance := func() float64 {
		if st.leading != 0 {
			return st.leading
		}
		return st.fontSize * 1.2
	}

	tokens := tokenize(data)
	for _, tk := range tokens {
		if tk.name == "" || tk.kind != tokName || strings.HasPrefix(tk.name, "/") {
			stack = append(stack, tk)
			continue
		}
		switch tk.name {
		case "BT":
			st.x, st.y = 0, 0
		case "Tf":
			nums := lastNums(1)
			st.fontSize = nums[0]
			for i := len(stack) - 1; i >= 0; i-- {
				if strings.HasPrefix(stack[i].name, "/") {
					st.fontLabel = strings.TrimPrefix(stack[i].name, "/")
					break
				}
			}
		case "TL":
			st.leading = lastNums(1)[0]
		case "Td":
			nums := lastNums(2)
			st.x += nums[0]
			st.y += nums[1]
		case "TD":
			nums := lastNums(2)
			st.x += nums[0]
			st.y += nums[1]
			st.leading = -nums[1]
		case "Tm":
			nums := lastNums(6)
			st.x = nums[4]
			st.y = nums[5]
		case "T*":
			st.y -= lineAdvance()
		case "Tj":
			emit(lastString())
		case "'":
			st.y -= lineAdvance()
			emit(lastString())
		case "\"":
			st.y -= lineAdvance()
			emit(lastString())
		case "TJ":
			var sb strings.Builder
			for _, op := range stack {
				if op.kind == tokString {
					sb.WriteString(op.str)
				}
			}
			emit(sb.String())
		case "rg":
			nums := lastNums(3)
			st.color = normalizeColor(nums[0], nums[1], nums[2])
		case "g":
			v := lastNums(1)[0]
			st.color = normalizeColor(v, v, v)
		case "sc", "scn":
			var nums []float64
			for _, op := range stack {
				if op.kind == tokNumber {
					nums = append(nums, op.num)
				}
			}
			if len(nums) == 3 {
				st.color = normalizeColor(nums[0], nums[1], nums[2])
			} else if len(nums) == 1 {
				st.color = normalizeColor(nums[0], nums[0], nums[0])
			}
		}
		stack = stack[:0]
	}
	return spans
}

// normalizeColor maps color operands into [0,1]. Operands above 1 are treated
// as 0-255 byte channels, which covers producers that emit packed values.
func normalizeColor(r, g, b float64) [3]float64 {
	norm := func(v float64) float64 {
		if v > 1 {
			v = v / 255
		}
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return [3]float64{norm(r), norm(g), norm(b)}
}

func styleFlags(fontName string) int {
	lower := strings.ToLower(fontName)
	flags := 0
	if strings.Contains(lower, "bold") {
		flags |= FlagBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= FlagItalic
	}
	return flags
}

// approxWidth estimates rendered width; exact metrics are not needed since
// bounding boxes are informational.
func approxWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.5
}

func cleanText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' {
			sb.WriteByte(' ')
			continue
		}
		if unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// tokenize splits a content stream into numbers, names, strings and operator
// words. Inline dictionaries (BDC property lists etc.) are skipped.
func tokenize(data []byte) []token {
	var toks []token
	i := 0
	n := len(data)

	isDelim := func(c byte) bool {
		switch c {
		case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
			return true
		}
		return c <= ' '
	}

	for i < n {
		c := data[i]
		switch {
		case c <= ' ':
			i++
		case c == '%':
			for i < n && data[i] != '\n' {
				i++
			}
		case c == '(':
			str, next := readLiteralString(data, i)
			toks = append(toks, token{kind: tokString, str: str})
			i = next
		case c == '<':
			if i+1 < n && data[i+1] == '<' {
				i = skipDict(data, i)
			} else {
				str, next := readHexString(data, i)
				toks = append(toks, token{kind: tokString, str: str})
				i = next
			}
		case c == '[':
			toks = append(toks, token{kind: tokArrayStart})
			i++
		case c == ']':
			toks = append(toks, token{kind: tokArrayEnd})
			i++
		case c == '/':
			j := i + 1
			for j < n && !isDelim(data[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, name: string(data[i:j])})
			i = j
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < n && (data[j] == '.' || data[j] == '-' || (data[j] >= '0' && data[j] <= '9')) {
				j++
			}
			v, err := strconv.ParseFloat(string(data[i:j]), 64)
			if err == nil {
				toks = append(toks, token{kind: tokNumber, num: v})
			}
			i = j
		default:
			j := i + 1
			for j < n && !isDelim(data[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, name: string(data[i:j])})
			i = j
		}
	}
	return toks
}

// readLiteralString parses a (...) string starting at data[start]=='(' and
// returns the decoded text plus the index past the closing paren.
func readLiteralString(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for ; i < len(data); i++ {
		c := data[i]
		if c == '\\' && i+1 < len(data) {
			i++
			switch data[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// ignored
			case '\\', '(', ')':
				sb.WriteByte(data[i])
			default:
				if data[i] >= '0' && data[i] <= '7' {
					val := int(data[i] - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(data[i])
				}
			}
			continue
		}
		if c == '(' {
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
			continue
		}
		if c == ')' {
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
			continue
		}
		if depth > 0 {
			sb.WriteByte(c)
		}
	}
	return sb.String(), i
}

// readHexString parses a <...> hex string. UTF-16BE payloads (BOM FEFF) are
// decoded; other payloads are taken as raw bytes.
func readHexString(data []byte, start int) (string, int) {
	i := start + 1
	var hexDigits []byte
	for ; i < len(data) && data[i] != '>'; i++ {
		c := data[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			hexDigits = append(hexDigits, c)
		}
	}
	if i < len(data) {
		i++ // consume '>'
	}
	if len(hexDigits)%2 == 1 {
		hexDigits = append(hexDigits, '0')
	}
	raw := make([]byte, 0, len(hexDigits)/2)
	for j := 0; j+1 < len(hexDigits); j += 2 {
		hi := hexVal(hexDigits[j])
		lo := hexVal(hexDigits[j+1])
		raw = append(raw, byte(hi<<4|lo))
	}
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		codes := make([]uint16, 0, (len(raw)-2)/2)
		for j := 2; j+1 < len(raw); j += 2 {
			codes = append(codes, uint16(raw[j])<<8|uint16(raw[j+1]))
		}
		return string(utf16.Decode(codes)), i
	}
	return string(raw), i
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// skipDict skips a balanced << ... >> dictionary starting at data[start].
func skipDict(data []byte, start int) int {
	depth := 0
	i := start
	for i+1 < len(data) {
		if data[i] == '<' && data[i+1] == '<' {
			depth++
			i += 2
			continue
		}
		if data[i] == '>' && data[i+1] == '>' {
			depth--
			i += 2
			if depth == 0 {
				return i
			}
			continue
		}
		i++
	}
	return len(data)
}
