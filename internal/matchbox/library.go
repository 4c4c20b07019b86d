package matchbox

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/rand"
)

// DecisionPoints is the number of pools a library holds, one per situation.
const DecisionPoints = 24

// DefaultMaxPool caps how many tokens reinforcement may grow a pool to.
const DefaultMaxPool = 10

//go:embed default_library.txt
var defaultLibraryText []byte

// Pool is the ordered bead sequence for one decision point. A token's weight
// is the number of times it appears.
type Pool []Token

func (p Pool) String() string {
	var sb strings.Builder
	for _, t := range p {
		sb.WriteByte(byte(t))
	}
	return sb.String()
}

func (p Pool) Clone() Pool {
	if p == nil {
		return nil
	}
	out := make(Pool, len(p))
	copy(out, p)
	return out
}

// Count returns the weight of tok.
func (p Pool) Count(tok Token) int {
	n := 0
	for _, t := range p {
		if t == tok {
			n++
		}
	}
	return n
}

// Pick draws a token uniformly over the sequence, so duplicates carry weight.
func (p Pool) Pick(r *rand.Rand) (Token, error) {
	if len(p) == 0 {
		return 0, ErrEmptyPool
	}
	return p[r.Intn(len(p))], nil
}

// Prune returns a copy with the first occurrence of tok removed.
func (p Pool) Prune(tok Token) (Pool, error) {
	for i, t := range p {
		if t == tok {
			out := make(Pool, 0, len(p)-1)
			out = append(out, p[:i]...)
			return append(out, p[i+1:]...), nil
		}
	}
	return p.Clone(), fmt.Errorf("prune %s from %q: %w", tok, p.String(), ErrTokenNotFound)
}

// Reinforce returns a copy with tok appended, unless the pool already holds
// maxPool tokens.
func (p Pool) Reinforce(tok Token, maxPool int) (Pool, error) {
	if len(p) >= maxPool {
		return p.Clone(), fmt.Errorf("reinforce %s in %q (max %d): %w", tok, p.String(), maxPool, ErrPoolFull)
	}
	out := make(Pool, len(p), len(p)+1)
	copy(out, p)
	return append(out, tok), nil
}

// ParsePool reads one library line.
func ParsePool(line string) (Pool, error) {
	p := make(Pool, 0, len(line))
	for i := 0; i < len(line); i++ {
		tok := Token(line[i])
		if !tok.Valid() {
			return nil, fmt.Errorf("unexpected token %q at column %d: %w", line[i], i+1, ErrMalformedLibrary)
		}
		p = append(p, tok)
	}
	return p, nil
}

// Library is the full learned state: an opaque header followed by one pool
// per decision point. Pools[i] is stored on line i+1.
type Library struct {
	Header string
	Pools  []Pool
}

// DefaultLibrary returns a fresh copy of the factory library built into the
// binary.
func DefaultLibrary() *Library {
	lib, err := Parse(bytes.NewReader(defaultLibraryText))
	if err != nil {
		panic(fmt.Sprintf("embedded default library: %v", err))
	}
	return lib
}

// maxLineLength bounds one library line. Real pools hold a handful of tokens,
// so anything longer is a corrupt file.
const maxLineLength = 4096

// Parse reads the line format written by Format. The header is kept byte for
// byte apart from its newline; pool lines may carry trailing whitespace or a
// carriage return. Trailing blank lines are tolerated; anything else past the
// last pool is rejected.
func Parse(r io.Reader) (*Library, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < DecisionPoints+1 {
		return nil, fmt.Errorf("found %d lines, need %d: %w", len(lines), DecisionPoints+1, ErrMalformedLibrary)
	}
	for i, extra := range lines[DecisionPoints+1:] {
		if trimPoolLine(extra) != "" {
			return nil, fmt.Errorf("unexpected content on line %d: %w", DecisionPoints+2+i, ErrMalformedLibrary)
		}
	}

	lib := &Library{Header: lines[0], Pools: make([]Pool, DecisionPoints)}
	for i := 0; i < DecisionPoints; i++ {
		p, err := ParsePool(trimPoolLine(lines[i+1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		lib.Pools[i] = p
	}
	return lib, nil
}

// readLines splits r on newlines without touching any other byte
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		if len(line) > maxLineLength {
			return nil, fmt.Errorf("line %d is longer than %d bytes: %w", len(lines)+1, maxLineLength, ErrMalformedLibrary)
		}
		if errors.Is(err, io.EOF) {
			if line != "" {
				lines = append(lines, line)
			}
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read library: %w", err)
		}
		lines = append(lines, line)
	}
}

func trimPoolLine(line string) string {
	return strings.TrimRight(line, " \t\r")
}

// Format renders the library with every line, the last included, terminated
// by a newline.
func (l *Library) Format() []byte {
	var buf bytes.Buffer
	buf.WriteString(l.Header)
	buf.WriteByte('\n')
	for _, p := range l.Pools {
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (l *Library) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(l.Format())
	return int64(n), err
}

func (l *Library) Clone() *Library {
	out := &Library{Header: l.Header, Pools: make([]Pool, len(l.Pools))}
	for i, p := range l.Pools {
		out.Pools[i] = p.Clone()
	}
	return out
}

// Pool returns the pool stored for a decision point.
func (l *Library) Pool(index int) (Pool, error) {
	if index < 0 || index >= len(l.Pools) {
		return nil, fmt.Errorf("index %d: %w", index, ErrIndexOutOfRange)
	}
	return l.Pools[index], nil
}
