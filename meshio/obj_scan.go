package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dcrane/isofield/vec3"
)

// objScanner splits an OBJ stream into whitespace-separated line tokens,
// skipping blank lines and "#" comments.
type objScanner struct {
	sc     *bufio.Scanner
	fields []string
}

func newObjScanner(r io.Reader) *objScanner {
	return &objScanner{sc: bufio.NewScanner(r)}
}

func (s *objScanner) Scan() bool {
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.fields = strings.Fields(line)
		return true
	}
	return false
}

func (s *objScanner) Fields() []string { return s.fields }
func (s *objScanner) Err() error       { return s.sc.Err() }

func parseVec3(tokens []string) (vec3.Vec, error) {
	if len(tokens) < 3 {
		return vec3.Vec{}, fmt.Errorf("meshio: expected 3 components, got %d", len(tokens))
	}
	x, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return vec3.Vec{}, err
	}
	y, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return vec3.Vec{}, err
	}
	z, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return vec3.Vec{}, err
	}
	return vec3.Vec{X: x, Y: y, Z: z}, nil
}

// parseFaceToken parses one OBJ face-vertex reference: "v", "v/vt",
// "v//vn", or "v/vt/vn". Returns the vertex index and the normal index
// (0 if absent), both 1-based as written in the file.
func parseFaceToken(tok string) (vertexIdx, normalIdx int, err error) {
	parts := strings.Split(tok, "/")
	vertexIdx, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 3 && parts[2] != "" {
		normalIdx, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, err
		}
	}
	return vertexIdx, normalIdx, nil
}
