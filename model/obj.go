package model

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/wireview/vmath"
)

var (
	// ErrParse marks input that is not a Wavefront OBJ model
	ErrParse = errors.New("invalid obj data")

	// errRead marks an I/O failure while reading, treated like an unreadable file
	errRead = errors.New("read obj")
)

const maxOBJLine = 1 << 20

// OBJ is the geometry extracted from a Wavefront OBJ stream
type OBJ struct {
	Positions []vmath.Vec3

	// Indices is the flat triangle index stream, faces fan-triangulated
	Indices []int

	// Lines holds polyline statements, one index run per statement
	Lines [][]int
}

// Model converts to a wireframe: consecutive pairs of the triangle stream,
// then every segment of each polyline
func (o *OBJ) Model() *Model {
	m := &Model{
		Vertices: o.Positions,
		Edges:    EdgesFromIndices(o.Indices),
	}
	for _, line := range o.Lines {
		m.Edges = append(m.Edges, EdgesFromIndices(line)...)
	}
	return m
}

// ignoredStatements are valid OBJ statements that carry nothing drawable
var ignoredStatements = map[string]struct{}{
	"vt": {}, "vn": {}, "vp": {},
	"o": {}, "g": {}, "s": {},
	"mtllib": {}, "usemtl": {},
}

// ParseOBJ reads positions, faces and polylines from r
// Unknown statements and malformed numbers fail with ErrParse
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parsePosition(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			obj.Positions = append(obj.Positions, p)

		case "f":
			corners, err := parseIndices(fields[1:], len(obj.Positions))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			if len(corners) < 3 {
				return nil, errors.Wrapf(ErrParse, "line %d: face needs 3 vertices, got %d", lineNo, len(corners))
			}
			// Fan triangulation around the first corner
			for i := 1; i+1 < len(corners); i++ {
				obj.Indices = append(obj.Indices, corners[0], corners[i], corners[i+1])
			}

		case "l":
			run, err := parseIndices(fields[1:], len(obj.Positions))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			if len(run) < 2 {
				return nil, errors.Wrapf(ErrParse, "line %d: polyline needs 2 vertices, got %d", lineNo, len(run))
			}
			obj.Lines = append(obj.Lines, run)

		default:
			if _, ok := ignoredStatements[fields[0]]; !ok {
				return nil, errors.Wrapf(ErrParse, "line %d: unexpected statement %q", lineNo, fields[0])
			}
		}
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(ErrParse, "line %d: too long", lineNo+1)
		}
		return nil, errors.Wrap(errRead, err.Error())
	}

	return obj, nil
}

func parsePosition(fields []string) (vmath.Vec3, error) {
	if len(fields) < 3 {
		return vmath.Vec3{}, errors.Wrapf(ErrParse, "vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return vmath.Vec3{}, errors.Wrapf(ErrParse, "coordinate %q", fields[i])
		}
		c[i] = float32(f)
	}
	return vmath.V3(c[0], c[1], c[2]), nil
}

// parseIndices resolves v, v/vt, v//vn and v/vt/vn references to 0-based
// position indices. Negative references count back from the last vertex read
func parseIndices(fields []string, count int) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, ref := range fields {
		pos, _, _ := strings.Cut(ref, "/")
		n, err := strconv.Atoi(pos)
		if err != nil || n == 0 {
			return nil, errors.Wrapf(ErrParse, "vertex reference %q", ref)
		}
		if n < 0 {
			out = append(out, count+n)
		} else {
			out = append(out, n-1)
		}
	}
	return out, nil
}

// Open reads an OBJ model from path, reporting open and read failures
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	log.Printf("model: %s: %d vertices, %d triangle indices, %d polylines",
		path, len(obj.Positions), len(obj.Indices), len(obj.Lines))
	return obj.Model(), nil
}

// Load reads an OBJ model from path
// A file that cannot be opened or read yields the built-in cube and no error;
// content that is not OBJ returns an error wrapping ErrParse
func Load(path string) (*Model, error) {
	m, err := Open(path)
	if err == nil {
		return m, nil
	}
	if errors.Is(err, ErrParse) {
		return nil, err
	}
	log.Printf("model: %v, using built-in cube", err)
	return Cube(), nil
}
