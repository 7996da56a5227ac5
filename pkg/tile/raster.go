package tile

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Raster holds one band's flat binary image: Rows x Cols elements of Elem
// bytes each, row-major, little-endian, exactly as ESPA writes it. Pixels
// stay opaque bytes all the way into the database.
type Raster struct {
	Data []byte
	Rows int
	Cols int
	Elem int
}

// ReadRaster loads a band's image file and checks that its size matches the
// dimensions declared in the scene metadata.
func ReadRaster(path string, rows, cols, elem int) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read raster file: %s", path)
	}

	want := rows * cols * elem
	if len(data) != want {
		return nil, errors.Errorf("raster %s is %d bytes, want %d (%dx%d x %d bytes)",
			path, len(data), want, rows, cols, elem)
	}

	return &Raster{Data: data, Rows: rows, Cols: cols, Elem: elem}, nil
}

// Window copies out the rows x cols pixel window whose upper-left pixel is
// at (line, samp).
func (r *Raster) Window(line, samp, rows, cols int) []byte {
	out := make([]byte, 0, rows*cols*r.Elem)
	for i := 0; i < rows; i++ {
		start := ((line+i)*r.Cols + samp) * r.Elem
		out = append(out, r.Data[start:start+cols*r.Elem]...)
	}
	return out
}

// ElemSize returns the per-element byte width of an ESPA data type.
func ElemSize(dataType string) (int, error) {
	switch dataType {
	case "INT8", "UINT8":
		return 1, nil
	case "INT16", "UINT16":
		return 2, nil
	case "INT32", "UINT32", "FLOAT32":
		return 4, nil
	case "FLOAT64":
		return 8, nil
	default:
		return 0, errors.Errorf("unsupported data type: %s", dataType)
	}
}

// FillPattern renders the bytes of an n-pixel window containing nothing but
// the fill value. Windows that equal this pattern carry no data and are
// skipped at ingest.
func FillPattern(dataType string, fill int64, n int) ([]byte, error) {
	elem, err := ElemSize(dataType)
	if err != nil {
		return nil, err
	}

	one := make([]byte, elem)
	switch dataType {
	case "FLOAT32":
		binary.LittleEndian.PutUint32(one, math.Float32bits(float32(fill)))
	case "FLOAT64":
		binary.LittleEndian.PutUint64(one, math.Float64bits(float64(fill)))
	default:
		switch elem {
		case 1:
			one[0] = byte(fill)
		case 2:
			binary.LittleEndian.PutUint16(one, uint16(fill))
		case 4:
			binary.LittleEndian.PutUint32(one, uint32(fill))
		}
	}

	return bytes.Repeat(one, n), nil
}
