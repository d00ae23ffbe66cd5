package matrix

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// internal Float64 matrix representation
type Float64Matrix struct {
	nrow uint32
	ncol uint32
	data []float64
}

// NewFloat64Matrix creates a new Float64Matrix with r rows and c columns
// which is mainly used for holding posterior point estimates
func NewFloat64Matrix(r, c uint32) *Float64Matrix {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Float64Matrix{
		nrow: r,
		ncol: c,
		data: make([]float64, r*c),
	}
}

// get the shape of the matrix
func (m *Float64Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float64Matrix) Get(r, c uint32) float64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// get the r-th row of the matrix
func (m *Float64Matrix) GetRow(r uint32) []float64 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}

	var row []float64
	for c := uint32(0); c < m.ncol; c += 1 {
		row = append(row, m.Get(r, c))
	}
	return row
}

// set val to the [r, c]-th element of the matrix
func (m *Float64Matrix) Set(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// serialize data to file, writing the shape on the first line and one
// nonzero entry per following line
func (m *Float64Matrix) Serialize(fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	r, c := m.Shape()
	// write the matrix shape
	fmt.Fprintf(out, "%d,%d\n", r, c)

	var val float64
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			val = m.Get(ridx, cidx)
			if val > 0 { // only write out nonzero value
				fmt.Fprintf(out, "%d,%d,%e\n", ridx, cidx, val)
			}
		}
	}
	return nil
}

// deserialize data from file into the matrix. The shape recorded in the
// file header must match the shape of the receiver; entries absent from
// the file are reset to zero.
func (m *Float64Matrix) Deserialize(fn string) error {
	file, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer file.Close()

	var lineIdx int

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return fmt.Errorf("matrix corrupted, shape not found in %q", txt)
			}
			row, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return err
			}
			col, err := strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return err
			}
			if uint32(row) != m.nrow || uint32(col) != m.ncol {
				return fmt.Errorf("matrix shape mismatch: file %dx%d, receiver %dx%d",
					row, col, m.nrow, m.ncol)
			}
			for i := range m.data {
				m.data[i] = 0
			}
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			return fmt.Errorf("matrix corrupted, line %d, data %q", lineIdx, txt)
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return err
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return err
		}
		m.Set(uint32(ridx), uint32(cidx), val)

		lineIdx += 1
	}

	return scanner.Err()
}
