package tensor

import "fmt"

// AxisIndex selects one axis of a hyperplane: either every position along
// the axis (Fixed false) or a single digit (Fixed true).
type AxisIndex struct {
	Fixed bool
	Digit int
}

// SubspaceIndex builds the hyperplane selector that fixes the given axes
// to the digits of value and leaves every other axis free. The value is
// read little-endian in mixed radix: its least significant digit (base
// shape[axes[0]]) indexes axes[0], the next digit indexes axes[1], and
// so on.
func SubspaceIndex(shape []int, axes []int, value int) ([]AxisIndex, error) {
	sel := make([]AxisIndex, len(shape))
	v := value
	for _, a := range axes {
		if a < 0 || a >= len(shape) {
			return nil, fmt.Errorf("tensor: axis %d out of range for rank %d", a, len(shape))
		}
		if sel[a].Fixed {
			return nil, fmt.Errorf("tensor: axis %d repeated in subspace index", a)
		}
		dim := shape[a]
		sel[a] = AxisIndex{Fixed: true, Digit: v % dim}
		v /= dim
	}
	if v != 0 {
		return nil, fmt.Errorf("tensor: subspace value %d out of range for axes %v of shape %v", value, axes, shape)
	}
	return sel, nil
}

// HyperplaneOffsets enumerates, in increasing order, the flat offsets of
// every element whose fixed axes match the selector.
func HyperplaneOffsets(shape, strides []int, sel []AxisIndex) []int {
	if len(sel) != len(shape) {
		panic(fmt.Sprintf("tensor: selector rank %d does not match shape rank %d", len(sel), len(shape)))
	}
	base := 0
	count := 1
	var freeAxes []int
	for i, s := range sel {
		if s.Fixed {
			base += s.Digit * strides[i]
			continue
		}
		freeAxes = append(freeAxes, i)
		count *= shape[i]
	}

	offsets := make([]int, 0, count)
	digits := make([]int, len(freeAxes))
	off := base
	for {
		offsets = append(offsets, off)
		// Odometer over the free axes, last axis fastest.
		i := len(freeAxes) - 1
		for ; i >= 0; i-- {
			a := freeAxes[i]
			digits[i]++
			off += strides[a]
			if digits[i] < shape[a] {
				break
			}
			digits[i] = 0
			off -= shape[a] * strides[a]
		}
		if i < 0 {
			return offsets
		}
	}
}

// Hyperplane enumerates the flat offsets selected by sel within t.
func (t *Dense) Hyperplane(sel []AxisIndex) []int {
	return HyperplaneOffsets(t.shape, t.strides, sel)
}
