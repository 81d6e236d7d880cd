package precision

// Dtype identifies the data type used for a model graph's weights or
// activations. DtypeFP16 is the one floating-point member; it exists so
// mixed-precision overrides can force sensitive layers back to float.
type Dtype uint8

const (
	// DtypeNone indicates that no quantization applies (floating point).
	DtypeNone Dtype = iota
	// DtypeInt4 is 4-bit integer quantization.
	DtypeInt4
	// DtypeInt8 is 8-bit integer quantization.
	DtypeInt8
	// DtypeInt16 is 16-bit integer quantization.
	DtypeInt16
	// DtypeFP16 is 16-bit floating point.
	DtypeFP16
)

// String implements Stringer.String for Dtype.
func (d Dtype) String() string {
	switch d {
	case DtypeNone:
		return "none"
	case DtypeInt4:
		return "int4"
	case DtypeInt8:
		return "int8"
	case DtypeInt16:
		return "int16"
	case DtypeFP16:
		return "fp16"
	default:
		return "unknown"
	}
}

// IsFloat returns true if the dtype is a floating-point type.
func (d Dtype) IsFloat() bool {
	return d == DtypeFP16
}

// Bits returns the bit width of the dtype, or 0 for DtypeNone.
func (d Dtype) Bits() int {
	switch d {
	case DtypeNone:
		return 0
	case DtypeInt4:
		return 4
	case DtypeInt8:
		return 8
	case DtypeInt16:
		return 16
	case DtypeFP16:
		return 16
	default:
		return 0
	}
}

// quantizedDtypeForBits maps a wN/aN token bit width to its integer dtype.
func quantizedDtypeForBits(bits int) (Dtype, bool) {
	switch bits {
	case 4:
		return DtypeInt4, true
	case 8:
		return DtypeInt8, true
	case 16:
		return DtypeInt16, true
	default:
		return DtypeNone, false
	}
}
