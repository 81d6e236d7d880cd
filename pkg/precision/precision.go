package precision

import (
	"fmt"
	"strconv"
	"strings"
)

// Precision stores a quantization configuration for a model's graph.
//
// The zero value is full floating point (no quantization). Precision is a
// comparable value type; structural equality makes it usable as a map key.
//
// Override, when set, applies to the most sensitive layer(s) of the graph,
// replacing both the weight and activation dtype for those layers. Only
// DtypeInt16 and DtypeFP16 are legal override values.
type Precision struct {
	Weights     Dtype
	Activations Dtype
	Override    Dtype
}

// Canonical precision instances. All other instances are ephemeral values
// produced by Parse or New.
var (
	Float  = Precision{}
	W8A8   = Precision{Weights: DtypeInt8, Activations: DtypeInt8}
	W8A16  = Precision{Weights: DtypeInt8, Activations: DtypeInt16}
	W16A16 = Precision{Weights: DtypeInt16, Activations: DtypeInt16}
	W4A16  = Precision{Weights: DtypeInt4, Activations: DtypeInt16}
	W4     = Precision{Weights: DtypeInt4}

	// Mixed-precision instances: the base configuration plus an override
	// dtype for the most sensitive layer(s).
	W8A8MixedInt16  = Precision{Weights: DtypeInt8, Activations: DtypeInt8, Override: DtypeInt16}
	W8A16MixedInt16 = Precision{Weights: DtypeInt8, Activations: DtypeInt16, Override: DtypeInt16}
	W8A8MixedFP16   = Precision{Weights: DtypeInt8, Activations: DtypeInt8, Override: DtypeFP16}
	W8A16MixedFP16  = Precision{Weights: DtypeInt8, Activations: DtypeInt16, Override: DtypeFP16}
)

// All returns the canonical precision instances in declaration order.
func All() []Precision {
	return []Precision{
		Float, W8A8, W8A16, W16A16, W4A16, W4,
		W8A8MixedInt16, W8A16MixedInt16, W8A8MixedFP16, W8A16MixedFP16,
	}
}

// allowedOverride reports whether d is a legal mixed-precision override dtype.
func allowedOverride(d Dtype) bool {
	return d == DtypeInt16 || d == DtypeFP16
}

// New builds a Precision, validating the override dtype.
func New(weights, activations, override Dtype) (Precision, error) {
	if override != DtypeNone && !allowedOverride(override) {
		return Precision{}, fmt.Errorf("invalid override dtype %s, supported: %s, %s",
			override, DtypeInt16, DtypeFP16)
	}
	return Precision{Weights: weights, Activations: activations, Override: override}, nil
}

// Parse parses a precision string.
//
// The grammar is "float", or an unordered run of wN / aN tokens (either
// order, either or both present), optionally suffixed "_mixed_<override>"
// where override is int16 or fp16. Unknown bit widths, unknown override
// markers, or trailing garbage are errors.
func Parse(s string) (Precision, error) {
	if s == "float" {
		return Float, nil
	}

	head, overrideName, hasOverride := strings.Cut(s, "_mixed_")

	override := DtypeNone
	if hasOverride {
		switch overrideName {
		case "int16":
			override = DtypeInt16
		case "fp16":
			override = DtypeFP16
		default:
			return Precision{}, &ParseError{
				Input:  s,
				Reason: fmt.Sprintf("invalid override type %q, supported: int16, fp16", overrideName),
			}
		}
	}

	weights, activations, err := parseTokenRun(s, head)
	if err != nil {
		return Precision{}, err
	}

	return Precision{Weights: weights, Activations: activations, Override: override}, nil
}

// MustParse is Parse but panics on error. Intended for static tables.
func MustParse(s string) Precision {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// parseTokenRun consumes a run of wN / aN tokens in either order. The full
// input must be consumed; at most one token per axis is accepted.
func parseTokenRun(input, run string) (weights, activations Dtype, err error) {
	if run == "" {
		return DtypeNone, DtypeNone, &ParseError{
			Input:  input,
			Reason: "expected wN and/or aN tokens; example valid strings: float, w8a16, a8w8, w8, a16",
		}
	}

	rest := run
	for rest != "" {
		axis := rest[0]
		if axis != 'w' && axis != 'a' {
			return DtypeNone, DtypeNone, &ParseError{
				Input:  input,
				Reason: fmt.Sprintf("unexpected token at %q; example valid strings: float, w8a16, a8w8, w8, a16", rest),
			}
		}
		rest = rest[1:]

		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return DtypeNone, DtypeNone, &ParseError{
				Input:  input,
				Reason: fmt.Sprintf("missing bit width after %q", string(axis)),
			}
		}
		bits, _ := strconv.Atoi(rest[:digits])
		rest = rest[digits:]

		dtype, ok := quantizedDtypeForBits(bits)
		if !ok {
			name := "weights"
			if axis == 'a' {
				name = "activations"
			}
			return DtypeNone, DtypeNone, &ParseError{
				Input:  input,
				Reason: fmt.Sprintf("unsupported bit width %d for quantization %s, supported: 4, 8, 16", bits, name),
			}
		}

		switch axis {
		case 'w':
			if weights != DtypeNone {
				return DtypeNone, DtypeNone, &ParseError{Input: input, Reason: "duplicate weights token"}
			}
			weights = dtype
		case 'a':
			if activations != DtypeNone {
				return DtypeNone, DtypeNone, &ParseError{Input: input, Reason: "duplicate activations token"}
			}
			activations = dtype
		}
	}

	return weights, activations, nil
}

// String returns the canonical string form. Parse(p.String()) == p for every
// valid precision.
func (p Precision) String() string {
	if p == Float {
		return "float"
	}

	var sb strings.Builder
	if p.Weights != DtypeNone {
		sb.WriteString("w")
		sb.WriteString(strconv.Itoa(p.Weights.Bits()))
	}
	if p.Activations != DtypeNone {
		sb.WriteString("a")
		sb.WriteString(strconv.Itoa(p.Activations.Bits()))
	}
	if p.Override != DtypeNone {
		sb.WriteString("_mixed_")
		sb.WriteString(p.Override.String())
	}
	return sb.String()
}

// HasQuantizedActivations returns true if ANY model activations are
// quantized (not floating point).
func (p Precision) HasQuantizedActivations() bool {
	return (p.Activations != DtypeNone && !p.Activations.IsFloat()) ||
		(p.Override != DtypeNone && !p.Override.IsFloat())
}

// HasFloatActivations returns true if ANY model activations are floating
// point (not quantized).
func (p Precision) HasFloatActivations() bool {
	return p.Activations == DtypeNone ||
		p.Activations.IsFloat() ||
		(p.Override != DtypeNone && p.Override.IsFloat())
}

// HasFloatWeights returns true if ANY model weights are floating point (not
// quantized).
func (p Precision) HasFloatWeights() bool {
	if p.Override == DtypeNone {
		return p.Weights == DtypeNone
	}
	return p.Override.IsFloat()
}
