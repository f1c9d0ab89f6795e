// ═══════════════════════════════════════════════════════════════════════════
// Execution Units
// ═══════════════════════════════════════════════════════════════════════════
//
// WHAT: the ALU, barrel shifter, multiplier and divider the scheduler
//       dispatches ready operations to once they clear the window.
// HOW:  Booth-encoded partial products reduced through a Wallace tree for
//       multiply; an exact quotient and remainder for divide; a five-stage
//       power-of-two barrel shift.
// WHY:  These adapt the host CPU's arithmetic core unchanged — the branch
//       predictor under test needs a host that actually retires
//       instructions and resolves branches, not just a trace replayer.
//
// ═══════════════════════════════════════════════════════════════════════════

package hostsim

// Opcode identifies which execution unit an Operation is routed to.
type Opcode uint8

const (
	OpADD Opcode = iota
	OpSUB
	OpAND
	OpOR
	OpXOR
	OpSHL
	OpSHR
	OpMUL
	OpDIV
	OpMOV
	OpBranch
)

type multiplyStage1 struct {
	partialProducts [16]uint64
}

func multiplyStage1Of(a, b uint32) multiplyStage1 {
	var s multiplyStage1
	bExtended := uint64(b) << 1
	for i := 0; i < 16; i++ {
		booth := (bExtended >> (i * 2)) & 0x7
		var pp uint64
		switch booth {
		case 0, 7:
			pp = 0
		case 1, 2:
			pp = uint64(a)
		case 3:
			pp = uint64(a) << 1
		case 4:
			pp = (^uint64(a) + 1) << 1
		case 5, 6:
			pp = ^uint64(a) + 1
		}
		s.partialProducts[i] = pp << (i * 2)
	}
	return s
}

// reduceLayer runs one level of 3:2 carry-save compression.
func reduceLayer(in []uint64) []uint64 {
	groups := len(in) / 3
	out := make([]uint64, 0, groups*2+len(in)%3)
	for i := 0; i < groups; i++ {
		a, b, c := in[i*3], in[i*3+1], in[i*3+2]
		sum := a ^ b ^ c
		carry := ((a & b) | (b & c) | (a & c)) << 1
		out = append(out, sum, carry)
	}
	out = append(out, in[groups*3:]...)
	return out
}

func multiplyStage2(s1 multiplyStage1) uint32 {
	layer := append([]uint64{}, s1.partialProducts[:]...)
	for len(layer) > 2 {
		layer = reduceLayer(layer)
	}
	sum, carry := layer[0], layer[1]

	var result uint32
	carryIn := uint64(0)
	for sector := 0; sector < 8; sector++ {
		shift := sector * 4
		sectorSum := (sum >> shift) & 0xF
		sectorCarry := (carry >> shift) & 0xF

		result0 := sectorSum + sectorCarry
		result1 := sectorSum + sectorCarry + 1

		var sectorResult, sectorCarryOut uint64
		if carryIn == 0 {
			sectorResult = result0 & 0xF
			sectorCarryOut = (result0 >> 4) & 1
		} else {
			sectorResult = result1 & 0xF
			sectorCarryOut = (result1 >> 4) & 1
		}
		result |= uint32(sectorResult << shift)
		carryIn = sectorCarryOut
	}
	return result
}

// Multiply computes a*b via Booth-encoded partial products reduced through
// a Wallace tree and a carry-select final add.
func Multiply(a, b uint32) uint32 {
	return multiplyStage2(multiplyStage1Of(a, b))
}

// Divide computes the unsigned quotient and remainder of dividend/divisor.
// A zero divisor yields the sentinel quotient 0xFFFFFFFF and leaves the
// dividend as the remainder.
func Divide(dividend, divisor uint32) (quotient, remainder uint32) {
	if divisor == 0 {
		return 0xFFFFFFFF, dividend
	}
	return dividend / divisor, dividend % divisor
}

// BarrelShift shifts data by amount (mod 32) in five combinational stages,
// one per bit of the shift amount.
func BarrelShift(data uint32, amount uint8, shiftLeft bool) uint32 {
	amount &= 0x1F
	for stage := uint(0); stage < 5; stage++ {
		bit := uint8(1) << stage
		if amount&bit == 0 {
			continue
		}
		n := uint32(bit)
		if shiftLeft {
			data <<= n
		} else {
			data >>= n
		}
	}
	return data
}

// Execute runs opcode against operandA/operandB in the appropriate
// execution unit. OpBranch is never passed here — branches are resolved
// by the scheduler against the predictor, not dispatched to an ALU.
func Execute(opcode Opcode, operandA, operandB uint32) uint32 {
	switch opcode {
	case OpADD:
		return operandA + operandB
	case OpSUB:
		return operandA - operandB
	case OpAND:
		return operandA & operandB
	case OpOR:
		return operandA | operandB
	case OpXOR:
		return operandA ^ operandB
	case OpSHL:
		return BarrelShift(operandA, uint8(operandB), true)
	case OpSHR:
		return BarrelShift(operandA, uint8(operandB), false)
	case OpMUL:
		return Multiply(operandA, operandB)
	case OpDIV:
		result, _ := Divide(operandA, operandB)
		return result
	case OpMOV:
		return operandB
	default:
		return 0
	}
}
