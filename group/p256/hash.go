package p256

import (
	"crypto/sha256"
	"math/big"
)

// domainSeparationTag is passed unchanged to every hash-to-field
// invocation in this package, binding both HashToPoint and HashToScalar
// to this protocol so that a proof built against another application of
// the same curve cannot be replayed here.
const domainSeparationTag = "CURVE_XMD:SHA-256:DREIP"

// sha256BlockSize and sha256OutputSize are the parameters b_in_bytes
// and s_in_bytes from RFC 9380 section 5.3.1 for SHA-256.
const (
	sha256OutputSize = 32
	sha256BlockSize  = 64
)

// expandMessageXMD implements RFC 9380 section 5.3.1, producing
// lenInBytes pseudorandom bytes from msg under the given
// domain-separation tag.
func expandMessageXMD(msg []byte, dst string, lenInBytes int) []byte {
	dstPrime := append([]byte(dst), byte(len(dst)))

	ell := (lenInBytes + sha256OutputSize - 1) / sha256OutputSize
	if ell > 255 {
		panic("p256: expand_message_xmd output too large")
	}

	zPad := make([]byte, sha256BlockSize)
	lenStr := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	msgPrime := make([]byte, 0, len(zPad)+len(msg)+len(lenStr)+1+len(dstPrime))
	msgPrime = append(msgPrime, zPad...)
	msgPrime = append(msgPrime, msg...)
	msgPrime = append(msgPrime, lenStr...)
	msgPrime = append(msgPrime, 0x00)
	msgPrime = append(msgPrime, dstPrime...)

	b0 := sha256.Sum256(msgPrime)

	b1Input := append(append([]byte{}, b0[:]...), 0x01)
	b1Input = append(b1Input, dstPrime...)
	b1 := sha256.Sum256(b1Input)

	uniformBytes := make([]byte, 0, ell*sha256OutputSize)
	uniformBytes = append(uniformBytes, b1[:]...)

	prev := b1
	for i := 2; i <= ell; i++ {
		xored := make([]byte, sha256OutputSize)
		for j := range xored {
			xored[j] = b0[j] ^ prev[j]
		}
		input := append(xored, byte(i))
		input = append(input, dstPrime...)
		next := sha256.Sum256(input)
		uniformBytes = append(uniformBytes, next[:]...)
		prev = next
	}

	return uniformBytes[:lenInBytes]
}

// fieldElementSize is L from RFC 9380 section 5.2: ceil((ceil(log2(p)) + k) / 8)
// for P-256 (p is 256 bits, k = 128 bit security target).
const fieldElementSize = 48

// hashToFieldP reduces the expanded message into count elements of
// GF(p), the P-256 base field, per RFC 9380 section 5.2.
func hashToFieldP(msg []byte, dst string, count int) []*big.Int {
	uniformBytes := expandMessageXMD(msg, dst, count*fieldElementSize)
	out := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		tv := uniformBytes[i*fieldElementSize : (i+1)*fieldElementSize]
		e := new(big.Int).SetBytes(tv)
		e.Mod(e, curveParams.P)
		out[i] = e
	}
	return out
}

// ssswuZ is the Z constant for the P256_XMD:SHA-256_SSWU_RO_ suite
// defined in RFC 9380 section 8.2: Z = -10 mod p.
var ssswuZ = func() *big.Int {
	z := new(big.Int).Sub(curveParams.P, big.NewInt(10))
	return z
}()

// inv0 returns the modular inverse of a, or zero if a is zero.
func inv0(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).ModInverse(a, curveParams.P)
}

// sqrtP256 returns a square root of a mod p, since P-256's prime is
// congruent to 3 mod 4 this is a^((p+1)/4) mod p. The caller must check
// the result squares back to a to confirm a was actually a QR.
var sqrtExponent = func() *big.Int {
	e := new(big.Int).Add(curveParams.P, big.NewInt(1))
	e.Rsh(e, 2)
	return e
}()

func sqrtP256(a *big.Int) *big.Int {
	return new(big.Int).Exp(a, sqrtExponent, curveParams.P)
}

func isSquareP256(a *big.Int) bool {
	if a.Sign() == 0 {
		return true
	}
	root := sqrtP256(a)
	check := new(big.Int).Mul(root, root)
	check.Mod(check, curveParams.P)
	return check.Cmp(new(big.Int).Mod(a, curveParams.P)) == 0
}

// sgn0 implements RFC 9380 section 4.1's sgn0_m_eq_1: the sign of a
// field element is the parity of its integer representative.
func sgn0(a *big.Int) uint {
	return a.Bit(0)
}

// mapToCurveSSWU implements the Simplified SWU mapping for P-256 (RFC
// 9380 section 6.6.2). P-256's Weierstrass coefficients A and B are
// both nonzero, so unlike secp256k1 this suite needs no 3-isogeny.
func mapToCurveSSWU(u *big.Int) *point {
	p := curveParams.P
	a := curveA
	b := curveParams.B

	uu := new(big.Int).Mul(u, u)
	uu.Mod(uu, p)

	tv1 := new(big.Int).Mul(ssswuZ, ssswuZ)
	tv1.Mul(tv1, new(big.Int).Mul(uu, uu))
	zu2 := new(big.Int).Mul(ssswuZ, uu)
	tv1.Add(tv1, zu2)
	tv1.Mod(tv1, p)

	tv2 := inv0(tv1)

	var x1 *big.Int
	if tv1.Sign() == 0 {
		// B / (Z*A) mod p
		denom := new(big.Int).Mul(ssswuZ, a)
		denom.Mod(denom, p)
		x1 = new(big.Int).Mul(b, inv0(denom))
	} else {
		one := big.NewInt(1)
		x1 = new(big.Int).Add(one, tv2)
		negBOverA := new(big.Int).Neg(b)
		negBOverA.Mul(negBOverA, inv0(a))
		x1.Mul(x1, negBOverA)
	}
	x1.Mod(x1, p)

	gx1 := weierstrassRHS(x1, a, b, p)

	x2 := new(big.Int).Mul(ssswuZ, uu)
	x2.Mul(x2, x1)
	x2.Mod(x2, p)
	gx2 := weierstrassRHS(x2, a, b, p)

	var x, y *big.Int
	if isSquareP256(gx1) {
		x = x1
		y = sqrtP256(gx1)
	} else {
		x = x2
		y = sqrtP256(gx2)
	}

	if sgn0(u) != sgn0(y) {
		y = new(big.Int).Sub(p, y)
		y.Mod(y, p)
	}

	return &point{x: x, y: y}
}

func weierstrassRHS(x, a, b, p *big.Int) *big.Int {
	x2 := new(big.Int).Mul(x, x)
	x3 := new(big.Int).Mul(x2, x)
	ax := new(big.Int).Mul(a, x)
	rhs := new(big.Int).Add(x3, ax)
	rhs.Add(rhs, b)
	rhs.Mod(rhs, p)
	return rhs
}

// hashToPoint implements the P256_XMD:SHA-256_SSWU_RO_ random-oracle
// hash-to-curve suite (RFC 9380), keyed on this package's
// domain-separation tag. hashToScalar uses the same tag; the two differ
// in the expanded length (96 bytes here, 48 there), which
// expand_message_xmd mixes into its output.
func hashToPoint(data ...[]byte) *point {
	msg := concatBytes(data)
	us := hashToFieldP(msg, domainSeparationTag, 2)
	q0 := mapToCurveSSWU(us[0])
	q1 := mapToCurveSSWU(us[1])
	sum := q0.Add(q1).(*point)
	// P-256's cofactor is 1, so no clearing step is required.
	return sum
}

// hashToScalar projects the expanded message directly into the scalar
// field (Z_n), mirroring the source library's use of
// NistP256::hash_to_scalar under the same domain-separation tag.
func hashToScalar(data ...[]byte) *scalar {
	msg := concatBytes(data)
	uniformBytes := expandMessageXMD(msg, domainSeparationTag, fieldElementSize)
	e := new(big.Int).SetBytes(uniformBytes)
	return newScalar(e)
}

func concatBytes(parts [][]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
