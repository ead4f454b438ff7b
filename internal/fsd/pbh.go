package fsd

import "math"

// Orientation is the attitude carried by the packed PBH field of position
// updates. Angles are degrees.
type Orientation struct {
	Pitch    float64 `json:"pitch"`
	Bank     float64 `json:"bank"`
	Heading  float64 `json:"heading"`
	OnGround bool    `json:"on_ground"`
}

// EncodePBH packs the orientation into 32 bits, most significant first:
// 10 bits pitch, 10 bits bank, 10 bits heading, 1 bit on-ground, 1 unused.
// Pitch and bank are sign-inverted. Every angle is wrapped into [0, 360)
// before scaling to 1024 steps; NaN encodes as 0.
func EncodePBH(o Orientation) uint32 {
	p := pbhSteps(-o.Pitch)
	b := pbhSteps(-o.Bank)
	h := pbhSteps(o.Heading)

	var ground uint32
	if o.OnGround {
		ground = 1
	}
	return p<<22 | b<<12 | h<<2 | ground<<1
}

// pbhSteps maps degrees onto the 10 bit circle.
func pbhSteps(deg float64) uint32 {
	turns := math.Mod(deg/360, 1)
	if math.IsNaN(turns) {
		return 0
	}
	if turns < 0 {
		turns++
	}
	return uint32(turns*1024) & 0x3ff
}

// DecodePBH reverses EncodePBH. Resolution is 360/1024 degrees.
func DecodePBH(v uint32) Orientation {
	heading := float64((v>>2)&0x3ff) / 1024 * 360
	bank := float64((v>>12)&0x3ff) / 1024 * -360
	pitch := float64(v>>22) / 1024 * -360

	return Orientation{
		Pitch:    wrapSigned(pitch),
		Bank:     wrapSigned(bank),
		Heading:  wrapHeading(heading),
		OnGround: v&2 != 0,
	}
}

func wrapSigned(deg float64) float64 {
	if deg > 180 {
		return deg - 360
	}
	if deg <= -180 {
		return deg + 360
	}
	return deg
}

func wrapHeading(deg float64) float64 {
	if deg < 0 {
		return deg + 360
	}
	if deg >= 360 {
		return deg - 360
	}
	return deg
}
