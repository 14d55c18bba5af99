package wire

// Position is a block position packed into a single long as x:26 z:26 y:12.
type Position struct {
	X, Y, Z int32
}

func (T Position) Pack() int64 {
	return (int64(T.X)&0x3FFFFFF)<<38 | (int64(T.Z)&0x3FFFFFF)<<12 | int64(T.Y)&0xFFF
}

func UnpackPosition(v int64) Position {
	return Position{
		X: int32(v >> 38),
		Y: int32(v << 52 >> 52),
		Z: int32(v << 26 >> 38),
	}
}

// Angle is a rotation in steps of 1/256 of a full turn.
type Angle uint8

func (T Angle) Degrees() float32 {
	return float32(T) * 360 / 256
}
