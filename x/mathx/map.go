package mathx

// MapI32 maps x from [inMin,inMax] onto [outMin,outMax] with 64-bit
// intermediates. The input range may be inverted and x may lie outside it;
// the result is not clamped. Division truncates toward zero.
// inMax == inMin yields outMin.
func MapI32(x, inMin, inMax, outMin, outMax int32) int32 {
	den := int64(inMax) - int64(inMin)
	if den == 0 {
		return outMin
	}
	num := (int64(x) - int64(inMin)) * (int64(outMax) - int64(outMin))
	return outMin + int32(num/den)
}
