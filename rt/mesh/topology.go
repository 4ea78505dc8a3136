package mesh

// ToLineList converts a triangle list into a non-indexed line list. Every
// triangle (v0, v1, v2) yields the edges v0-v1, v1-v2 and v2-v0, so the result
// holds exactly twice as many vertices as the input. A trailing partial
// triangle is ignored.
func ToLineList(triangles []float32) []float32 {
	const triSize = 3 * FloatsPerVertex
	n := len(triangles) / triSize
	out := make([]float32, 0, n*2*triSize)

	for t := 0; t < n; t++ {
		base := t * triSize
		v0 := triangles[base : base+FloatsPerVertex]
		v1 := triangles[base+FloatsPerVertex : base+2*FloatsPerVertex]
		v2 := triangles[base+2*FloatsPerVertex : base+triSize]

		out = append(out, v0...)
		out = append(out, v1...)
		out = append(out, v1...)
		out = append(out, v2...)
		out = append(out, v2...)
		out = append(out, v0...)
	}
	return out
}
